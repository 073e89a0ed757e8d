package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// AuthValidate only exists so clients can cheaply probe whether their
// access token is still good. The JWT middleware does all the work.
func (a *API) AuthValidate(c *gin.Context) {
	c.Status(http.StatusOK)
}
