package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthLogout clears the refresh cookie. It always succeeds, even when no
// session existed. The refresh token itself stays valid until expiry since
// there's no server-side revocation.
func (a *API) AuthLogout(c *gin.Context) {
	clearRefreshCookie(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
