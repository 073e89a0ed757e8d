package api

import (
	"net/http"

	"notable/notes-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

const refreshCookieName = "refresh_token"

// setRefreshCookie stores the refresh token in an HttpOnly strict-same-site
// cookie. The access token is never put in a cookie, it only travels in
// response bodies.
func setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, token, int(security.RefreshTokenTTL.Seconds()), "/", "", viper.GetBool("host.ssl.enabled"), true)
}

// clearRefreshCookie expires the cookie with the same path and flags it was
// set with, otherwise browsers keep the old one around.
func clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", viper.GetBool("host.ssl.enabled"), true)
}
