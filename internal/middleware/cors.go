package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CORSAllowOrigin  = "*"
	CORSAllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// CORS sets the permissive cross-origin headers on every response and answers preflight
// requests itself with 200 "ok", so OPTIONS never reaches a function.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", CORSAllowOrigin)
		c.Header("Access-Control-Allow-Headers", CORSAllowHeaders)

		if c.Request.Method == http.MethodOptions {
			c.String(http.StatusOK, "ok")
			c.Abort()
			return
		}

		c.Next()
	}
}
