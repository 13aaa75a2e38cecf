package middleware

import (
	"github.com/haierkeys/collab-note-service/pkg/app"
	"github.com/haierkeys/collab-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound 404 处理
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)
		response.ToResponse(code.ErrorNotFoundAPI)
		c.Abort()
	}
}
