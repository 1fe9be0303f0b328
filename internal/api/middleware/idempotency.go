package middleware

import (
	"github.com/gin-gonic/gin"
)

// Idempotency extracts the Idempotency-Key header so save handlers can
// replay stored responses for repeated requests
func Idempotency() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("idempotency_key", c.GetHeader("Idempotency-Key"))
		c.Next()
	}
}
