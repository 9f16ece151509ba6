package http

import (
	"time"

	"github.com/google/uuid"

	"paipu/common/log"
)

const RequestIDKey = "requestID"

// LoggerMiddleware 请求日志
func LoggerMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		start := time.Now()
		c.Next()
		log.Info("HTTP %s %s %d from %s in %v, request=%s",
			c.Method(), c.Path(), c.Status(), c.ClientIP(), time.Since(start), c.GetString(RequestIDKey))
		return nil
	}
}

// RequestIDMiddleware 透传或生成 X-Request-ID
func RequestIDMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.SetHeader("X-Request-ID", requestID)
		return nil
	}
}
