package api

import (
	"time"

	"paipu/common/http"
)

func PingHandler(c *http.Context) error {
	c.Success(map[string]any{
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"service":   "analyzer",
	})
	return nil
}
