package api

import (
	"paipu/common/http"
	"paipu/runtime/replay/application/service"
)

// RegisterRoutes 注册所有路由，limiter 为 nil 时不限流
func RegisterRoutes(server *http.HttpServer, svc service.ReplayService, limiter *http.RateLimiter) {
	h := &ReplayHandler{service: svc}

	server.GET("/ping", PingHandler)

	var middlewares []http.MiddlewareFunc
	if limiter != nil {
		middlewares = append(middlewares, http.RateLimitMiddleware(limiter))
	}
	v1 := server.Group("/api/v1", middlewares...)
	{
		v1.POST("/replay", h.Replay)
		v1.GET("/games/:id", h.GetGame)
	}
}
