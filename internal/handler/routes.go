package handler

import "github.com/gin-gonic/gin"

// Register mounts the consultation routes. guard runs in front of the two
// generation routes only (rate limit, session check).
func (h *Handler) Register(router gin.IRouter, guard ...gin.HandlerFunc) {
	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	{
		api.GET("/catalog", h.Catalog)
		api.POST("/session", h.CreateSession)
		api.POST("/generate", chain(guard, h.Generate)...)
	}

	router.GET("/ws/generate", chain(guard, h.GenerateStream)...)
}

func chain(guard []gin.HandlerFunc, final gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guard)+1)
	out = append(out, guard...)
	return append(out, final)
}
