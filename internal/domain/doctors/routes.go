package doctors

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public auth routes.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}
