package patients

import "github.com/gin-gonic/gin"

// RegisterRoutes registers patient routes under the protected group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	p := r.Group("/patients")
	{
		p.POST("", h.Create)
		p.GET("", h.List)
		p.GET("/check-id", h.CheckID)
		p.GET("/:id", h.GetByID)
		p.DELETE("/:id", h.Delete)
	}
}
