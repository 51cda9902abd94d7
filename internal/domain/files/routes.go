package files

import "github.com/gin-gonic/gin"

// RegisterRoutes registers file routes. The download route carries its own
// auth middleware because it must also accept a query-carried token for
// inline embeds; everything else is header-only.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, headerAuth, dualAuth gin.HandlerFunc) {
	files := r.Group("/files")
	{
		files.POST("/upload/:patientId", headerAuth, h.Upload)
		files.GET("/list/:patientId", headerAuth, h.List)
		files.GET("/download/:fileId", dualAuth, h.Download)
		files.DELETE("/delete/:fileId", headerAuth, h.Delete)
		files.GET("/download-all/:patientId", headerAuth, h.DownloadAll)
	}
}
