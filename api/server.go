package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jiji-catalog/services"
	"jiji-catalog/utils"
)

// Server exposes the admin-facing HTTP surface: the import trigger and the
// harvested image tree. Authentication is handled upstream and is not part
// of this service.
type Server struct {
	router *gin.Engine
	logger *utils.Logger
}

// NewServer wires the routes and returns a ready-to-run Server.
func NewServer(importer *services.Importer, imagesDir string, logger *utils.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Static("/images", imagesDir)

	admin := r.Group("/api/admin")
	admin.POST("/products/import", func(c *gin.Context) {
		summary := importer.Run(c.Request.Context())
		// Run-level failures ride inside the summary; the transport itself
		// succeeded.
		c.JSON(http.StatusOK, summary)
	})

	return &Server{router: r, logger: logger}
}

// Handler returns the underlying HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info("[api] Listening on %s", addr)
	return s.router.Run(addr)
}
