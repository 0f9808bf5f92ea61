// Package mockapi is an in-memory stand-in for the Nebula backend. It
// serves the full REST surface the SDK consumes over seeded fixtures, so
// the client layer can be developed and demoed without the real backend.
// Nothing here persists and nothing here is a security boundary.
package mockapi

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nebula/internal/common/config"
	"nebula/internal/common/logger"
)

// Server wraps the gin engine and the in-memory dataset.
type Server struct {
	engine *gin.Engine
	data   *dataset
	logger logger.Logger
}

// NewServer builds the mock backend with seeded fixtures.
func NewServer(cfg config.ServerConfig, log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if cfg.CORSOrigins != "" {
		corsCfg.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
	} else {
		corsCfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	corsCfg.AllowCredentials = true
	engine.Use(cors.New(corsCfg))

	s := &Server{
		engine: engine,
		data:   seed(),
		logger: log.WithFields(map[string]interface{}{"component": "mockapi"}),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	v1 := s.engine.Group("/api/v1")

	v1.GET("/businesses", s.listBusinesses)
	v1.GET("/businesses/me", s.getOwnBusiness)
	v1.GET("/businesses/:id", s.getBusiness)
	v1.POST("/businesses", s.createBusiness)
	v1.PUT("/businesses/:id", s.updateBusiness)
	v1.DELETE("/businesses/:id", s.deleteBusiness)
	v1.POST("/businesses/:id/logo", s.uploadLogo)
	v1.POST("/businesses/:id/services", s.addService)
	v1.DELETE("/businesses/:id/services/:value", s.removeService)
	v1.POST("/businesses/:id/certifications", s.addCertification)
	v1.DELETE("/businesses/:id/certifications/:value", s.removeCertification)

	v1.GET("/businesses/:id/media", s.listMedia)
	v1.POST("/businesses/:id/media", s.uploadMedia)
	v1.DELETE("/businesses/:id/media/:mediaId", s.deleteMedia)
	v1.GET("/businesses/:id/documents", s.listDocuments)
	v1.POST("/businesses/:id/documents", s.uploadDocument)
	v1.DELETE("/businesses/:id/documents/:mediaId", s.deleteDocument)

	v1.GET("/connections", s.listConnections)
	v1.GET("/connections/requests", s.listConnectionRequests)
	v1.POST("/connections", s.createConnection)
	v1.PUT("/connections/:id/accept", s.acceptConnection)
	v1.PUT("/connections/:id/reject", s.rejectConnection)
	v1.DELETE("/connections/:id", s.deleteConnection)

	v1.GET("/notifications", s.listNotifications)
	v1.PUT("/notifications/:id/read", s.markNotificationRead)
	v1.PUT("/notifications/read-all", s.markAllNotificationsRead)

	v1.GET("/auth/profile", s.getProfile)
	v1.PUT("/auth/profile", s.updateProfile)
	v1.POST("/auth/login", s.mockLogin)
	v1.POST("/auth/logout", s.mockLogout)
	v1.GET("/auth/me", s.mockMe)

	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("mock api listening", map[string]interface{}{"addr": addr})
	return s.engine.Run(addr)
}

func ok(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}
