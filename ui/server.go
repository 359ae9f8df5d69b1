package ui

import (
	"log"

	"puckval/app"
	"puckval/internal/config"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP surface over the comparison service. Everything
// here is presentation glue; the scoring semantics live in domain/.
type Server struct {
	router  *gin.Engine
	service *app.CompareService
	league  config.LeagueConfig
}

// NewServer creates a new web server instance
func NewServer(service *app.CompareService, league config.LeagueConfig) *Server {
	s := &Server{
		router:  gin.Default(),
		service: service,
		league:  league,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/players", s.handlePlayers)
		api.GET("/categories", s.handleCategories)
		api.GET("/scores", s.handleScores)
		api.POST("/compare", s.handleCompare)
		api.POST("/refresh", s.handleRefresh)
		api.POST("/snapshots", s.handleSaveSnapshot)
		api.GET("/snapshots", s.handleListSnapshots)
		api.GET("/snapshots/latest", s.handleLatestSnapshot)
		api.GET("/snapshots/:id", s.handleLoadSnapshot)
		api.GET("/report/compare", s.handleCompareReport)
	}
}

// Router exposes the gin engine, mainly for handler tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server
func (s *Server) Run(port string) error {
	log.Printf("[Server] listening on :%s", port)
	return s.router.Run(":" + port)
}
