// Package api serves the agenda's JSON HTTP interface.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"weekly-agenda/internal/auth"
	"weekly-agenda/internal/service"
)

// Options wires the server's collaborators.
type Options struct {
	Tasks       *service.TaskService
	Auth        *service.AuthService
	Categories  *service.CategoryService
	Tokens      auth.TokenParser
	Location    *time.Location
	CORSOrigins []string
	// Ping reports storage health for /health. Optional.
	Ping func(ctx context.Context) error
}

// Server is the agenda HTTP server.
type Server struct {
	tasks      *service.TaskService
	users      *service.AuthService
	categories *service.CategoryService
	loc        *time.Location
	now        func() time.Time
	ping       func(ctx context.Context) error

	router  *gin.Engine
	handler http.Handler
}

func NewServer(opts Options) *Server {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	router := gin.New()
	router.Use(requestID(), accessLog(), gin.Recovery())

	s := &Server{
		tasks:      opts.Tasks,
		users:      opts.Auth,
		categories: opts.Categories,
		loc:        loc,
		now:        time.Now,
		ping:       opts.Ping,
		router:     router,
	}

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/categories", s.handleCategories)
		api.POST("/register", s.handleRegister)
		api.POST("/login", s.handleLogin)
	}

	authed := api.Group("", auth.Middleware(opts.Tokens))
	{
		authed.GET("/user", s.handleCurrentUser)
		authed.POST("/logout", s.handleLogout)

		authed.GET("/tasks", s.handleListTasks)
		authed.GET("/tasks/week", s.handleWeek)
		authed.GET("/tasks/:id", s.handleGetTask)
		authed.POST("/tasks", s.handleCreateTask)
		authed.PUT("/tasks/:id", s.handleUpdateTask)
		authed.DELETE("/tasks/:id", s.handleDeleteTask)

		authed.GET("/export.csv", s.handleExport)
		authed.GET("/export.ics", s.handleExport)
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader, "Content-Disposition"},
		MaxAge:         600,
	}).Handler(router)

	return s
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, s.categories.List())
}
