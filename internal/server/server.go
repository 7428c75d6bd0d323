package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/askboard/backend/internal/database"
	"github.com/askboard/backend/internal/handlers"
	"github.com/askboard/backend/internal/middleware"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	// Initialize database
	db := database.New()

	// Create unified handler
	handler := handlers.NewHandler(db.GetDB())

	// Create server instance
	newServer := &Server{
		db:      db,
		handler: handler,
	}

	// Configure Gin router
	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Index routes (public reads)
		api.GET("/questions", s.handler.Index.QuestionIndex)
		api.GET("/tags/:tag", s.handler.Index.QuestionsByTag)

		// User routes (public reads)
		api.GET("/users/:id", s.handler.User.GetUserProfile)

		// Routes serving both visitors and members
		open := api.Group("")
		open.Use(middleware.OptionalAuth())
		{
			// The thread view mutates on POST form keys; anonymous viewers
			// only read. Voting redirects anonymous callers home.
			open.GET("/questions/:id", s.handler.Question.Thread)
			open.POST("/questions/:id", s.handler.Question.Thread)
			open.GET("/vote", s.handler.Vote.Vote)
			open.POST("/vote", s.handler.Vote.Vote)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.POST("/questions", s.handler.Question.CreateQuestion)
			protected.PUT("/questions/:id", s.handler.Question.EditQuestion)
			protected.DELETE("/questions/:id", s.handler.Question.DeleteQuestion)
			protected.PUT("/questions/:id/answers/:answerId", s.handler.Question.EditAnswer)

			protected.PUT("/users/:id", s.handler.User.UpdateUserProfile)
		}
	}

	return r
}
