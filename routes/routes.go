package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"feedboard/apierror"
	"feedboard/handlers"
	"feedboard/logger"
	"feedboard/middleware"
	"feedboard/token"
)

// New wires the full route table: public auth endpoints, the protected
// feed and status endpoints behind the bearer gate, static image serving
// and the terminal error renderer.
func New(auth *handlers.Auth, feed *handlers.Feed, tokens *token.Manager, imageDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(apierror.Middleware())

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		MaxAge:          12 * time.Hour,
	}))

	router.Static("/images", imageDir)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	requireAuth := middleware.RequireAuth(tokens)

	authGroup := router.Group("/auth")
	{
		authGroup.PUT("/signup", auth.Signup)
		authGroup.POST("/login", auth.Login)
		authGroup.GET("/status", requireAuth, auth.GetStatus)
		authGroup.PUT("/status", requireAuth, auth.UpdateStatus)
	}

	feedGroup := router.Group("/feed")
	feedGroup.Use(requireAuth)
	{
		feedGroup.GET("/posts", feed.List)
		feedGroup.POST("/post", feed.Create)
		feedGroup.GET("/post/:postId", feed.GetByID)
		feedGroup.PUT("/post/:postId", feed.UpdateByID)
		feedGroup.DELETE("/post/:postId", feed.DeleteByID)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "endpoint not found"})
	})

	return router
}
