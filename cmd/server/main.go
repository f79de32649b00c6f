package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/contentdesk/contentdesk/internal/api"
	"github.com/contentdesk/contentdesk/internal/auth"
	"github.com/contentdesk/contentdesk/internal/config"
	"github.com/contentdesk/contentdesk/internal/console"
	"github.com/contentdesk/contentdesk/internal/db"
	"github.com/contentdesk/contentdesk/internal/identity"
	"github.com/contentdesk/contentdesk/internal/middleware"
	"github.com/contentdesk/contentdesk/internal/observ"
	"github.com/contentdesk/contentdesk/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config first: a missing DATABASE_URL or JWT_SECRET is fatal
	// before anything else starts.
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	database, err := db.New(context.Background(), cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	revoker, err := auth.NewRevoker(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer revoker.Close()

	pool := database.Pool()
	accountRepo := postgres.NewAccountStore(pool)
	profileRepo := postgres.NewProfileStore(pool)
	projectRepo := postgres.NewProjectStore(pool)
	memberRepo := postgres.NewMemberStore(pool)
	contentRepo := postgres.NewContentStore(pool)
	commentRepo := postgres.NewCommentStore(pool)

	resolver := identity.NewResolver(profileRepo, logger)
	projectsAsm := console.NewProjects(projectRepo, memberRepo)
	contentAsm := console.NewContent(contentRepo, memberRepo)
	membersAsm := console.NewMembers(memberRepo)
	dashboardAsm := console.NewDashboard(contentRepo, projectRepo)

	authHandler := api.NewAuthHandler(accountRepo, profileRepo, revoker, cfg.JWTSecret, logger)
	profileHandler := api.NewProfileHandler(profileRepo, logger)
	projectHandler := api.NewProjectHandler(projectsAsm, projectRepo, logger)
	memberHandler := api.NewMemberHandler(membersAsm, logger)
	commentHandler := api.NewCommentHandler(commentRepo, projectsAsm, logger)
	contentHandler := api.NewContentHandler(contentAsm, projectsAsm, contentRepo, logger)
	userHandler := api.NewUserHandler(accountRepo, profileRepo, logger)
	dashboardHandler := api.NewDashboardHandler(dashboardAsm, logger)

	srv := gin.New()
	srv.Use(gin.Logger(), gin.Recovery())

	logger.Info("starting contentdesk",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
	)

	// Health stays public for load-balancer probes.
	srv.GET("/v1/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	srv.POST("/v1/auth/signup", authHandler.Signup)
	srv.POST("/v1/auth/login", authHandler.Login)

	v1 := srv.Group("/v1")
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret, revoker))
	v1.Use(middleware.IdentityMiddleware(resolver))

	v1.POST("/auth/logout", authHandler.Logout)

	v1.GET("/me", profileHandler.Me)
	v1.PATCH("/me", profileHandler.UpdateMe)

	v1.GET("/dashboard/stats", dashboardHandler.Stats)

	v1.GET("/projects", projectHandler.List)
	v1.POST("/projects", projectHandler.Create)
	v1.GET("/projects/:id", projectHandler.Get)
	v1.PATCH("/projects/:id", projectHandler.Update)
	v1.DELETE("/projects/:id", projectHandler.Delete)
	v1.GET("/projects/:id/content", contentHandler.ListForProject)

	v1.GET("/projects/:id/members", memberHandler.ListMembers)
	v1.POST("/projects/:id/members", memberHandler.Assign)
	v1.PATCH("/projects/:id/members/:memberID", memberHandler.ChangeRole)
	v1.DELETE("/projects/:id/members/:memberID", memberHandler.Remove)

	v1.GET("/projects/:id/comments", commentHandler.List)
	v1.POST("/projects/:id/comments", commentHandler.Create)

	v1.GET("/content", contentHandler.List)
	v1.POST("/content", contentHandler.Create)
	v1.PATCH("/content/:id", contentHandler.Update)
	v1.DELETE("/content/:id", contentHandler.Delete)

	v1.GET("/users", userHandler.List)
	v1.POST("/users", userHandler.Create)
	v1.PATCH("/users/:id", userHandler.Update)
	v1.DELETE("/users/:id", userHandler.Delete)

	return srv.Run(":" + cfg.Port)
}
