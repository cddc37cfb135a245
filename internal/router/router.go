// Package router wires the HTTP surface: middleware, error shape,
// migrations, seeding and every route group.
package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bragboardhq/backend/internal/activity"
	"github.com/bragboardhq/backend/internal/handlers"
	"github.com/bragboardhq/backend/internal/middleware"
	"github.com/bragboardhq/backend/internal/models"
	"github.com/bragboardhq/backend/internal/repositories"
	"github.com/bragboardhq/backend/internal/uploader"
	"github.com/bragboardhq/backend/pkg/config"
	"github.com/bragboardhq/backend/pkg/metrics"
	"github.com/bragboardhq/backend/pkg/token"
)

// SetupMiddleware registers the global middleware chain
func SetupMiddleware(e *echo.Echo, cfg *config.Config, log *zap.Logger) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(metrics.Middleware())
	e.Use(requestLogger(log))

	e.HTTPErrorHandler = errorHandler(log)
}

// requestLogger logs one structured line per request
func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}

// errorHandler renders every error as {"detail": "..."} and keeps
// internal details out of responses.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		detail := "Internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				detail = msg
			} else {
				detail = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
			detail = "Internal server error"
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, map[string]string{"detail": detail})
		}
		if writeErr != nil {
			log.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}

// SetupRoutes migrates the schema, seeds the defaults, builds the
// dependency graph and registers all routes.
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, tokens *token.Manager, uploads uploader.Uploader, loc *time.Location, log *zap.Logger) error {
	if err := db.AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.ShoutOut{},
		&models.ShoutOutRecipient{},
		&models.Reaction{},
		&models.Comment{},
		&models.Attachment{},
		&models.Report{},
		&models.Notification{},
		&models.AdminNotification{},
	); err != nil {
		return err
	}

	engine := activity.NewEngine()

	userRepo := repositories.NewPostgresUserRepository(db)
	deptRepo := repositories.NewPostgresDepartmentRepository(db)
	shoutRepo := repositories.NewPostgresShoutOutRepository(db, engine)
	reactionRepo := repositories.NewPostgresReactionRepository(db, engine)
	commentRepo := repositories.NewPostgresCommentRepository(db, engine)
	attachmentRepo := repositories.NewPostgresAttachmentRepository(db)
	reportRepo := repositories.NewPostgresReportRepository(db, engine)
	notifRepo := repositories.NewPostgresNotificationRepository(db)
	adminNotifRepo := repositories.NewPostgresAdminNotificationRepository(db)
	statsRepo := repositories.NewPostgresStatsRepository(db)

	if err := deptRepo.SeedDefaults(models.DefaultDepartments); err != nil {
		return err
	}

	authHandler := handlers.NewAuthHandler(userRepo, deptRepo, tokens, cfg.Auth.AdminInviteCode, loc)
	userHandler := handlers.NewUserHandler(userRepo, deptRepo, uploads, loc)
	deptHandler := handlers.NewDepartmentHandler(deptRepo, loc)
	shoutHandler := handlers.NewShoutOutHandler(shoutRepo, reactionRepo, commentRepo, attachmentRepo, reportRepo, userRepo, uploads, loc)
	notifHandler := handlers.NewNotificationHandler(notifRepo, loc)
	adminHandler := handlers.NewAdminHandler(statsRepo, reportRepo, adminNotifRepo, userRepo, loc)

	auth := middleware.JWTAuthMiddleware(tokens, userRepo)
	adminOnly := middleware.RequireAdmin()

	e.GET("/health", handlers.Health)
	e.GET("/metrics", metrics.Handler())

	authGroup := e.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)

	e.GET("/departments/public", deptHandler.ListPublic)

	users := e.Group("/users", auth)
	users.GET("/me", userHandler.Me)
	users.PATCH("/me", userHandler.UpdateMe)
	users.POST("/me/change-password", userHandler.ChangePassword)
	users.POST("/me/avatar", userHandler.UploadAvatar)
	users.GET("/lookup", userHandler.Lookup)
	users.GET("", userHandler.ListUsers, adminOnly)

	departments := e.Group("/departments", auth)
	departments.GET("", deptHandler.List)
	departments.POST("", deptHandler.Create, adminOnly)

	shoutouts := e.Group("/shoutouts", auth)
	shoutouts.POST("", shoutHandler.Create)
	shoutouts.GET("", shoutHandler.List)
	shoutouts.POST("/:id/react", shoutHandler.React)
	shoutouts.GET("/:id/comments", shoutHandler.GetComments)
	shoutouts.POST("/:id/comment", shoutHandler.Comment)
	shoutouts.DELETE("/:id", shoutHandler.Delete)
	shoutouts.DELETE("/comments/:id", shoutHandler.DeleteComment)
	shoutouts.POST("/:id/upload-image", shoutHandler.UploadImage)
	shoutouts.POST("/:id/report", shoutHandler.Report)

	notifications := e.Group("/notifications", auth)
	notifications.GET("", notifHandler.List)
	notifications.GET("/count", notifHandler.Count)
	notifications.POST("/:id/read", notifHandler.MarkRead)
	notifications.POST("/read-all", notifHandler.ReadAll)

	admin := e.Group("/admin", auth, adminOnly)
	admin.GET("/metrics", adminHandler.Metrics)
	admin.GET("/leaderboard", adminHandler.Leaderboard)
	admin.GET("/reports", adminHandler.ListReports)
	admin.POST("/reports/:id/resolve", adminHandler.ResolveReport)
	admin.GET("/reports/export", adminHandler.ExportReports)
	admin.GET("/notifications", adminHandler.ListAuditFeed)

	return nil
}
