package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fidelize/loyalty-admin/internal/audit"
	"github.com/fidelize/loyalty-admin/internal/config"
	"github.com/fidelize/loyalty-admin/internal/handlers"
	infraRepo "github.com/fidelize/loyalty-admin/internal/infra/repository"
	"github.com/fidelize/loyalty-admin/internal/middleware"
	"github.com/fidelize/loyalty-admin/internal/session"
	"github.com/fidelize/loyalty-admin/internal/tokens"
	ucPoints "github.com/fidelize/loyalty-admin/internal/usecase/points"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	denylist tokens.Denylist,
	dispatcher *audit.Dispatcher,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	pointsRepo := infraRepo.NewPointsGormRepository(db)

	recorder := audit.NewRecorder(dispatcher)
	resolver := session.NewResolver([]byte(cfg.JWTSecret), denylist)

	// ======================================================
	// USE CASES — POINTS
	// ======================================================
	grantPointsUC := ucPoints.NewGrantPoints(pointsRepo)
	getBalanceUC := ucPoints.NewGetBalance(pointsRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, denylist, recorder)
	meHandler := handlers.NewMeHandler(db)

	userHandler := handlers.NewUserHandler(db, recorder)
	branchHandler := handlers.NewBranchHandler(db, recorder)
	terminalHandler := handlers.NewTerminalHandler(db, recorder)
	customerHandler := handlers.NewCustomerHandler(db, pointsRepo, recorder)

	pointsHandler := handlers.NewPointsHandler(grantPointsUC, getBalanceUC, recorder)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH (público)
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, resolver))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// MANAGERS: filiais, terminais, clientes, pontos
			// ------------------------------
			managed := secured.Group("/")
			managed.Use(middleware.Require(session.Managers(cfg.DiagUsername)))
			{
				managed.GET("/branches", branchHandler.List)
				managed.POST("/branches", branchHandler.Create)
				managed.PATCH("/branches/:id", branchHandler.Update)
				managed.DELETE("/branches/:id", branchHandler.Delete)
				managed.PATCH("/branches/:id/restore", branchHandler.Restore)

				managed.GET("/terminals", terminalHandler.List)
				managed.POST("/terminals", terminalHandler.Create)
				managed.PATCH("/terminals/:id", terminalHandler.Update)
				managed.DELETE("/terminals/:id", terminalHandler.Delete)
				managed.PATCH("/terminals/:id/restore", terminalHandler.Restore)

				managed.GET("/customers", customerHandler.List)
				managed.POST("/customers", customerHandler.Create)
				managed.GET("/customers/:id", customerHandler.Get)

				managed.POST("/customers/:id/points", pointsHandler.Grant)
				managed.GET("/customers/:id/points", pointsHandler.Balance)
			}

			// ------------------------------
			// ADMIN ONLY: usuários e audit trail
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.Require(session.AdminOnly()))
			{
				admin.GET("/users", userHandler.List)
				admin.POST("/users", userHandler.Create)
				admin.PATCH("/users/:id/role", userHandler.UpdateRole)
				admin.PATCH("/users/:id/password", userHandler.UpdatePassword)
				admin.DELETE("/users/:id", userHandler.Delete)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
