package router

import (
	"time"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/config"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/handler"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/middleware"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/model"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/realtime"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/repository"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/service"
	"github.com/vjloable/fredelicacies-pos-sub003/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, hub *realtime.Hub) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	branchRepo := repository.NewBranchRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	sessionRepo := repository.NewWorkSessionRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(workerRepo, cfg)
	branchSvc := service.NewBranchService(branchRepo, hub)
	workerSvc := service.NewWorkerService(workerRepo, branchRepo, hub)
	timeclockSvc := service.NewTimeclockService(sessionRepo, workerRepo, hub)
	inventorySvc := service.NewInventoryService(inventoryRepo, categoryRepo, branchRepo, hub)
	discountSvc := service.NewDiscountService(discountRepo, branchRepo, hub)
	orderSvc := service.NewOrderService(orderRepo, inventoryRepo, discountRepo, branchRepo, dispatcher, hub, cfg.StockConflictLimit)
	analyticsSvc := service.NewAnalyticsService(orderRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	branchesH := handler.NewBranchesHandler(branchSvc)
	workersH := handler.NewWorkersHandler(workerSvc)
	timeclockH := handler.NewTimeclockHandler(timeclockSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	discountsH := handler.NewDiscountsHandler(discountSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)
	streamH := handler.NewStreamHandler(hub)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staff := middleware.RequireRole(model.RoleWorker, model.RoleManager)
	managers := middleware.RequireRole(model.RoleManager)

	v1 := r.Group("/v1", jwtMW)
	{
		// Branches — everyone reads, admins write
		v1.GET("/branches", staff, branchesH.List)
		v1.GET("/branches/:id", staff, branchesH.Get)
		branches := v1.Group("/branches", middleware.RequireAdmin())
		{
			branches.POST("", branchesH.Create)
			branches.PUT("/:id", branchesH.Update)
			branches.DELETE("/:id", branchesH.Deactivate)
			branches.PATCH("/:id/reactivate", branchesH.Reactivate)
		}

		// Workers — managers read their staff, admins write
		v1.GET("/workers", managers, workersH.List)
		v1.GET("/workers/:id", managers, workersH.Get)
		workers := v1.Group("/workers", middleware.RequireAdmin())
		{
			workers.POST("", workersH.Create)
			workers.PUT("/:id", workersH.Update)
			workers.PUT("/:id/assignments", workersH.ReplaceAssignments)
			workers.DELETE("/:id", workersH.Deactivate)
			workers.PATCH("/:id/reactivate", workersH.Reactivate)
		}

		// Timeclock — every staff member clocks themselves in and out
		timeclock := v1.Group("/timeclock", staff)
		{
			timeclock.POST("/clock-in", timeclockH.ClockIn)
			timeclock.POST("/clock-out", timeclockH.ClockOut)
			timeclock.GET("/current", timeclockH.Current)
		}
		v1.GET("/timeclock/sessions", managers, timeclockH.List)
		v1.GET("/timeclock/timesheet/:id", managers, timeclockH.Timesheet)

		// Inventory — staff read the catalog, managers maintain it
		v1.GET("/inventory/items", staff, inventoryH.ListItems)
		v1.GET("/inventory/items/:id", staff, inventoryH.GetItem)
		v1.GET("/inventory/barcode/:barcode", staff, inventoryH.GetByBarcode)
		v1.GET("/inventory/items/:id/movements", managers, inventoryH.ListMovements)
		v1.GET("/inventory/low-stock", managers, inventoryH.ListLowStock)
		items := v1.Group("/inventory/items", managers)
		{
			items.POST("", inventoryH.CreateItem)
			items.PUT("/:id", inventoryH.UpdateItem)
			items.PATCH("/:id/stock", inventoryH.AdjustStock)
			items.DELETE("/:id", inventoryH.DeactivateItem)
			items.PATCH("/:id/reactivate", inventoryH.ReactivateItem)
		}

		v1.GET("/inventory/categories", staff, inventoryH.ListCategories)
		categories := v1.Group("/inventory/categories", managers)
		{
			categories.POST("", inventoryH.CreateCategory)
			categories.PUT("/:id", inventoryH.UpdateCategory)
			categories.DELETE("/:id", inventoryH.DeleteCategory)
		}

		// Discounts — storefront reads applicable ones, managers maintain
		v1.GET("/discounts/applicable", staff, discountsH.Applicable)
		v1.GET("/discounts", managers, discountsH.List)
		v1.GET("/discounts/:id", managers, discountsH.Get)
		discounts := v1.Group("/discounts", managers)
		{
			discounts.POST("", discountsH.Create)
			discounts.PUT("/:id", discountsH.Update)
			discounts.DELETE("/:id", discountsH.Deactivate)
		}

		// Orders — staff sell, managers void
		v1.POST("/orders", staff, ordersH.Register)
		v1.GET("/orders", staff, ordersH.List)
		v1.GET("/orders/:id", staff, ordersH.Get)
		v1.POST("/orders/:id/void", managers, ordersH.Void)

		// Analytics — managers and up
		analytics := v1.Group("/analytics", managers)
		{
			analytics.GET("/summary", analyticsH.Summary)
			analytics.GET("/top-items", analyticsH.TopItems)
			analytics.GET("/daily", analyticsH.Daily)
			analytics.GET("/export", analyticsH.Export)
		}

		// Realtime — any staff member may watch a branch they can see
		v1.GET("/stream", staff, streamH.Stream)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
