package router

import (
	"time"

	"almacen/internal/config"
	"almacen/internal/handler"
	"almacen/internal/infra"
	"almacen/internal/middleware"
	"almacen/internal/repository"
	"almacen/internal/service"
	"almacen/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	operatorRepo := repository.NewOperatorRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	productRepo := repository.NewProductRepository(db)
	variationRepo := repository.NewVariationRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Worker dispatcher, injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(operatorRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo, productRepo)
	supplierSvc := service.NewSupplierService(supplierRepo, productRepo, infra.ValidateImage)
	productSvc := service.NewProductService(productRepo, categoryRepo, supplierRepo, infra.ValidateImage)
	variationSvc := service.NewVariationService(variationRepo, productRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo, productRepo)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, supplierRepo, productRepo, dispatcher)
	reportSvc := service.NewReportService(reportRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc, cfg.MediaStoragePath)
	productsH := handler.NewProductsHandler(productSvc, cfg.MediaStoragePath)
	variationsH := handler.NewVariationsHandler(variationSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc, cfg.LowStockThreshold)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	reportsH := handler.NewReportsHandler(reportSvc, cfg.LowStockThreshold)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	read := middleware.RequireRole("operator", "admin")
	write := middleware.RequireRole("admin")

	v1 := r.Group("/v1", jwtMW)
	{
		// Categorias: tree reads for everyone authenticated, writes admin only
		v1.GET("/categorias", read, categoriesH.List)
		v1.GET("/categorias/arbol", read, categoriesH.Tree)
		v1.GET("/categorias/:id", read, categoriesH.GetByID)
		categorias := v1.Group("/categorias", write)
		{
			categorias.POST("", categoriesH.Create)
			categorias.PUT("/:id", categoriesH.Rename)
			categorias.PATCH("/:id/mover", categoriesH.Move)
			categorias.DELETE("/:id", categoriesH.Delete)
		}

		v1.GET("/proveedores", read, suppliersH.List)
		v1.GET("/proveedores/:id", read, suppliersH.GetByID)
		proveedores := v1.Group("/proveedores", write)
		{
			proveedores.POST("", suppliersH.Create)
			proveedores.PUT("/:id", suppliersH.Update)
			proveedores.DELETE("/:id", suppliersH.Delete)
			proveedores.POST("/:id/imagen", suppliersH.UploadImage)
		}

		v1.GET("/productos", read, productsH.List)
		v1.GET("/productos/:id", read, productsH.GetByID)
		v1.GET("/productos/slug/:slug", read, productsH.GetBySlug)
		v1.GET("/productos/:id/stock", read, inventoryH.StockForProduct)
		v1.GET("/productos/:id/incidencia", read, productsH.GetIssue)
		productos := v1.Group("/productos", write)
		{
			productos.POST("", productsH.Create)
			productos.PUT("/:id", productsH.Update)
			productos.DELETE("/:id", productsH.Delete)
			productos.POST("/:id/imagen", productsH.UploadImage)
			productos.PUT("/:id/incidencia", productsH.SetIssue)
			productos.DELETE("/:id/incidencia", productsH.ClearIssue)
		}

		v1.GET("/variaciones", read, variationsH.List)
		v1.GET("/variaciones/por-categoria", read, variationsH.CountByCategory)
		variaciones := v1.Group("/variaciones", write)
		{
			variaciones.POST("", variationsH.Create)
			variaciones.PUT("/:id", variationsH.Update)
			variaciones.DELETE("/:id", variationsH.Delete)
		}

		v1.GET("/inventarios", read, inventoryH.List)
		v1.GET("/inventarios/bajo-stock", read, inventoryH.LowStock)
		v1.GET("/inventarios/:id", read, inventoryH.GetByID)
		inventarios := v1.Group("/inventarios", write)
		{
			inventarios.POST("", inventoryH.Create)
			inventarios.PUT("/:id", inventoryH.Update)
			inventarios.DELETE("/:id", inventoryH.Delete)
		}

		v1.GET("/compras", read, purchasesH.List)
		v1.GET("/compras/:id", read, purchasesH.GetByID)
		compras := v1.Group("/compras", write)
		{
			compras.POST("", purchasesH.Create)
			compras.PUT("/:id", purchasesH.Update)
			compras.DELETE("/:id", purchasesH.Delete)
			compras.POST("/:id/enviar", purchasesH.SendOrder)
		}

		reportes := v1.Group("/reportes", read)
		{
			reportes.GET("/stock", reportsH.ProductStock)
			reportes.GET("/bajo-stock", reportsH.LowStock)
			reportes.GET("/resumen-ventas", reportsH.SalesSummary)
			reportes.GET("/rango-precios", reportsH.PriceRange)
		}

		operadores := v1.Group("/operadores", write)
		{
			operadores.POST("", authH.CreateOperator)
			operadores.GET("", authH.ListOperators)
			operadores.PUT("/:id", authH.UpdateOperator)
			operadores.DELETE("/:id", authH.DeactivateOperator)
		}
	}

	return r
}
