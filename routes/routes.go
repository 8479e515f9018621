package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"productoptions/configs"
	"productoptions/controllers"
	"productoptions/middlewares"
	"productoptions/pkg/catalog"
	"productoptions/repository"
	"productoptions/services"
)

func NewRouter(db *gorm.DB, cfg *configs.Config, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Logger(logger))
	r.Use(middlewares.Recovery(logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	RegisterRoutes(r, db, cfg, logger)
	return r
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, logger *slog.Logger) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories / services
	optionRepo := repository.NewOptionRepository(db, logger)
	productOptionRepo := repository.NewProductOptionRepository(db, logger)

	optionSvc := services.NewOptionService(optionRepo, logger)
	actionSvc := services.NewActionService(optionSvc, logger)
	productOptionSvc := services.NewProductOptionService(productOptionRepo, optionRepo, newCatalog(cfg, logger), logger)

	// Controllers
	optionCtrl := controllers.NewOptionController(optionSvc)
	actionCtrl := controllers.NewOptionActionController(actionSvc, optionSvc)
	productOptionCtrl := controllers.NewProductOptionController(productOptionSvc)

	auth := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))

	// หน้า admin: loader + form action
	app := auth.Group("/app")
	{
		app.GET("/options", actionCtrl.Load)
		app.POST("/options", actionCtrl.Submit)
	}

	// REST
	opts := auth.Group("/options")
	{
		opts.GET("", optionCtrl.List)
		opts.POST("", optionCtrl.Create)
		opts.DELETE("", optionCtrl.Delete)
		opts.GET("/:id", optionCtrl.Get)
		opts.PATCH("/:id", optionCtrl.Update)
	}

	// ผูก option เข้ากับสินค้า
	po := auth.Group("/product-options")
	{
		po.GET("", productOptionCtrl.ListByProduct)
		po.POST("", productOptionCtrl.Apply)
		po.DELETE("", productOptionCtrl.Detach)
	}
}

func newCatalog(cfg *configs.Config, logger *slog.Logger) catalog.Catalog {
	if cfg.CatalogURL == "" {
		logger.Warn("CATALOG_URL not set, product handles cannot be resolved")
		return catalog.IDOnly{}
	}
	return catalog.NewCached(
		catalog.NewHTTPCatalog(cfg.CatalogURL, 5*time.Second, logger),
		cfg.CatalogCacheSize,
		cfg.CatalogCacheTTL,
	)
}
