package routes

import (
	"littlelemon/configs"
	"littlelemon/controllers"
	"littlelemon/entity"
	"littlelemon/middlewares"
	"littlelemon/repository"
	"littlelemon/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	catRepo := repository.NewCategoryRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	menuSvc := services.NewMenuService(menuRepo, catRepo)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, userRepo)
	groupSvc := services.NewGroupService(userRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	groupCtrl := controllers.NewGroupController(groupSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)

	// Everything under /api requires a valid token; per-operation role
	// rules live in the services' policy checks.
	api := r.Group("/api", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		api.GET("/menu-items", menuCtrl.List)
		api.POST("/menu-items", menuCtrl.Create)
		api.GET("/menu-items/:id", menuCtrl.Detail)
		api.PUT("/menu-items/:id", menuCtrl.Update)
		api.PATCH("/menu-items/:id", menuCtrl.Patch)
		api.DELETE("/menu-items/:id", menuCtrl.Delete)

		api.GET("/categories", menuCtrl.ListCategories)
		api.POST("/categories", menuCtrl.CreateCategory)
		api.DELETE("/categories/:id", menuCtrl.DeleteCategory)

		api.GET("/cart/menu-items", cartCtrl.Get)
		api.POST("/cart/menu-items", cartCtrl.Add)
		api.DELETE("/cart/menu-items", cartCtrl.Clear)

		api.GET("/orders", orderCtrl.List)
		api.POST("/orders", orderCtrl.Create)
		api.GET("/orders/:id", orderCtrl.Detail)
		api.PUT("/orders/:id", orderCtrl.Update)
		api.PATCH("/orders/:id", orderCtrl.Patch)
		api.DELETE("/orders/:id", orderCtrl.Delete)

		api.GET("/groups/manager/users", groupCtrl.List(entity.RoleManager))
		api.POST("/groups/manager/users", groupCtrl.Add(entity.RoleManager))
		api.DELETE("/groups/manager/users/:id", groupCtrl.Remove(entity.RoleManager))

		api.GET("/groups/delivery-crew/users", groupCtrl.List(entity.RoleDeliveryCrew))
		api.POST("/groups/delivery-crew/users", groupCtrl.Add(entity.RoleDeliveryCrew))
		api.DELETE("/groups/delivery-crew/users/:id", groupCtrl.Remove(entity.RoleDeliveryCrew))
	}
}
