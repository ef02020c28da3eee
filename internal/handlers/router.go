package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"urbancart-backend/internal/auth"
	"urbancart-backend/internal/models"
	"urbancart-backend/internal/upload"
)

// Deps carries everything the router needs; handlers depend on the narrow
// service interfaces so tests can swap in stubs.
type Deps struct {
	Tokens     *auth.TokenService
	Resolver   auth.PrincipalResolver
	Users      UserService
	Admins     AdminService
	Products   ProductService
	Reviews    ReviewService
	Slider     SliderService
	Uploads    upload.Uploader
	CORSOrigin string
}

// NewRouter wires the /user, /admin and /product route groups.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.Default()
	if deps.CORSOrigin != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{deps.CORSOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	authenticate := auth.Authenticate(deps.Tokens, deps.Resolver)
	adminOnly := auth.RequireRole(models.RoleAdmin)

	userHandler := NewUserHandler(deps.Users, deps.Reviews, deps.Tokens, deps.Uploads)
	adminHandler := NewAdminHandler(deps.Admins, deps.Slider, deps.Tokens, deps.Uploads)
	productHandler := NewProductHandler(deps.Products, deps.Uploads)

	user := router.Group("/user")
	{
		user.POST("/signup", userHandler.Signup)
		user.POST("/login", userHandler.Login)
		user.GET("/logout", userHandler.Logout)

		protected := user.Group("", authenticate)
		protected.POST("/add-address", userHandler.AddAddress)
		protected.POST("/update-address", userHandler.UpdateAddress)
		protected.POST("/delete-address", userHandler.DeleteAddress)
		protected.POST("/reset-password", userHandler.ResetPassword)
		protected.POST("/write-review", userHandler.WriteReview)
		protected.POST("/update-review", userHandler.UpdateReview)
		protected.POST("/delete-review", userHandler.DeleteReview)
		protected.POST("/add-to-cart", userHandler.AddToCart)
		protected.POST("/remove-cart", userHandler.RemoveFromCart)
		protected.POST("/add-to-wishlist", userHandler.AddToWishlist)
		protected.POST("/remove-from-wishlist", userHandler.RemoveFromWishlist)
	}

	admin := router.Group("/admin")
	{
		admin.POST("/admin-signup", adminHandler.Signup)
		admin.POST("/admin-login", adminHandler.Login)
		admin.POST("/admin-logout", authenticate, adminHandler.Logout)
		admin.POST("/reset-password", authenticate, adminOnly, adminHandler.ResetPassword)
		admin.POST("/upload-banner", authenticate, adminOnly, adminHandler.UploadBanner)
		admin.POST("/remove-banner", authenticate, adminOnly, adminHandler.RemoveBanner)
	}

	product := router.Group("/product")
	{
		product.GET("/all-product", productHandler.All)
		product.POST("/add-product", authenticate, adminOnly, productHandler.Add)
		product.POST("/add-stock", authenticate, adminOnly, productHandler.AddStock)
		product.POST("/update-product", authenticate, adminOnly, productHandler.Update)
		product.POST("/delete-product", authenticate, adminOnly, productHandler.Delete)
	}

	return router
}
