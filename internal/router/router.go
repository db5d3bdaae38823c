package router

import (
	"github.com/kalakriti-next/internal/config"
	publichandlers "github.com/kalakriti-next/internal/http/handlers/public"
	"github.com/kalakriti-next/internal/logger"
	"github.com/kalakriti-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 公开目录接口
		public := apiV1.Group("/public")
		{
			public.GET("/artworks", publicHandler.ListArtworks)
			public.GET("/artworks/:slug", publicHandler.GetArtwork)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", publicHandler.UserLogin)
		}

		// 购物车接口（访客凭 X-Guest-Token，登录用户凭 JWT）
		cart := apiV1.Group("/cart", OptionalUserJWTMiddleware(c.UserAuthService))
		{
			cart.GET("", publicHandler.GetCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.PUT("/items", publicHandler.UpdateCartItem)
			cart.DELETE("/items/:artwork_id", publicHandler.RemoveCartItem)
			cart.DELETE("", publicHandler.ClearCart)
		}

		// 结算与订单接口（需登录）
		user := apiV1.Group("/user", UserJWTAuthMiddleware(c.UserAuthService))
		{
			user.GET("/profile", publicHandler.UserProfile)
			user.POST("/logout", publicHandler.UserLogout)

			user.GET("/checkout", publicHandler.GetCheckout)
			user.POST("/checkout", publicHandler.BeginCheckout)
			user.POST("/checkout/address", publicHandler.SubmitAddress)
			user.POST("/checkout/proceed", publicHandler.ProceedToPayment)
			user.POST("/checkout/back", publicHandler.CheckoutBack)
			user.POST("/checkout/method", publicHandler.SelectPaymentMethod)
			user.POST("/checkout/pay", publicHandler.Pay)

			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:order_no", publicHandler.GetOrder)
			user.POST("/orders/:order_no/status", publicHandler.AdvanceOrderStatus)
		}
	}

	return r
}
