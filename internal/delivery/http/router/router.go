// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"diner/config"
	"diner/internal/delivery/http/middleware"
	"diner/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	MenuHandler    *handler.MenuHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	ChatHandler    *handler.ChatHandler
	TestHandler    *handler.TestHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	menuHandler    *handler.MenuHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	chatHandler    *handler.ChatHandler
	testHandler    *handler.TestHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		menuHandler:    params.MenuHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		chatHandler:    params.ChatHandler,
		testHandler:    params.TestHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate) // Apply JWT authentication middleware
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
	}

	// Menu catalog, public
	menuGroup := e.Group("/menu")
	{
		menuGroup.GET("", r.menuHandler.ListMenu)
		menuGroup.GET("/:id", r.menuHandler.GetItem)
	}

	// Session-scoped routes: the conversation and its cart. Guests are
	// allowed; a signed-in user binds the session on first touch.
	sessionGroup := e.Group("/sessions/:sessionId")
	sessionGroup.Use(r.authMiddleware.OptionalAuthenticate)
	{
		sessionGroup.POST("/turns", r.chatHandler.StreamTurn)
		sessionGroup.GET("/messages", r.chatHandler.GetTranscript)
		sessionGroup.DELETE("", r.chatHandler.DeleteConversation)

		cartGroup := sessionGroup.Group("/cart")
		{
			cartGroup.GET("", r.cartHandler.GetCart)
			cartGroup.POST("/items", r.cartHandler.AddItem)
			cartGroup.PATCH("/lines/:lineId", r.cartHandler.UpdateLine)
			cartGroup.DELETE("/lines/:lineId", r.cartHandler.RemoveLine)
			cartGroup.DELETE("", r.cartHandler.ClearCart)
		}

		// Checkout needs a real account.
		sessionGroup.POST("/checkout", r.cartHandler.Checkout, r.authMiddleware.Authenticate)
	}

	// Conversation sidebar for signed-in users
	conversationsGroup := e.Group("/conversations")
	conversationsGroup.Use(r.authMiddleware.Authenticate)
	{
		conversationsGroup.GET("", r.chatHandler.ListConversations)
	}

	// Order history routes that require authentication
	ordersGroup := e.Group("/orders")
	ordersGroup.Use(r.authMiddleware.Authenticate)
	{
		ordersGroup.GET("", r.orderHandler.ListOrders)
		ordersGroup.GET("/:id", r.orderHandler.GetOrder)
		ordersGroup.GET("/:id/qrcode", r.orderHandler.PickupQR)
	}
}

// RegisterTestRoutes sets up endpoints used to validate middleware wiring.
// Only mounted when test routes are enabled in configuration.
func (r *router) RegisterTestRoutes(e *echo.Echo) {
	if r.config.TestRoutes == nil || !r.config.TestRoutes.Enabled {
		return
	}

	testGroup := e.Group("/test")
	{
		testGroup.GET("/public", r.testHandler.TestPublicEndpoint)
		testGroup.GET("/auth", r.testHandler.TestAuthMiddleware, r.authMiddleware.Authenticate)
	}
}
