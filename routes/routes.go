package routes

import (
	"waterzone/handlers"
	"waterzone/middleware"
	"waterzone/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/signin", handlers.SignIn)
		public.GET("/state-machine", handlers.GetStateMachineInfo)

		// WebSocket stream authenticates itself via token query param
		public.GET("/stream", handlers.Stream)
	}

	// ── Authenticated routes (any role) ────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/me", handlers.GetMe)
		auth.GET("/orders/:id", handlers.GetOrderDetail)

		// Wallet is per-user, role-agnostic
		auth.POST("/wallet", handlers.CreateWallet)
		auth.GET("/wallet", handlers.GetWallet)
		auth.GET("/wallet/transactions", handlers.ListWalletTransactions)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", handlers.CreateOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.PUT("/orders/:id/assign", handlers.AssignDriver)
		customer.PUT("/orders/:id/cancel", handlers.CancelOrder)

		customer.POST("/addresses", handlers.CreateAddress)
		customer.GET("/addresses", handlers.ListAddresses)
		customer.PUT("/addresses/:id/default", handlers.SetDefaultAddress)
		customer.DELETE("/addresses/:id", handlers.DeleteAddress)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/api/driver")
	driver.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDriver))
	{
		driver.POST("/register", handlers.RegisterDriver)
		driver.GET("/me", handlers.GetMyDriver)
		driver.PUT("/presence", handlers.UpdatePresence)
		driver.PUT("/location", handlers.UpdateLocation)

		driver.GET("/orders", handlers.GetMyDeliveries)
		driver.PUT("/orders/:id/accept", handlers.AcceptOrder)
		driver.PUT("/orders/:id/enroute", handlers.SetEnroute)
		driver.PUT("/orders/:id/deliver", handlers.MarkDelivered)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/drivers", handlers.AdminGetAllDrivers)
		admin.PUT("/drivers/:id/verification", handlers.SetDriverVerification)
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/assign", handlers.AssignDriver)
		admin.PUT("/orders/:id/cancel", handlers.CancelOrder)
		admin.PUT("/orders/:id/status", handlers.AdminForceOrderStatus)
	}
}
