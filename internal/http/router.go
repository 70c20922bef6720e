package api

import (
	"log"
	stdhttp "net/http"

	intconfig "rentdesk/internal/config"
	h "rentdesk/internal/http/handlers"
	"rentdesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		authed := api.Group("")
		authed.Use(middleware.Auth(h.JWTSecret()))

		// Users (admin surface)
		users := authed.Group("/users")
		users.Use(middleware.RequireRoles("owner", "admin"))
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)

		// Trips
		trips := authed.Group("/trips")
		trips.POST("/quote", h.QuoteTrip)
		trips.GET("", h.GetTrips)
		trips.POST("", h.CreateTrip)
		trips.GET("/:id", h.GetTrip)

		trips.PUT("/:id/start", h.StartTrip)
		trips.PUT("/:id/end", h.EndTrip)
		trips.PUT("/:id/complete", h.CompleteTrip)
		trips.PUT("/:id/cancel", h.CancelTrip)
		trips.PUT("/:id/dates", h.AlterTripDates)
		trips.PUT("/:id/meters", h.AlterTripMeters)

		trips.POST("/:id/damages", h.AddTripDamage)
		trips.POST("/:id/other-costs", h.AddTripOtherCost)
		trips.DELETE("/:id/other-costs/:costId", h.RemoveTripOtherCost)

		trips.GET("/:id/payments", h.GetPayments)
		trips.POST("/:id/payments", h.AddPayment)
		trips.DELETE("/:id/payments/:paymentId", h.RemovePayment)

		trips.GET("/:id/invoice", h.GetTripInvoice)

		// Directory
		vehicles := authed.Group("/vehicles")
		vehicles.GET("", h.GetVehicles)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.POST("", h.CreateVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)

		drivers := authed.Group("/drivers")
		drivers.GET("", h.GetDrivers)
		drivers.GET("/:id", h.GetDriver)
		drivers.POST("", h.CreateDriver)
		drivers.PUT("/:id", h.UpdateDriver)
		drivers.DELETE("/:id", h.DeleteDriver)

		customers := authed.Group("/customers")
		customers.GET("", h.GetCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.POST("", h.CreateCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)

		// Reports
		reports := authed.Group("/reports")
		reports.GET("/finance", h.GetFinanceReport)
	}

	return r
}
