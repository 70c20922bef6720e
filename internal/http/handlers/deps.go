package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"rentdesk/internal/http/middleware"
	"rentdesk/internal/repositories"
	"rentdesk/internal/services"
)

// Config wires the handler package once at startup.
type Config struct {
	Redis        *redis.Client
	Routes       services.RouteEstimator // nil disables route mapping on quotes
	FreeKmPerDay int64
	JWTSecret    []byte
}

var cfg Config

// Configure must be called before the router mounts the handlers.
func Configure(c Config) {
	cfg = c
}

// JWTSecret exposes the signing key to the router for auth middleware. The
// key always comes from Configure; config.LoadEnv owns the default.
func JWTSecret() []byte {
	return cfg.JWTSecret
}

func tariffService(c *gin.Context) services.TariffService {
	return services.TariffService{
		VehicleRepo: repositories.VehicleRepository{},
		DriverRepo:  repositories.DriverRepository{},
		Cache:       cfg.Redis,
		RequestID:   middleware.GetRequestID(c),
	}
}

func tripService(c *gin.Context) services.TripService {
	return services.TripService{
		TripRepo:     repositories.TripRepository{},
		PaymentRepo:  repositories.PaymentRepository{},
		Tariffs:      tariffService(c),
		FreeKmPerDay: cfg.FreeKmPerDay,
		RequestID:    middleware.GetRequestID(c),
	}
}

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		TripRepo:     repositories.TripRepository{},
		PaymentRepo:  repositories.PaymentRepository{},
		Tariffs:      tariffService(c),
		FreeKmPerDay: cfg.FreeKmPerDay,
		RequestID:    middleware.GetRequestID(c),
	}
}

func quoteService(c *gin.Context) services.QuoteService {
	return services.QuoteService{
		Tariffs:      tariffService(c),
		Routes:       cfg.Routes,
		FreeKmPerDay: cfg.FreeKmPerDay,
		RequestID:    middleware.GetRequestID(c),
	}
}

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Trips:        tripService(c),
		CustomerRepo: repositories.CustomerRepository{},
		VehicleRepo:  repositories.VehicleRepository{},
		RequestID:    middleware.GetRequestID(c),
	}
}

func reportsService() services.ReportsService {
	return services.ReportsService{ReportRepo: repositories.ReportRepository{}}
}
