package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"
	"rentdesk/internal/repositories"
	"rentdesk/internal/utils"
)

// TariffCacheTTL bounds staleness of cached tariffs; rate edits propagate
// within a minute.
const TariffCacheTTL = 60 * time.Second

const (
	vehicleTariffPrefix = "tariff:vehicle:"
	driverTariffPrefix  = "tariff:driver:"
)

// TariffService resolves the pricing snapshot costing needs. It is a
// read-through cache over the vehicle/driver directory: redis first (when
// configured), directory on miss, cache fill on the way out. It computes
// nothing itself.
type TariffService struct {
	VehicleRepo repositories.VehicleRepository
	DriverRepo  repositories.DriverRepository
	Cache       *redis.Client // nil disables caching
	RequestID   string

	// test seams
	FetchVehicle func(int64) (models.Vehicle, error)
	FetchDriver  func(int64) (models.Driver, error)
}

// Resolve returns the tariff snapshot for a vehicle/driver pair. A missing
// vehicle, or a missing driver when one is required, is a lookup failure the
// caller must see: costing cannot proceed without it.
func (s TariffService) Resolve(ctx context.Context, vehicleID int64, driverID *int64, driverRequired bool) (models.TariffSnapshot, error) {
	var snap models.TariffSnapshot

	vt, err := s.vehicleTariff(ctx, vehicleID)
	if err != nil {
		return snap, err
	}
	snap.Vehicle = vt

	if driverRequired {
		if driverID == nil {
			return snap, domain.NotFoundError{Resource: "driver"}
		}
		dt, err := s.driverTariff(ctx, *driverID)
		if err != nil {
			return snap, err
		}
		snap.Driver = &dt
	}
	return snap, nil
}

func (s TariffService) vehicleTariff(ctx context.Context, id int64) (models.VehicleTariff, error) {
	key := fmt.Sprintf("%s%d", vehicleTariffPrefix, id)

	var cached models.VehicleTariff
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	v, err := s.fetchVehicle(id)
	if err != nil {
		return models.VehicleTariff{}, err
	}

	s.cacheSet(ctx, key, v.Tariff)
	return v.Tariff, nil
}

func (s TariffService) driverTariff(ctx context.Context, id int64) (models.DriverTariff, error) {
	key := fmt.Sprintf("%s%d", driverTariffPrefix, id)

	var cached models.DriverTariff
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	d, err := s.fetchDriver(id)
	if err != nil {
		return models.DriverTariff{}, err
	}

	s.cacheSet(ctx, key, d.Tariff)
	return d.Tariff, nil
}

func (s TariffService) fetchVehicle(id int64) (models.Vehicle, error) {
	if s.FetchVehicle != nil {
		return s.FetchVehicle(id)
	}
	return s.VehicleRepo.GetByID(id)
}

func (s TariffService) fetchDriver(id int64) (models.Driver, error) {
	if s.FetchDriver != nil {
		return s.FetchDriver(id)
	}
	return s.DriverRepo.GetByID(id)
}

func (s TariffService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.Cache == nil {
		return false
	}
	data, err := s.Cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.LogEvent(s.RequestID, "tariff", "cache_get", "redis error: "+err.Error())
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false
	}
	return true
}

func (s TariffService) cacheSet(ctx context.Context, key string, v any) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, data, TariffCacheTTL).Err(); err != nil {
		utils.LogEvent(s.RequestID, "tariff", "cache_set", "redis error: "+err.Error())
	}
}

// Invalidate evicts cached tariffs after a directory edit.
func (s TariffService) Invalidate(ctx context.Context, vehicleID, driverID int64) {
	if s.Cache == nil {
		return
	}
	keys := []string{}
	if vehicleID > 0 {
		keys = append(keys, fmt.Sprintf("%s%d", vehicleTariffPrefix, vehicleID))
	}
	if driverID > 0 {
		keys = append(keys, fmt.Sprintf("%s%d", driverTariffPrefix, driverID))
	}
	if len(keys) > 0 {
		_ = s.Cache.Del(ctx, keys...).Err()
	}
}
