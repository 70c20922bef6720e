package models

// Vehicle is a directory record; tariff columns live on the same row and are
// projected into VehicleTariff for costing.
type Vehicle struct {
	ID          int64  `json:"id"`
	VehicleCode string `json:"vehicleCode"`
	PlateNumber string `json:"plateNumber"`
	VehicleType string `json:"vehicleType,omitempty"`
	Color       string `json:"color,omitempty"`
	Seats       *int   `json:"seats,omitempty"`
	OwnerName   string `json:"ownerName,omitempty"`

	Tariff VehicleTariff `json:"tariff"`
}

// Driver is a directory record with its day-rate tariff.
type Driver struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
	Status        string `json:"status,omitempty"`

	Tariff DriverTariff `json:"tariff"`
}

// Customer is a directory record referenced by trips.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	NIC     string `json:"nic,omitempty"`
}
