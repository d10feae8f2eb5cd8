package dto

import "github.com/shopspring/decimal"

type CityRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"omitempty,url"`
	IsActive    *bool  `json:"isActive"`
}

type RoomTypeRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	Description   string          `json:"description"`
	PricePerNight decimal.Decimal `json:"pricePerNight" binding:"required"`
	Capacity      int             `json:"capacity" binding:"required,gte=1"`
	Image         string          `json:"image" binding:"omitempty,url"`
}

type RoomRequest struct {
	RoomNumber  string `json:"roomNumber" binding:"required,max=10"`
	CityID      uint   `json:"cityId" binding:"required"`
	RoomTypeID  uint   `json:"roomTypeId" binding:"required"`
	IsAvailable *bool  `json:"isAvailable"`
	ViewType    string `json:"viewType" binding:"max=50"`
	Image       string `json:"image" binding:"omitempty,url"`
}

type RoomAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

// UploadResponse carries the public URL of a stored file
type UploadResponse struct {
	URL string `json:"url"`
}
