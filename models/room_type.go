package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomType is a priced, capacity-bounded category of room
type RoomType struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	PricePerNight decimal.Decimal `json:"pricePerNight" gorm:"type:decimal(10,2);not null"`
	Capacity      int             `json:"capacity" gorm:"not null"`
	Image         string          `json:"image"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}
