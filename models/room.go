package models

import "time"

// Room is a physical unit. Price and capacity come from its RoomType.
// IsAvailable marks the room as in service; bookings never change it.
type Room struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RoomNumber  string    `json:"roomNumber" gorm:"size:10;uniqueIndex;not null"`
	CityID      uint      `json:"cityId" gorm:"index;not null"`
	City        City      `json:"city" gorm:"foreignKey:CityID"`
	RoomTypeID  uint      `json:"roomTypeId" gorm:"index;not null"`
	RoomType    RoomType  `json:"roomType" gorm:"foreignKey:RoomTypeID"`
	IsAvailable bool      `json:"isAvailable" gorm:"default:true;index"`
	ViewType    string    `json:"viewType" gorm:"size:50"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
