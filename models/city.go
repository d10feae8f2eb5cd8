package models

import "time"

type City struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Image       string    `json:"image"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	Rooms       []Room    `json:"rooms,omitempty" gorm:"foreignKey:CityID"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
