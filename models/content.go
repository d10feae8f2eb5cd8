package models

import "time"

type FAQ struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Question string `json:"question" gorm:"size:255;not null"`
	Answer   string `json:"answer" gorm:"type:text"`
	Category string `json:"category" gorm:"size:20;index"`
	Order    int    `json:"order" gorm:"column:sort_order;default:0"`
	IsActive bool   `json:"isActive" gorm:"default:true"`
}

type ContactMessage struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:100;not null"`
	Email         string    `json:"email" gorm:"size:254;not null"`
	Subject       string    `json:"subject" gorm:"size:200"`
	Message       string    `json:"message" gorm:"type:text"`
	ContactMethod string    `json:"contactMethod" gorm:"size:10;default:email"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
