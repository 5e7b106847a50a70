package models

import "gorm.io/gorm"

// Department groups courses and teachers under one faculty
type Department struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}
