package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage string    `gorm:"default:''"`
	Name         string    `gorm:"default:''"`
	Email        string    `gorm:"unique;not null"`
	Role         string    `gorm:"default:'STUDENT'"` // STUDENT, TEACHER, ADMIN
	Bio          string    `gorm:"default:''"`
	DepartmentID *uint     `gorm:"index"`
	Coins        uint      `gorm:"default:0"` // reward balance; mutated only via relative SQL updates, never read-modify-write
	LastLogin    time.Time `gorm:"default:NULL"`
	IsDeleted    bool      `gorm:"default:false"`
}
