package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name       string  `json:"name"`
	Email      string  `gorm:"unique" json:"email"`
	Password   string  `json:"-"`
	AgeYears   *int    `json:"age_years,omitempty"`
	SexAtBirth *string `json:"sex_at_birth,omitempty"`
}
