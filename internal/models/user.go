package models

import "gorm.io/gorm"

// User represents a registered account.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username     string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password     string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Bio          string `json:"bio" gorm:"type:text" validate:"omitempty,max=500"`
	Location     string `json:"location" gorm:"type:varchar(255)"`
	ImgURL       string `json:"img_url" gorm:"type:text" validate:"omitempty,url"`
	HeaderImgURL string `json:"header_img_url" gorm:"type:text" validate:"omitempty,url"`
	Active       bool   `json:"active" gorm:"default:true"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
