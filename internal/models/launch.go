package models

import "gorm.io/gorm"

// Launch is a denormalized snapshot of one space-launch event, captured from the
// external data source the first time a user collects it. It is not kept in sync
// with the source afterwards.
type Launch struct {
	ID               string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name             string `json:"name" gorm:"uniqueIndex;type:varchar(255)" validate:"required"`
	Date             string `json:"date" gorm:"type:varchar(64)"`
	Status           string `json:"status" gorm:"type:varchar(100)"`
	Description      string `json:"description" gorm:"type:text"`
	ImageURL         string `json:"image_url" gorm:"type:text"`
	Organization     string `json:"organization" gorm:"type:varchar(255)"`
	OrganizationType string `json:"organization_type" gorm:"type:varchar(100)"`
	Location         string `json:"location" gorm:"type:varchar(255)"`
	Pad              string `json:"pad" gorm:"type:varchar(255)"`
	Rocket           string `json:"rocket" gorm:"type:varchar(255)"`
	Mission          string `json:"mission" gorm:"type:varchar(255)"`
	gorm.Model
}
