package models

import (
	"time"

	"gorm.io/gorm"
)

// Collection is a user-owned named group of launch references. Names are unique
// per owner, not globally.
type Collection struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"uniqueIndex:idx_owner_name;type:varchar(100)" validate:"required,min=1,max=100"`
	Description string `json:"description" gorm:"type:text" validate:"omitempty,max=500"`
	ImageURL    string `json:"image_url" gorm:"type:text" validate:"omitempty,url"`
	CreatedBy   string `json:"created_by" gorm:"uniqueIndex:idx_owner_name;type:varchar(36);not null"`
	Owner       *User  `json:"-" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
	gorm.Model
}

// LaunchCollection links one Collection to one Launch. The composite unique index
// is the real guard against duplicate pairs; services pre-check it to produce a
// friendlier error. No gorm.Model here: a soft-deleted pair would keep occupying
// the unique index and block re-collecting.
type LaunchCollection struct {
	ID           string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CollectionID string      `json:"collection_id" gorm:"uniqueIndex:idx_collection_launch;type:varchar(36);not null"`
	LaunchID     string      `json:"launch_id" gorm:"uniqueIndex:idx_collection_launch;type:varchar(36);not null"`
	Collection   *Collection `json:"-" gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
	Launch       *Launch     `json:"-" gorm:"foreignKey:LaunchID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time   `json:"created_at"`
}
