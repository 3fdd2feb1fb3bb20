package models

import (
	"time"

	"github.com/google/uuid"
)

// Role groups permissions. The workflow recognizes admin, kasi, kacdk and
// petugas; additional roles can be added without code changes as long as
// they only carry permissions.
type Role struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string       `gorm:"not null;size:50;uniqueIndex" json:"name"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Permission is a flat capability string, e.g. "kayu.approve".
type Permission struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
