package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an authentication principal. Delegate accounts are created by the
// provisioning pipeline with a temporary credential that must be rotated on
// first login.
type User struct {
	ID                 uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email              string     `json:"email" gorm:"uniqueIndex;not null"`
	Password           string     `json:"-" gorm:"not null"`
	FirstName          string     `json:"first_name" gorm:"size:100"`
	LastName           string     `json:"last_name" gorm:"size:100"`
	Status             string     `json:"status" gorm:"default:'ACTIVE'"`
	MustRotatePassword bool       `json:"must_rotate_password" gorm:"default:false"`
	OrganizationID     *uuid.UUID `json:"organization_id" gorm:"type:uuid"`
	PlanCode           string     `json:"plan_code" gorm:"size:50"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	// Relations
	Organization Organization `json:"organization" gorm:"foreignKey:OrganizationID"`
}
