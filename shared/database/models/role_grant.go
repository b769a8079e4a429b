package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleDelegateAdmin is the role granted to the delegate account at provisioning.
const RoleDelegateAdmin = "delegate_admin"

// RoleGrant links a user to an organization with a role label. Grants are
// append-only: a role change is recorded by inserting a superseding grant,
// never by mutating an existing row.
type RoleGrant struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	Role           string    `json:"role" gorm:"size:100;not null"`
	GrantedAt      time.Time `json:"granted_at" gorm:"autoCreateTime"`

	// Relations
	User         User         `json:"user" gorm:"foreignKey:UserID"`
	Organization Organization `json:"organization" gorm:"foreignKey:OrganizationID"`
}

// TableName returns the table name for RoleGrant
func (RoleGrant) TableName() string {
	return "role_grants"
}
