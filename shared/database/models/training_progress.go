package models

import (
	"time"

	"github.com/google/uuid"
)

// TrainingStepsTotal is the fixed length of the onboarding checklist.
const TrainingStepsTotal = 8

// TrainingProgress tracks the delegate's onboarding checklist. Seeded empty
// at provisioning time and advanced later by the training flows.
type TrainingProgress struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	StepsCompleted int       `json:"steps_completed" gorm:"not null;default:0"`
	StepsTotal     int       `json:"steps_total" gorm:"not null"`
	Completed      bool      `json:"completed" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for TrainingProgress
func (TrainingProgress) TableName() string {
	return "training_progress"
}
