package models

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string    `json:"name" gorm:"size:200;not null"`
	Slug               string    `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	TaxID              string    `json:"tax_id" gorm:"size:50"`
	ContactEmail       string    `json:"contact_email" gorm:"size:255;not null"`
	ContactPhone       string    `json:"contact_phone" gorm:"size:20"`
	ContactAddress     string    `json:"contact_address" gorm:"type:text"`
	PlanCode           string    `json:"plan_code" gorm:"size:50;not null"`
	Status             string    `json:"status" gorm:"default:'ACTIVE'"`
	PaymentCustomerRef string    `json:"payment_customer_ref" gorm:"size:100;index"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
