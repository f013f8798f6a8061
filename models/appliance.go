package models

import (
	"time"
)

// Appliance is a tracked piece of equipment that belongs to a home profile.
type Appliance struct {
	ID                     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                   string     `gorm:"not null" json:"name"`
	Category               string     `gorm:"not null" json:"category"`
	PurchaseDate           time.Time  `gorm:"type:date;not null" json:"purchase_date"`
	WarrantyExpirationDate *time.Time `gorm:"type:date" json:"warranty_expiration_date"`
	WarrantyDocument       *string    `json:"warranty_document"`
	Notes                  *string    `json:"notes"`
	HomeProfileID          string     `gorm:"type:uuid;not null;index" json:"home_profile_id"`
	CreatedAt              time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (Appliance) TableName() string { return "appliances" }

type ApplianceCreate struct {
	Name                   string  `json:"name" binding:"required"`
	Category               string  `json:"category" binding:"required"`
	PurchaseDate           *Date   `json:"purchase_date" binding:"required"`
	WarrantyExpirationDate *Date   `json:"warranty_expiration_date"`
	WarrantyDocument       *string `json:"warranty_document"`
	Notes                  *string `json:"notes"`
	HomeProfileID          string  `json:"home_profile_id" binding:"required"`
}

func (a ApplianceCreate) Row() map[string]any {
	return map[string]any{
		"name":                     a.Name,
		"category":                 a.Category,
		"purchase_date":            a.PurchaseDate.String(),
		"warranty_expiration_date": optionalDate(a.WarrantyExpirationDate),
		"warranty_document":        optionalString(a.WarrantyDocument),
		"notes":                    optionalString(a.Notes),
		"home_profile_id":          a.HomeProfileID,
	}
}

// ApplianceUpdate is the partial body of PUT /appliances/:id. A non-nil
// HomeProfileID moves the appliance to another profile.
type ApplianceUpdate struct {
	Name                   *string `json:"name" binding:"omitempty,min=1"`
	Category               *string `json:"category" binding:"omitempty,min=1"`
	PurchaseDate           *Date   `json:"purchase_date"`
	WarrantyExpirationDate *Date   `json:"warranty_expiration_date"`
	WarrantyDocument       *string `json:"warranty_document"`
	Notes                  *string `json:"notes"`
	HomeProfileID          *string `json:"home_profile_id" binding:"omitempty,min=1"`
}

func (a ApplianceUpdate) Patch() map[string]any {
	patch := map[string]any{}
	if a.Name != nil {
		patch["name"] = *a.Name
	}
	if a.Category != nil {
		patch["category"] = *a.Category
	}
	if a.PurchaseDate != nil {
		patch["purchase_date"] = a.PurchaseDate.String()
	}
	if a.WarrantyExpirationDate != nil {
		patch["warranty_expiration_date"] = a.WarrantyExpirationDate.String()
	}
	if a.WarrantyDocument != nil {
		patch["warranty_document"] = *a.WarrantyDocument
	}
	if a.Notes != nil {
		patch["notes"] = *a.Notes
	}
	if a.HomeProfileID != nil {
		patch["home_profile_id"] = *a.HomeProfileID
	}
	return patch
}
