package models

import (
	"time"
)

// ServiceRecord is a logged maintenance or repair event for an appliance.
type ServiceRecord struct {
	ID              string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ApplianceID     string    `gorm:"type:uuid;not null;index" json:"appliance_id"`
	Date            time.Time `gorm:"type:date;not null" json:"date"`
	ServiceType     string    `gorm:"not null" json:"service_type"`
	ProviderName    string    `gorm:"not null" json:"provider_name"`
	ProviderContact *string   `json:"provider_contact"`
	Cost            float64   `gorm:"type:numeric(12,2);not null;check:cost >= 0" json:"cost"`
	Notes           *string   `json:"notes"`
	InvoiceDocument *string   `json:"invoice_document"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ServiceRecord) TableName() string { return "service_records" }

type ServiceRecordCreate struct {
	ApplianceID     string   `json:"appliance_id" binding:"required"`
	Date            *Date    `json:"date" binding:"required"`
	ServiceType     string   `json:"service_type" binding:"required"`
	ProviderName    string   `json:"provider_name" binding:"required"`
	ProviderContact *string  `json:"provider_contact"`
	Cost            *float64 `json:"cost" binding:"required,gte=0"`
	Notes           *string  `json:"notes"`
	InvoiceDocument *string  `json:"invoice_document"`
}

func (s ServiceRecordCreate) Row() map[string]any {
	return map[string]any{
		"appliance_id":     s.ApplianceID,
		"date":             s.Date.String(),
		"service_type":     s.ServiceType,
		"provider_name":    s.ProviderName,
		"provider_contact": optionalString(s.ProviderContact),
		"cost":             *s.Cost,
		"notes":            optionalString(s.Notes),
		"invoice_document": optionalString(s.InvoiceDocument),
	}
}

// ServiceRecordUpdate is the partial body of PUT /service_records/:id.
// The appliance a record belongs to cannot be changed.
type ServiceRecordUpdate struct {
	Date            *Date    `json:"date"`
	ServiceType     *string  `json:"service_type" binding:"omitempty,min=1"`
	ProviderName    *string  `json:"provider_name" binding:"omitempty,min=1"`
	ProviderContact *string  `json:"provider_contact"`
	Cost            *float64 `json:"cost" binding:"omitempty,gte=0"`
	Notes           *string  `json:"notes"`
	InvoiceDocument *string  `json:"invoice_document"`
}

func (s ServiceRecordUpdate) Patch() map[string]any {
	patch := map[string]any{}
	if s.Date != nil {
		patch["date"] = s.Date.String()
	}
	if s.ServiceType != nil {
		patch["service_type"] = *s.ServiceType
	}
	if s.ProviderName != nil {
		patch["provider_name"] = *s.ProviderName
	}
	if s.ProviderContact != nil {
		patch["provider_contact"] = *s.ProviderContact
	}
	if s.Cost != nil {
		patch["cost"] = *s.Cost
	}
	if s.Notes != nil {
		patch["notes"] = *s.Notes
	}
	if s.InvoiceDocument != nil {
		patch["invoice_document"] = *s.InvoiceDocument
	}
	return patch
}
