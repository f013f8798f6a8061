package models

import (
	"time"
)

// MaintenanceReminder is a scheduled, possibly recurring, task for an
// appliance. RecurrencePattern is free-form ("6M", "1Y") and only meaningful
// when Recurring is set.
type MaintenanceReminder struct {
	ID                string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ApplianceID       string    `gorm:"type:uuid;not null;index" json:"appliance_id"`
	Title             string    `gorm:"not null" json:"title"`
	Description       *string   `json:"description"`
	DueDate           time.Time `gorm:"type:date;not null" json:"due_date"`
	Recurring         bool      `gorm:"not null;default:false" json:"recurring"`
	RecurrencePattern *string   `json:"recurrence_pattern"`
	Completed         bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt         time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (MaintenanceReminder) TableName() string { return "maintenance_reminders" }

type ReminderCreate struct {
	ApplianceID       string  `json:"appliance_id" binding:"required"`
	Title             string  `json:"title" binding:"required"`
	Description       *string `json:"description"`
	DueDate           *Date   `json:"due_date" binding:"required"`
	Recurring         bool    `json:"recurring"`
	RecurrencePattern *string `json:"recurrence_pattern"`
	Completed         bool    `json:"completed"`
}

func (r ReminderCreate) Row() map[string]any {
	return map[string]any{
		"appliance_id":       r.ApplianceID,
		"title":              r.Title,
		"description":        optionalString(r.Description),
		"due_date":           r.DueDate.String(),
		"recurring":          r.Recurring,
		"recurrence_pattern": optionalString(r.RecurrencePattern),
		"completed":          r.Completed,
	}
}

type ReminderUpdate struct {
	Title             *string `json:"title" binding:"omitempty,min=1"`
	Description       *string `json:"description"`
	DueDate           *Date   `json:"due_date"`
	Recurring         *bool   `json:"recurring"`
	RecurrencePattern *string `json:"recurrence_pattern"`
	Completed         *bool   `json:"completed"`
}

func (r ReminderUpdate) Patch() map[string]any {
	patch := map[string]any{}
	if r.Title != nil {
		patch["title"] = *r.Title
	}
	if r.Description != nil {
		patch["description"] = *r.Description
	}
	if r.DueDate != nil {
		patch["due_date"] = r.DueDate.String()
	}
	if r.Recurring != nil {
		patch["recurring"] = *r.Recurring
	}
	if r.RecurrencePattern != nil {
		patch["recurrence_pattern"] = *r.RecurrencePattern
	}
	if r.Completed != nil {
		patch["completed"] = *r.Completed
	}
	return patch
}
