package models

import (
	"time"

	"github.com/lib/pq"
)

// HomeProfile is a user's registered residence and the root of ownership.
type HomeProfile struct {
	ID               string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Address          string         `gorm:"not null" json:"address"`
	ConstructionYear int            `gorm:"not null" json:"construction_year"`
	Images           pq.StringArray `gorm:"type:text[]" json:"images"`
	UserID           string         `gorm:"not null;index" json:"user_id"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (HomeProfile) TableName() string { return "home_profiles" }

// HomeProfileCreate is the body of POST /home_profiles/.
type HomeProfileCreate struct {
	Address          string   `json:"address" binding:"required"`
	ConstructionYear int      `json:"construction_year" binding:"required,gt=0"`
	Images           []string `json:"images"`
}

// Row returns the columns to insert for a profile owned by userID.
func (p HomeProfileCreate) Row(userID string) map[string]any {
	row := map[string]any{
		"address":           p.Address,
		"construction_year": p.ConstructionYear,
		"user_id":           userID,
		"images":            nil,
	}
	if p.Images != nil {
		row["images"] = p.Images
	}
	return row
}

// HomeProfileUpdate is the body of PUT /home_profiles/:id. Nil fields are
// left untouched.
type HomeProfileUpdate struct {
	Address          *string  `json:"address" binding:"omitempty,min=1"`
	ConstructionYear *int     `json:"construction_year" binding:"omitempty,gt=0"`
	Images           []string `json:"images"`
}

// Patch returns only the provided columns.
func (p HomeProfileUpdate) Patch() map[string]any {
	patch := map[string]any{}
	if p.Address != nil {
		patch["address"] = *p.Address
	}
	if p.ConstructionYear != nil {
		patch["construction_year"] = *p.ConstructionYear
	}
	if p.Images != nil {
		patch["images"] = p.Images
	}
	return patch
}
