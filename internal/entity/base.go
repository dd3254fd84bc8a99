package entity

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the fields every aggregate shares. Embedded by value in
// Lead and Contact; CreatedAt/UpdatedAt/Version are owned by the repository
// layer (set on insert, bumped on update).
type BaseEntity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
	Active    bool      `json:"active"`
}

func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:     uuid.New().String(),
		Active: true,
	}
}

// Deactivate is the soft delete: the record stays in the store but drops out
// of the default listings.
func (b *BaseEntity) Deactivate() {
	b.Active = false
}

func (b *BaseEntity) Activate() {
	b.Active = true
}
