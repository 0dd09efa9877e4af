package models

import (
	"fmt"
	"strconv"
	"time"
)

type EntityType string

const (
	EntityTypeDonor     EntityType = "donor"
	EntityTypeRecipient EntityType = "recipient"
)

// CustomIDPrefix returns the identifier prefix for the entity type ("D" or "R").
func (t EntityType) CustomIDPrefix() string {
	if t == EntityTypeRecipient {
		return "R"
	}
	return "D"
}

// Display returns the human-readable form of the type.
func (t EntityType) Display() string {
	if t == EntityTypeRecipient {
		return "Recipient"
	}
	return "Donor"
}

func (t EntityType) Valid() bool {
	return t == EntityTypeDonor || t == EntityTypeRecipient
}

type Entity struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	CustomID  string     `json:"custom_id" gorm:"size:10;uniqueIndex;not null"`
	Name      string     `json:"name" gorm:"not null"`
	Type      EntityType `json:"type" gorm:"size:10;default:'donor'"`
	Location  string     `json:"location"`
	IsDeleted bool       `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Label is the display form used by the autocomplete endpoint.
func (e *Entity) Label() string {
	return fmt.Sprintf("%s · %s · %s", e.CustomID, e.Name, e.Type.Display())
}

// FormatCustomID builds the zero-padded identifier for a type and sequence number.
func FormatCustomID(t EntityType, seq int) string {
	return fmt.Sprintf("%s%04d", t.CustomIDPrefix(), seq)
}

// ParseCustomIDSequence extracts the numeric sequence from a custom id such as
// "D0012". Returns 0 when the id is malformed.
func ParseCustomIDSequence(customID string) int {
	if len(customID) < 2 {
		return 0
	}
	n, err := strconv.Atoi(customID[1:])
	if err != nil {
		return 0
	}
	return n
}
