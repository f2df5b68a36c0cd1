// internal/model/communication_log.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AudienceMember is the projection of a matching customer attached to a
// campaign record.
type AudienceMember struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CommunicationLog is the persisted record of one campaign send. It is
// immutable once inserted; audience_size is stored alongside the member
// list, never inside it.
type CommunicationLog struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	Audience     []AudienceMember `db:"audience" json:"audience"`
	AudienceSize int              `db:"audience_size" json:"audienceSize"`
	Message      string           `db:"message" json:"message"`
	SentAt       time.Time        `db:"sent_at" json:"sentAt"`
}
