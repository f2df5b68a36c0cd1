// internal/model/delivery.go
package model

import "github.com/google/uuid"

const (
	DeliveryStatusSent   = "SENT"
	DeliveryStatusFailed = "FAILED"
)

// DeliveryJob is one queued simulation unit, one per audience member.
type DeliveryJob struct {
	CampaignID uuid.UUID      `json:"campaign_id"`
	Recipient  AudienceMember `json:"recipient"`
}

// DeliveryResult is the simulated outcome for a single recipient. Results
// are observed through logs or a result channel, not written back to the
// campaign record.
type DeliveryResult struct {
	CampaignID uuid.UUID      `json:"campaign_id"`
	Recipient  AudienceMember `json:"recipient"`
	Status     string         `json:"status"`
}
