package queue

import (
	"hash/fnv"
	"log"

	"github.com/google/uuid"

	"github.com/segmently/segmently-backend/internal/model"
)

// DeliveryTopic carries one job per audience member of a created campaign.
const DeliveryTopic = "campaign_deliveries"

// DeliverySimulator stands in for a real delivery channel. Swapping in a
// live integration means providing another implementation here; nothing
// upstream changes.
type DeliverySimulator interface {
	Deliver(campaignID uuid.UUID, recipient model.AudienceMember) model.DeliveryResult
}

// HashSimulator produces a SENT/FAILED outcome per recipient. Roughly nine
// in ten deliveries succeed, and the same campaign/recipient pair always
// yields the same status, so runs are reproducible.
type HashSimulator struct{}

func (HashSimulator) Deliver(campaignID uuid.UUID, recipient model.AudienceMember) model.DeliveryResult {
	h := fnv.New32a()
	h.Write(campaignID[:])
	h.Write([]byte(recipient.Email))

	status := model.DeliveryStatusSent
	if h.Sum32()%10 == 0 {
		status = model.DeliveryStatusFailed
	}
	return model.DeliveryResult{CampaignID: campaignID, Recipient: recipient, Status: status}
}

var _ DeliverySimulator = HashSimulator{}

// StartDeliverySubscriber wires the simulation to the queue. Each published
// DeliveryJob is simulated and its outcome logged; when results is non-nil
// the outcome is also offered there without ever blocking the queue.
func StartDeliverySubscriber(q Subscriber, sim DeliverySimulator, results chan<- model.DeliveryResult) {
	err := q.Subscribe(DeliveryTopic, func(payload any) error {
		job, ok := payload.(model.DeliveryJob)
		if !ok {
			log.Println("⚠️ Invalid payload type, expected DeliveryJob")
			return nil
		}

		result := sim.Deliver(job.CampaignID, job.Recipient)
		log.Printf("📨 Delivery %s for %s (campaign %s)\n", result.Status, result.Recipient.Email, result.CampaignID)

		if results != nil {
			select {
			case results <- result:
			default:
			}
		}
		return nil
	})
	if err != nil {
		log.Println("⚠️ Failed to start subscriber for", DeliveryTopic, ":", err)
	}
}
