// internal/service/campaign_service.go
package service

import (
	"log"

	"github.com/segmently/segmently-backend/internal/model"
	"github.com/segmently/segmently-backend/internal/queue"
	"github.com/segmently/segmently-backend/internal/repository"
	"github.com/segmently/segmently-backend/internal/rules"
)

// CampaignService owns campaign record creation and delivery dispatch.
type CampaignService struct {
	LogRepo  repository.CommunicationLogRepositoryInterface
	Audience *AudienceService
	Queue    queue.Publisher
}

// CreateCampaign resolves the audience, persists the campaign record and
// enqueues one delivery job per member. The record is returned as soon as
// it is durable; the simulation runs in the background and its failures
// never surface here.
func (s *CampaignService) CreateCampaign(set rules.RuleSet, message string) (*model.CommunicationLog, error) {
	audience, err := s.Audience.Resolve(set)
	if err != nil {
		return nil, err
	}

	record := &model.CommunicationLog{
		Audience:     audience,
		AudienceSize: len(audience),
		Message:      message,
	}
	if err := s.LogRepo.Insert(record); err != nil {
		return nil, err
	}

	s.dispatch(record)

	return record, nil
}

// dispatch enqueues the simulation jobs. Errors are logged only: the
// record is already durable and the create must not fail because of
// delivery.
func (s *CampaignService) dispatch(record *model.CommunicationLog) {
	if s.Queue == nil {
		return
	}
	for _, member := range record.Audience {
		job := model.DeliveryJob{CampaignID: record.ID, Recipient: member}
		if err := s.Queue.Publish(queue.DeliveryTopic, job); err != nil {
			log.Println("⚠️ Failed to enqueue delivery for", member.Email, ":", err)
		}
	}
}

// ListCampaigns returns every campaign record, most recent first.
func (s *CampaignService) ListCampaigns() ([]model.CommunicationLog, error) {
	return s.LogRepo.ListAll()
}
