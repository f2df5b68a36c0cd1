// internal/service/audience_service.go
package service

import (
	"github.com/segmently/segmently-backend/internal/model"
	"github.com/segmently/segmently-backend/internal/repository"
	"github.com/segmently/segmently-backend/internal/rules"
)

// AudienceService resolves rule sets into audiences against the customer
// store.
type AudienceService struct {
	CustomerRepo repository.CustomerRepositoryInterface
}

// Resolve compiles the rule set, runs the query against the customer store
// and projects every match to its public shape. Read-only: safe to call
// repeatedly and concurrently.
func (s *AudienceService) Resolve(set rules.RuleSet) ([]model.AudienceMember, error) {
	query, err := rules.Compile(set)
	if err != nil {
		return nil, err
	}

	customers, err := s.CustomerRepo.FindMatching(query)
	if err != nil {
		return nil, err
	}

	audience := make([]model.AudienceMember, 0, len(customers))
	for _, c := range customers {
		audience = append(audience, model.AudienceMember{Name: c.Name, Email: c.Email})
	}
	return audience, nil
}

// PreviewSize reports how many customers the rule set currently matches.
// Always equal to len(Resolve(set)) for the same store snapshot.
func (s *AudienceService) PreviewSize(set rules.RuleSet) (int, error) {
	audience, err := s.Resolve(set)
	if err != nil {
		return 0, err
	}
	return len(audience), nil
}
