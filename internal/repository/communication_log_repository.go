package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/segmently/segmently-backend/internal/errors"
	"github.com/segmently/segmently-backend/internal/model"
)

// CommunicationLogRepositoryInterface is the campaign record store
// contract: insert once, list newest first.
type CommunicationLogRepositoryInterface interface {
	Insert(record *model.CommunicationLog) error
	ListAll() ([]model.CommunicationLog, error)
}

// CommunicationLogRepository is the concrete Postgres implementation
type CommunicationLogRepository struct {
	DB *sql.DB
}

// Insert persists a new campaign record. ID and SentAt are assigned here;
// the row is never updated afterwards.
func (r *CommunicationLogRepository) Insert(record *model.CommunicationLog) error {
	record.ID = uuid.New()
	record.SentAt = time.Now().UTC()

	audience, err := json.Marshal(record.Audience)
	if err != nil {
		return appErrors.NewStore("audience encode", err)
	}

	query := `
        INSERT INTO communication_logs (id, audience, audience_size, message, sent_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	if _, err := r.DB.Exec(query, record.ID, audience, record.AudienceSize, record.Message, record.SentAt); err != nil {
		return appErrors.NewStore("communication log insert", err)
	}
	return nil
}

// ListAll returns every campaign record, most recent first.
func (r *CommunicationLogRepository) ListAll() ([]model.CommunicationLog, error) {
	query := `
        SELECT id, audience, audience_size, message, sent_at
        FROM communication_logs
        ORDER BY sent_at DESC
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, appErrors.NewStore("communication log query", err)
	}
	defer rows.Close()

	records := []model.CommunicationLog{}
	for rows.Next() {
		var record model.CommunicationLog
		var audience []byte
		if err := rows.Scan(&record.ID, &audience, &record.AudienceSize, &record.Message, &record.SentAt); err != nil {
			return nil, appErrors.NewStore("communication log scan", err)
		}
		if err := json.Unmarshal(audience, &record.Audience); err != nil {
			return nil, appErrors.NewStore("audience decode", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewStore("communication log rows", err)
	}
	return records, nil
}

var _ CommunicationLogRepositoryInterface = (*CommunicationLogRepository)(nil)
