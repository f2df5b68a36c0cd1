package repository_test

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/segmently/segmently-backend/internal/errors"
	"github.com/segmently/segmently-backend/internal/repository"
	"github.com/segmently/segmently-backend/internal/rules"
)

// flakyDriver serves one good row and then fails mid-iteration, the way a
// dropped connection does. Every query returns the same canned row.
type flakyDriver struct {
	columns []string
	row     []driver.Value
}

func (d *flakyDriver) Open(name string) (driver.Conn, error) {
	return &flakyConn{d: d}, nil
}

type flakyConn struct {
	d *flakyDriver
}

func (c *flakyConn) Prepare(query string) (driver.Stmt, error) {
	return &flakyStmt{d: c.d}, nil
}

func (c *flakyConn) Close() error { return nil }

func (c *flakyConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

type flakyStmt struct {
	d *flakyDriver
}

func (s *flakyStmt) Close() error  { return nil }
func (s *flakyStmt) NumInput() int { return -1 }

func (s *flakyStmt) Exec(args []driver.Value) (driver.Result, error) {
	return nil, errors.New("exec not supported")
}

func (s *flakyStmt) Query(args []driver.Value) (driver.Rows, error) {
	return &flakyRows{d: s.d}, nil
}

type flakyRows struct {
	d      *flakyDriver
	served int
}

func (r *flakyRows) Columns() []string { return r.d.columns }
func (r *flakyRows) Close() error      { return nil }

func (r *flakyRows) Next(dest []driver.Value) error {
	if r.served > 0 {
		return fmt.Errorf("connection reset mid-stream")
	}
	r.served++
	copy(dest, r.d.row)
	return nil
}

func init() {
	sql.Register("flaky-customers", &flakyDriver{
		columns: []string{"id", "name", "email", "total_spend", "num_visits", "last_visit_date"},
		row: []driver.Value{
			int64(1), "A", "a@example.com", float64(500), int64(10),
			time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		},
	})
	sql.Register("flaky-logs", &flakyDriver{
		columns: []string{"id", "audience", "audience_size", "message", "sent_at"},
		row: []driver.Value{
			uuid.NewString(), []byte(`[{"name":"A","email":"a@example.com"}]`), int64(1), "hi",
			time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		},
	})
}

func TestFindMatchingMidIterationFailure(t *testing.T) {
	db, err := sql.Open("flaky-customers", "")
	require.NoError(t, err)
	defer db.Close()

	repo := &repository.CustomerRepository{DB: db}
	_, err = repo.FindMatching(rules.Query{
		Conditions: []rules.Condition{{Column: "total_spend", Comparator: ">", Value: float64(100)}},
		Operator:   rules.And,
	})

	require.Error(t, err, "a truncated result set must not be returned as success")
	var storeErr *appErrors.StoreError
	assert.True(t, errors.As(err, &storeErr))
}

func TestListAllMidIterationFailure(t *testing.T) {
	db, err := sql.Open("flaky-logs", "")
	require.NoError(t, err)
	defer db.Close()

	repo := &repository.CommunicationLogRepository{DB: db}
	_, err = repo.ListAll()

	require.Error(t, err, "a truncated result set must not be returned as success")
	var storeErr *appErrors.StoreError
	assert.True(t, errors.As(err, &storeErr))
}
