package repository

import (
	"database/sql"
	"fmt"
	"strings"

	appErrors "github.com/segmently/segmently-backend/internal/errors"
	"github.com/segmently/segmently-backend/internal/model"
	"github.com/segmently/segmently-backend/internal/rules"
)

// CustomerRepositoryInterface is the customer store contract used by the
// audience resolver.
type CustomerRepositoryInterface interface {
	FindMatching(query rules.Query) ([]model.Customer, error)
}

// CustomerRepository is the concrete Postgres implementation
type CustomerRepository struct {
	DB *sql.DB
}

// BuildCustomerQuery renders a compiled rule query into SQL with positional
// args. Exported so the WHERE construction stays testable without a
// database.
func BuildCustomerQuery(query rules.Query) (string, []any) {
	sqlQuery := `SELECT id, name, email, total_spend, num_visits, last_visit_date FROM customers`
	if len(query.Conditions) == 0 {
		return sqlQuery, nil
	}

	joiner := " AND "
	if query.Operator == rules.Or {
		joiner = " OR "
	}

	clauses := make([]string, 0, len(query.Conditions))
	args := make([]any, 0, len(query.Conditions))
	argPos := 1
	for _, cond := range query.Conditions {
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", cond.Column, cond.Comparator, argPos))
		args = append(args, cond.Value)
		argPos++
	}

	return sqlQuery + " WHERE " + strings.Join(clauses, joiner), args
}

// FindMatching executes a compiled rule query against the customers table.
// Read-only; never mutates the store.
func (r *CustomerRepository) FindMatching(query rules.Query) ([]model.Customer, error) {
	sqlQuery, args := BuildCustomerQuery(query)
	rows, err := r.DB.Query(sqlQuery, args...)
	if err != nil {
		return nil, appErrors.NewStore("customer query", err)
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.TotalSpend, &c.NumVisits, &c.LastVisitDate); err != nil {
			return nil, appErrors.NewStore("customer scan", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.NewStore("customer rows", err)
	}
	return customers, nil
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
