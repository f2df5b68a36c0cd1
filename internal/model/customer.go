// internal/model/customer.go
package model

import "time"

// Customer is a read-only record in the customer store. Rules filter on
// total_spend, num_visits and last_visit_date; only name and email ever
// leave this package as part of an audience.
type Customer struct {
	ID            int       `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	TotalSpend    float64   `db:"total_spend" json:"totalSpend"`
	NumVisits     int       `db:"num_visits" json:"numVisits"`
	LastVisitDate time.Time `db:"last_visit_date" json:"lastVisitDate"`
}
