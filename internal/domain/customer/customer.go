package customer

import (
	"strings"
	"time"
)

type Customer struct {
	CustomerID   int64     `json:"customerId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Changes carries caller-supplied customer fields. Empty fields leave the stored value alone.
type Changes struct {
	Name         string
	Email        string
	MobileNumber string
}

func NewCustomer(name, email, mobileNumber string) *Customer {
	now := time.Now()
	return &Customer{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		MobileNumber: strings.TrimSpace(mobileNumber),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Apply overwrites the mutable fields present in ch and reports whether anything changed.
// CustomerID is never touched.
func (c *Customer) Apply(ch Changes) bool {
	changed := false
	if v := strings.TrimSpace(ch.Name); v != "" && v != c.Name {
		c.Name = v
		changed = true
	}
	if v := strings.TrimSpace(ch.Email); v != "" && v != c.Email {
		c.Email = v
		changed = true
	}
	if v := strings.TrimSpace(ch.MobileNumber); v != "" && v != c.MobileNumber {
		c.MobileNumber = v
		changed = true
	}
	if changed {
		c.UpdatedAt = time.Now()
	}
	return changed
}
