package models

import (
	"strings"
	"time"
)

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

func ParseCustomerStatus(s string) (CustomerStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return CustomerActive, true
	case "inactive":
		return CustomerInactive, true
	}
	return "", false
}

type Customer struct {
	ID           int            `json:"id"`
	CustomerName string         `json:"customer_name"`
	City         string         `json:"city"`
	Address      string         `json:"address"`
	PhoneNo      string         `json:"phone_no"`
	Email        string         `json:"email"`
	Reminder     *time.Time     `json:"reminder"`
	Quotation    string         `json:"quotation"`
	Status       CustomerStatus `json:"status"`
	DeletedAt    *time.Time     `json:"deleted_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
