package models

import (
	"strings"
	"time"
)

// LeadStatus is stored capitalized; input is normalized by ParseLeadStatus.
type LeadStatus string

const (
	LeadPending   LeadStatus = "Pending"
	LeadConfirmed LeadStatus = "Confirmed"
	LeadRejected  LeadStatus = "Rejected"
)

// ParseLeadStatus accepts case-insensitive input and rejects anything outside
// the enum instead of passing unknown values through.
func ParseLeadStatus(s string) (LeadStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return LeadPending, true
	case "confirmed":
		return LeadConfirmed, true
	case "rejected":
		return LeadRejected, true
	}
	return "", false
}

type LeadType string

const (
	LeadDomestic      LeadType = "Domestic"
	LeadInternational LeadType = "International"
)

func ParseLeadType(s string) (LeadType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "domestic":
		return LeadDomestic, true
	case "international":
		return LeadInternational, true
	}
	return "", false
}

// LeadProduct is one line of the products list, stored as JSONB.
type LeadProduct struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type Lead struct {
	ID            int           `json:"id"`
	CompanyName   string        `json:"company_name"`
	City          string        `json:"city"`
	Address       string        `json:"address"`
	LeadType      LeadType      `json:"lead_type"`
	Documentation *string       `json:"documentation"` // "Yes" / "No" / null
	Products      []LeadProduct `json:"products"`
	PhoneNo       string        `json:"phone_no"`
	Email         string        `json:"email"`
	Reminder      *time.Time    `json:"reminder"`
	Quotation     string        `json:"quotation"`
	Status        LeadStatus    `json:"status"`
	LeadSource    string        `json:"lead_source"`
	Remark        string        `json:"remark"`
	EmployeeID    *int          `json:"employee_id"`
	IsConverted   bool          `json:"is_converted"`
	ConvertedAt   *time.Time    `json:"converted_at"`
	CustomerID    *int          `json:"customer_id"`
	DeletedAt     *time.Time    `json:"deleted_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
