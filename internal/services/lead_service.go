package services

import (
	"log"
	"strings"
	"time"

	"salescrm/internal/authz"
	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

// Notifier pushes best-effort notifications about pipeline events. A nil
// Notifier is valid and does nothing.
type Notifier interface {
	LeadConverted(lead *models.Lead, customer *models.Customer)
	LeadsAssigned(employee *models.User, count int)
}

type LeadService struct {
	Repo     repositories.LeadRepository
	Notifier Notifier
}

func NewLeadService(repo repositories.LeadRepository, notifier Notifier) *LeadService {
	return &LeadService{Repo: repo, Notifier: notifier}
}

// normalizeLead validates and canonicalizes the fields shared by Create and
// Update. Mutates the lead in place.
func normalizeLead(lead *models.Lead) error {
	if strings.TrimSpace(lead.CompanyName) == "" {
		return validationErr("company_name", "is required")
	}
	if lead.LeadType != "" {
		lt, ok := models.ParseLeadType(string(lead.LeadType))
		if !ok {
			return validationErr("lead_type", "must be Domestic or International")
		}
		lead.LeadType = lt
	}
	if lead.Documentation != nil {
		switch strings.ToLower(strings.TrimSpace(*lead.Documentation)) {
		case "yes":
			v := "Yes"
			lead.Documentation = &v
		case "no":
			v := "No"
			lead.Documentation = &v
		case "":
			lead.Documentation = nil
		default:
			return validationErr("documentation", "must be Yes or No")
		}
	}
	return nil
}

func (s *LeadService) Create(lead *models.Lead) error {
	if err := normalizeLead(lead); err != nil {
		return err
	}
	if lead.Status == "" {
		lead.Status = models.LeadPending
	} else {
		st, ok := models.ParseLeadStatus(string(lead.Status))
		if !ok {
			return validationErr("status", "must be Pending, Confirmed or Rejected")
		}
		lead.Status = st
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	return s.Repo.Create(lead)
}

func (s *LeadService) Update(lead *models.Lead) (*models.Lead, error) {
	current, err := s.Repo.GetByID(lead.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}
	if err := normalizeLead(lead); err != nil {
		return nil, err
	}
	if lead.Status != "" {
		st, ok := models.ParseLeadStatus(string(lead.Status))
		if !ok {
			return nil, validationErr("status", "must be Pending, Confirmed or Rejected")
		}
		lead.Status = st
	} else {
		lead.Status = current.Status
	}
	if err := s.Repo.Update(lead); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(lead.ID)
}

func (s *LeadService) GetByID(id int, actorID int, role authz.Role) (*models.Lead, error) {
	lead, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrNotFound
	}
	if !authz.CanAccessLead(actorID, role, lead.EmployeeID) {
		return nil, ErrForbidden
	}
	return lead, nil
}

func (s *LeadService) List(limit, offset int) ([]*models.Lead, error) {
	return s.Repo.List(limit, offset)
}

func (s *LeadService) ListMy(employeeID, limit, offset int) ([]*models.Lead, error) {
	return s.Repo.ListByEmployee(employeeID, limit, offset)
}

func (s *LeadService) ListTrashed(limit, offset int) ([]*models.Lead, error) {
	return s.Repo.ListTrashed(limit, offset)
}

func (s *LeadService) Delete(id int) error {
	ok, err := s.Repo.SoftDelete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *LeadService) Restore(id int) error {
	ok, err := s.Repo.Restore(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *LeadService) ForceDelete(id int) error {
	ok, err := s.Repo.ForceDelete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus normalizes the incoming status and persists it. Admins may
// touch any lead; an employee only one assigned to them. Setting the current
// status again is allowed (timestamp still moves).
func (s *LeadService) UpdateStatus(id int, rawStatus string, actorID int, role authz.Role) (*models.Lead, error) {
	status, ok := models.ParseLeadStatus(rawStatus)
	if !ok {
		return nil, validationErr("status", "must be Pending, Confirmed or Rejected")
	}
	lead, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrNotFound
	}
	if !authz.CanAccessLead(actorID, role, lead.EmployeeID) {
		return nil, ErrForbidden
	}
	if _, err := s.Repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

func (s *LeadService) UpdateRemark(id int, remark string, actorID int, role authz.Role) (*models.Lead, error) {
	lead, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrNotFound
	}
	if !authz.CanAccessLead(actorID, role, lead.EmployeeID) {
		return nil, ErrForbidden
	}
	if _, err := s.Repo.UpdateRemark(id, remark); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

// ConvertToCustomer promotes a Confirmed lead into a customer record. The
// customer insert and the lead flagging run in one transaction; the
// conditional update inside the repository keeps a second conversion attempt
// from succeeding even under concurrent requests.
func (s *LeadService) ConvertToCustomer(leadID int, actorID int, role authz.Role) (*models.Customer, error) {
	lead, err := s.Repo.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrNotFound
	}
	if !authz.CanAccessLead(actorID, role, lead.EmployeeID) {
		return nil, ErrForbidden
	}
	if lead.Status != models.LeadConfirmed || lead.IsConverted {
		return nil, ErrInvalidState
	}

	customer := &models.Customer{
		CustomerName: lead.CompanyName,
		City:         lead.City,
		Address:      lead.Address,
		PhoneNo:      lead.PhoneNo,
		Email:        lead.Email,
		Reminder:     lead.Reminder,
		Quotation:    lead.Quotation,
		Status:       models.CustomerActive,
	}
	converted, err := s.Repo.Convert(leadID, customer, time.Now())
	if err != nil {
		return nil, err
	}
	if !converted {
		// lead changed under us between the read and the transaction
		return nil, ErrInvalidState
	}

	if s.Notifier != nil {
		s.Notifier.LeadConverted(lead, customer)
	}
	log.Printf("[lead][convert] lead=%d customer=%d by user=%d", leadID, customer.ID, actorID)
	return customer, nil
}
