package services

import (
	"log"

	"salescrm/internal/authz"
	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

type AssignmentService struct {
	LeadRepo repositories.LeadRepository
	UserRepo repositories.UserRepository
	Emails   EmailService
	Notifier Notifier
}

func NewAssignmentService(leadRepo repositories.LeadRepository, userRepo repositories.UserRepository, emails EmailService, notifier Notifier) *AssignmentService {
	return &AssignmentService{LeadRepo: leadRepo, UserRepo: userRepo, Emails: emails, Notifier: notifier}
}

// AssignLeads binds every lead in leadIDs to the employee, all-or-nothing.
// The repository runs one conditional update inside a transaction, so a
// concurrent assignment of any lead in the batch rolls the whole batch back.
func (s *AssignmentService) AssignLeads(employeeID int, leadIDs []int) (int64, error) {
	if len(leadIDs) == 0 {
		return 0, validationErr("lead_ids", "must not be empty")
	}
	ids := dedupe(leadIDs)

	employee, err := s.UserRepo.GetByID(employeeID)
	if err != nil {
		return 0, err
	}
	if employee == nil {
		return 0, validationErr("employee_id", "unknown employee")
	}
	if employee.Role != authz.RoleEmployee {
		return 0, validationErr("employee_id", "user is not an employee")
	}

	existing, err := s.LeadRepo.CountExisting(ids)
	if err != nil {
		return 0, err
	}
	if existing != len(ids) {
		return 0, validationErr("lead_ids", "contains unknown or deleted leads")
	}

	n, err := s.LeadRepo.AssignBatch(employeeID, ids)
	if err != nil {
		return 0, err
	}
	if n != int64(len(ids)) {
		// at least one lead already carries an employee_id
		return 0, ErrConflict
	}

	if s.Emails != nil {
		if err := s.Emails.SendAssignmentNotification(employee.Email, employee.Name, len(ids)); err != nil {
			log.Printf("[assign] warning: notification email to %s failed: %v", employee.Email, err)
		}
	}
	if s.Notifier != nil {
		s.Notifier.LeadsAssigned(employee, len(ids))
	}
	log.Printf("[assign] %d lead(s) -> employee=%d", n, employeeID)
	return n, nil
}

// UnassignedLeads is the pool an admin can hand out: unassigned and not
// Rejected.
func (s *AssignmentService) UnassignedLeads() ([]*models.Lead, error) {
	return s.LeadRepo.ListUnassigned()
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
