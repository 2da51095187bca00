package services

import (
	"time"

	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

// fakeLeadRepo implements the slice of LeadRepository the services under test
// touch; the embedded interface panics on anything unexpected.
type fakeLeadRepo struct {
	repositories.LeadRepository

	leads map[int]*models.Lead

	existingCount int
	assignResult  int64
	assignErr     error
	assignedIDs   []int
	assignedTo    int

	convertOK   bool
	convertErr  error
	convertedID int

	createdID int
}

func newFakeLeadRepo(leads ...*models.Lead) *fakeLeadRepo {
	r := &fakeLeadRepo{leads: map[int]*models.Lead{}, createdID: 100, assignResult: -1}
	for _, l := range leads {
		r.leads[l.ID] = l
	}
	return r
}

func (r *fakeLeadRepo) Create(lead *models.Lead) error {
	r.createdID++
	lead.ID = r.createdID
	r.leads[lead.ID] = lead
	return nil
}

func (r *fakeLeadRepo) Update(lead *models.Lead) error {
	r.leads[lead.ID] = lead
	return nil
}

func (r *fakeLeadRepo) GetByID(id int) (*models.Lead, error) {
	l, ok := r.leads[id]
	if !ok || l.DeletedAt != nil {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLeadRepo) UpdateStatus(id int, status models.LeadStatus) (bool, error) {
	l, ok := r.leads[id]
	if !ok {
		return false, nil
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeLeadRepo) UpdateRemark(id int, remark string) (bool, error) {
	l, ok := r.leads[id]
	if !ok {
		return false, nil
	}
	l.Remark = remark
	return true, nil
}

func (r *fakeLeadRepo) SoftDelete(id int) (bool, error) {
	l, ok := r.leads[id]
	if !ok || l.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	l.DeletedAt = &now
	return true, nil
}

func (r *fakeLeadRepo) Restore(id int) (bool, error) {
	l, ok := r.leads[id]
	if !ok || l.DeletedAt == nil {
		return false, nil
	}
	l.DeletedAt = nil
	return true, nil
}

func (r *fakeLeadRepo) CountExisting(ids []int) (int, error) {
	if r.existingCount > 0 {
		return r.existingCount, nil
	}
	count := 0
	for _, id := range ids {
		if l, ok := r.leads[id]; ok && l.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *fakeLeadRepo) AssignBatch(employeeID int, ids []int) (int64, error) {
	r.assignedTo = employeeID
	r.assignedIDs = ids
	if r.assignErr != nil {
		return 0, r.assignErr
	}
	if r.assignResult >= 0 {
		// forced short count simulates a concurrent assignment
		return r.assignResult, nil
	}
	for _, id := range ids {
		e := employeeID
		r.leads[id].EmployeeID = &e
	}
	return int64(len(ids)), nil
}

func (r *fakeLeadRepo) Convert(leadID int, customer *models.Customer, now time.Time) (bool, error) {
	if r.convertErr != nil {
		return false, r.convertErr
	}
	if !r.convertOK {
		return false, nil
	}
	customer.ID = 900
	r.convertedID = leadID
	l := r.leads[leadID]
	l.IsConverted = true
	l.ConvertedAt = &now
	l.CustomerID = &customer.ID
	return true, nil
}

type fakeUserRepo struct {
	repositories.UserRepository
	users map[int]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

type fakeEmailService struct {
	welcomes    []string
	assignments []string
	lastCount   int
}

func (s *fakeEmailService) SendWelcomeEmail(email, name string) error {
	s.welcomes = append(s.welcomes, email)
	return nil
}

func (s *fakeEmailService) SendAssignmentNotification(email, name string, count int) error {
	s.assignments = append(s.assignments, email)
	s.lastCount = count
	return nil
}

type fakeNotifier struct {
	converted []int
	assigned  []int
}

func (n *fakeNotifier) LeadConverted(lead *models.Lead, customer *models.Customer) {
	n.converted = append(n.converted, lead.ID)
}

func (n *fakeNotifier) LeadsAssigned(employee *models.User, count int) {
	n.assigned = append(n.assigned, employee.ID)
}
