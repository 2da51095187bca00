package services

import (
	"strings"
	"time"

	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

type CustomerService struct {
	Repo repositories.CustomerRepository
}

func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) Create(customer *models.Customer) error {
	if strings.TrimSpace(customer.CustomerName) == "" {
		return validationErr("customer_name", "is required")
	}
	if customer.Status == "" {
		customer.Status = models.CustomerActive
	} else {
		st, ok := models.ParseCustomerStatus(string(customer.Status))
		if !ok {
			return validationErr("status", "must be active or inactive")
		}
		customer.Status = st
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	return s.Repo.Create(customer)
}

func (s *CustomerService) Update(customer *models.Customer) (*models.Customer, error) {
	current, err := s.Repo.GetByID(customer.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(customer.CustomerName) == "" {
		return nil, validationErr("customer_name", "is required")
	}
	if customer.Status == "" {
		customer.Status = current.Status
	} else {
		st, ok := models.ParseCustomerStatus(string(customer.Status))
		if !ok {
			return nil, validationErr("status", "must be active or inactive")
		}
		customer.Status = st
	}
	if err := s.Repo.Update(customer); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(customer.ID)
}

func (s *CustomerService) GetByID(id int) (*models.Customer, error) {
	customer, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}
	return customer, nil
}

func (s *CustomerService) List(limit, offset int) ([]*models.Customer, error) {
	return s.Repo.List(limit, offset)
}

func (s *CustomerService) ListTrashed(limit, offset int) ([]*models.Customer, error) {
	return s.Repo.ListTrashed(limit, offset)
}

func (s *CustomerService) Delete(id int) error {
	ok, err := s.Repo.SoftDelete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *CustomerService) Restore(id int) error {
	ok, err := s.Repo.Restore(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *CustomerService) ForceDelete(id int) error {
	ok, err := s.Repo.ForceDelete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
