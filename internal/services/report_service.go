package services

import (
	"salescrm/internal/authz"
	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

type Summary struct {
	LeadsByStatus   map[models.LeadStatus]int `json:"leads_by_status"`
	UnassignedLeads int                       `json:"unassigned_leads"`
	ConvertedLeads  int                       `json:"converted_leads"`
	Customers       int                       `json:"customers"`
	Employees       int                       `json:"employees"`
}

type ReportService struct {
	LeadRepo     repositories.LeadRepository
	CustomerRepo repositories.CustomerRepository
	UserRepo     repositories.UserRepository
}

func NewReportService(leadRepo repositories.LeadRepository, customerRepo repositories.CustomerRepository, userRepo repositories.UserRepository) *ReportService {
	return &ReportService{LeadRepo: leadRepo, CustomerRepo: customerRepo, UserRepo: userRepo}
}

func (s *ReportService) GetSummary() (*Summary, error) {
	byStatus, err := s.LeadRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	unassigned, err := s.LeadRepo.CountUnassigned()
	if err != nil {
		return nil, err
	}
	converted, err := s.LeadRepo.CountConverted()
	if err != nil {
		return nil, err
	}
	customers, err := s.CustomerRepo.Count()
	if err != nil {
		return nil, err
	}
	employees, err := s.UserRepo.GetCountByRole(authz.RoleEmployee)
	if err != nil {
		return nil, err
	}
	return &Summary{
		LeadsByStatus:   byStatus,
		UnassignedLeads: unassigned,
		ConvertedLeads:  converted,
		Customers:       customers,
		Employees:       employees,
	}, nil
}
