package services

import (
	"log"
	"strings"

	"salescrm/internal/authz"
	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

type UserService interface {
	Register(req *models.RegisterRequest) (*models.User, error)
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateProfile(user *models.User) (*models.User, error)
	ListEmployees(limit, offset int) ([]*models.User, error)
	ListAllEmployees() ([]*models.User, error)
	CountByRole(role authz.Role) (int, error)
}

type userService struct {
	repo   repositories.UserRepository
	emails EmailService
	auth   AuthService
}

func NewUserService(repo repositories.UserRepository, emails EmailService, auth AuthService) UserService {
	return &userService{repo: repo, emails: emails, auth: auth}
}

func (s *userService) Register(req *models.RegisterRequest) (*models.User, error) {
	role, ok := authz.ParseRole(req.Role)
	if !ok {
		return nil, validationErr("role", "must be admin or employee")
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, validationErr("password", "is required")
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
		Mobile:       req.Mobile,
		Gender:       req.Gender,
		Address:      req.Address,
		City:         req.City,
		About:        req.About,
	}
	if err := s.repo.Create(user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if s.emails != nil {
		if err := s.emails.SendWelcomeEmail(user.Email, user.Name); err != nil {
			// warn but do not fail registration
			log.Printf("Register: warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *userService) GetByID(id int) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) GetByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

// UpdateProfile edits contact fields. The repository never writes role, so a
// crafted payload cannot flip an employee into an admin.
func (s *userService) UpdateProfile(user *models.User) (*models.User, error) {
	current, err := s.repo.GetByID(user.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(user.Name) == "" {
		return nil, validationErr("name", "is required")
	}
	if err := s.repo.Update(user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return s.repo.GetByID(user.ID)
}

func (s *userService) ListEmployees(limit, offset int) ([]*models.User, error) {
	return s.repo.List(authz.RoleEmployee, limit, offset)
}

func (s *userService) ListAllEmployees() ([]*models.User, error) {
	return s.repo.ListAll(authz.RoleEmployee)
}

func (s *userService) CountByRole(role authz.Role) (int, error) {
	return s.repo.GetCountByRole(role)
}
