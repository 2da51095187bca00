package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescrm/internal/authz"
	"salescrm/internal/models"
)

func assignedLead(id, employeeID int, status models.LeadStatus) *models.Lead {
	e := employeeID
	return &models.Lead{
		ID:          id,
		CompanyName: "Acme",
		City:        "NYC",
		Address:     "1 Main St",
		PhoneNo:     "555-0100",
		Email:       "acme@example.com",
		Quotation:   "12000 USD",
		Status:      status,
		EmployeeID:  &e,
	}
}

func TestCreate_DefaultsToPending(t *testing.T) {
	repo := newFakeLeadRepo()
	svc := NewLeadService(repo, nil)

	lead := &models.Lead{CompanyName: "Acme", City: "NYC", Address: "1 Main St", LeadType: "domestic"}
	require.NoError(t, svc.Create(lead))

	assert.Equal(t, models.LeadPending, lead.Status)
	assert.Equal(t, models.LeadDomestic, lead.LeadType)
	assert.NotZero(t, lead.ID)
}

func TestCreate_RejectsBadInput(t *testing.T) {
	repo := newFakeLeadRepo()
	svc := NewLeadService(repo, nil)

	tests := []struct {
		name      string
		lead      *models.Lead
		wantField string
	}{
		{name: "missing_company", lead: &models.Lead{}, wantField: "company_name"},
		{name: "bad_lead_type", lead: &models.Lead{CompanyName: "A", LeadType: "overseas"}, wantField: "lead_type"},
		{name: "bad_status", lead: &models.Lead{CompanyName: "A", Status: "won"}, wantField: "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(tt.lead)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}

	docs := "maybe"
	err := svc.Create(&models.Lead{CompanyName: "A", Documentation: &docs})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "documentation", ve.Field)
}

func TestUpdate_ValidatesLikeCreate(t *testing.T) {
	docs := "maybe"
	tests := []struct {
		name      string
		lead      *models.Lead
		wantField string
	}{
		{name: "blank_company", lead: &models.Lead{ID: 1, CompanyName: "  "}, wantField: "company_name"},
		{name: "bad_documentation", lead: &models.Lead{ID: 1, CompanyName: "Acme", Documentation: &docs}, wantField: "documentation"},
		{name: "bad_lead_type", lead: &models.Lead{ID: 1, CompanyName: "Acme", LeadType: "overseas"}, wantField: "lead_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLeadService(newFakeLeadRepo(assignedLead(1, 7, models.LeadPending)), nil)
			_, err := svc.Update(tt.lead)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestUpdate_NormalizesDocumentation(t *testing.T) {
	repo := newFakeLeadRepo(assignedLead(1, 7, models.LeadPending))
	svc := NewLeadService(repo, nil)

	docs := "yes"
	updated, err := svc.Update(&models.Lead{ID: 1, CompanyName: "Acme", Documentation: &docs})
	require.NoError(t, err)
	require.NotNil(t, updated.Documentation)
	assert.Equal(t, "Yes", *updated.Documentation)
	// omitted status keeps the stored value instead of blanking it
	assert.Equal(t, models.LeadPending, updated.Status)
}

func TestUpdateStatus_NormalizesCasing(t *testing.T) {
	repo := newFakeLeadRepo(assignedLead(1, 7, models.LeadPending))
	svc := NewLeadService(repo, nil)

	lead, err := svc.UpdateStatus(1, "confirmed", 7, authz.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, models.LeadConfirmed, lead.Status)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	repo := newFakeLeadRepo(assignedLead(1, 7, models.LeadPending))
	svc := NewLeadService(repo, nil)

	_, err := svc.UpdateStatus(1, "approved", 7, authz.RoleEmployee)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)
}

func TestUpdateStatus_OwnershipEnforced(t *testing.T) {
	repo := newFakeLeadRepo(assignedLead(1, 7, models.LeadPending))
	svc := NewLeadService(repo, nil)

	// employee 8 does not own lead 1, payload validity is irrelevant
	_, err := svc.UpdateStatus(1, "confirmed", 8, authz.RoleEmployee)
	assert.ErrorIs(t, err, ErrForbidden)

	// admin may touch any lead
	_, err = svc.UpdateStatus(1, "rejected", 99, authz.RoleAdmin)
	assert.NoError(t, err)
}

func TestUpdateStatus_MissingLead(t *testing.T) {
	svc := NewLeadService(newFakeLeadRepo(), nil)
	_, err := svc.UpdateStatus(404, "confirmed", 1, authz.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus_SameValueIsANoOp(t *testing.T) {
	repo := newFakeLeadRepo(assignedLead(1, 7, models.LeadConfirmed))
	svc := NewLeadService(repo, nil)

	lead, err := svc.UpdateStatus(1, "confirmed", 7, authz.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, models.LeadConfirmed, lead.Status)
}

func TestUpdateRemark_OwnershipEnforced(t *testing.T) {
	repo := newFakeLeadRepo(assignedLead(1, 7, models.LeadPending))
	svc := NewLeadService(repo, nil)

	_, err := svc.UpdateRemark(1, "called twice", 8, authz.RoleEmployee)
	assert.ErrorIs(t, err, ErrForbidden)

	lead, err := svc.UpdateRemark(1, "called twice", 7, authz.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, "called twice", lead.Remark)
}

func TestConvert_RequiresConfirmed(t *testing.T) {
	repo := newFakeLeadRepo(assignedLead(1, 7, models.LeadPending))
	svc := NewLeadService(repo, nil)

	_, err := svc.ConvertToCustomer(1, 99, authz.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConvert_OnlyOnce(t *testing.T) {
	lead := assignedLead(1, 7, models.LeadConfirmed)
	lead.IsConverted = true
	svc := NewLeadService(newFakeLeadRepo(lead), nil)

	_, err := svc.ConvertToCustomer(1, 99, authz.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConvert_CopiesContactFields(t *testing.T) {
	repo := newFakeLeadRepo(assignedLead(1, 7, models.LeadConfirmed))
	repo.convertOK = true
	notifier := &fakeNotifier{}
	svc := NewLeadService(repo, notifier)

	customer, err := svc.ConvertToCustomer(1, 7, authz.RoleEmployee)
	require.NoError(t, err)

	assert.Equal(t, "Acme", customer.CustomerName)
	assert.Equal(t, "NYC", customer.City)
	assert.Equal(t, "1 Main St", customer.Address)
	assert.Equal(t, "555-0100", customer.PhoneNo)
	assert.Equal(t, "acme@example.com", customer.Email)
	assert.Equal(t, "12000 USD", customer.Quotation)
	assert.Equal(t, models.CustomerActive, customer.Status)
	assert.NotZero(t, customer.ID)

	assert.True(t, repo.leads[1].IsConverted)
	assert.Equal(t, []int{1}, notifier.converted)
}

func TestConvert_LostRaceSurfacesInvalidState(t *testing.T) {
	repo := newFakeLeadRepo(assignedLead(1, 7, models.LeadConfirmed))
	repo.convertOK = false // conditional update hit zero rows
	svc := NewLeadService(repo, nil)

	_, err := svc.ConvertToCustomer(1, 99, authz.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConvert_OwnershipEnforced(t *testing.T) {
	repo := newFakeLeadRepo(assignedLead(1, 7, models.LeadConfirmed))
	repo.convertOK = true
	svc := NewLeadService(repo, nil)

	_, err := svc.ConvertToCustomer(1, 8, authz.RoleEmployee)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteRestore_Lifecycle(t *testing.T) {
	repo := newFakeLeadRepo(assignedLead(1, 7, models.LeadPending))
	svc := NewLeadService(repo, nil)

	require.NoError(t, svc.Delete(1))
	assert.NotNil(t, repo.leads[1].DeletedAt)

	// trashed leads are invisible to the default getter
	_, err := svc.GetByID(1, 99, authz.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Restore(1))
	assert.Nil(t, repo.leads[1].DeletedAt)

	// restoring something that was never trashed fails
	assert.ErrorIs(t, svc.Restore(1), ErrNotFound)
	assert.ErrorIs(t, svc.Restore(404), ErrNotFound)
}
