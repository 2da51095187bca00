package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input  string
		want   Role
		wantOK bool
	}{
		{input: "admin", want: RoleAdmin, wantOK: true},
		{input: "Employee", want: RoleEmployee, wantOK: true},
		{input: " ADMIN ", want: RoleAdmin, wantOK: true},
		{input: "manager", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.input)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.input)
		if tt.wantOK {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestCanAccessLead(t *testing.T) {
	seven := 7

	assert.True(t, CanAccessLead(1, RoleAdmin, nil), "admin sees unassigned leads")
	assert.True(t, CanAccessLead(1, RoleAdmin, &seven), "admin sees any lead")
	assert.True(t, CanAccessLead(7, RoleEmployee, &seven), "employee sees own lead")
	assert.False(t, CanAccessLead(8, RoleEmployee, &seven), "employee blocked from others")
	assert.False(t, CanAccessLead(8, RoleEmployee, nil), "employee blocked from unassigned")
}
