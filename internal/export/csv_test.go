package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescrm/internal/models"
)

func TestWriteLeadsCSV(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	converted := created.Add(48 * time.Hour)
	seven := 7

	leads := []*models.Lead{
		{
			ID: 1, CompanyName: "Acme", City: "NYC", Address: "1 Main St",
			LeadType: models.LeadDomestic, PhoneNo: "555-0100", Email: "acme@example.com",
			Status: models.LeadConfirmed, LeadSource: "web", Remark: "called, interested",
			Quotation: "12000 USD", EmployeeID: &seven,
			IsConverted: true, ConvertedAt: &converted, CreatedAt: created,
		},
		{
			ID: 2, CompanyName: "Globex", Status: models.LeadPending, CreatedAt: created,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLeadsCSV(&buf, leads))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "output must start with a UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per lead")

	header := records[0]
	assert.Equal(t, "id", header[0])
	assert.Equal(t, "company_name", header[1])

	row := records[1]
	assert.Equal(t, "1", row[0])
	assert.Equal(t, "Acme", row[1])
	assert.Equal(t, "Confirmed", row[7])
	assert.Equal(t, "7", row[11])
	assert.Equal(t, "true", row[12])
	assert.Equal(t, "2026-03-16 09:26:53", row[13])
	assert.Equal(t, "2026-03-14 09:26:53", row[15])

	// nullable fields stay empty, never "nil" or zero dates
	row2 := records[2]
	assert.Equal(t, "", row2[11])
	assert.Equal(t, "false", row2[12])
	assert.Equal(t, "", row2[13])
}

func TestWriteCustomersCSV(t *testing.T) {
	created := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	customers := []*models.Customer{
		{ID: 3, CustomerName: "Acme", City: "NYC", Status: models.CustomerActive, CreatedAt: created},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCustomersCSV(&buf, customers))

	s := buf.String()
	assert.True(t, strings.HasPrefix(s, "\xEF\xBB\xBF"))
	assert.Contains(t, s, "customer_name")
	assert.Contains(t, s, "2026-01-02 15:04:05")
}

func TestWriteEmployeesCSV_EmptyStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEmployeesCSV(&buf, nil))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"id", "name", "email", "mobile", "city", "created_at"}, records[0])
}
