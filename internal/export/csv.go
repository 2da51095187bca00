package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"salescrm/internal/models"
)

// All exports are UTF-8 with a BOM prefix so spreadsheet apps pick the
// encoding up, comma-delimited, with a header row.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const dateLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.Format(dateLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func writeAll(w io.Writer, header []string, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteLeadsCSV(w io.Writer, leads []*models.Lead) error {
	header := []string{
		"id", "company_name", "city", "address", "lead_type", "phone_no", "email",
		"status", "lead_source", "remark", "quotation", "employee_id",
		"is_converted", "converted_at", "reminder", "created_at",
	}
	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []string{
			strconv.Itoa(l.ID), l.CompanyName, l.City, l.Address, string(l.LeadType),
			l.PhoneNo, l.Email, string(l.Status), l.LeadSource, l.Remark, l.Quotation,
			formatIntPtr(l.EmployeeID),
			fmt.Sprintf("%t", l.IsConverted),
			formatTimePtr(l.ConvertedAt),
			formatTimePtr(l.Reminder),
			formatTime(l.CreatedAt),
		})
	}
	return writeAll(w, header, rows)
}

func WriteCustomersCSV(w io.Writer, customers []*models.Customer) error {
	header := []string{
		"id", "customer_name", "city", "address", "phone_no", "email",
		"status", "quotation", "reminder", "created_at",
	}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.Itoa(c.ID), c.CustomerName, c.City, c.Address, c.PhoneNo, c.Email,
			string(c.Status), c.Quotation,
			formatTimePtr(c.Reminder),
			formatTime(c.CreatedAt),
		})
	}
	return writeAll(w, header, rows)
}

func WriteEmployeesCSV(w io.Writer, employees []*models.User) error {
	header := []string{"id", "name", "email", "mobile", "city", "created_at"}
	rows := make([][]string, 0, len(employees))
	for _, u := range employees {
		rows = append(rows, []string{
			strconv.Itoa(u.ID), u.Name, u.Email, u.Mobile, u.City,
			formatTime(u.CreatedAt),
		})
	}
	return writeAll(w, header, rows)
}
