package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"salescrm/internal/models"
)

type LeadRepository interface {
	Create(lead *models.Lead) error
	Update(lead *models.Lead) error
	GetByID(id int) (*models.Lead, error)
	List(limit, offset int) ([]*models.Lead, error)
	ListByEmployee(employeeID, limit, offset int) ([]*models.Lead, error)
	ListTrashed(limit, offset int) ([]*models.Lead, error)
	ListAll() ([]*models.Lead, error)
	ListUnassigned() ([]*models.Lead, error)

	SoftDelete(id int) (bool, error)
	Restore(id int) (bool, error)
	ForceDelete(id int) (bool, error)

	UpdateStatus(id int, status models.LeadStatus) (bool, error)
	UpdateRemark(id int, remark string) (bool, error)

	// CountExisting reports how many of the given ids are live (not trashed).
	CountExisting(ids []int) (int, error)
	// AssignBatch sets employee_id on every lead in ids that is live and
	// unassigned, inside one transaction. If the affected-row count does not
	// match len(ids) the transaction is rolled back and the partial count is
	// returned with a nil error; the caller decides what the mismatch means.
	AssignBatch(employeeID int, ids []int) (int64, error)
	// Convert inserts the customer and flags the lead converted in one
	// transaction. Returns false (and rolls back) when the lead is not in a
	// convertible state anymore.
	Convert(leadID int, customer *models.Customer, now time.Time) (bool, error)

	CountByStatus() (map[models.LeadStatus]int, error)
	CountUnassigned() (int, error)
	CountConverted() (int, error)
}

type leadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) LeadRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &leadRepository{db: db}
}

const leadColumns = `
	id, company_name, city, address, lead_type, documentation, products,
	phone_no, email, reminder, quotation, status, lead_source, remark,
	employee_id, is_converted, converted_at, customer_id,
	deleted_at, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*models.Lead, error) {
	l := &models.Lead{}
	var (
		documentation sql.NullString
		products      []byte
		reminder      sql.NullTime
		employeeID    sql.NullInt64
		convertedAt   sql.NullTime
		customerID    sql.NullInt64
		deletedAt     sql.NullTime
	)
	err := row.Scan(
		&l.ID, &l.CompanyName, &l.City, &l.Address, &l.LeadType, &documentation, &products,
		&l.PhoneNo, &l.Email, &reminder, &l.Quotation, &l.Status, &l.LeadSource, &l.Remark,
		&employeeID, &l.IsConverted, &convertedAt, &customerID,
		&deletedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if documentation.Valid {
		s := documentation.String
		l.Documentation = &s
	}
	if len(products) > 0 {
		if err := json.Unmarshal(products, &l.Products); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
	}
	if reminder.Valid {
		t := reminder.Time
		l.Reminder = &t
	}
	if employeeID.Valid {
		id := int(employeeID.Int64)
		l.EmployeeID = &id
	}
	if convertedAt.Valid {
		t := convertedAt.Time
		l.ConvertedAt = &t
	}
	if customerID.Valid {
		id := int(customerID.Int64)
		l.CustomerID = &id
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		l.DeletedAt = &t
	}
	return l, nil
}

func (r *leadRepository) queryLeads(query string, args ...interface{}) ([]*models.Lead, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *leadRepository) Create(lead *models.Lead) error {
	const q = `
		INSERT INTO leads (
			company_name, city, address, lead_type, documentation, products,
			phone_no, email, reminder, quotation, status, lead_source, remark,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$14)
		RETURNING id
	`
	products, err := json.Marshal(lead.Products)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	lead.UpdatedAt = lead.CreatedAt
	return r.db.QueryRow(q,
		lead.CompanyName, lead.City, lead.Address, lead.LeadType, lead.Documentation, products,
		lead.PhoneNo, lead.Email, lead.Reminder, lead.Quotation, lead.Status, lead.LeadSource, lead.Remark,
		lead.CreatedAt,
	).Scan(&lead.ID)
}

// Update rewrites the editable fields only. Assignment and conversion state
// are changed through their dedicated operations.
func (r *leadRepository) Update(lead *models.Lead) error {
	const q = `
		UPDATE leads
		SET company_name=$1, city=$2, address=$3, lead_type=$4, documentation=$5,
		    products=$6, phone_no=$7, email=$8, reminder=$9, quotation=$10,
		    status=$11, lead_source=$12, remark=$13, updated_at=$14
		WHERE id=$15 AND deleted_at IS NULL
	`
	products, err := json.Marshal(lead.Products)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	_, err = r.db.Exec(q,
		lead.CompanyName, lead.City, lead.Address, lead.LeadType, lead.Documentation,
		products, lead.PhoneNo, lead.Email, lead.Reminder, lead.Quotation,
		lead.Status, lead.LeadSource, lead.Remark, time.Now(), lead.ID,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	return nil
}

func (r *leadRepository) GetByID(id int) (*models.Lead, error) {
	q := `SELECT ` + leadColumns + ` FROM leads WHERE id=$1 AND deleted_at IS NULL`
	l, err := scanLead(r.db.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

func (r *leadRepository) List(limit, offset int) ([]*models.Lead, error) {
	q := `SELECT ` + leadColumns + ` FROM leads WHERE deleted_at IS NULL ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryLeads(q, limit, offset)
}

func (r *leadRepository) ListByEmployee(employeeID, limit, offset int) ([]*models.Lead, error) {
	q := `SELECT ` + leadColumns + ` FROM leads WHERE employee_id=$1 AND deleted_at IS NULL ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryLeads(q, employeeID, limit, offset)
}

func (r *leadRepository) ListTrashed(limit, offset int) ([]*models.Lead, error) {
	q := `SELECT ` + leadColumns + ` FROM leads WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC LIMIT $1 OFFSET $2`
	return r.queryLeads(q, limit, offset)
}

func (r *leadRepository) ListAll() ([]*models.Lead, error) {
	q := `SELECT ` + leadColumns + ` FROM leads WHERE deleted_at IS NULL ORDER BY created_at DESC`
	return r.queryLeads(q)
}

// ListUnassigned is the assignable pool: live, unassigned, and not Rejected.
// Rejected leads are dead, not worth assigning.
func (r *leadRepository) ListUnassigned() ([]*models.Lead, error) {
	q := `SELECT ` + leadColumns + ` FROM leads
		WHERE employee_id IS NULL AND status <> 'Rejected' AND deleted_at IS NULL
		ORDER BY created_at DESC`
	return r.queryLeads(q)
}

func (r *leadRepository) SoftDelete(id int) (bool, error) {
	const q = `UPDATE leads SET deleted_at=$1 WHERE id=$2 AND deleted_at IS NULL`
	res, err := r.db.Exec(q, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("soft delete lead: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *leadRepository) Restore(id int) (bool, error) {
	const q = `UPDATE leads SET deleted_at=NULL, updated_at=$1 WHERE id=$2 AND deleted_at IS NOT NULL`
	res, err := r.db.Exec(q, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("restore lead: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *leadRepository) ForceDelete(id int) (bool, error) {
	const q = `DELETE FROM leads WHERE id=$1`
	res, err := r.db.Exec(q, id)
	if err != nil {
		return false, fmt.Errorf("force delete lead: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *leadRepository) UpdateStatus(id int, status models.LeadStatus) (bool, error) {
	const q = `UPDATE leads SET status=$1, updated_at=$2 WHERE id=$3 AND deleted_at IS NULL`
	res, err := r.db.Exec(q, status, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("update lead status: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *leadRepository) UpdateRemark(id int, remark string) (bool, error) {
	const q = `UPDATE leads SET remark=$1, updated_at=$2 WHERE id=$3 AND deleted_at IS NULL`
	res, err := r.db.Exec(q, remark, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("update lead remark: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *leadRepository) CountExisting(ids []int) (int, error) {
	const q = `SELECT COUNT(*) FROM leads WHERE id = ANY($1) AND deleted_at IS NULL`
	var count int
	err := r.db.QueryRow(q, pq.Array(ids)).Scan(&count)
	return count, err
}

func (r *leadRepository) AssignBatch(employeeID int, ids []int) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	// conditional update: only unassigned rows qualify, so a concurrent
	// assignment of any lead in the batch surfaces as a short row count
	const q = `
		UPDATE leads
		SET employee_id=$1, updated_at=$2
		WHERE id = ANY($3) AND employee_id IS NULL AND deleted_at IS NULL
	`
	res, err := tx.Exec(q, employeeID, time.Now(), pq.Array(ids))
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("assign leads: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if n != int64(len(ids)) {
		tx.Rollback()
		return n, nil
	}
	return n, tx.Commit()
}

func (r *leadRepository) Convert(leadID int, customer *models.Customer, now time.Time) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	const insertCustomer = `
		INSERT INTO customers (customer_name, city, address, phone_no, email, reminder, quotation, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)
		RETURNING id
	`
	if err := tx.QueryRow(insertCustomer,
		customer.CustomerName, customer.City, customer.Address, customer.PhoneNo,
		customer.Email, customer.Reminder, customer.Quotation, customer.Status, now,
	).Scan(&customer.ID); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("create customer from lead: %w", err)
	}

	const updateLead = `
		UPDATE leads
		SET is_converted=TRUE, converted_at=$1, customer_id=$2, updated_at=$1
		WHERE id=$3 AND status='Confirmed' AND is_converted=FALSE AND deleted_at IS NULL
	`
	res, err := tx.Exec(updateLead, now, customer.ID, leadID)
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("mark lead converted: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return false, err
	}
	if n == 0 {
		tx.Rollback()
		return false, nil
	}
	customer.CreatedAt = now
	customer.UpdatedAt = now
	return true, tx.Commit()
}

func (r *leadRepository) CountByStatus() (map[models.LeadStatus]int, error) {
	const q = `SELECT status, COUNT(*) FROM leads WHERE deleted_at IS NULL GROUP BY status`
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[models.LeadStatus]int{}
	for rows.Next() {
		var status models.LeadStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[status] = count
	}
	return out, rows.Err()
}

func (r *leadRepository) CountUnassigned() (int, error) {
	const q = `SELECT COUNT(*) FROM leads WHERE employee_id IS NULL AND status <> 'Rejected' AND deleted_at IS NULL`
	var count int
	err := r.db.QueryRow(q).Scan(&count)
	return count, err
}

func (r *leadRepository) CountConverted() (int, error) {
	const q = `SELECT COUNT(*) FROM leads WHERE is_converted=TRUE AND deleted_at IS NULL`
	var count int
	err := r.db.QueryRow(q).Scan(&count)
	return count, err
}
