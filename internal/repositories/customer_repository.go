package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"salescrm/internal/models"
)

type CustomerRepository interface {
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	GetByID(id int) (*models.Customer, error)
	List(limit, offset int) ([]*models.Customer, error)
	ListTrashed(limit, offset int) ([]*models.Customer, error)
	ListAll() ([]*models.Customer, error)
	SoftDelete(id int) (bool, error)
	Restore(id int) (bool, error)
	ForceDelete(id int) (bool, error)
	Count() (int, error)
}

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `
	id, customer_name, city, address, phone_no, email, reminder, quotation,
	status, deleted_at, created_at, updated_at
`

func scanCustomer(row rowScanner) (*models.Customer, error) {
	c := &models.Customer{}
	var (
		reminder  sql.NullTime
		deletedAt sql.NullTime
	)
	err := row.Scan(
		&c.ID, &c.CustomerName, &c.City, &c.Address, &c.PhoneNo, &c.Email,
		&reminder, &c.Quotation, &c.Status, &deletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reminder.Valid {
		t := reminder.Time
		c.Reminder = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		c.DeletedAt = &t
	}
	return c, nil
}

func (r *customerRepository) queryCustomers(query string, args ...interface{}) ([]*models.Customer, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *customerRepository) Create(customer *models.Customer) error {
	const q = `
		INSERT INTO customers (customer_name, city, address, phone_no, email, reminder, quotation, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)
		RETURNING id
	`
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	customer.UpdatedAt = customer.CreatedAt
	if err := r.db.QueryRow(q,
		customer.CustomerName, customer.City, customer.Address, customer.PhoneNo,
		customer.Email, customer.Reminder, customer.Quotation, customer.Status, customer.CreatedAt,
	).Scan(&customer.ID); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Update(customer *models.Customer) error {
	const q = `
		UPDATE customers
		SET customer_name=$1, city=$2, address=$3, phone_no=$4, email=$5,
		    reminder=$6, quotation=$7, status=$8, updated_at=$9
		WHERE id=$10 AND deleted_at IS NULL
	`
	if _, err := r.db.Exec(q,
		customer.CustomerName, customer.City, customer.Address, customer.PhoneNo,
		customer.Email, customer.Reminder, customer.Quotation, customer.Status,
		time.Now(), customer.ID,
	); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (r *customerRepository) GetByID(id int) (*models.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1 AND deleted_at IS NULL`
	c, err := scanCustomer(r.db.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *customerRepository) List(limit, offset int) ([]*models.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers WHERE deleted_at IS NULL ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryCustomers(q, limit, offset)
}

func (r *customerRepository) ListTrashed(limit, offset int) ([]*models.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC LIMIT $1 OFFSET $2`
	return r.queryCustomers(q, limit, offset)
}

func (r *customerRepository) ListAll() ([]*models.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers WHERE deleted_at IS NULL ORDER BY created_at DESC`
	return r.queryCustomers(q)
}

func (r *customerRepository) SoftDelete(id int) (bool, error) {
	const q = `UPDATE customers SET deleted_at=$1 WHERE id=$2 AND deleted_at IS NULL`
	res, err := r.db.Exec(q, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("soft delete customer: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *customerRepository) Restore(id int) (bool, error) {
	const q = `UPDATE customers SET deleted_at=NULL, updated_at=$1 WHERE id=$2 AND deleted_at IS NOT NULL`
	res, err := r.db.Exec(q, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("restore customer: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *customerRepository) ForceDelete(id int) (bool, error) {
	const q = `DELETE FROM customers WHERE id=$1`
	res, err := r.db.Exec(q, id)
	if err != nil {
		return false, fmt.Errorf("force delete customer: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *customerRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM customers WHERE deleted_at IS NULL`).Scan(&count)
	return count, err
}
