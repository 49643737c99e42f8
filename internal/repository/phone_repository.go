package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-directory/internal/domain"
)

// PhoneRepository defines read access to employee phone numbers.
type PhoneRepository interface {
	ListByEmployeeID(ctx context.Context, employeeID int64) ([]domain.Phone, error)
}

type phoneRepository struct {
	pool *pgxpool.Pool
}

// NewPhoneRepository returns a Postgres-backed implementation.
func NewPhoneRepository(pool *pgxpool.Pool) PhoneRepository {
	return &phoneRepository{pool: pool}
}

func (r *phoneRepository) ListByEmployeeID(ctx context.Context, employeeID int64) ([]domain.Phone, error) {
	const query = `
        SELECT id, employee_id, number, type
        FROM employee_phones WHERE employee_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phones := make([]domain.Phone, 0)
	for rows.Next() {
		var phone domain.Phone
		if err := rows.Scan(&phone.ID, &phone.EmployeeID, &phone.Number, &phone.Type); err != nil {
			return nil, err
		}
		phones = append(phones, phone)
	}
	return phones, rows.Err()
}
