package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/pkg/util"
)

// EmployeeRepository defines persistence access for employees.
type EmployeeRepository interface {
	Add(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	ListByManager(ctx context.Context, managerID int64) ([]domain.Employee, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByDocumentIndex(ctx context.Context, index string) (bool, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `
        id, first_name, last_name, email, document_number, document_number_index,
        password_hash, birth_date, role, manager_id, created_at, updated_at`

func (r *employeeRepository) Add(ctx context.Context, employee *domain.Employee) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO employees (first_name, last_name, email, document_number,
            document_number_index, password_hash, birth_date, role, manager_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.DocumentNumber,
		employee.DocumentNumberIndex,
		employee.PasswordHash,
		employee.BirthDate,
		employee.Role,
		employee.ManagerID,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
		return mapUniqueViolation(err)
	}

	if err := insertPhones(ctx, tx, employee.ID, employee.Phones); err != nil {
		return err
	}
	for i := range employee.Phones {
		employee.Phones[i].EmployeeID = employee.ID
	}

	return tx.Commit(ctx)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE employees
        SET first_name=$1, last_name=$2, email=$3, document_number=$4,
            document_number_index=$5, birth_date=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := tx.Exec(ctx, query,
		employee.FirstName,
		employee.LastName,
		employee.Email,
		employee.DocumentNumber,
		employee.DocumentNumberIndex,
		employee.BirthDate,
		employee.ID,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	// Phones are replaced wholesale, never merged.
	if _, err := tx.Exec(ctx, `DELETE FROM employee_phones WHERE employee_id=$1`, employee.ID); err != nil {
		return err
	}
	if err := insertPhones(ctx, tx, employee.ID, employee.Phones); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	const query = `SELECT` + employeeColumns + ` FROM employees WHERE id=$1`
	return scanEmployee(r.pool.QueryRow(ctx, query, id))
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	const query = `SELECT` + employeeColumns + ` FROM employees WHERE email=$1`
	return scanEmployee(r.pool.QueryRow(ctx, query, email))
}

func (r *employeeRepository) ListByManager(ctx context.Context, managerID int64) ([]domain.Employee, error) {
	const query = `SELECT` + employeeColumns + ` FROM employees WHERE manager_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *employee)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id=$1)`, id)
}

func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE email=$1)`, email)
}

func (r *employeeRepository) ExistsByDocumentIndex(ctx context.Context, index string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE document_number_index=$1)`, index)
}

func (r *employeeRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	if err := row.Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.DocumentNumber,
		&employee.DocumentNumberIndex,
		&employee.PasswordHash,
		&employee.BirthDate,
		&employee.Role,
		&employee.ManagerID,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

func insertPhones(ctx context.Context, tx pgx.Tx, employeeID int64, phones []domain.Phone) error {
	const query = `
        INSERT INTO employee_phones (employee_id, number, type)
        VALUES ($1, $2, $3)
        RETURNING id`

	for i := range phones {
		if err := tx.QueryRow(ctx, query, employeeID, phones[i].Number, phones[i].Type).
			Scan(&phones[i].ID); err != nil {
			return err
		}
	}
	return nil
}

// mapUniqueViolation translates a constraint violation at commit time into
// the same duplicate-value kind the validation stage would have produced.
// Uniqueness validation is check-then-act and inherently racy, so the write
// path carries this fallback.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "employees_email_key":
		return util.NewFieldError(util.KindDuplicateEmail, "email", "Email is already in use.")
	case "employees_document_number_index_key":
		return util.NewFieldError(util.KindDuplicateDocument, "documentNumber", "Document number is already in use.")
	default:
		return err
	}
}
