package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-directory/internal/auth"
	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/internal/repository"
	"github.com/spec-kit/employee-directory/internal/security/fieldcrypt"
	"github.com/spec-kit/employee-directory/pkg/util"
)

// EmployeeService enforces who may create, read, update and delete which
// records, and shapes entities before and after persistence. Every privilege
// decision goes through the role hierarchy; every failure is a single tagged
// domain error surfaced to the caller unchanged.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	phones     repository.PhoneRepository
	cipher     *fieldcrypt.Cipher
	bcryptCost int
}

// EmployeeDependencies encapsulates collaborator requirements.
type EmployeeDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	PhoneRepo    repository.PhoneRepository
	Cipher       *fieldcrypt.Cipher
	BcryptCost   int
}

// NewEmployeeService builds the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{
		employees:  deps.EmployeeRepo,
		phones:     deps.PhoneRepo,
		cipher:     deps.Cipher,
		bcryptCost: deps.BcryptCost,
	}
}

// CreateEmployeeInput carries the mutable fields for a new employee.
type CreateEmployeeInput struct {
	FirstName      string
	LastName       string
	Email          string
	DocumentNumber string
	Password       string
	BirthDate      time.Time
	Role           domain.Role
	Phones         []domain.Phone
}

// Create constructs a new employee owned by the caller. The target role may
// not outrank the caller's; creating a peer of equal rank is allowed. No I/O
// happens here, the caller persists the returned entity.
func (s *EmployeeService) Create(in CreateEmployeeInput, callerRole domain.Role, callerID int64) (*domain.Employee, error) {
	if in.Role.Outranks(callerRole) {
		return nil, util.NewDomainError(util.KindHigherPermission,
			"You cannot create an employee with higher permissions.")
	}

	passwordHash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	documentEncrypted, err := s.cipher.Encrypt(in.DocumentNumber)
	if err != nil {
		return nil, err
	}

	managerID := callerID
	return &domain.Employee{
		FirstName:           in.FirstName,
		LastName:            in.LastName,
		Email:               in.Email,
		DocumentNumber:      documentEncrypted,
		DocumentNumberIndex: fieldcrypt.IndexHash(in.DocumentNumber),
		PasswordHash:        passwordHash,
		BirthDate:           in.BirthDate,
		Role:                in.Role,
		ManagerID:           &managerID,
		Phones:              in.Phones,
	}, nil
}

// UpdateEmployeeInput carries the mutable fields for an update. The phone
// collection replaces the stored one wholesale.
type UpdateEmployeeInput struct {
	FirstName      string
	LastName       string
	Email          string
	DocumentNumber string
	BirthDate      time.Time
	Phones         []domain.Phone
}

// Update loads the target, checks the caller outranks or matches its current
// role, and overwrites the mutable fields with re-encrypted document data.
func (s *EmployeeService) Update(ctx context.Context, id int64, in UpdateEmployeeInput, callerRole domain.Role) (*domain.Employee, error) {
	employee, err := s.loadEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee.Role.Outranks(callerRole) {
		return nil, util.NewDomainError(util.KindHigherPermission,
			"You cannot update an employee with higher permissions.")
	}

	documentEncrypted, err := s.cipher.Encrypt(in.DocumentNumber)
	if err != nil {
		return nil, err
	}

	employee.FirstName = in.FirstName
	employee.LastName = in.LastName
	employee.Email = in.Email
	employee.BirthDate = in.BirthDate
	employee.DocumentNumber = documentEncrypted
	employee.DocumentNumberIndex = fieldcrypt.IndexHash(in.DocumentNumber)
	employee.Phones = in.Phones

	return employee, nil
}

// Delete loads the target and returns it for the caller to persist the
// removal. The manager-less seed administrator can never be deleted.
func (s *EmployeeService) Delete(ctx context.Context, id int64, callerRole domain.Role) (*domain.Employee, error) {
	employee, err := s.loadEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee.Role.Outranks(callerRole) {
		return nil, util.NewDomainError(util.KindHigherPermission,
			"You cannot delete an employee with higher permissions.")
	}
	if employee.IsRootAdmin() {
		return nil, util.NewDomainError(util.KindCannotDeleteRootAdmin,
			"The root administrator cannot be deleted.")
	}
	return employee, nil
}

// ListSubordinates returns the employees managed by the caller. Callers at
// the lowest tier may not list.
func (s *EmployeeService) ListSubordinates(ctx context.Context, callerRole domain.Role, callerID int64) ([]domain.Employee, error) {
	if !callerRole.AtLeast(domain.RoleLeader) {
		return nil, util.NewDomainError(util.KindHigherPermission,
			"You do not have permission to list employees.")
	}
	return s.employees.ListByManager(ctx, callerID)
}

// GetByID returns one employee with its phone numbers resolved. An employee
// without phones is a data-integrity problem and is surfaced as a hard
// error rather than an empty list.
func (s *EmployeeService) GetByID(ctx context.Context, id int64, callerRole domain.Role) (*domain.Employee, error) {
	if !callerRole.AtLeast(domain.RoleLeader) {
		return nil, util.NewDomainError(util.KindHigherPermission,
			"You do not have permission to view employees.")
	}

	employee, err := s.loadEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	phones, err := s.phones.ListByEmployeeID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(phones) == 0 {
		return nil, util.NewDomainError(util.KindEmployeeHasNoPhones,
			fmt.Sprintf("No phones found for employee %d.", id))
	}
	employee.Phones = phones

	return employee, nil
}

// AuthenticateByCredentials verifies an email/password pair. Unknown email
// and wrong password produce the identical error, so callers cannot
// enumerate accounts.
func (s *EmployeeService) AuthenticateByCredentials(ctx context.Context, email, password string) (*domain.Employee, error) {
	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewDomainError(util.KindInvalidCredentials, "Invalid credentials.")
		}
		return nil, err
	}
	if err := auth.ComparePassword(employee.PasswordHash, password); err != nil {
		return nil, util.NewDomainError(util.KindInvalidCredentials, "Invalid credentials.")
	}
	return employee, nil
}

// DecryptDocumentNumber reverses the at-rest encryption for presentation.
func (s *EmployeeService) DecryptDocumentNumber(employee *domain.Employee) (string, error) {
	return s.cipher.Decrypt(employee.DocumentNumber)
}

func (s *EmployeeService) loadEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewDomainError(util.KindEmployeeNotFound, "Employee not found.")
		}
		return nil, err
	}
	return employee, nil
}
