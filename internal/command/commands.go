package command

import (
	"time"

	"github.com/spec-kit/employee-directory/internal/auth"
	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/pkg/util"
)

// PhoneInput is a phone entry on an inbound command.
type PhoneInput struct {
	Number string
	Type   domain.PhoneType
}

func phonesFromInput(inputs []PhoneInput) []domain.Phone {
	phones := make([]domain.Phone, 0, len(inputs))
	for _, in := range inputs {
		phones = append(phones, domain.Phone{Number: in.Number, Type: in.Type})
	}
	return phones
}

// CreateEmployeeCommand creates a new employee owned by the caller.
type CreateEmployeeCommand struct {
	FirstName      string
	LastName       string
	Email          string
	DocumentNumber string
	Password       string
	BirthDate      time.Time
	Role           domain.Role
	Phones         []PhoneInput

	Caller auth.Identity
}

func (c CreateEmployeeCommand) WithIdentity(identity auth.Identity) CreateEmployeeCommand {
	c.Caller = identity
	return c
}

// CreateEmployeeResult reports the created employee id.
type CreateEmployeeResult struct {
	Success      bool
	EmployeeID   int64
	ErrorKind    util.Kind
	ErrorMessage string
}

func (CreateEmployeeResult) Fail(kind util.Kind, message string) CreateEmployeeResult {
	return CreateEmployeeResult{ErrorKind: kind, ErrorMessage: message}
}

// UpdateEmployeeCommand overwrites the mutable fields of an employee.
type UpdateEmployeeCommand struct {
	EmployeeID     int64
	FirstName      string
	LastName       string
	Email          string
	DocumentNumber string
	BirthDate      time.Time
	Phones         []PhoneInput

	Caller auth.Identity
}

func (c UpdateEmployeeCommand) WithIdentity(identity auth.Identity) UpdateEmployeeCommand {
	c.Caller = identity
	return c
}

// UpdateEmployeeResult carries the updated employee.
type UpdateEmployeeResult struct {
	Success      bool
	Employee     *domain.Employee
	ErrorKind    util.Kind
	ErrorMessage string
}

func (UpdateEmployeeResult) Fail(kind util.Kind, message string) UpdateEmployeeResult {
	return UpdateEmployeeResult{ErrorKind: kind, ErrorMessage: message}
}

// DeleteEmployeeCommand removes an employee.
type DeleteEmployeeCommand struct {
	EmployeeID int64

	Caller auth.Identity
}

func (c DeleteEmployeeCommand) WithIdentity(identity auth.Identity) DeleteEmployeeCommand {
	c.Caller = identity
	return c
}

// DeleteEmployeeResult reports deletion.
type DeleteEmployeeResult struct {
	Success      bool
	ErrorKind    util.Kind
	ErrorMessage string
}

func (DeleteEmployeeResult) Fail(kind util.Kind, message string) DeleteEmployeeResult {
	return DeleteEmployeeResult{ErrorKind: kind, ErrorMessage: message}
}

// GetEmployeeCommand fetches one employee with phones resolved.
type GetEmployeeCommand struct {
	EmployeeID int64

	Caller auth.Identity
}

func (c GetEmployeeCommand) WithIdentity(identity auth.Identity) GetEmployeeCommand {
	c.Caller = identity
	return c
}

// GetEmployeeResult carries the employee and its decrypted document number.
type GetEmployeeResult struct {
	Success        bool
	Employee       *domain.Employee
	DocumentNumber string
	ErrorKind      util.Kind
	ErrorMessage   string
}

func (GetEmployeeResult) Fail(kind util.Kind, message string) GetEmployeeResult {
	return GetEmployeeResult{ErrorKind: kind, ErrorMessage: message}
}

// ListSubordinatesCommand lists the employees managed by the caller.
type ListSubordinatesCommand struct {
	Caller auth.Identity
}

func (c ListSubordinatesCommand) WithIdentity(identity auth.Identity) ListSubordinatesCommand {
	c.Caller = identity
	return c
}

// ListSubordinatesResult carries the caller's subordinates.
type ListSubordinatesResult struct {
	Success      bool
	Employees    []domain.Employee
	ErrorKind    util.Kind
	ErrorMessage string
}

func (ListSubordinatesResult) Fail(kind util.Kind, message string) ListSubordinatesResult {
	return ListSubordinatesResult{ErrorKind: kind, ErrorMessage: message}
}

// LoginCommand authenticates by credentials. It is not identity-aware:
// login is the operation that establishes identity.
type LoginCommand struct {
	Email    string
	Password string
}

// LoginResult carries the authenticated employee and a fresh access token.
type LoginResult struct {
	Success      bool
	Employee     *domain.Employee
	Token        string
	ExpiresAt    time.Time
	ErrorKind    util.Kind
	ErrorMessage string
}

func (LoginResult) Fail(kind util.Kind, message string) LoginResult {
	return LoginResult{ErrorKind: kind, ErrorMessage: message}
}
