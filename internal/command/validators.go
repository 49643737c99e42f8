package command

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/spec-kit/employee-directory/internal/security/fieldcrypt"
	"github.com/spec-kit/employee-directory/pkg/util"
)

// Validators run in a fixed order and short-circuit on the first failing
// rule, so a single failure is reported with its field name and nothing
// after it (including storage lookups) executes.

func (b *Bus) validateCreate(ctx context.Context, cmd CreateEmployeeCommand) error {
	if strings.TrimSpace(cmd.FirstName) == "" {
		return util.NewFieldError(util.KindInvalidInput, "firstName", "First name is required.")
	}
	if strings.TrimSpace(cmd.LastName) == "" {
		return util.NewFieldError(util.KindInvalidInput, "lastName", "Last name is required.")
	}

	if strings.TrimSpace(cmd.DocumentNumber) == "" {
		return util.NewFieldError(util.KindInvalidInput, "documentNumber", "Document number is required.")
	}
	taken, err := b.employees.ExistsByDocumentIndex(ctx, fieldcrypt.IndexHash(cmd.DocumentNumber))
	if err != nil {
		return err
	}
	if taken {
		return util.NewFieldError(util.KindDuplicateDocument, "documentNumber", "Document number is already in use.")
	}

	if err := validatePassword(cmd.Password); err != nil {
		return err
	}
	if err := validateBirthDate(cmd.BirthDate); err != nil {
		return err
	}
	if err := b.validateEmail(ctx, cmd.Email); err != nil {
		return err
	}

	if len(cmd.Phones) == 0 {
		return util.NewFieldError(util.KindInvalidInput, "phones", "At least one phone is required.")
	}
	for _, phone := range cmd.Phones {
		if strings.TrimSpace(phone.Number) == "" {
			return util.NewFieldError(util.KindInvalidInput, "phones", "Phone number is required.")
		}
		if !phone.Type.IsValid() {
			return util.NewFieldError(util.KindInvalidInput, "phones", "Unknown phone type.")
		}
	}
	return nil
}

func (b *Bus) validateUpdate(ctx context.Context, cmd UpdateEmployeeCommand) error {
	if cmd.EmployeeID <= 0 {
		return util.NewFieldError(util.KindInvalidInput, "employeeId", "Invalid employee id.")
	}
	if strings.TrimSpace(cmd.FirstName) == "" {
		return util.NewFieldError(util.KindInvalidInput, "firstName", "First name is required.")
	}
	if strings.TrimSpace(cmd.LastName) == "" {
		return util.NewFieldError(util.KindInvalidInput, "lastName", "Last name is required.")
	}
	if strings.TrimSpace(cmd.DocumentNumber) == "" {
		return util.NewFieldError(util.KindInvalidInput, "documentNumber", "Document number is required.")
	}
	if err := validateBirthDate(cmd.BirthDate); err != nil {
		return err
	}
	return b.validateEmail(ctx, cmd.Email)
}

func (b *Bus) validateDelete(ctx context.Context, cmd DeleteEmployeeCommand) error {
	if cmd.EmployeeID <= 0 {
		return util.NewFieldError(util.KindInvalidInput, "employeeId", "Invalid employee id.")
	}
	exists, err := b.employees.ExistsByID(ctx, cmd.EmployeeID)
	if err != nil {
		return err
	}
	if !exists {
		return util.NewFieldError(util.KindEmployeeNotFound, "employeeId", "Employee not found.")
	}
	return nil
}

func (b *Bus) validateGet(_ context.Context, cmd GetEmployeeCommand) error {
	if cmd.EmployeeID <= 0 {
		return util.NewFieldError(util.KindInvalidInput, "employeeId", "Invalid employee id.")
	}
	return nil
}

func (b *Bus) validateLogin(_ context.Context, cmd LoginCommand) error {
	if strings.TrimSpace(cmd.Email) == "" {
		return util.NewFieldError(util.KindInvalidInput, "email", "Email is required.")
	}
	if strings.TrimSpace(cmd.Password) == "" {
		return util.NewFieldError(util.KindInvalidInput, "password", "Password is required.")
	}
	return nil
}

func (b *Bus) validateEmail(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return util.NewFieldError(util.KindInvalidInput, "email", "Email is required.")
	}
	trimmed := strings.TrimSpace(email)
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return util.NewFieldError(util.KindInvalidInput, "email", "Invalid email format.")
	}
	taken, err := b.employees.ExistsByEmail(ctx, trimmed)
	if err != nil {
		return err
	}
	if taken {
		return util.NewFieldError(util.KindDuplicateEmail, "email", "Email is already in use.")
	}
	return nil
}

func validatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return util.NewFieldError(util.KindInvalidInput, "password", "Password is required.")
	}
	if len(password) < 8 {
		return util.NewFieldError(util.KindInvalidInput, "password", "Password must have at least 8 characters.")
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return util.NewFieldError(util.KindInvalidInput, "password", "Password must contain at least one uppercase letter.")
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return util.NewFieldError(util.KindInvalidInput, "password", "Password must contain at least one number.")
	}
	return nil
}

func validateBirthDate(birthDate time.Time) error {
	if birthDate.IsZero() {
		return util.NewFieldError(util.KindInvalidInput, "birthDate", "Birth date is required.")
	}
	if birthDate.After(time.Now().AddDate(-18, 0, 0)) {
		return util.NewFieldError(util.KindInvalidInput, "birthDate", "Employee must be older than 18.")
	}
	return nil
}
