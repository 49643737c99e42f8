package dto

import (
	"time"

	"github.com/spec-kit/employee-directory/internal/domain"
)

// BirthDateLayout is the wire format for date-only fields.
const BirthDateLayout = "2006-01-02"

// PhoneRequest is a phone entry on employee payloads.
type PhoneRequest struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

// EmployeeCreateRequest payload for new employees.
type EmployeeCreateRequest struct {
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Email          string         `json:"email"`
	DocumentNumber string         `json:"documentNumber"`
	Password       string         `json:"password"`
	BirthDate      string         `json:"birthDate"`
	Role           string         `json:"role"`
	Phones         []PhoneRequest `json:"phones"`
}

// EmployeeUpdateRequest payload for updates. Phones replace the stored
// collection wholesale.
type EmployeeUpdateRequest struct {
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Email          string         `json:"email"`
	DocumentNumber string         `json:"documentNumber"`
	BirthDate      string         `json:"birthDate"`
	Phones         []PhoneRequest `json:"phones"`
}

// PhoneResponse is a phone entry on employee responses.
type PhoneResponse struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

// EmployeeResponse is the employee shape returned to clients. The document
// number is only populated on detail reads, decrypted for presentation.
type EmployeeResponse struct {
	ID             int64           `json:"id"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	BirthDate      string          `json:"birthDate"`
	Role           string          `json:"role"`
	ManagerID      *int64          `json:"managerId,omitempty"`
	DocumentNumber string          `json:"documentNumber,omitempty"`
	Phones         []PhoneResponse `json:"phones,omitempty"`
}

// NewEmployeeResponse maps a domain employee to its response shape.
func NewEmployeeResponse(employee *domain.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        employee.ID,
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		Email:     employee.Email,
		BirthDate: employee.BirthDate.Format(BirthDateLayout),
		Role:      employee.Role.String(),
		ManagerID: employee.ManagerID,
	}
	for _, phone := range employee.Phones {
		resp.Phones = append(resp.Phones, PhoneResponse{Number: phone.Number, Type: string(phone.Type)})
	}
	return resp
}

// ParseBirthDate parses the date-only wire format.
func ParseBirthDate(value string) (time.Time, bool) {
	parsed, err := time.Parse(BirthDateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
