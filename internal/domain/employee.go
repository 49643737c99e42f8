package domain

import "time"

// PhoneType enumerates contact-channel kinds for an employee phone.
type PhoneType string

const (
	PhoneTypeMobile    PhoneType = "MOBILE"
	PhoneTypeLandline  PhoneType = "LANDLINE"
	PhoneTypeWork      PhoneType = "WORK"
	PhoneTypeHome      PhoneType = "HOME"
	PhoneTypeFax       PhoneType = "FAX"
	PhoneTypeEmergency PhoneType = "EMERGENCY"
	PhoneTypeOther     PhoneType = "OTHER"
)

// IsValid reports whether t is a known phone type.
func (t PhoneType) IsValid() bool {
	switch t {
	case PhoneTypeMobile, PhoneTypeLandline, PhoneTypeWork, PhoneTypeHome,
		PhoneTypeFax, PhoneTypeEmergency, PhoneTypeOther:
		return true
	}
	return false
}

// Phone is owned exclusively by its employee; it has no independent lifecycle
// and the whole collection is replaced wholesale on update.
type Phone struct {
	ID         int64
	EmployeeID int64
	Number     string
	Type       PhoneType
}

// Employee is the directory's central record. DocumentNumber holds the
// encrypted-at-rest form; DocumentNumberIndex is the deterministic lookup
// hash used for uniqueness checks without decryption.
type Employee struct {
	ID                  int64
	FirstName           string
	LastName            string
	Email               string
	DocumentNumber      string
	DocumentNumberIndex string
	PasswordHash        string
	BirthDate           time.Time
	Role                Role
	ManagerID           *int64
	Phones              []Phone
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsRootAdmin reports whether the employee is the manager-less seed
// administrator, which must never be deleted.
func (e *Employee) IsRootAdmin() bool {
	return e.Role == RoleAdmin && e.ManagerID == nil
}
