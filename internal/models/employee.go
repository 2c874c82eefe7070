package models

import (
	"net/url"
	"strings"
	"time"
)

const (
	// DateLayout is the ISO calendar date layout used by every date field.
	DateLayout = "2006-01-02"
	// DisplayDateLayout is how dates are shown in the employee table.
	DisplayDateLayout = "02/01/2006"
)

// Employee represents an employee record as entered through the add-employee form.
// Dates are ISO calendar dates (YYYY-MM-DD).
type Employee struct {
	FirstName   string `json:"firstName"   validate:"notblank"`
	LastName    string `json:"lastName"    validate:"notblank"`
	DateOfBirth string `json:"dateOfBirth" validate:"notblank,datetime=2006-01-02"`
	StartDate   string `json:"startDate"   validate:"notblank,datetime=2006-01-02"`
	Street      string `json:"street"      validate:"notblank"`
	City        string `json:"city"        validate:"notblank"`
	State       string `json:"state"       validate:"notblank"`
	ZipCode     string `json:"zipCode"     validate:"notblank"`
	Department  string `json:"department"  validate:"notblank"`
}

// Field names as they appear in forms, query parameters and the persisted blob.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldDateOfBirth = "dateOfBirth"
	FieldStartDate   = "startDate"
	FieldStreet      = "street"
	FieldCity        = "city"
	FieldState       = "state"
	FieldZipCode     = "zipCode"
	FieldDepartment  = "department"
)

// Fields lists every record field in form order.
var Fields = []string{
	FieldFirstName,
	FieldLastName,
	FieldDateOfBirth,
	FieldStartDate,
	FieldStreet,
	FieldCity,
	FieldState,
	FieldZipCode,
	FieldDepartment,
}

// FieldLabels maps field names to column headers.
var FieldLabels = map[string]string{
	FieldFirstName:   "First Name",
	FieldLastName:    "Last Name",
	FieldDateOfBirth: "Date of Birth",
	FieldStartDate:   "Start Date",
	FieldStreet:      "Street",
	FieldCity:        "City",
	FieldState:       "State",
	FieldZipCode:     "Zip Code",
	FieldDepartment:  "Department",
}

// IsField reports whether name is a known record field.
func IsField(name string) bool {
	_, ok := FieldLabels[name]
	return ok
}

// Value returns the value of the named field, or "" for unknown names.
func (e Employee) Value(field string) string {
	switch field {
	case FieldFirstName:
		return e.FirstName
	case FieldLastName:
		return e.LastName
	case FieldDateOfBirth:
		return e.DateOfBirth
	case FieldStartDate:
		return e.StartDate
	case FieldStreet:
		return e.Street
	case FieldCity:
		return e.City
	case FieldState:
		return e.State
	case FieldZipCode:
		return e.ZipCode
	case FieldDepartment:
		return e.Department
	default:
		return ""
	}
}

// Display returns the value of the named field as shown in the employee table.
// Dates are rendered as dd/mm/yyyy; values that do not parse are returned unchanged.
func (e Employee) Display(field string) string {
	value := e.Value(field)
	if field != FieldDateOfBirth && field != FieldStartDate {
		return value
	}

	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return value
	}

	return date.Format(DisplayDateLayout)
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (e Employee) Trimmed() Employee {
	return Employee{
		FirstName:   strings.TrimSpace(e.FirstName),
		LastName:    strings.TrimSpace(e.LastName),
		DateOfBirth: strings.TrimSpace(e.DateOfBirth),
		StartDate:   strings.TrimSpace(e.StartDate),
		Street:      strings.TrimSpace(e.Street),
		City:        strings.TrimSpace(e.City),
		State:       strings.TrimSpace(e.State),
		ZipCode:     strings.TrimSpace(e.ZipCode),
		Department:  strings.TrimSpace(e.Department),
	}
}

// BindForm builds an Employee from submitted form values keyed by field name.
func BindForm(values url.Values) Employee {
	return Employee{
		FirstName:   values.Get(FieldFirstName),
		LastName:    values.Get(FieldLastName),
		DateOfBirth: values.Get(FieldDateOfBirth),
		StartDate:   values.Get(FieldStartDate),
		Street:      values.Get(FieldStreet),
		City:        values.Get(FieldCity),
		State:       values.Get(FieldState),
		ZipCode:     values.Get(FieldZipCode),
		Department:  values.Get(FieldDepartment),
	}
}
