package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"

	"github.com/UnknownOlympus/hrnet/internal/models"
)

const (
	// DateLayout is the ISO calendar date layout used by every date field.
	DateLayout = models.DateLayout
	// MinimumAge is the youngest age, in whole years, an employee may have.
	MinimumAge = 18
)

var fieldRules = newFieldRules()

func newFieldRules() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", func(fl playground.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic("failed to register notblank rule: " + err.Error())
	}

	return v
}

// Validate checks a candidate against the field constraints and the records already stored.
// Only the first failing check is reported, in this order: required fields, age,
// date ordering, state, department, duplicate. The candidate is trimmed before
// checking, and the trimmed record is returned on success.
func Validate(candidate models.Employee, existing []models.Employee, now time.Time) (models.Employee, error) {
	employee := candidate.Trimmed()

	if err := checkFields(employee); err != nil {
		return models.Employee{}, err
	}

	// Formats were checked above, so parsing cannot fail here.
	birth, _ := time.Parse(DateLayout, employee.DateOfBirth)
	start, _ := time.Parse(DateLayout, employee.StartDate)

	if Age(birth, now) < MinimumAge {
		return models.Employee{}, newError(KindAgeTooYoung, models.FieldDateOfBirth,
			fmt.Sprintf("Employee must be at least %d years old", MinimumAge))
	}

	if !start.After(birth) {
		return models.Employee{}, newError(KindStartBeforeBirth, models.FieldStartDate,
			"Start date must be after date of birth")
	}

	if !models.IsState(employee.State) {
		return models.Employee{}, newError(KindInvalidState, models.FieldState,
			fmt.Sprintf("Invalid state: %q", employee.State))
	}

	if !models.IsDepartment(employee.Department) {
		return models.Employee{}, newError(KindInvalidDepartment, models.FieldDepartment,
			fmt.Sprintf("Invalid department: %q", employee.Department))
	}

	if IsDuplicate(employee, existing) {
		return models.Employee{}, newError(KindDuplicateEmployee, "", "This employee already exists")
	}

	return employee, nil
}

// IsDuplicate reports whether an identical record is already present.
// Stored records are compared trimmed, as candidates are.
func IsDuplicate(employee models.Employee, existing []models.Employee) bool {
	employee = employee.Trimmed()
	for _, other := range existing {
		if other.Trimmed() == employee {
			return true
		}
	}
	return false
}

// Age returns the number of full years between birth and now.
func Age(birth, now time.Time) int {
	ny, nm, nd := now.Date()
	by, bm, bd := birth.Date()

	age := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}

	return age
}

func checkFields(employee models.Employee) error {
	err := fieldRules.Struct(employee)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate employee fields: %w", err)
	}

	first := fieldErrs[0]
	label := models.FieldLabels[first.Field()]

	if first.Tag() == "datetime" {
		return newError(KindMissingField, first.Field(),
			fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", label))
	}

	return newError(KindMissingField, first.Field(), label+" is required")
}
