package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnknownOlympus/hrnet/internal/models"
	"github.com/UnknownOlympus/hrnet/internal/validator"
)

var now = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func validEmployee() models.Employee {
	return models.Employee{
		FirstName:   "Jean",
		LastName:    "Dupont",
		DateOfBirth: "1990-01-15",
		StartDate:   "2024-01-01",
		Street:      "123 Main Street",
		City:        "Los Angeles",
		State:       "California",
		ZipCode:     "90001",
		Department:  "Sales",
	}
}

func TestValidate_Success(t *testing.T) {
	t.Parallel()

	employee, err := validator.Validate(validEmployee(), nil, now)

	require.NoError(t, err)
	assert.Equal(t, validEmployee(), employee)
}

func TestValidate_TrimsFields(t *testing.T) {
	t.Parallel()

	candidate := validEmployee()
	candidate.FirstName = "  Jean "
	candidate.Department = "Sales\t"

	employee, err := validator.Validate(candidate, nil, now)

	require.NoError(t, err)
	assert.Equal(t, validEmployee(), employee)
}

func TestValidate_MissingField(t *testing.T) {
	t.Parallel()

	for _, field := range models.Fields {
		t.Run(field, func(t *testing.T) {
			t.Parallel()

			values := map[string]string{}
			for _, f := range models.Fields {
				values[f] = validEmployee().Value(f)
			}
			values[field] = "   "
			candidate := models.Employee{
				FirstName:   values[models.FieldFirstName],
				LastName:    values[models.FieldLastName],
				DateOfBirth: values[models.FieldDateOfBirth],
				StartDate:   values[models.FieldStartDate],
				Street:      values[models.FieldStreet],
				City:        values[models.FieldCity],
				State:       values[models.FieldState],
				ZipCode:     values[models.FieldZipCode],
				Department:  values[models.FieldDepartment],
			}

			_, err := validator.Validate(candidate, nil, now)

			require.ErrorIs(t, err, validator.ErrMissingField)
			verr, ok := validator.AsError(err)
			require.True(t, ok)
			assert.Equal(t, field, verr.Field)
			assert.Equal(t, models.FieldLabels[field]+" is required", verr.Message)
		})
	}
}

func TestValidate_FirstMissingFieldWins(t *testing.T) {
	t.Parallel()

	_, err := validator.Validate(models.Employee{}, nil, now)

	verr, ok := validator.AsError(err)
	require.True(t, ok)
	assert.Equal(t, validator.KindMissingField, verr.Kind)
	assert.Equal(t, models.FieldFirstName, verr.Field)
}

func TestValidate_MalformedDate(t *testing.T) {
	t.Parallel()

	candidate := validEmployee()
	candidate.StartDate = "01/01/2024"

	_, err := validator.Validate(candidate, nil, now)

	require.ErrorIs(t, err, validator.ErrMissingField)
	verr, _ := validator.AsError(err)
	assert.Equal(t, models.FieldStartDate, verr.Field)
	assert.Contains(t, verr.Message, "valid date")
}

func TestValidate_AgeTooYoung(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		birth   string
		wantErr bool
	}{
		{name: "turns 18 tomorrow", birth: "2007-06-16", wantErr: true},
		{name: "turns 18 today", birth: "2007-06-15", wantErr: false},
		{name: "newborn", birth: "2025-01-01", wantErr: true},
		{name: "adult", birth: "1980-12-31", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			candidate := validEmployee()
			candidate.DateOfBirth = tt.birth
			candidate.StartDate = "2025-06-01"

			_, err := validator.Validate(candidate, nil, now)

			if tt.wantErr {
				require.ErrorIs(t, err, validator.ErrAgeTooYoung)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidate_StartBeforeBirth(t *testing.T) {
	t.Parallel()

	for _, start := range []string{"1990-01-15", "1989-12-31"} {
		candidate := validEmployee()
		candidate.StartDate = start

		_, err := validator.Validate(candidate, nil, now)

		require.ErrorIs(t, err, validator.ErrStartBeforeBirth, start)
	}
}

func TestValidate_InvalidState(t *testing.T) {
	t.Parallel()

	candidate := validEmployee()
	candidate.State = "CA"

	_, err := validator.Validate(candidate, nil, now)

	require.ErrorIs(t, err, validator.ErrInvalidState)
}

func TestValidate_InvalidDepartment(t *testing.T) {
	t.Parallel()

	candidate := validEmployee()
	candidate.Department = "Finance"

	_, err := validator.Validate(candidate, nil, now)

	require.ErrorIs(t, err, validator.ErrInvalidDepartment)
}

func TestValidate_Duplicate(t *testing.T) {
	t.Parallel()

	existing := []models.Employee{validEmployee()}

	_, err := validator.Validate(validEmployee(), existing, now)
	require.ErrorIs(t, err, validator.ErrDuplicateEmployee)

	other := validEmployee()
	other.ZipCode = "90002"
	_, err = validator.Validate(other, existing, now)
	require.NoError(t, err)
}

func TestValidate_DuplicateOfUntrimmedStoredRecord(t *testing.T) {
	t.Parallel()

	stored := validEmployee()
	stored.FirstName = "Jean "
	stored.City = " Los Angeles"

	_, err := validator.Validate(validEmployee(), []models.Employee{stored}, now)

	require.ErrorIs(t, err, validator.ErrDuplicateEmployee)
	assert.True(t, validator.IsDuplicate(validEmployee(), []models.Employee{stored}))
}

func TestValidate_CheckOrder(t *testing.T) {
	t.Parallel()

	// Too young, start before birth, bad state and bad department at once: age is reported.
	candidate := validEmployee()
	candidate.DateOfBirth = "2020-01-01"
	candidate.StartDate = "2010-01-01"
	candidate.State = "Nowhere"
	candidate.Department = "Nothing"

	_, err := validator.Validate(candidate, nil, now)
	require.ErrorIs(t, err, validator.ErrAgeTooYoung)

	candidate.DateOfBirth = "1990-01-01"
	_, err = validator.Validate(candidate, nil, now)
	require.ErrorIs(t, err, validator.ErrStartBeforeBirth)

	candidate.StartDate = "2020-01-01"
	_, err = validator.Validate(candidate, nil, now)
	require.ErrorIs(t, err, validator.ErrInvalidState)

	candidate.State = "Texas"
	_, err = validator.Validate(candidate, nil, now)
	require.ErrorIs(t, err, validator.ErrInvalidDepartment)
}

func TestAge(t *testing.T) {
	t.Parallel()

	birth := time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 24, validator.Age(birth, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 25, validator.Age(birth, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
}
