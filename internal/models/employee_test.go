package models_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/UnknownOlympus/hrnet/internal/models"
)

func TestBindForm(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"firstName":   {"Jean"},
		"lastName":    {"Dupont"},
		"dateOfBirth": {"1990-01-15"},
		"startDate":   {"2024-01-01"},
		"street":      {"123 Main Street"},
		"city":        {"Los Angeles"},
		"state":       {"California"},
		"zipCode":     {"90001"},
		"department":  {"Sales"},
		"ignored":     {"value"},
	}

	employee := models.BindForm(values)

	for _, field := range models.Fields {
		assert.Equal(t, values.Get(field), employee.Value(field), field)
	}
}

func TestValue_UnknownField(t *testing.T) {
	t.Parallel()

	assert.Empty(t, models.Employee{FirstName: "Jean"}.Value("salary"))
	assert.False(t, models.IsField("salary"))
	assert.True(t, models.IsField(models.FieldZipCode))
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	employee := models.Employee{FirstName: "Jean", DateOfBirth: "1990-01-15", StartDate: "not a date"}

	assert.Equal(t, "15/01/1990", employee.Display(models.FieldDateOfBirth))
	assert.Equal(t, "not a date", employee.Display(models.FieldStartDate))
	assert.Equal(t, "Jean", employee.Display(models.FieldFirstName))
}

func TestTrimmed(t *testing.T) {
	t.Parallel()

	employee := models.Employee{FirstName: " Jean ", City: "\tLos Angeles\n"}.Trimmed()

	assert.Equal(t, "Jean", employee.FirstName)
	assert.Equal(t, "Los Angeles", employee.City)
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	assert.Len(t, models.States, 59)
	assert.Equal(t, "California", models.States[5].Name)
	assert.True(t, models.IsState("New York"))
	assert.False(t, models.IsState("NY"))
	assert.True(t, models.IsDepartment("Human Resources"))
	assert.False(t, models.IsDepartment("human resources"))
}
