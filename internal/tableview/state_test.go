package tableview_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnknownOlympus/hrnet/internal/models"
	"github.com/UnknownOlympus/hrnet/internal/tableview"
)

func TestViewState_FilterTransitions(t *testing.T) {
	t.Parallel()

	state := tableview.NewViewState(10)

	// Typing before a dimension is selected does nothing.
	state.SetFilterValue("Sal")
	assert.Equal(t, tableview.Filter{}, state.Filter)

	require.NoError(t, state.SelectFilter(models.FieldDepartment))
	state.SetFilterValue("Sal")
	assert.Equal(t, tableview.Filter{Field: models.FieldDepartment, Value: "Sal"}, state.Filter)

	require.NoError(t, state.ToggleSort(models.FieldLastName))

	// A new dimension starts empty.
	require.NoError(t, state.SelectFilter(models.FieldCity))
	assert.Equal(t, tableview.Filter{Field: models.FieldCity}, state.Filter)

	// Clearing the dimension keeps the sort.
	require.NoError(t, state.SelectFilter(""))
	assert.Equal(t, tableview.Filter{}, state.Filter)
	assert.Equal(t, tableview.Sort{Field: models.FieldLastName, Direction: tableview.Ascending}, state.Sort)
}

func TestViewState_SelectUnknownFilter(t *testing.T) {
	t.Parallel()

	state := tableview.NewViewState(10)

	err := state.SelectFilter("salary")

	require.ErrorIs(t, err, tableview.ErrUnknownField)
}

func TestViewState_ToggleSort(t *testing.T) {
	t.Parallel()

	state := tableview.NewViewState(10)

	require.NoError(t, state.ToggleSort(models.FieldLastName))
	assert.Equal(t, tableview.Ascending, state.Sort.Direction)

	require.NoError(t, state.ToggleSort(models.FieldLastName))
	assert.Equal(t, tableview.Descending, state.Sort.Direction)

	require.NoError(t, state.ToggleSort(models.FieldLastName))
	assert.Equal(t, tableview.Ascending, state.Sort.Direction)

	require.NoError(t, state.ToggleSort(models.FieldCity))
	assert.Equal(t, tableview.Sort{Field: models.FieldCity, Direction: tableview.Ascending}, state.Sort)

	require.ErrorIs(t, state.ToggleSort("nope"), tableview.ErrUnknownField)

	state.ClearSort()
	assert.Equal(t, tableview.Sort{}, state.Sort)
}

func TestViewState_Paging(t *testing.T) {
	t.Parallel()

	state := tableview.NewViewState(15)
	assert.Equal(t, tableview.DefaultPageSize, state.PageSize)

	state.NextPage()
	state.NextPage()
	assert.Equal(t, 2, state.PageIndex)

	state.PreviousPage()
	assert.Equal(t, 1, state.PageIndex)

	state.SetPageSize(50)
	assert.Equal(t, 50, state.PageSize)
	assert.Equal(t, 0, state.PageIndex)

	state.PreviousPage()
	assert.Equal(t, 0, state.PageIndex)

	state.SetPage(-4)
	assert.Equal(t, 0, state.PageIndex)
}

func TestViewState_ValuesRoundTrip(t *testing.T) {
	t.Parallel()

	state := tableview.NewViewState(25)
	require.NoError(t, state.SelectFilter(models.FieldDepartment))
	state.SetFilterValue("Sal")
	require.NoError(t, state.ToggleSort(models.FieldLastName))
	require.NoError(t, state.ToggleSort(models.FieldLastName))
	state.SetPage(3)

	restored := tableview.ParseValues(state.Values(), 10)

	assert.Equal(t, state, restored)
}

func TestParseValues_IgnoresGarbage(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"filter": {"salary"},
		"q":      {"1000"},
		"sort":   {"drop table"},
		"page":   {"abc"},
		"size":   {"13"},
	}

	state := tableview.ParseValues(values, 20)

	assert.Equal(t, tableview.NewViewState(20), state)
}
