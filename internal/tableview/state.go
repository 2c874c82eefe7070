package tableview

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/UnknownOlympus/hrnet/internal/models"
)

// ViewState is the interactive state of the employee table.
//
// Selecting a filter dimension always starts from an empty value, clearing the
// dimension keeps the current sort, and selecting the sorted column again flips
// its direction.
type ViewState struct {
	Filter    Filter
	Sort      Sort
	PageIndex int
	PageSize  int
}

// NewViewState returns the initial state: no filter, no sort, first page.
func NewViewState(pageSize int) ViewState {
	return ViewState{PageSize: NormalizePageSize(pageSize)}
}

// SelectFilter switches the filter dimension. An empty field clears the filter.
func (v *ViewState) SelectFilter(field string) error {
	if field != "" && !models.IsField(field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	v.Filter = Filter{Field: field}
	v.PageIndex = 0

	return nil
}

// SetFilterValue refines the active filter. It is ignored while no dimension is selected.
func (v *ViewState) SetFilterValue(value string) {
	if v.Filter.Field == "" {
		return
	}

	v.Filter.Value = value
	v.PageIndex = 0
}

// ToggleSort sorts on field ascending, or flips the direction when field is already sorted.
func (v *ViewState) ToggleSort(field string) error {
	if !models.IsField(field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	if v.Sort.Field == field && v.Sort.Direction == Ascending {
		v.Sort.Direction = Descending
		return nil
	}

	v.Sort = Sort{Field: field, Direction: Ascending}

	return nil
}

// ClearSort restores insertion order.
func (v *ViewState) ClearSort() {
	v.Sort = Sort{}
}

// SetPageSize changes the number of rows per page and returns to the first page.
func (v *ViewState) SetPageSize(size int) {
	v.PageSize = NormalizePageSize(size)
	v.PageIndex = 0
}

// SetPage jumps to a page. Out of range values are clamped by Project.
func (v *ViewState) SetPage(index int) {
	v.PageIndex = max(index, 0)
}

func (v *ViewState) NextPage() {
	v.PageIndex++
}

func (v *ViewState) PreviousPage() {
	v.PageIndex = max(v.PageIndex-1, 0)
}

// Query returns the criteria to pass to Project.
func (v ViewState) Query() Query {
	return Query{
		Filter:    v.Filter,
		Sort:      v.Sort,
		PageIndex: v.PageIndex,
		PageSize:  v.PageSize,
	}
}

// Query parameter names understood by ParseValues.
const (
	ParamFilter = "filter"
	ParamValue  = "q"
	ParamSort   = "sort"
	ParamDir    = "dir"
	ParamPage   = "page"
	ParamSize   = "size"
)

// ParseValues restores a view state from query parameters. Unknown fields and
// malformed numbers are ignored. Pages are 1-based in URLs.
func ParseValues(values url.Values, defaultPageSize int) ViewState {
	state := NewViewState(defaultPageSize)

	if err := state.SelectFilter(values.Get(ParamFilter)); err == nil {
		state.SetFilterValue(values.Get(ParamValue))
	}

	if field := values.Get(ParamSort); models.IsField(field) {
		dir := Ascending
		if Direction(values.Get(ParamDir)) == Descending {
			dir = Descending
		}
		state.Sort = Sort{Field: field, Direction: dir}
	}

	if size, err := strconv.Atoi(values.Get(ParamSize)); err == nil && slices.Contains(PageSizes, size) {
		state.SetPageSize(size)
	}

	if page, err := strconv.Atoi(values.Get(ParamPage)); err == nil {
		state.SetPage(page - 1)
	}

	return state
}

// Values encodes the state as query parameters accepted by ParseValues.
func (v ViewState) Values() url.Values {
	values := url.Values{}

	if v.Filter.Field != "" {
		values.Set(ParamFilter, v.Filter.Field)
		if v.Filter.Value != "" {
			values.Set(ParamValue, v.Filter.Value)
		}
	}

	if v.Sort.Field != "" {
		values.Set(ParamSort, v.Sort.Field)
		values.Set(ParamDir, string(v.Sort.Direction))
	}

	values.Set(ParamPage, strconv.Itoa(v.PageIndex+1))
	values.Set(ParamSize, strconv.Itoa(v.PageSize))

	return values
}
