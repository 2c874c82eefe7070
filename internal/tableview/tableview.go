// Package tableview projects the employee list into the rows visible in the
// table: filtered on one field, sorted on one column and paginated.
package tableview

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/UnknownOlympus/hrnet/internal/models"
)

// Direction is a sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// DefaultPageSize is used when no valid page size is requested.
const DefaultPageSize = 10

// PageSizes are the selectable numbers of rows per page.
var PageSizes = []int{10, 20, 25, 30, 40, 50}

var ErrUnknownField = errors.New("unknown field")

// Filter keeps rows whose Field contains Value, ignoring case.
// An empty Field or Value disables filtering.
type Filter struct {
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// Sort orders rows on one column. An empty Field keeps insertion order.
type Sort struct {
	Field     string    `json:"field,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// Query is the full set of criteria applied by Project.
type Query struct {
	Filter    Filter
	Sort      Sort
	PageIndex int
	PageSize  int
}

// Page is one page of projected rows.
type Page struct {
	Rows         []models.Employee `json:"rows"`
	PageIndex    int               `json:"pageIndex"`
	PageCount    int               `json:"pageCount"`
	PageSize     int               `json:"pageSize"`
	TotalRows    int               `json:"totalRows"`
	TotalRecords int               `json:"totalRecords"`
	Filter       Filter            `json:"filter"`
	Sort         Sort              `json:"sort"`
}

// Engine projects records using the collation rules of a locale.
type Engine struct {
	locale language.Tag
}

// NewEngine returns an engine sorting with the given BCP 47 locale; unparsable locales fall back to English.
func NewEngine(locale string) *Engine {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Engine{locale: tag}
}

// Project returns the visible page for q using English collation.
func Project(records []models.Employee, q Query) Page {
	return NewEngine("en").Project(records, q)
}

// Project filters, sorts and paginates records. records is never modified.
func (e *Engine) Project(records []models.Employee, q Query) Page {
	rows := e.filter(records, q.Filter)
	e.sort(rows, q.Sort)

	size := NormalizePageSize(q.PageSize)
	count := pageCount(len(rows), size)
	index := clamp(q.PageIndex, 0, count-1)

	start := min(index*size, len(rows))
	end := min(start+size, len(rows))

	return Page{
		Rows:         rows[start:end:end],
		PageIndex:    index,
		PageCount:    count,
		PageSize:     size,
		TotalRows:    len(rows),
		TotalRecords: len(records),
		Filter:       q.Filter,
		Sort:         q.Sort,
	}
}

func (e *Engine) filter(records []models.Employee, f Filter) []models.Employee {
	if f.Field == "" || f.Value == "" || !models.IsField(f.Field) {
		return slices.Clone(records)
	}

	fold := cases.Fold()
	needle := fold.String(f.Value)

	rows := make([]models.Employee, 0, len(records))
	for _, record := range records {
		if strings.Contains(fold.String(record.Value(f.Field)), needle) {
			rows = append(rows, record)
		}
	}

	return rows
}

func (e *Engine) sort(rows []models.Employee, s Sort) {
	if s.Field == "" || !models.IsField(s.Field) {
		return
	}

	col := collate.New(e.locale)
	desc := s.Direction == Descending

	slices.SortStableFunc(rows, func(a, b models.Employee) int {
		if desc {
			return col.CompareString(b.Value(s.Field), a.Value(s.Field))
		}
		return col.CompareString(a.Value(s.Field), b.Value(s.Field))
	})
}

// NormalizePageSize returns size if it is one of PageSizes, DefaultPageSize otherwise.
func NormalizePageSize(size int) int {
	if slices.Contains(PageSizes, size) {
		return size
	}
	return DefaultPageSize
}

func pageCount(rows, size int) int {
	if rows == 0 {
		return 1
	}
	return (rows + size - 1) / size
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
