// Package store holds the ordered list of accepted employee records and its
// persisted representation.
package store

import "github.com/UnknownOlympus/hrnet/internal/models"

// Store is an immutable, insertion-ordered list of employees.
// The zero value is an empty store.
type Store struct {
	employees []models.Employee
}

// New returns a store holding a copy of employees in the given order.
func New(employees ...models.Employee) Store {
	if len(employees) == 0 {
		return Store{}
	}
	return Store{employees: append([]models.Employee(nil), employees...)}
}

// Append returns a new store with employee added at the end. s is left unchanged.
func Append(s Store, employee models.Employee) Store {
	next := make([]models.Employee, len(s.employees), len(s.employees)+1)
	copy(next, s.employees)
	return Store{employees: append(next, employee)}
}

// Len returns the number of records.
func (s Store) Len() int {
	return len(s.employees)
}

// At returns the i-th record in insertion order.
func (s Store) At(i int) models.Employee {
	return s.employees[i]
}

// Records returns a copy of all records in insertion order.
func (s Store) Records() []models.Employee {
	out := make([]models.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}
