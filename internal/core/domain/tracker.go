package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a referenced row does not exist
	ErrNotFound = errors.New("not found")
	// ErrHasDependents is returned when a guarded delete finds dependent rows
	ErrHasDependents = errors.New("has dependents")
	// ErrInvalidInput is returned when user input fails validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrCancelled is returned when a write was not approved
	ErrCancelled = errors.New("operation cancelled")
)

// Department is a named organizational unit
type Department struct {
	ID   int64
	Name string
}

// Role is a named position with a salary, belonging to a department
type Role struct {
	ID           int64
	Title        string
	Salary       decimal.Decimal
	DepartmentID int64
	Department   string
}

// Employee is a person with a role and an optional manager
type Employee struct {
	ID         int64
	FirstName  string
	LastName   string
	RoleID     int64
	Title      string
	Department string
	Salary     decimal.Decimal
	ManagerID  *int64
	Manager    string // empty when ManagerID is nil
}

// FullName returns "First Last"
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Manager is an employee referenced by at least one other employee
type Manager struct {
	ID   int64
	Name string
}

// DepartmentBudget is the utilized salary budget of a department
type DepartmentBudget struct {
	ID         int64
	Department string
	Headcount  int
	Total      decimal.Decimal
}

// DependentsError reports a delete refused because other rows still reference the target
type DependentsError struct {
	Entity     string // "role", "department"
	Name       string
	Dependents string // "employees", "roles"
	Count      int
}

func (e *DependentsError) Error() string {
	if e.Count == 1 {
		return fmt.Sprintf("%s %q cannot be deleted while 1 %s is assigned to it", e.Entity, e.Name, strings.TrimSuffix(e.Dependents, "s"))
	}
	return fmt.Sprintf("%s %q cannot be deleted while %d %s are assigned to it", e.Entity, e.Name, e.Count, e.Dependents)
}

// Is reports whether target is ErrHasDependents
func (e *DependentsError) Is(target error) bool {
	return target == ErrHasDependents
}
