// Package menu drives the interactive main menu: show the choices, run
// one action, print its result, and show the menu again until Quit.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/enunezf/emptrack/internal/core/domain"
	"github.com/enunezf/emptrack/internal/core/services"
	"github.com/enunezf/emptrack/internal/prompt"
)

// Menu labels, in display order
const (
	ViewAllEmployees          = "View All Employees"
	ViewEmployeesByManager    = "View Employees by Manager"
	ViewEmployeesByDepartment = "View Employees by Department"
	AddEmployee               = "Add Employee"
	DeleteEmployee            = "Delete Employee"
	UpdateEmployeeRole        = "Update Employee Role"
	UpdateEmployeeManager     = "Update Employee Manager"
	ViewAllRoles              = "View All Roles"
	AddRole                   = "Add Role"
	DeleteRole                = "Delete Role"
	ViewAllDepartments        = "View All Departments"
	AddDepartment             = "Add Department"
	DeleteDepartment          = "Delete Department"
	ViewDepartmentBudgets     = "View Department Budgets"
	Quit                      = "Quit"
)

// noManager is the first manager choice; it stores NULL
const noManager = "None"

type action struct {
	label string
	run   func(m *Menu, ctx context.Context) error
}

// Menu is the interactive prompt loop
type Menu struct {
	tracker  *services.Tracker
	prompter prompt.Prompter
	out      io.Writer
	actions  []action
}

// New creates a menu over a tracker
func New(tracker *services.Tracker, prompter prompt.Prompter, out io.Writer) *Menu {
	m := &Menu{
		tracker:  tracker,
		prompter: prompter,
		out:      out,
	}
	m.actions = []action{
		{ViewAllEmployees, (*Menu).viewAllEmployees},
		{ViewEmployeesByManager, (*Menu).viewEmployeesByManager},
		{ViewEmployeesByDepartment, (*Menu).viewEmployeesByDepartment},
		{AddEmployee, (*Menu).addEmployee},
		{DeleteEmployee, (*Menu).deleteEmployee},
		{UpdateEmployeeRole, (*Menu).updateEmployeeRole},
		{UpdateEmployeeManager, (*Menu).updateEmployeeManager},
		{ViewAllRoles, (*Menu).viewAllRoles},
		{AddRole, (*Menu).addRole},
		{DeleteRole, (*Menu).deleteRole},
		{ViewAllDepartments, (*Menu).viewAllDepartments},
		{AddDepartment, (*Menu).addDepartment},
		{DeleteDepartment, (*Menu).deleteDepartment},
		{ViewDepartmentBudgets, (*Menu).viewDepartmentBudgets},
	}
	return m
}

// Labels returns the main menu choices, Quit last
func (m *Menu) Labels() []string {
	labels := make([]string, 0, len(m.actions)+1)
	for _, a := range m.actions {
		labels = append(labels, a.label)
	}
	return append(labels, Quit)
}

// Run shows the main menu until the user quits or the context ends
func (m *Menu) Run(ctx context.Context) error {
	labels := m.Labels()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := m.prompter.Select("What would you like to do?", labels)
		if errors.Is(err, prompt.ErrAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("main menu: %w", err)
		}
		if choice < 0 || choice >= len(labels) || labels[choice] == Quit {
			return nil
		}

		a := m.actions[choice]
		log.Debug().Str("action", a.label).Msg("Menu action selected")
		if err := a.run(m, ctx); err != nil {
			m.report(a.label, err)
		}
	}
}

// report prints an action failure; the loop always continues afterwards
func (m *Menu) report(label string, err error) {
	var depErr *domain.DependentsError

	switch {
	case errors.Is(err, prompt.ErrAborted):
		fmt.Fprintln(m.out, hintStyle.Render("Cancelled."))
	case errors.Is(err, domain.ErrCancelled):
		fmt.Fprintln(m.out, warningStyle.Render("No changes were made."))
	case errors.As(err, &depErr):
		fmt.Fprintln(m.out, warningStyle.Render(services.Capitalize(depErr.Error())+"."))
	case errors.Is(err, domain.ErrInvalidInput):
		fmt.Fprintln(m.out, failureStyle.Render(err.Error()))
	default:
		log.Error().Err(err).Str("action", label).Msg("Menu action failed")
		fmt.Fprintln(m.out, failureStyle.Render(fmt.Sprintf("Error: %s: %v", label, err)))
	}
}

func (m *Menu) success(format string, args ...any) {
	fmt.Fprintln(m.out, successStyle.Render(fmt.Sprintf(format, args...)))
}

func (m *Menu) hint(msg string) {
	fmt.Fprintln(m.out, hintStyle.Render(msg))
}
