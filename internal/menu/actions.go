package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/enunezf/emptrack/internal/core/domain"
	"github.com/enunezf/emptrack/internal/core/services"
)

// errEmpty means a choice list had nothing to pick; a hint was already printed
var errEmpty = errors.New("nothing to choose from")

func required(s string) error {
	if msg := services.ValidateInput(s, false); msg != "" {
		return errors.New(msg)
	}
	return nil
}

func salary(s string) error {
	if msg := services.ValidateSalary(s); msg != "" {
		return errors.New(msg)
	}
	return nil
}

func (m *Menu) show(table string) {
	fmt.Fprintln(m.out, table)
}

// Choosers load a list, prompt for one entry and return it

func (m *Menu) chooseEmployee(ctx context.Context, title string) (domain.Employee, error) {
	employees, err := m.tracker.Employees(ctx)
	if err != nil {
		return domain.Employee{}, err
	}
	if len(employees) == 0 {
		m.hint("There are no employees yet. Add one first.")
		return domain.Employee{}, errEmpty
	}

	options := make([]string, len(employees))
	for i, e := range employees {
		options[i] = e.FullName()
	}
	idx, err := m.prompter.Select(title, options)
	if err != nil {
		return domain.Employee{}, err
	}
	return employees[idx], nil
}

// chooseManager offers "None" followed by every employee except exclude
// and the people who report to exclude, so no reporting cycle can be chosen
func (m *Menu) chooseManager(ctx context.Context, title string, exclude int64) (*int64, string, error) {
	employees, err := m.tracker.Employees(ctx)
	if err != nil {
		return nil, "", err
	}
	below := services.Subordinates(employees, exclude)

	candidates := make([]domain.Employee, 0, len(employees))
	options := []string{noManager}
	for _, e := range employees {
		if e.ID == exclude || below[e.ID] {
			continue
		}
		candidates = append(candidates, e)
		options = append(options, e.FullName())
	}

	idx, err := m.prompter.Select(title, options)
	if err != nil {
		return nil, "", err
	}
	if idx == 0 {
		return nil, noManager, nil
	}
	chosen := candidates[idx-1]
	return &chosen.ID, chosen.FullName(), nil
}

func (m *Menu) chooseRole(ctx context.Context, title string) (domain.Role, error) {
	roles, err := m.tracker.Roles(ctx)
	if err != nil {
		return domain.Role{}, err
	}
	if len(roles) == 0 {
		m.hint("There are no roles yet. Add one first.")
		return domain.Role{}, errEmpty
	}

	options := make([]string, len(roles))
	for i, r := range roles {
		options[i] = r.Title
	}
	idx, err := m.prompter.Select(title, options)
	if err != nil {
		return domain.Role{}, err
	}
	return roles[idx], nil
}

func (m *Menu) chooseDepartment(ctx context.Context, title string) (domain.Department, error) {
	departments, err := m.tracker.Departments(ctx)
	if err != nil {
		return domain.Department{}, err
	}
	if len(departments) == 0 {
		m.hint("There are no departments yet. Add one first.")
		return domain.Department{}, errEmpty
	}

	options := make([]string, len(departments))
	for i, d := range departments {
		options[i] = d.Name
	}
	idx, err := m.prompter.Select(title, options)
	if err != nil {
		return domain.Department{}, err
	}
	return departments[idx], nil
}

// skipEmpty turns errEmpty into a no-op for the menu loop
func skipEmpty(err error) error {
	if errors.Is(err, errEmpty) {
		return nil
	}
	return err
}

// Employees

func (m *Menu) viewAllEmployees(ctx context.Context) error {
	employees, err := m.tracker.Employees(ctx)
	if err != nil {
		return err
	}
	m.show(EmployeesTable(employees))
	return nil
}

func (m *Menu) viewEmployeesByManager(ctx context.Context) error {
	managers, err := m.tracker.Managers(ctx)
	if err != nil {
		return err
	}
	if len(managers) == 0 {
		m.hint("No employee has a manager yet.")
		return nil
	}

	options := make([]string, len(managers))
	for i, mgr := range managers {
		options[i] = mgr.Name
	}
	idx, err := m.prompter.Select("Whose direct reports would you like to see?", options)
	if err != nil {
		return err
	}

	employees, err := m.tracker.EmployeesByManager(ctx, managers[idx].ID)
	if err != nil {
		return err
	}
	m.show(EmployeesTable(employees))
	return nil
}

func (m *Menu) viewEmployeesByDepartment(ctx context.Context) error {
	department, err := m.chooseDepartment(ctx, "Which department's employees would you like to see?")
	if err != nil {
		return skipEmpty(err)
	}

	employees, err := m.tracker.EmployeesByDepartment(ctx, department.ID)
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		m.hint(fmt.Sprintf("No employees work in %s.", department.Name))
		return nil
	}
	m.show(EmployeesTable(employees))
	return nil
}

func (m *Menu) addEmployee(ctx context.Context) error {
	firstName, err := m.prompter.Input("What is the employee's first name?", required)
	if err != nil {
		return err
	}
	lastName, err := m.prompter.Input("What is the employee's last name?", required)
	if err != nil {
		return err
	}
	role, err := m.chooseRole(ctx, "What is the employee's role?")
	if err != nil {
		return skipEmpty(err)
	}
	managerID, _, err := m.chooseManager(ctx, "Who is the employee's manager?", 0)
	if err != nil {
		return err
	}

	name, err := m.tracker.AddEmployee(ctx, firstName, lastName, role.ID, managerID)
	if err != nil {
		return err
	}
	m.success("Added %s to the database.", name)
	return nil
}

func (m *Menu) deleteEmployee(ctx context.Context) error {
	employee, err := m.chooseEmployee(ctx, "Which employee would you like to delete?")
	if err != nil {
		return skipEmpty(err)
	}

	if err := m.tracker.DeleteEmployee(ctx, employee.ID); err != nil {
		return err
	}
	m.success("Deleted %s from the database.", employee.FullName())
	return nil
}

func (m *Menu) updateEmployeeRole(ctx context.Context) error {
	employee, err := m.chooseEmployee(ctx, "Which employee's role would you like to update?")
	if err != nil {
		return skipEmpty(err)
	}
	role, err := m.chooseRole(ctx, "Which role do you want to assign to the selected employee?")
	if err != nil {
		return skipEmpty(err)
	}

	if err := m.tracker.UpdateEmployeeRole(ctx, employee.ID, role.ID); err != nil {
		return err
	}
	m.success("Updated %s's role to %s.", employee.FullName(), role.Title)
	return nil
}

func (m *Menu) updateEmployeeManager(ctx context.Context) error {
	employee, err := m.chooseEmployee(ctx, "Which employee's manager would you like to update?")
	if err != nil {
		return skipEmpty(err)
	}
	managerID, managerName, err := m.chooseManager(ctx, "Who is the employee's new manager?", employee.ID)
	if err != nil {
		return err
	}

	if err := m.tracker.UpdateEmployeeManager(ctx, employee.ID, managerID); err != nil {
		return err
	}
	if managerID == nil {
		m.success("%s no longer has a manager.", employee.FullName())
	} else {
		m.success("Updated %s's manager to %s.", employee.FullName(), managerName)
	}
	return nil
}

// Roles

func (m *Menu) viewAllRoles(ctx context.Context) error {
	roles, err := m.tracker.Roles(ctx)
	if err != nil {
		return err
	}
	m.show(RolesTable(roles))
	return nil
}

func (m *Menu) addRole(ctx context.Context) error {
	departments, err := m.tracker.Departments(ctx)
	if err != nil {
		return err
	}
	if len(departments) == 0 {
		m.hint("There are no departments yet. Add one first.")
		return nil
	}

	title, err := m.prompter.Input("What is the name of the role?", required)
	if err != nil {
		return err
	}
	amount, err := m.prompter.Input("What is the salary of the role?", salary)
	if err != nil {
		return err
	}

	options := make([]string, len(departments))
	for i, d := range departments {
		options[i] = d.Name
	}
	idx, err := m.prompter.Select("Which department does the role belong to?", options)
	if err != nil {
		return err
	}

	stored, err := m.tracker.AddRole(ctx, title, amount, departments[idx].ID)
	if err != nil {
		return err
	}
	m.success("Added %s to the database.", stored)
	return nil
}

func (m *Menu) deleteRole(ctx context.Context) error {
	role, err := m.chooseRole(ctx, "Which role would you like to delete?")
	if err != nil {
		return skipEmpty(err)
	}

	if err := m.tracker.DeleteRole(ctx, role.ID); err != nil {
		return err
	}
	m.success("Deleted role %q from the database.", role.Title)
	return nil
}

// Departments

func (m *Menu) viewAllDepartments(ctx context.Context) error {
	departments, err := m.tracker.Departments(ctx)
	if err != nil {
		return err
	}
	m.show(DepartmentsTable(departments))
	return nil
}

func (m *Menu) addDepartment(ctx context.Context) error {
	name, err := m.prompter.Input("What is the name of the department?", required)
	if err != nil {
		return err
	}

	stored, err := m.tracker.AddDepartment(ctx, name)
	if err != nil {
		return err
	}
	m.success("Added %s to the database.", stored)
	return nil
}

func (m *Menu) deleteDepartment(ctx context.Context) error {
	department, err := m.chooseDepartment(ctx, "Which department would you like to delete?")
	if err != nil {
		return skipEmpty(err)
	}

	if err := m.tracker.DeleteDepartment(ctx, department.ID); err != nil {
		return err
	}
	m.success("Deleted department %q from the database.", department.Name)
	return nil
}

func (m *Menu) viewDepartmentBudgets(ctx context.Context) error {
	budgets, err := m.tracker.Budgets(ctx)
	if err != nil {
		return err
	}
	m.show(BudgetsTable(budgets))
	return nil
}
