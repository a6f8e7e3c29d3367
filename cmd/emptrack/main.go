// emptrack - Employee Tracker CLI
//
// emptrack is an interactive menu for viewing and managing departments,
// roles and employees stored in PostgreSQL, MySQL, SQL Server or SQLite.
package main

import (
	"github.com/enunezf/emptrack/internal/cli"
)

func main() {
	cli.Execute()
}
