package domain

import (
	"fmt"
	"strings"
)

// ColumnType is a portable column type rendered per dialect
type ColumnType string

const (
	TypeSerial  ColumnType = "SERIAL"  // auto-increment primary key
	TypeInteger ColumnType = "INTEGER" // foreign keys and counters
	TypeString  ColumnType = "STRING"  // VARCHAR(Length)
	TypeMoney   ColumnType = "MONEY"   // DECIMAL(12,2)
)

// Column represents a table column
type Column struct {
	Name       string
	Type       ColumnType
	Length     int
	IsNullable bool
	IsUnique   bool
}

// GenerateSQL generates the column definition SQL
func (c *Column) GenerateSQL(d Dialect) string {
	var sb strings.Builder

	sb.WriteString(QuoteIdent(d, c.Name))
	sb.WriteString(" ")

	switch c.Type {
	case TypeSerial:
		switch d {
		case DialectPostgres:
			sb.WriteString("SERIAL PRIMARY KEY")
		case DialectMySQL:
			sb.WriteString("INT NOT NULL AUTO_INCREMENT PRIMARY KEY")
		case DialectSQLServer:
			sb.WriteString("INT IDENTITY(1,1) PRIMARY KEY")
		default:
			sb.WriteString("INTEGER PRIMARY KEY AUTOINCREMENT")
		}
		return sb.String()
	case TypeInteger:
		if d == DialectSQLite {
			sb.WriteString("INTEGER")
		} else {
			sb.WriteString("INT")
		}
	case TypeString:
		length := c.Length
		if length == 0 {
			length = 30
		}
		sb.WriteString(fmt.Sprintf("VARCHAR(%d)", length))
	case TypeMoney:
		sb.WriteString("DECIMAL(12,2)")
	}

	if c.IsNullable {
		sb.WriteString(" NULL")
	} else {
		sb.WriteString(" NOT NULL")
	}

	if c.IsUnique {
		sb.WriteString(" UNIQUE")
	}

	return sb.String()
}

// ForeignKey represents a single-column foreign key constraint
type ForeignKey struct {
	Name             string
	Column           string
	ReferencedTable  string
	ReferencedColumn string
}

// GenerateSQL generates the inline foreign key constraint
func (fk *ForeignKey) GenerateSQL(d Dialect) string {
	return fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
		QuoteIdent(d, fk.Name),
		QuoteIdent(d, fk.Column),
		QuoteIdent(d, fk.ReferencedTable),
		QuoteIdent(d, fk.ReferencedColumn))
}

// Table represents a database table
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// GenerateSQL generates the CREATE TABLE statement
func (t *Table) GenerateSQL(d Dialect) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("CREATE TABLE %s (\n", QuoteIdent(d, t.Name)))

	var defs []string
	for _, col := range t.Columns {
		defs = append(defs, "    "+col.GenerateSQL(d))
	}
	for _, fk := range t.ForeignKeys {
		defs = append(defs, "    "+fk.GenerateSQL(d))
	}

	sb.WriteString(strings.Join(defs, ",\n"))
	sb.WriteString("\n)")

	return sb.String()
}

// QuoteIdent quotes an identifier for the dialect
func QuoteIdent(d Dialect, name string) string {
	switch d {
	case DialectMySQL:
		return "`" + name + "`"
	case DialectSQLServer:
		return "[" + name + "]"
	default:
		return `"` + name + `"`
	}
}

// TrackerSchema returns the tracker tables in creation order.
// Deletes never cascade: dependents are checked before removing a row.
func TrackerSchema() []Table {
	return []Table{
		{
			Name: "department",
			Columns: []Column{
				{Name: "id", Type: TypeSerial},
				{Name: "name", Type: TypeString, Length: 30, IsUnique: true},
			},
		},
		{
			Name: "role",
			Columns: []Column{
				{Name: "id", Type: TypeSerial},
				{Name: "title", Type: TypeString, Length: 30, IsUnique: true},
				{Name: "salary", Type: TypeMoney},
				{Name: "department_id", Type: TypeInteger},
			},
			ForeignKeys: []ForeignKey{
				{Name: "fk_role_department", Column: "department_id", ReferencedTable: "department", ReferencedColumn: "id"},
			},
		},
		{
			Name: "employee",
			Columns: []Column{
				{Name: "id", Type: TypeSerial},
				{Name: "first_name", Type: TypeString, Length: 30},
				{Name: "last_name", Type: TypeString, Length: 30},
				{Name: "role_id", Type: TypeInteger},
				{Name: "manager_id", Type: TypeInteger, IsNullable: true},
			},
			ForeignKeys: []ForeignKey{
				{Name: "fk_employee_role", Column: "role_id", ReferencedTable: "role", ReferencedColumn: "id"},
				{Name: "fk_employee_manager", Column: "manager_id", ReferencedTable: "employee", ReferencedColumn: "id"},
			},
		},
	}
}
