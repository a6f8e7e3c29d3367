// Package security provides the approval system for SQL operations.
// Every write issued by the query layer passes through an Approver, which
// can ask the user, approve automatically, or show the statement without
// running it (dry-run).
package security

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ApprovalLevel defines the risk level of an operation
type ApprovalLevel int

const (
	// ReadOnly operations don't require confirmation
	ReadOnly ApprovalLevel = iota
	// Modification operations insert or update rows
	Modification
	// Destructive operations delete rows
	Destructive
)

// String returns the string representation of the approval level
func (a ApprovalLevel) String() string {
	switch a {
	case ReadOnly:
		return "ReadOnly"
	case Modification:
		return "Modification"
	case Destructive:
		return "Destructive"
	default:
		return "Unknown"
	}
}

// ParseApprovalLevel maps a confirmation policy name to the lowest level that needs confirmation.
// "all" confirms every write, "destructive" only deletes, "none" nothing.
func ParseApprovalLevel(policy string) (ApprovalLevel, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case "", "destructive", "delete", "deletes":
		return Destructive, nil
	case "all", "writes", "modification":
		return Modification, nil
	case "none", "off":
		return Destructive + 1, nil
	default:
		return ReadOnly, fmt.Errorf("unknown confirmation policy %q (use all, destructive or none)", policy)
	}
}

// ApprovalRequest represents a request for user approval
type ApprovalRequest struct {
	Operation     string        // Description of the operation
	SQL           string        // SQL statement to execute
	Args          []any         // Statement parameters
	Level         ApprovalLevel // Risk level
	ImpactSummary string        // Summary of the impact
}

// Approver defines the interface for approval handling
type Approver interface {
	RequestApproval(req ApprovalRequest) (bool, error)
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(title string) (bool, error)
}

var (
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c"))
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8be9fd"))
	dryRunStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#bd93f9"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	ruleWidth    = 60
	ruleRendered = strings.Repeat("─", ruleWidth)
)

// InteractiveApprover asks the user before running writes at or above MinLevel
type InteractiveApprover struct {
	confirmer Confirmer
	out       io.Writer
	minLevel  ApprovalLevel
	showSQL   bool
}

// NewInteractiveApprover creates a new interactive approver
func NewInteractiveApprover(confirmer Confirmer, out io.Writer, minLevel ApprovalLevel, showSQL bool) *InteractiveApprover {
	return &InteractiveApprover{
		confirmer: confirmer,
		out:       out,
		minLevel:  minLevel,
		showSQL:   showSQL,
	}
}

// RequestApproval prompts the user for confirmation based on the operation level
func (a *InteractiveApprover) RequestApproval(req ApprovalRequest) (bool, error) {
	if req.Level == ReadOnly || req.Level < a.minLevel {
		return true, nil
	}

	switch req.Level {
	case Modification:
		a.displayOperationDetails(req)
		fmt.Fprintln(a.out, warnStyle.Render("⚠ This operation will modify data."))
		return a.confirm("Do you want to proceed?")

	case Destructive:
		a.displayOperationDetails(req)
		fmt.Fprintln(a.out, dangerStyle.Render("⛔ This operation deletes data and cannot be undone."))
		return a.confirm("Delete permanently?")

	default:
		return false, fmt.Errorf("unknown approval level: %d", req.Level)
	}
}

func (a *InteractiveApprover) confirm(title string) (bool, error) {
	ok, err := a.confirmer.Confirm(title)
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return ok, nil
}

// displayOperationDetails shows the operation information to the user
func (a *InteractiveApprover) displayOperationDetails(req ApprovalRequest) {
	writeDetails(a.out, req, a.showSQL, "SQL to execute:")
}

func writeDetails(out io.Writer, req ApprovalRequest, showSQL bool, sqlLabel string) {
	fmt.Fprintln(out, ruleRendered)
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Operation:"), req.Operation)
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Risk Level:"), req.Level)

	if req.ImpactSummary != "" {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Impact:"), req.ImpactSummary)
	}

	if showSQL && req.SQL != "" {
		fmt.Fprintln(out, labelStyle.Render(sqlLabel))
		fmt.Fprintln(out, infoStyle.Render(strings.TrimSpace(req.SQL)))
		if len(req.Args) > 0 {
			fmt.Fprintf(out, "%s %v\n", labelStyle.Render("Parameters:"), req.Args)
		}
	}

	fmt.Fprintln(out, ruleRendered)
}

// AutoApprover always returns the same decision (for --yes or tests)
type AutoApprover struct {
	approve bool
}

// NewAutoApprover creates an auto-approver with the specified behavior
func NewAutoApprover(approve bool) *AutoApprover {
	return &AutoApprover{approve: approve}
}

// RequestApproval returns the configured approval decision
func (a *AutoApprover) RequestApproval(req ApprovalRequest) (bool, error) {
	if req.Level == ReadOnly {
		return true, nil
	}
	return a.approve, nil
}

// DryRunApprover displays what would happen but never approves a write
type DryRunApprover struct {
	out io.Writer
}

// NewDryRunApprover creates a new dry-run approver
func NewDryRunApprover(out io.Writer) *DryRunApprover {
	return &DryRunApprover{out: out}
}

// RequestApproval displays the operation but always returns false for writes
func (a *DryRunApprover) RequestApproval(req ApprovalRequest) (bool, error) {
	if req.Level == ReadOnly {
		return true, nil
	}

	fmt.Fprintln(a.out, dryRunStyle.Render("[DRY-RUN MODE]")+" The following operation would be executed:")
	writeDetails(a.out, req, true, "SQL that would execute:")
	fmt.Fprintln(a.out, dryRunStyle.Render("No changes were made (dry-run mode)."))

	return false, nil
}
