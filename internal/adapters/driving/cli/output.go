package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

const defaultWidth = 80

// styles holds the lipgloss styles for report rendering.
// Colour support is detected from the writer, so buffers render plain text.
type styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Label:   r.NewStyle().Width(18).Foreground(lipgloss.Color("#6C7086")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		Success: r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
	}
}

// terminalWidth returns the column count of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// renderReport prints a report in a human-readable layout.
func renderReport(w io.Writer, report *domain.Report) {
	st := newStyles(w)
	field := func(label string, value any) {
		fmt.Fprintf(w, "  %s %v\n", st.Label.Render(label), value)
	}

	title := report.BasicDetails.Name
	if title == "" {
		title = "(no name)"
	}
	fmt.Fprintln(w, st.Title.Render(title))
	if report.ID != "" {
		fmt.Fprintln(w, st.Muted.Render(fmt.Sprintf("%s  %s  %s", report.ID, report.Format, report.SourceFile)))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, st.Heading.Render("Basic Details"))
	field("Mobile", report.BasicDetails.Mobile)
	field("PAN", report.BasicDetails.PAN)
	field("Credit Score", formatNumber(report.BasicDetails.CreditScore))
	fmt.Fprintln(w)

	s := report.ReportSummary
	fmt.Fprintln(w, st.Heading.Render("Report Summary"))
	field("Total Accounts", formatNumber(s.TotalAccounts))
	field("Active Accounts", formatNumber(s.ActiveAccounts))
	field("Closed Accounts", formatNumber(s.ClosedAccounts))
	field("Current Balance", formatNumber(s.CurrentBalance))
	field("Secured Amount", formatNumber(s.SecuredAmount))
	field("Unsecured Amount", formatNumber(s.UnsecuredAmount))
	field("Enquiries (7d)", formatNumber(s.RecentEnquiries))
	fmt.Fprintln(w)

	fmt.Fprintln(w, st.Heading.Render(fmt.Sprintf("Credit Accounts (%d)", len(report.CreditAccounts))))
	for i := range report.CreditAccounts {
		a := report.CreditAccounts[i]
		fmt.Fprintf(w, "  [%d] %s - %s\n", i+1, a.Type, a.Bank)
		if a.AccountNumber != "" {
			fmt.Fprintf(w, "      Account: %s\n", a.AccountNumber)
		}
		fmt.Fprintf(w, "      Balance: %s  Overdue: %s\n", formatNumber(a.CurrentBalance), formatNumber(a.AmountOverdue))
		if a.BureauAccountDetails != nil {
			fmt.Fprintf(w, "      Status: %s  Opened: %s  Limit: %s\n",
				a.AccountStatus, a.OpenDate, formatNumber(a.CreditLimit))
		}
		if a.Address != "" {
			fmt.Fprintf(w, "      %s\n", st.Muted.Render(a.Address))
		}
	}
}

// renderListings prints report summaries as a table sized to the terminal.
func renderListings(w io.Writer, listings []domain.ReportListing) {
	if len(listings) == 0 {
		fmt.Fprintln(w, "No reports stored.")
		return
	}

	st := newStyles(w)
	nameWidth := max(terminalWidth(w)-72, 12)
	fmt.Fprintln(w, st.Heading.Render(fmt.Sprintf("%-36s  %-*s  %-10s  %6s  %s",
		"ID", nameWidth, "NAME", "PAN", "SCORE", "CREATED")))
	for i := range listings {
		l := listings[i]
		fmt.Fprintf(w, "%-36s  %-*s  %-10s  %6s  %s\n",
			l.ID, nameWidth, truncate(l.BasicDetails.Name, nameWidth), l.BasicDetails.PAN,
			formatNumber(l.BasicDetails.CreditScore), l.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.2f", f)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return strings.TrimSpace(string(r[:width-3])) + "..."
}
