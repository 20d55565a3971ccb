package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

// ExtractInput is the input schema for the extract_report tool.
type ExtractInput struct {
	XML  string `json:"xml" jsonschema:"the bureau report XML document"`
	Name string `json:"name,omitempty" jsonschema:"optional file name recorded as the report source"`
}

// GetReportInput is the input schema for the get_report tool.
type GetReportInput struct {
	ID  string `json:"id,omitempty" jsonschema:"the stored report ID"`
	PAN string `json:"pan,omitempty" jsonschema:"applicant PAN; returns the most recent report"`
}

// ListReportsInput is the input schema for the list_reports tool.
type ListReportsInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"maximum number of reports to return (default page size)"`
	Offset int `json:"offset,omitempty" jsonschema:"number of reports to skip"`
}

// ReportOutput is the normalised record returned by the report tools.
type ReportOutput struct {
	ID             string          `json:"id,omitempty"`
	Format         string          `json:"format"`
	SourceFile     string          `json:"source_file,omitempty"`
	Name           string          `json:"name"`
	Mobile         string          `json:"mobile"`
	PAN            string          `json:"pan"`
	CreditScore    float64         `json:"credit_score"`
	Summary        SummaryOutput   `json:"summary"`
	CreditAccounts []AccountOutput `json:"credit_accounts"`
	CreatedAt      string          `json:"created_at,omitempty"`
}

// SummaryOutput is the credit exposure summary.
type SummaryOutput struct {
	TotalAccounts   float64 `json:"total_accounts"`
	ActiveAccounts  float64 `json:"active_accounts"`
	ClosedAccounts  float64 `json:"closed_accounts"`
	CurrentBalance  float64 `json:"current_balance"`
	SecuredAmount   float64 `json:"secured_amount"`
	UnsecuredAmount float64 `json:"unsecured_amount"`
	RecentEnquiries float64 `json:"recent_enquiries"`
}

// AccountOutput is one credit account. Status, open date and credit limit
// are only present for Experian reports.
type AccountOutput struct {
	Type           string   `json:"type"`
	Bank           string   `json:"bank"`
	AccountNumber  string   `json:"account_number"`
	Address        string   `json:"address"`
	AmountOverdue  float64  `json:"amount_overdue"`
	CurrentBalance float64  `json:"current_balance"`
	AccountStatus  string   `json:"account_status,omitempty"`
	OpenDate       string   `json:"open_date,omitempty"`
	CreditLimit    *float64 `json:"credit_limit,omitempty"`
}

// ListReportsOutput is the output schema for the list_reports tool.
type ListReportsOutput struct {
	Reports []ListingOutput `json:"reports"`
	Count   int             `json:"count"`
}

// ListingOutput is one report summary.
type ListingOutput struct {
	ID          string        `json:"id"`
	Format      string        `json:"format"`
	Name        string        `json:"name"`
	PAN         string        `json:"pan"`
	CreditScore float64       `json:"credit_score"`
	Summary     SummaryOutput `json:"summary"`
	CreatedAt   string        `json:"created_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_report",
		Description: "Extract a normalised credit report from Experian or legacy bureau XML without storing it",
	}, s.handleExtractReport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_report",
		Description: "Get a stored credit report by ID or by applicant PAN",
	}, s.handleGetReport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_reports",
		Description: "List stored credit reports, newest first",
	}, s.handleListReports)
}

// handleExtractReport handles the extract_report tool invocation.
func (s *Server) handleExtractReport(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	report, err := s.ports.Ingest.Extract(domain.Upload{Name: input.Name, Content: []byte(input.XML)})
	if err != nil {
		return nil, ReportOutput{}, err
	}
	return nil, toReportOutput(report), nil
}

// handleGetReport handles the get_report tool invocation.
func (s *Server) handleGetReport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetReportInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	var (
		report *domain.Report
		err    error
	)
	switch {
	case input.ID != "":
		report, err = s.ports.Reports.Get(ctx, input.ID)
	case input.PAN != "":
		report, err = s.ports.Reports.GetByPAN(ctx, input.PAN)
	default:
		return nil, ReportOutput{}, fmt.Errorf("id or pan is required: %w", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, ReportOutput{}, err
	}
	return nil, toReportOutput(report), nil
}

// handleListReports handles the list_reports tool invocation.
func (s *Server) handleListReports(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListReportsInput,
) (*mcp.CallToolResult, ListReportsOutput, error) {
	listings, err := s.ports.Reports.List(ctx, domain.ListOptions{Limit: input.Limit, Offset: input.Offset})
	if err != nil {
		return nil, ListReportsOutput{}, err
	}

	output := ListReportsOutput{
		Reports: make([]ListingOutput, len(listings)),
		Count:   len(listings),
	}
	for i := range listings {
		l := listings[i]
		output.Reports[i] = ListingOutput{
			ID:          l.ID,
			Format:      l.Format.String(),
			Name:        l.BasicDetails.Name,
			PAN:         l.BasicDetails.PAN,
			CreditScore: l.BasicDetails.CreditScore,
			Summary:     toSummaryOutput(l.ReportSummary),
			CreatedAt:   formatTime(l.CreatedAt),
		}
	}

	return nil, output, nil
}

func toReportOutput(r *domain.Report) ReportOutput {
	out := ReportOutput{
		ID:             r.ID,
		Format:         r.Format.String(),
		SourceFile:     r.SourceFile,
		Name:           r.BasicDetails.Name,
		Mobile:         r.BasicDetails.Mobile,
		PAN:            r.BasicDetails.PAN,
		CreditScore:    r.BasicDetails.CreditScore,
		Summary:        toSummaryOutput(r.ReportSummary),
		CreditAccounts: make([]AccountOutput, len(r.CreditAccounts)),
		CreatedAt:      formatTime(r.CreatedAt),
	}

	for i := range r.CreditAccounts {
		a := r.CreditAccounts[i]
		account := AccountOutput{
			Type:           a.Type,
			Bank:           a.Bank,
			AccountNumber:  a.AccountNumber,
			Address:        a.Address,
			AmountOverdue:  a.AmountOverdue,
			CurrentBalance: a.CurrentBalance,
		}
		if a.BureauAccountDetails != nil {
			limit := a.CreditLimit
			account.AccountStatus = a.AccountStatus
			account.OpenDate = a.OpenDate
			account.CreditLimit = &limit
		}
		out.CreditAccounts[i] = account
	}

	return out
}

func toSummaryOutput(s domain.ReportSummary) SummaryOutput {
	return SummaryOutput{
		TotalAccounts:   s.TotalAccounts,
		ActiveAccounts:  s.ActiveAccounts,
		ClosedAccounts:  s.ClosedAccounts,
		CurrentBalance:  s.CurrentBalance,
		SecuredAmount:   s.SecuredAmount,
		UnsecuredAmount: s.UnsecuredAmount,
		RecentEnquiries: s.RecentEnquiries,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
