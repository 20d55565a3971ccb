package domain

import "time"

// UnknownApplicant is the name placeholder used on the Experian path when
// neither given nor family name is present.
const UnknownApplicant = "Unknown"

// Report is the normalised record extracted from a bureau document.
// It is the canonical representation after extraction.
type Report struct {
	// ID is assigned by the store at persistence time. Extraction never sets it.
	ID string `json:"id,omitempty"`

	// Format records which extractor produced the report.
	Format ReportFormat `json:"format,omitempty"`

	// SourceFile is the upload name the report was ingested from.
	SourceFile string `json:"sourceFile,omitempty"`

	BasicDetails   BasicDetails    `json:"basicDetails"`
	ReportSummary  ReportSummary   `json:"reportSummary"`
	CreditAccounts []CreditAccount `json:"creditAccounts"`

	// Raw is the parsed tree of the detected schema root, kept for audit.
	Raw any `json:"raw,omitempty"`

	// CreatedAt is assigned by the store at persistence time.
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// BasicDetails identifies the applicant.
type BasicDetails struct {
	Name        string  `json:"name"`
	Mobile      string  `json:"mobile"`
	PAN         string  `json:"pan"`
	CreditScore float64 `json:"creditScore"`
}

// ReportSummary aggregates the applicant's credit exposure.
type ReportSummary struct {
	TotalAccounts   float64 `json:"totalAccounts"`
	ActiveAccounts  float64 `json:"activeAccounts"`
	ClosedAccounts  float64 `json:"closedAccounts"`
	CurrentBalance  float64 `json:"currentBalance"`
	SecuredAmount   float64 `json:"securedAmount"`
	UnsecuredAmount float64 `json:"unsecuredAmount"`
	RecentEnquiries float64 `json:"recentEnquiries"`
}

// CreditAccount is a single credit facility in source document order.
type CreditAccount struct {
	Type           string  `json:"type"`
	Bank           string  `json:"bank"`
	AccountNumber  string  `json:"accountNumber"`
	Address        string  `json:"address"`
	AmountOverdue  float64 `json:"amountOverdue"`
	CurrentBalance float64 `json:"currentBalance"`

	// BureauAccountDetails is only populated on the Experian path.
	// Its fields are flattened into the account when encoded.
	*BureauAccountDetails
}

// BureauAccountDetails holds the account fields only the Experian schema reports.
type BureauAccountDetails struct {
	AccountStatus string  `json:"accountStatus"`
	OpenDate      string  `json:"openDate"`
	CreditLimit   float64 `json:"creditLimit"`
}

// ReportListing is the summary projection used by paged listings.
type ReportListing struct {
	ID            string        `json:"id"`
	Format        ReportFormat  `json:"format,omitempty"`
	BasicDetails  BasicDetails  `json:"basicDetails"`
	ReportSummary ReportSummary `json:"reportSummary"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Listing returns the summary projection of the report.
func (r *Report) Listing() ReportListing {
	return ReportListing{
		ID:            r.ID,
		Format:        r.Format,
		BasicDetails:  r.BasicDetails,
		ReportSummary: r.ReportSummary,
		CreatedAt:     r.CreatedAt,
	}
}

// ListOptions configures a paged listing.
type ListOptions struct {
	// Limit is the maximum number of results. Zero or negative means the default page size.
	Limit int

	// Offset is the number of results to skip.
	Offset int
}

// DefaultPageSize is the listing size used when no limit is configured.
const DefaultPageSize = 50

// Normalise fills defaults into the options.
func (o ListOptions) Normalise(pageSize int) ListOptions {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if o.Limit <= 0 {
		o.Limit = pageSize
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
