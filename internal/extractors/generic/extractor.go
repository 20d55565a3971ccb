// Package generic extracts reports from the legacy simplified schema.
//
// Every logical field accepts several element names. Aliases are tried
// left to right and the first present element wins, even when it is empty.
package generic

import (
	"github.com/samber/lo"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bureau-cli/internal/extractors/coerce"
)

// Ensure Extractor implements the interface.
var _ driven.FormatExtractor = (*Extractor)(nil)

// WrapperKey is the optional top-level wrapper of a generic document.
const WrapperKey = "ExperianReport"

// UnknownAccountType is used when an account names no type or product.
const UnknownAccountType = "Unknown"

// Field aliases in priority order.
var (
	personalKeys = []string{"PersonalDetails", "Subject"}
	nameKeys     = []string{"Name", "FullName", "NameLine"}
	mobileKeys   = []string{"Mobile", "Phone"}
	panKeys      = []string{"PAN", "PANNumber", "Identification"}

	totalKeys     = []string{"TotalAccounts", "Accounts"}
	activeKeys    = []string{"ActiveAccounts", "Active"}
	closedKeys    = []string{"ClosedAccounts", "Closed"}
	balanceKeys   = []string{"CurrentBalance", "Balance"}
	securedKeys   = []string{"SecuredAmount"}
	unsecuredKeys = []string{"UnsecuredAmount"}
	enquiryKeys   = []string{"EnquiriesLast7Days", "RecentEnquiries"}

	containerKeys = []string{"Accounts", "CreditAccounts"}
	listKeys      = []string{"Account", "Accounts"}

	typeKeys    = []string{"Type", "Product"}
	bankKeys    = []string{"Bank", "Institution"}
	numberKeys  = []string{"AccountNumber", "AccountNo"}
	addressKeys = []string{"Address", "Branch"}
	overdueKeys = []string{"AmountOverdue", "Overdue"}
)

// accountKeys is every alias that marks a mapping as an account.
var accountKeys = lo.Flatten([][]string{typeKeys, bankKeys, numberKeys, addressKeys, overdueKeys, balanceKeys})

// Extractor maps the generic schema onto the normalised report.
type Extractor struct{}

// New creates a new generic extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the schema this extractor handles.
func (e *Extractor) Format() domain.ReportFormat {
	return domain.FormatGeneric
}

// Extract builds a report from the document root.
func (e *Extractor) Extract(root any) domain.Report {
	personal, _ := coerce.FirstPresent(root, personalKeys...)
	summary := coerce.Path(root, "Summary")

	return domain.Report{
		Format: domain.FormatGeneric,
		BasicDetails: domain.BasicDetails{
			Name:        alias(personal, nameKeys),
			Mobile:      alias(personal, mobileKeys),
			PAN:         alias(personal, panKeys),
			CreditScore: coerce.Number(score(root)),
		},
		ReportSummary: domain.ReportSummary{
			TotalAccounts:   aliasNumber(summary, totalKeys),
			ActiveAccounts:  aliasNumber(summary, activeKeys),
			ClosedAccounts:  aliasNumber(summary, closedKeys),
			CurrentBalance:  aliasNumber(summary, balanceKeys),
			SecuredAmount:   aliasNumber(summary, securedKeys),
			UnsecuredAmount: aliasNumber(summary, unsecuredKeys),
			RecentEnquiries: aliasNumber(summary, enquiryKeys),
		},
		CreditAccounts: accounts(root),
		Raw:            root,
	}
}

func score(root any) any {
	if v, ok := coerce.FirstPresent(root, "CreditScore", "Score"); ok {
		return v
	}
	return coerce.Path(root, "Summary", "Score")
}

func accounts(root any) []domain.CreditAccount {
	container, _ := coerce.FirstPresent(root, containerKeys...)

	var entries []any
	if list, ok := coerce.FirstPresent(container, listKeys...); ok {
		entries = coerce.Sequence(list)
	} else if isSequence(container) {
		entries = coerce.Sequence(container)
	} else if hasAny(container, accountKeys) {
		// A container holding account fields directly is a single account.
		entries = []any{container}
	}

	out := make([]domain.CreditAccount, 0, len(entries))
	for _, entry := range entries {
		out = append(out, mapAccount(entry))
	}
	return out
}

func mapAccount(entry any) domain.CreditAccount {
	accountType := UnknownAccountType
	if _, ok := coerce.FirstPresent(entry, typeKeys...); ok {
		accountType = alias(entry, typeKeys)
	}

	return domain.CreditAccount{
		Type:           accountType,
		Bank:           alias(entry, bankKeys),
		AccountNumber:  alias(entry, numberKeys),
		Address:        alias(entry, addressKeys),
		AmountOverdue:  aliasNumber(entry, overdueKeys),
		CurrentBalance: aliasNumber(entry, balanceKeys),
	}
}

func alias(v any, keys []string) string {
	val, _ := coerce.FirstPresent(v, keys...)
	return coerce.String(val)
}

func aliasNumber(v any, keys []string) float64 {
	val, _ := coerce.FirstPresent(v, keys...)
	return coerce.Number(val)
}

func hasAny(v any, keys []string) bool {
	_, ok := coerce.FirstPresent(v, keys...)
	return ok
}

func isSequence(v any) bool {
	_, ok := v.([]any)
	return ok
}

