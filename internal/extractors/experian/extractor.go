// Package experian extracts reports from the nested INProfileResponse schema.
package experian

import (
	"strings"

	"github.com/samber/lo"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bureau-cli/internal/extractors/coerce"
)

// Ensure Extractor implements the interface.
var _ driven.FormatExtractor = (*Extractor)(nil)

// RootKey is the top-level wrapper element of an Experian document.
const RootKey = "INProfileResponse"

// Extractor maps the INProfileResponse schema onto the normalised report.
type Extractor struct{}

// New creates a new Experian extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the schema this extractor handles.
func (e *Extractor) Format() domain.ReportFormat {
	return domain.FormatExperian
}

// Extract builds a report from the contents of the INProfileResponse wrapper.
func (e *Extractor) Extract(root any) domain.Report {
	applicant := coerce.Path(root,
		"Current_Application", "Current_Application_Details", "Current_Applicant_Details")

	details := domain.BasicDetails{
		Name:        applicantName(applicant),
		Mobile:      applicantMobile(applicant),
		PAN:         coerce.String(coerce.Path(applicant, "IncomeTaxPan")),
		CreditScore: coerce.Number(coerce.Path(root, "SCORE", "BureauScore")),
	}

	cais := coerce.Path(root, "CAIS_Account")
	credit := coerce.Path(cais, "CAIS_Summary", "Credit_Account")
	balance := coerce.Path(cais, "CAIS_Summary", "Total_Outstanding_Balance")

	summary := domain.ReportSummary{
		TotalAccounts:   coerce.Number(coerce.Path(credit, "CreditAccountTotal")),
		ActiveAccounts:  coerce.Number(coerce.Path(credit, "CreditAccountActive")),
		ClosedAccounts:  coerce.Number(coerce.Path(credit, "CreditAccountClosed")),
		CurrentBalance:  coerce.Number(coerce.Path(balance, "Outstanding_Balance_All")),
		SecuredAmount:   coerce.Number(coerce.Path(balance, "Outstanding_Balance_Secured")),
		UnsecuredAmount: coerce.Number(coerce.Path(balance, "Outstanding_Balance_UnSecured")),
		RecentEnquiries: coerce.Number(coerce.Path(root, "TotalCAPS_Summary", "TotalCAPSLast7Days")),
	}

	entries := coerce.Sequence(coerce.Path(cais, "CAIS_Account_DETAILS"))
	accounts := make([]domain.CreditAccount, 0, len(entries))
	for _, entry := range entries {
		// The applicant PAN wins; otherwise the first account carrying one fills it.
		if details.PAN == "" {
			details.PAN = holderPAN(entry)
		}
		accounts = append(accounts, mapAccount(entry))
	}

	return domain.Report{
		Format:         domain.FormatExperian,
		BasicDetails:   details,
		ReportSummary:  summary,
		CreditAccounts: accounts,
		Raw:            root,
	}
}

func applicantName(applicant any) string {
	first := coerce.String(coerce.Path(applicant, "First_Name"))
	last := coerce.String(coerce.Path(applicant, "Last_Name"))
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return domain.UnknownApplicant
	}
	return name
}

func applicantMobile(applicant any) string {
	if mobile := coerce.String(coerce.Path(applicant, "MobilePhoneNumber")); mobile != "" {
		return mobile
	}
	return coerce.String(coerce.Path(applicant, "Telephone_Number_Applicant_1st"))
}

func holderPAN(entry any) string {
	for _, holder := range coerce.Sequence(coerce.Path(entry, "CAIS_Holder_Details")) {
		if pan := coerce.String(coerce.Path(holder, "Income_TAX_PAN")); pan != "" {
			return pan
		}
	}
	return ""
}

func mapAccount(entry any) domain.CreditAccount {
	return domain.CreditAccount{
		Type:           AccountTypeLabel(coerce.String(coerce.Path(entry, "Account_Type"))),
		Bank:           coerce.String(coerce.Path(entry, "Subscriber_Name")),
		AccountNumber:  coerce.String(coerce.Path(entry, "Account_Number")),
		Address:        holderAddress(entry),
		AmountOverdue:  coerce.Number(coerce.Path(entry, "Amount_Past_Due")),
		CurrentBalance: coerce.Number(coerce.Path(entry, "Current_Balance")),
		BureauAccountDetails: &domain.BureauAccountDetails{
			AccountStatus: coerce.String(coerce.Path(entry, "Account_Status")),
			OpenDate:      coerce.String(coerce.Path(entry, "Open_Date")),
			CreditLimit:   coerce.Number(coerce.Path(entry, "Credit_Limit_Amount")),
		},
	}
}

var addressFields = []string{
	"First_Line_Of_Address_non_normalized",
	"Second_Line_Of_Address_non_normalized",
	"Third_Line_Of_Address_non_normalized",
	"City_non_normalized",
}

// holderAddress joins the non-empty address lines with ", ".
func holderAddress(entry any) string {
	address := coerce.First(coerce.Path(entry, "CAIS_Holder_Address_Details"))
	lines := lo.FilterMap(addressFields, func(field string, _ int) (string, bool) {
		line := coerce.String(coerce.Path(address, field))
		return line, line != ""
	})
	return strings.Join(lines, ", ")
}
