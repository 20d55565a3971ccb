package experian

// accountTypes maps bureau account type codes to display labels.
var accountTypes = map[string]string{
	"10": "Credit Card",
	"51": "Personal Loan",
	"52": "Home Loan",
	"53": "Auto Loan",
	"54": "Education Loan",
	"55": "Business Loan",
}

// AccountTypeLabel returns the label for an account type code.
// Unknown codes, including the empty code, yield "Account Type {code}".
func AccountTypeLabel(code string) string {
	if label, ok := accountTypes[code]; ok {
		return label
	}
	return "Account Type " + code
}
