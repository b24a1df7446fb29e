package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	digitsBeforeAtRegex = regexp.MustCompile(`\d{2}@`)
	digitsAfterAtRegex  = regexp.MustCompile(`@\d{2}`)
	letterMarkerRegex   = regexp.MustCompile(`\*?([A-Z])@`)
)

// ClassifyAccountType derives the account type code from the raw text of
// an account header line. The guards overlap on purpose and their order
// is load-bearing: a header carrying both "@KC" and "CC" is a KC account.
func ClassifyAccountType(headerText string) string {
	if strings.TrimSpace(headerText) == "" {
		return "UNKNOWN"
	}
	info := strings.ToUpper(headerText)

	switch {
	case strings.Contains(info, "@KC"):
		return "KC"
	case strings.Contains(info, "@M"):
		return "M"
	case strings.Contains(info, "*C") || strings.Contains(info, "@C"):
		return "C"
	case strings.Contains(info, "CC"):
		return "CC"
	case strings.Contains(info, "@V") || strings.Contains(info, "*V") || strings.Contains(info, " V "):
		return "V"
	case digitsBeforeAtRegex.MatchString(info) || digitsAfterAtRegex.MatchString(info):
		return "XX"
	}

	if match := letterMarkerRegex.FindStringSubmatch(info); match != nil {
		return match[1]
	}

	return "REGULAR"
}

// ContraFlagFor maps an account type code to its contra eligibility.
// Codes outside the known set that are a single letter count as contra.
func ContraFlagFor(accountType string) string {
	switch accountType {
	case "XX", "KC", "C", "V":
		return "Y"
	case "M", "CC":
		return "N"
	}

	if runes := []rune(accountType); len(runes) == 1 && unicode.IsLetter(runes[0]) {
		return "Y"
	}

	return "UNKNOWN"
}
