// Package redact scrubs credentials and personal data from strings before
// they are logged. Error responses never carry raw error text, so redaction
// only matters for logs.
package redact

import "regexp"

// Placeholders substituted for matched content.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedHashPlaceholder       = "[REDACTED_HASH]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
)

type rule struct {
	re          *regexp.Regexp
	placeholder string
}

// Applied in order. Connection strings go first so their userinfo is
// replaced before the email rule can match "user@host".
var rules = []rule{
	{
		re:          regexp.MustCompile(`(?i)\b(postgres(?:ql)?|pgx)://[^@\s/]+@`),
		placeholder: "${1}://" + RedactedCredentialPlaceholder + "@",
	},
	{
		re:          regexp.MustCompile(`(?i)\b(password|passwd|pwd)=\S+`),
		placeholder: "${1}=" + RedactedCredentialPlaceholder,
	},
	{
		re:          regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		placeholder: RedactedJWTPlaceholder,
	},
	{
		re:          regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9_\-.~+/]+=*`),
		placeholder: "Bearer " + RedactedCredentialPlaceholder,
	},
	{
		re:          regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`),
		placeholder: RedactedHashPlaceholder,
	},
	{
		re:          regexp.MustCompile(`(?i)\b(jwt[_-]?secret|secret|api[_-]?key)(\s*[:=]\s*)['"]?[^\s'"]{8,}['"]?`),
		placeholder: "${1}${2}" + RedactedKeyPlaceholder,
	},
	{
		re:          regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		placeholder: RedactedEmailPlaceholder,
	},
	{
		re: regexp.MustCompile(
			`\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\w,*()$=.]+\b(FROM|INTO|SET|WHERE)\b[\s\w,*()$='".]*`,
		),
		placeholder: RedactedSQLPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
