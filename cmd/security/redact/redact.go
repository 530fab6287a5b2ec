package redact

import (
	"regexp"
	"strings"
)

// Replacement is the default marker used by the gatehouse log pipeline.
const Replacement = "***"

// PIIFields is the fixed production field set obscured in every log line.
var PIIFields = []string{"name", "email", "phone", "ssn", "password"}

// Fields obscures the values of the named fields in message. For each field,
// every "field=<value><separator>" span becomes "field=<redaction><separator>".
// It is the uncompiled form of Redactor and is safe for arbitrary concurrent
// use; all inputs are treated as data, never as patterns.
func Fields(fields []string, redaction, message, separator string) string {
	for _, f := range fields {
		re := fieldPattern(f, separator)
		message = re.ReplaceAllLiteralString(message, f+"="+redaction+separator)
	}
	return message
}

// Redactor applies a fixed rule set with patterns compiled once.
type Redactor struct {
	rules     []rule
	separator string
}

type rule struct {
	re          *regexp.Regexp
	replacement string
}

// New compiles a Redactor for the given fields, redaction marker, and
// separator. The field order is preserved as supplied.
func New(fields []string, redaction, separator string) *Redactor {
	r := &Redactor{rules: make([]rule, 0, len(fields)), separator: separator}
	for _, f := range fields {
		r.rules = append(r.rules, rule{
			re:          fieldPattern(f, separator),
			replacement: f + "=" + redaction + separator,
		})
	}
	return r
}

// Separator reports the field separator the rule set was compiled with.
func (r *Redactor) Separator() string { return r.separator }

// Apply rewrites message under the compiled rule set.
func (r *Redactor) Apply(message string) string {
	for _, ru := range r.rules {
		message = ru.re.ReplaceAllLiteralString(message, ru.replacement)
	}
	return message
}

// fieldPattern matches "field=" plus a non-greedy value run up to and
// including the first separator.
func fieldPattern(field, separator string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(regexp.QuoteMeta(field))
	b.WriteString("=.*?")
	b.WriteString(regexp.QuoteMeta(separator))
	return regexp.MustCompile(b.String())
}
