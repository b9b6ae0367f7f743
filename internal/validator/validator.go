// Package validator collects field-level validation errors in the order
// the checks ran. Order matters: problems are shown to the user verbatim,
// one line per field.
package validator

import (
	"regexp"
	"strings"
)

var EmailRX = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+\\/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

type Validator struct {
	fields   []string
	messages map[string][]string
}

func New() *Validator {
	return &Validator{messages: make(map[string][]string)}
}

func (v *Validator) IsValid() bool {
	return len(v.fields) == 0
}

func (v *Validator) AddError(key, message string) {
	if _, exists := v.messages[key]; !exists {
		v.fields = append(v.fields, key)
	}
	v.messages[key] = append(v.messages[key], message)
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

func (v *Validator) CheckNotBlank(value, key, message string) {
	v.Check(strings.TrimSpace(value) != "", key, message)
}

func (v *Validator) CheckEmail(email, message string) {
	v.Check(EmailRX.MatchString(email), "email", message)
}

// Problems flattens the collected errors into display lines, one per
// field, formatted "<field> <message1>, <message2>" in the order the
// fields first failed.
func (v *Validator) Problems() []string {
	if len(v.fields) == 0 {
		return nil
	}
	problems := make([]string, 0, len(v.fields))
	for _, field := range v.fields {
		problems = append(problems, field+" "+strings.Join(v.messages[field], ", "))
	}
	return problems
}

// Errors exposes the per-field messages, keyed by field name.
func (v *Validator) Errors() map[string][]string {
	return v.messages
}
