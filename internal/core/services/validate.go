package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Capitalize upper-cases the first letter and leaves the rest untouched,
// so "mcdonald" becomes "Mcdonald" while "McDonald" is kept as typed.
func Capitalize(name string) string {
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// TitleCase capitalizes every space-separated word and lower-cases the rest.
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// maxSalary is the first amount that no longer fits DECIMAL(12,2)
var maxSalary = decimal.New(1, 10)

// ValidateSalary returns the message shown under the salary prompt, or "" when
// the amount is non-negative, has at most 2 decimal places and fits DECIMAL(12,2).
func ValidateSalary(input string) string {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return "Please enter a valid number"
	}
	switch {
	case amount.IsNegative():
		return "Salary cannot be negative"
	case !amount.Equal(amount.Round(2)):
		return "Salary can have at most 2 decimal places"
	case amount.GreaterThanOrEqual(maxSalary):
		return "Salary must be below 10000000000"
	}
	return ""
}

// ValidateInput returns the message shown under a prompt, or "" when the input is acceptable.
func ValidateInput(input string, numeric bool) string {
	if numeric {
		if _, err := decimal.NewFromString(strings.TrimSpace(input)); err != nil {
			return "Please enter a valid number"
		}
		return ""
	}
	if strings.TrimSpace(input) == "" {
		return "Input is required"
	}
	return ""
}
