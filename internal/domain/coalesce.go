package domain

import "strings"

// CoalesceStr returns the first non-blank string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// NotAvailable is the display fallback for absent profile fields.
const NotAvailable = "Not available"

// OrNotAvailable substitutes the display fallback for blank values.
func OrNotAvailable(vals ...string) string {
	if v := CoalesceStr(vals...); v != "" {
		return v
	}
	return NotAvailable
}
