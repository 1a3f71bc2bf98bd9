package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString decodes a JSON value that the ERP serves inconsistently as
// either a string or a number. It keeps the raw textual form so that
// lenient numeric parsing stays a caller decision.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

func (f FlexString) String() string { return string(f) }

// Float returns the numeric value, or 0 when the field is empty or
// malformed. The ERP sends fractional balances as strings often enough
// that parse failures are coerced rather than surfaced.
func (f FlexString) Float() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
	if err != nil {
		return 0
	}
	return v
}

// IsSet reports whether the flag field holds the ERP's "1" truthy marker.
func (f FlexString) IsSet() bool {
	return strings.TrimSpace(string(f)) == "1"
}
