package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// missingSentinel is the in-band placeholder the source datasets use for absent values.
const missingSentinel = "0.0"

// Optional is a string value that may be absent in the source data.
type Optional struct {
	Value string
	Valid bool
}

// Some returns a present Optional holding v.
func Some(v string) Optional {
	return Optional{Value: v, Valid: true}
}

// ParseOptional maps a raw string to an Optional, treating blanks and the sentinel as absent.
func ParseOptional(s string) Optional {
	s = strings.TrimSpace(s)
	if s == "" || s == missingSentinel {
		return Optional{}
	}
	return Some(s)
}

func (o Optional) String() string {
	if !o.Valid {
		return ""
	}
	return o.Value
}

// UnmarshalJSON accepts strings, numbers and null. A zero number is the
// float form of the sentinel and decodes as absent.
func (o *Optional) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = Optional{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = ParseOptional(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("models: invalid number %s: %w", data, err)
		}
		if f == 0 {
			*o = Optional{}
			return nil
		}
		*o = Some(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}

	return fmt.Errorf("models: expected string, number or null, got %s", data)
}

// MarshalJSON writes absent values as null.
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
