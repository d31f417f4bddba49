// Package model defines the record types the search engine operates on.
// A Record is an open mapping from field name to a scalar FieldValue; the
// closed set of value kinds keeps filter and scorer code exhaustively
// checkable.
package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// Kind identifies the scalar type stored in a FieldValue.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDate
)

// dateLayouts are the formats accepted for date-like string values,
// tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FieldValue is a tagged scalar: a string, a number, or a date-like string.
// The zero value is the empty string.
type FieldValue struct {
	kind Kind
	str  string
	num  float64
}

// String creates a string-valued FieldValue.
func String(s string) FieldValue { return FieldValue{kind: KindString, str: s} }

// Number creates a number-valued FieldValue.
func Number(n float64) FieldValue { return FieldValue{kind: KindNumber, num: n} }

// Date creates a FieldValue holding a date-like string (e.g. "2026-03-01").
// The string is parsed lazily by Time; an unparseable value simply never
// satisfies date comparisons.
func Date(s string) FieldValue { return FieldValue{kind: KindDate, str: s} }

// Kind returns the scalar kind of the value.
func (v FieldValue) Kind() Kind { return v.kind }

// Text returns the stringified form of the value, used for indexing and
// display. Numbers are formatted without a trailing ".0".
func (v FieldValue) Text() string {
	if v.kind == KindNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// Num returns the value as a float64. String values that parse as numbers
// are accepted, matching the permissive coercion used by filters.
func (v FieldValue) Num() (float64, bool) {
	if v.kind == KindNumber {
		return v.num, true
	}
	if f, err := strconv.ParseFloat(v.str, 64); err == nil {
		return f, true
	}
	return 0, false
}

// Time returns the value parsed as a timestamp. Any string value is given a
// chance, not only KindDate ones; numbers are treated as Unix seconds.
func (v FieldValue) Time() (time.Time, bool) {
	if v.kind == KindNumber {
		return time.Unix(int64(v.num), 0), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v.str); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Equal reports whether two values are equal, coercing across kinds the way
// filters do: numeric equality wins when both sides parse as numbers,
// otherwise the stringified forms are compared.
func (v FieldValue) Equal(o FieldValue) bool {
	if vf, vok := v.Num(); vok {
		if of, ook := o.Num(); ook {
			return vf == of
		}
	}
	return v.Text() == o.Text()
}

// Compare orders two values: numerically when both sides parse as numbers,
// chronologically when both parse as timestamps, lexically otherwise.
// It returns -1, 0, or 1.
func (v FieldValue) Compare(o FieldValue) int {
	if vf, vok := v.Num(); vok {
		if of, ook := o.Num(); ook {
			switch {
			case vf < of:
				return -1
			case vf > of:
				return 1
			}
			return 0
		}
	}
	if vt, vok := v.Time(); vok {
		if ot, ook := o.Time(); ook {
			switch {
			case vt.Before(ot):
				return -1
			case vt.After(ot):
				return 1
			}
			return 0
		}
	}
	vs, os := v.Text(), o.Text()
	switch {
	case vs < os:
		return -1
	case vs > os:
		return 1
	}
	return 0
}

// MarshalJSON encodes numbers as JSON numbers and everything else as strings.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON accepts JSON numbers and strings. Strings that match a known
// date layout are tagged as dates; other JSON values are stringified, so a
// malformed record degrades rather than failing the whole payload.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	// json.Unmarshal leaves a numeric target untouched on null, so null
	// must be handled before the number attempt or it becomes Number(0).
	if string(data) == "null" {
		*v = String("")
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*v = Number(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		for _, layout := range dateLayouts {
			if _, perr := time.Parse(layout, str); perr == nil {
				*v = Date(str)
				return nil
			}
		}
		*v = String(str)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = String(strconv.FormatBool(b))
		return nil
	}
	*v = String(string(data))
	return nil
}

// Record is a flexible map representing one searchable entity (a student, a
// goal, a progress log entry). Identity is external: the engine reads an "id"
// field when present but does not enforce uniqueness.
type Record map[string]FieldValue

// Get returns the value of a field.
func (r Record) Get(field string) (FieldValue, bool) {
	v, ok := r[field]
	return v, ok
}

// ID returns the record's "id" field if it is a non-empty string.
func (r Record) ID() (string, bool) {
	if v, ok := r["id"]; ok {
		if s := v.Text(); s != "" {
			return s, true
		}
	}
	return "", false
}

// IndexedRecord augments a Record with derived search attributes computed at
// index-build time. Tokens and Text are pure functions of the indexed fields:
// re-indexing the same fields always yields the same values. Both are always
// non-nil, so downstream code need not special-case empty records.
type IndexedRecord struct {
	Record Record
	Tokens map[string]struct{} // lowercase word tokens plus their prefixes (length 2..8)
	Text   string              // lowercase concatenation of indexed field values
}

// HasToken reports whether the token set contains tok.
func (ir IndexedRecord) HasToken(tok string) bool {
	_, ok := ir.Tokens[tok]
	return ok
}
