// Package filter evaluates structured field filters against records:
// exact-value equality, set membership, numeric ranges, and date ranges,
// combinable with AND/OR logic.
package filter

import (
	"strings"
	"time"

	"github.com/sumry-app/SUMRY-sub001/model"
)

// Logic is the combination mode across multiple field filters.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// Normalize maps unknown or empty logic values to the AND default.
func (l Logic) Normalize() Logic {
	if strings.EqualFold(string(l), string(LogicOr)) {
		return LogicOr
	}
	return LogicAnd
}

// NumberRange bounds a numeric field; either bound is optional and both are
// inclusive.
type NumberRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// DateRange bounds a date-like field; either bound is optional and both are
// inclusive.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Spec is the filter for a single field. Exactly one of the four forms
// should be set; a zero Spec passes every record.
type Spec struct {
	Equals      *model.FieldValue  `json:"equals,omitempty"`
	AnyOf       []model.FieldValue `json:"any_of,omitempty"`
	NumberRange *NumberRange       `json:"number_range,omitempty"`
	DateRange   *DateRange         `json:"date_range,omitempty"`
}

// Map assigns a Spec per field name.
type Map map[string]Spec

// Matches evaluates every field filter against rec independently and
// combines the per-field results with logic: AND requires all to pass, OR at
// least one. An empty map matches everything.
func Matches(rec model.Record, filters Map, logic Logic) bool {
	if len(filters) == 0 {
		return true
	}

	logic = logic.Normalize()
	for field, spec := range filters {
		passed := spec.matches(rec, field)
		if logic == LogicAnd && !passed {
			return false
		}
		if logic == LogicOr && passed {
			return true
		}
	}
	return logic == LogicAnd
}

// Apply returns the records matching the filter map. An empty map is a
// no-op returning the input unchanged.
func Apply(records []model.Record, filters Map, logic Logic) []model.Record {
	if len(filters) == 0 {
		return records
	}

	matched := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if Matches(rec, filters, logic) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// matches evaluates one Spec against one field of a record. Records missing
// the field fail the filter; unparseable values fail range checks rather
// than erroring.
func (s Spec) matches(rec model.Record, field string) bool {
	// An AnyOf filter with an empty set is "no constraint": unset UI
	// controls must not produce surprise empty results.
	if s.AnyOf != nil && len(s.AnyOf) == 0 {
		return true
	}

	val, ok := rec.Get(field)

	switch {
	case s.Equals != nil:
		return ok && val.Equal(*s.Equals)

	case len(s.AnyOf) > 0:
		if !ok {
			return false
		}
		for _, candidate := range s.AnyOf {
			if val.Equal(candidate) {
				return true
			}
		}
		return false

	case s.NumberRange != nil:
		if !ok {
			return false
		}
		num, parsed := val.Num()
		if !parsed {
			return false
		}
		if s.NumberRange.Min != nil && num < *s.NumberRange.Min {
			return false
		}
		if s.NumberRange.Max != nil && num > *s.NumberRange.Max {
			return false
		}
		return true

	case s.DateRange != nil:
		if !ok {
			return false
		}
		t, parsed := val.Time()
		if !parsed {
			return false
		}
		if s.DateRange.Start != nil && t.Before(*s.DateRange.Start) {
			return false
		}
		if s.DateRange.End != nil && t.After(*s.DateRange.End) {
			return false
		}
		return true
	}

	// Zero Spec: no constraint.
	return true
}
