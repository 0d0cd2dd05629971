package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/herohuntr/huntr/internal/domain"
	"github.com/herohuntr/huntr/internal/domain/search/kind"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64
	Max float64
}

// MarshalJSON encodes the range as a [min, max] pair.
func (r Range) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal([2]float64{r.Min, r.Max})
	if err != nil {
		return nil, fmt.Errorf("marshal range: %w", err)
	}
	return b, nil
}

// Set is an immutable collection of filter values for one kind.
// Every update returns a new Set; the receiver is never modified.
type Set struct {
	kind    kind.Kind
	fields  []Field
	ranges  map[string]Range
	choices map[string]string
}

// Defaults returns the full-range filter set for a kind.
// An unknown kind yields an empty set with no fields.
func Defaults(k kind.Kind) Set {
	fields, err := schema(k)
	if err != nil {
		return Set{}
	}
	s := Set{
		kind:    k,
		fields:  fields,
		ranges:  make(map[string]Range),
		choices: make(map[string]string),
	}
	for _, f := range fields {
		if f.Type == RangeField {
			s.ranges[f.Name] = Range{Min: f.Min, Max: f.Max}
		} else {
			s.choices[f.Name] = ""
		}
	}
	return s
}

// Kind returns the search kind the set applies to.
func (s Set) Kind() kind.Kind { return s.kind }

// Fields returns a copy of the schema of the set.
func (s Set) Fields() []Field { return copyFields(s.fields) }

// Range returns the current value of a range field.
func (s Set) Range(name string) (Range, bool) {
	r, ok := s.ranges[name]
	return r, ok
}

// Choice returns the current value of a choice field ("" = any).
func (s Set) Choice(name string) (string, bool) {
	c, ok := s.choices[name]
	return c, ok
}

// WithRange returns a copy of s with one range field replaced.
func (s Set) WithRange(name string, lo, hi float64) (Set, error) {
	f, ok := lookup(s.fields, name)
	if !ok || f.Type != RangeField {
		return Set{}, fmt.Errorf("%w: %q is not a %s range", domain.ErrInvalidFilter, name, s.kind)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return Set{}, fmt.Errorf("%w: %s range [%v, %v] is inverted", domain.ErrInvalidFilter, name, lo, hi)
	}
	if lo < f.Min || hi > f.Max {
		return Set{}, fmt.Errorf("%w: %s range [%v, %v] outside [%v, %v]",
			domain.ErrInvalidFilter, name, lo, hi, f.Min, f.Max)
	}
	out := s.clone()
	out.ranges[name] = Range{Min: lo, Max: hi}
	return out, nil
}

// WithChoice returns a copy of s with one choice field replaced. "" clears it.
func (s Set) WithChoice(name, value string) (Set, error) {
	f, ok := lookup(s.fields, name)
	if !ok || f.Type != ChoiceField {
		return Set{}, fmt.Errorf("%w: %q is not a %s choice", domain.ErrInvalidFilter, name, s.kind)
	}
	if !f.allows(value) {
		return Set{}, fmt.Errorf("%w: %q is not a valid %s", domain.ErrInvalidFilter, value, name)
	}
	out := s.clone()
	out.choices[name] = value
	return out, nil
}

// Reset returns the default set of the same kind.
func (s Set) Reset() Set {
	return Defaults(s.kind)
}

// IsDefault reports whether no field deviates from its full-range default.
func (s Set) IsDefault() bool {
	return len(s.Params()) == 0
}

// Equal reports whether both sets would produce the same request.
func (s Set) Equal(other Set) bool {
	return s.Canonical() == other.Canonical()
}

// Params encodes the non-default fields as request parameters:
// ranges as <name>Min/<name>Max, choices as <name>=<value>.
func (s Set) Params() url.Values {
	params := url.Values{}
	for _, f := range s.fields {
		switch f.Type {
		case RangeField:
			r := s.ranges[f.Name]
			if r.Min == f.Min && r.Max == f.Max {
				continue
			}
			params.Set(f.Name+"Min", formatNumber(r.Min))
			params.Set(f.Name+"Max", formatNumber(r.Max))
		case ChoiceField:
			if v := s.choices[f.Name]; v != "" {
				params.Set(f.Name, v)
			}
		}
	}
	return params
}

// Canonical returns a stable encoding of the non-default fields.
// Sets that differ only in default-valued fields encode identically.
func (s Set) Canonical() string {
	return s.Params().Encode()
}

// Values is the wire form of a set: ranges as [min, max] pairs and choices
// by name. Missing fields keep their current value.
type Values struct {
	Ranges  map[string][2]float64 `json:"ranges,omitempty"`
	Choices map[string]string     `json:"choices,omitempty"`
}

// Apply replaces every field named in v, in schema order.
func (s Set) Apply(v Values) (Set, error) {
	for name := range v.Ranges {
		if _, ok := s.ranges[name]; !ok {
			return Set{}, fmt.Errorf("%w: %q is not a %s range", domain.ErrInvalidFilter, name, s.kind)
		}
	}
	for name := range v.Choices {
		if _, ok := s.choices[name]; !ok {
			return Set{}, fmt.Errorf("%w: %q is not a %s choice", domain.ErrInvalidFilter, name, s.kind)
		}
	}

	out := s
	var err error
	for _, f := range s.fields {
		if r, ok := v.Ranges[f.Name]; ok {
			if out, err = out.WithRange(f.Name, r[0], r[1]); err != nil {
				return Set{}, err
			}
		}
		if c, ok := v.Choices[f.Name]; ok {
			if out, err = out.WithChoice(f.Name, c); err != nil {
				return Set{}, err
			}
		}
	}
	return out, nil
}

// MarshalJSON encodes the set with its kind and every field value.
func (s Set) MarshalJSON() ([]byte, error) {
	ranges := make(map[string]Range, len(s.ranges))
	for k, v := range s.ranges {
		ranges[k] = v
	}
	choices := make(map[string]string, len(s.choices))
	for k, v := range s.choices {
		choices[k] = v
	}
	b, err := json.Marshal(struct {
		Kind    kind.Kind         `json:"kind"`
		Ranges  map[string]Range  `json:"ranges"`
		Choices map[string]string `json:"choices"`
	}{s.kind, ranges, choices})
	if err != nil {
		return nil, fmt.Errorf("marshal filter set: %w", err)
	}
	return b, nil
}

func (s Set) clone() Set {
	out := Set{
		kind:    s.kind,
		fields:  s.fields,
		ranges:  make(map[string]Range, len(s.ranges)),
		choices: make(map[string]string, len(s.choices)),
	}
	for k, v := range s.ranges {
		out.ranges[k] = v
	}
	for k, v := range s.choices {
		out.choices[k] = v
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
