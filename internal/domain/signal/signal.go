// Package signal defines the structured facts extracted from a free-text
// design brief. Signals live for one request and are never persisted.
package signal

import (
	"fmt"
)

// Key names one extractable fact about the brief.
type Key string

const (
	ProductType Key = "product_type"
	StylePref   Key = "style_pref"
	PageType    Key = "page_type"
	CTAGoal     Key = "cta_goal"
	Framework   Key = "framework"
)

// Keys lists all signal keys in canonical order.
var Keys = []Key{ProductType, StylePref, PageType, CTAGoal, Framework}

var knownKeys = buildKnownKeys()

func buildKnownKeys() map[Key]struct{} {
	m := make(map[Key]struct{}, len(Keys))
	for _, k := range Keys {
		m[k] = struct{}{}
	}
	return m
}

// Valid reports whether k is a known signal key.
func (k Key) Valid() bool {
	_, ok := knownKeys[k]
	return ok
}

// UnspecifiedValue is the reserved value for a key no rule matched.
// Downstream stages treat it as "no preference".
const UnspecifiedValue = "unspecified"

// Signal is one confidence-scored fact.
type Signal struct {
	key        Key
	value      string
	confidence float64
}

// New validates and creates a Signal.
func New(key Key, value string, confidence float64) (Signal, error) {
	if !key.Valid() {
		return Signal{}, fmt.Errorf("unknown signal key %q", key)
	}
	if value == "" {
		return Signal{}, fmt.Errorf("signal %s: value is required", key)
	}
	if confidence < 0 || confidence > 1 {
		return Signal{}, fmt.Errorf("signal %s: confidence must be in [0,1], got %v", key, confidence)
	}
	return Signal{key: key, value: value, confidence: confidence}, nil
}

// Unspecified creates the reserved no-preference signal for a key.
func Unspecified(key Key) Signal {
	return Signal{key: key, value: UnspecifiedValue, confidence: 0}
}

// Key returns the signal key.
func (s Signal) Key() Key { return s.key }

// Value returns the extracted value.
func (s Signal) Value() string { return s.value }

// Confidence returns the extraction confidence in [0,1].
func (s Signal) Confidence() float64 { return s.confidence }

// IsUnspecified reports whether no rule matched this key.
func (s Signal) IsUnspecified() bool { return s.value == UnspecifiedValue }

// Set holds exactly one signal per key.
type Set map[Key]Signal

// NewSet creates a Set with every key unspecified.
func NewSet() Set {
	s := make(Set, len(Keys))
	for _, k := range Keys {
		s[k] = Unspecified(k)
	}
	return s
}

// Get returns the signal for key, or the unspecified signal if absent.
func (s Set) Get(key Key) Signal {
	if sig, ok := s[key]; ok {
		return sig
	}
	return Unspecified(key)
}

// Put stores a signal under its key.
func (s Set) Put(sig Signal) { s[sig.key] = sig }

// ApplyOverrides replaces signals with caller-supplied values at full
// confidence. Unknown keys are rejected.
func (s Set) ApplyOverrides(overrides map[Key]string) error {
	for key, value := range overrides {
		sig, err := New(key, value, 1.0)
		if err != nil {
			return fmt.Errorf("override: %w", err)
		}
		s[key] = sig
	}
	return nil
}

// Ordered returns the signals in canonical key order.
func (s Set) Ordered() []Signal {
	out := make([]Signal, 0, len(Keys))
	for _, k := range Keys {
		out = append(out, s.Get(k))
	}
	return out
}
