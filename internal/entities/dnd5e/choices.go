package dnd5e

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ChoiceKind identifies what a recorded player sub-choice selects
type ChoiceKind string

// Choice kinds
const (
	ChoiceKindAbility   ChoiceKind = "ability"
	ChoiceKindSkills    ChoiceKind = "skills"
	ChoiceKindExpertise ChoiceKind = "expertise"
	ChoiceKindSaves     ChoiceKind = "saves"
	ChoiceKindOption    ChoiceKind = "option"
)

var choiceKinds = map[ChoiceKind]bool{
	ChoiceKindAbility:   true,
	ChoiceKindSkills:    true,
	ChoiceKindExpertise: true,
	ChoiceKindSaves:     true,
	ChoiceKindOption:    true,
}

// ChoiceKey addresses one choice slot of one feat instance.
//
// Instance separates the picks of a repeatable feat taken more than once;
// the first copy is instance 0.
type ChoiceKey struct {
	Subject  string
	Kind     ChoiceKind
	Index    int
	Instance int
}

// String renders the stored form: Subject_kind_index[_instance]
func (k ChoiceKey) String() string {
	s := fmt.Sprintf("%s_%s_%d", k.Subject, k.Kind, k.Index)
	if k.Instance > 0 {
		s = fmt.Sprintf("%s_%d", s, k.Instance)
	}
	return s
}

// MarshalText writes the stored form
func (k ChoiceKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the stored form
func (k *ChoiceKey) UnmarshalText(text []byte) error {
	parsed, err := ParseChoiceKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseChoiceKey parses a stored key. Subjects may contain underscores, so the
// key is read from the right.
func ParseChoiceKey(raw string) (ChoiceKey, error) {
	parts := strings.Split(raw, "_")
	if len(parts) < 3 {
		return ChoiceKey{}, fmt.Errorf("choice key %q: too few segments", raw)
	}

	instance := 0
	if len(parts) >= 4 {
		last, lastErr := strconv.Atoi(parts[len(parts)-1])
		_, prevErr := strconv.Atoi(parts[len(parts)-2])
		if lastErr == nil && prevErr == nil {
			instance = last
			parts = parts[:len(parts)-1]
		}
	}

	index, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return ChoiceKey{}, fmt.Errorf("choice key %q: bad index", raw)
	}
	kind := ChoiceKind(parts[len(parts)-2])
	if !choiceKinds[kind] {
		return ChoiceKey{}, fmt.Errorf("choice key %q: unknown kind %q", raw, kind)
	}
	subject := strings.Join(parts[:len(parts)-2], "_")
	if subject == "" {
		return ChoiceKey{}, fmt.Errorf("choice key %q: empty subject", raw)
	}

	return ChoiceKey{Subject: subject, Kind: kind, Index: index, Instance: instance}, nil
}

// Choices maps structured keys to the chosen value (ability, skill or option name)
type Choices map[ChoiceKey]string

// ChoicesFromMap converts the stored string-keyed form. Keys that do not parse
// are dropped.
func ChoicesFromMap(raw map[string]string) Choices {
	out := make(Choices, len(raw))
	for k, v := range raw {
		key, err := ParseChoiceKey(k)
		if err != nil {
			continue
		}
		out[key] = v
	}
	return out
}

// ToMap converts back to the stored string-keyed form
func (c Choices) ToMap() map[string]string {
	out := make(map[string]string, len(c))
	for k, v := range c {
		out[k.String()] = v
	}
	return out
}

// Get returns the value for key and whether it was set to something non-empty
func (c Choices) Get(key ChoiceKey) (string, bool) {
	v, ok := c[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ForSubject returns the keys recorded for one subject/instance, sorted
func (c Choices) ForSubject(subject string, instance int) []ChoiceKey {
	var keys []ChoiceKey
	for k := range c {
		if k.Subject == subject && k.Instance == instance {
			keys = append(keys, k)
		}
	}
	SortChoiceKeys(keys)
	return keys
}

// SortChoiceKeys orders keys by subject, instance, kind, index
func SortChoiceKeys(keys []ChoiceKey) {
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Instance != b.Instance {
			return a.Instance < b.Instance
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Index < b.Index
	})
}
