package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ValueKind tags which field of a Value is set
type ValueKind int

// Value kinds
const (
	ValueText ValueKind = iota
	ValueNumber
	ValueFlag
)

// Value is a speed, combat bonus or spellcasting benefit: a number, a piece of
// text or a flag
type Value struct {
	Kind   ValueKind
	Number int
	Text   string
	Flag   bool
}

// Number builds a numeric value
func Number(n int) Value { return Value{Kind: ValueNumber, Number: n} }

// Text builds a text value
func Text(s string) Value { return Value{Kind: ValueText, Text: s} }

// Flag builds a boolean value
func Flag(b bool) Value { return Value{Kind: ValueFlag, Flag: b} }

func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.Itoa(v.Number)
	case ValueFlag:
		return strconv.FormatBool(v.Flag)
	default:
		return v.Text
	}
}

// UnmarshalYAML picks the kind from the scalar's resolved tag
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: benefit value must be a scalar", node.Line)
	}

	switch node.ShortTag() {
	case "!!int":
		n, err := strconv.Atoi(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*v = Number(n)
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = Flag(b)
	default:
		*v = Text(node.Value)
	}
	return nil
}

// MarshalJSON writes the bare number, string or bool
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNumber:
		return json.Marshal(v.Number)
	case ValueFlag:
		return json.Marshal(v.Flag)
	default:
		return json.Marshal(v.Text)
	}
}
