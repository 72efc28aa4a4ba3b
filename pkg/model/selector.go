package model

import (
	"fmt"
	"strings"
)

// FieldSelector is an ordered, non-empty sequence of field-access steps
// from a message type down to a terminal field. Selectors are immutable
// value objects compared structurally.
type FieldSelector struct {
	fields []*Field
}

// NewFieldSelector builds a selector from an already-resolved field chain
func NewFieldSelector(fields ...*Field) *FieldSelector {
	if len(fields) == 0 {
		panic("model: empty field selector")
	}
	owned := make([]*Field, len(fields))
	copy(owned, fields)
	return &FieldSelector{fields: owned}
}

// ResolveSelector resolves a dotted field path against a root message
// type. Intermediate steps must be non-map message fields.
func ResolveSelector(root *MessageType, path string) (*FieldSelector, error) {
	if root == nil {
		panic("model: nil root message")
	}
	if path == "" {
		return nil, fmt.Errorf("empty field path")
	}

	parts := strings.Split(path, ".")
	fields := make([]*Field, 0, len(parts))
	current := root
	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("field path %q has an empty component", path)
		}
		field := current.Field(part)
		if field == nil {
			return nil, fmt.Errorf("field %q not found in message '%s'", part, current.FullName())
		}
		fields = append(fields, field)
		if i == len(parts)-1 {
			break
		}
		if !field.IsMessage() || field.IsMap() {
			return nil, fmt.Errorf("field %q in message '%s' is not a message and cannot be dereferenced", part, current.FullName())
		}
		current = field.Message()
	}
	return &FieldSelector{fields: fields}, nil
}

// Fields returns the selector's steps in access order
func (s *FieldSelector) Fields() []*Field {
	return s.fields
}

// Len returns the number of steps
func (s *FieldSelector) Len() int {
	return len(s.fields)
}

// Terminal returns the last field of the selector
func (s *FieldSelector) Terminal() *Field {
	return s.fields[len(s.fields)-1]
}

// Equal reports whether two selectors describe the identical path
func (s *FieldSelector) Equal(other *FieldSelector) bool {
	if other == nil || len(s.fields) != len(other.fields) {
		return false
	}
	for i := range s.fields {
		if s.fields[i].FullName() != other.fields[i].FullName() {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether this selector is a strict prefix of the
// other: every step matches the corresponding step of other, and this
// selector is strictly shorter.
func (s *FieldSelector) IsPrefixOf(other *FieldSelector) bool {
	if other == nil || len(s.fields) >= len(other.fields) {
		return false
	}
	for i := range s.fields {
		if s.fields[i].FullName() != other.fields[i].FullName() {
			return false
		}
	}
	return true
}

// String renders the selector as a dotted path
func (s *FieldSelector) String() string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name()
	}
	return strings.Join(names, ".")
}

// HasSinglePathElement reports whether a raw dotted path names a direct
// field rather than dereferencing through sub-messages
func HasSinglePathElement(path string) bool {
	return path != "" && !strings.Contains(path, ".")
}
