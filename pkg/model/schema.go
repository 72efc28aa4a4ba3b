package model

import (
	"google.golang.org/protobuf/reflect/protoreflect"
)

// MessageType is a named node in the schema graph. Fields may reference
// other message types, so the graph can contain cycles.
type MessageType struct {
	desc protoreflect.MessageDescriptor
}

// NewMessageType wraps a message descriptor
func NewMessageType(desc protoreflect.MessageDescriptor) *MessageType {
	if desc == nil {
		panic("model: nil message descriptor")
	}
	return &MessageType{desc: desc}
}

// FullName returns the fully qualified message name
func (m *MessageType) FullName() string {
	return string(m.desc.FullName())
}

// WellKnownType returns the message's well-known-type tag
func (m *MessageType) WellKnownType() WellKnownType {
	return WellKnownTypeOf(m.desc)
}

// Fields returns all fields of the message in declaration order
func (m *MessageType) Fields() []*Field {
	fds := m.desc.Fields()
	fields := make([]*Field, 0, fds.Len())
	for i := 0; i < fds.Len(); i++ {
		fields = append(fields, &Field{desc: fds.Get(i)})
	}
	return fields
}

// Field returns the named field, or nil when the message has no such field
func (m *MessageType) Field(name string) *Field {
	fd := m.desc.Fields().ByName(protoreflect.Name(name))
	if fd == nil {
		return nil
	}
	return &Field{desc: fd}
}

// Descriptor exposes the underlying descriptor
func (m *MessageType) Descriptor() protoreflect.MessageDescriptor {
	return m.desc
}

func (m *MessageType) String() string {
	return m.FullName()
}

// Field is a single field of a message type with the classification the
// binding checks need.
type Field struct {
	desc protoreflect.FieldDescriptor
}

// NewField wraps a field descriptor
func NewField(desc protoreflect.FieldDescriptor) *Field {
	if desc == nil {
		panic("model: nil field descriptor")
	}
	return &Field{desc: desc}
}

// Name returns the simple field name
func (f *Field) Name() string {
	return string(f.desc.Name())
}

// FullName returns the fully qualified field name, including the enclosing
// message
func (f *Field) FullName() string {
	return string(f.desc.FullName())
}

// IsMap reports whether the field is a map
func (f *Field) IsMap() bool {
	return f.desc.IsMap()
}

// IsRepeated reports whether the field has repeated cardinality. Map
// fields count as repeated, matching their wire representation as repeated
// entry messages.
func (f *Field) IsRepeated() bool {
	return f.desc.Cardinality() == protoreflect.Repeated
}

// IsMessage reports whether the field's type is a message. Map fields
// count as messages via their synthetic entry type.
func (f *Field) IsMessage() bool {
	return f.desc.Kind() == protoreflect.MessageKind || f.desc.Kind() == protoreflect.GroupKind
}

// Message returns the field's message type, or nil for scalar fields
func (f *Field) Message() *MessageType {
	md := f.desc.Message()
	if md == nil {
		return nil
	}
	return &MessageType{desc: md}
}

// WellKnownType returns the well-known-type tag of the field's message
// type, or WellKnownTypeNone for scalar fields
func (f *Field) WellKnownType() WellKnownType {
	if !f.IsMessage() {
		return WellKnownTypeNone
	}
	return WellKnownTypeOf(f.desc.Message())
}

// Descriptor exposes the underlying descriptor
func (f *Field) Descriptor() protoreflect.FieldDescriptor {
	return f.desc
}

func (f *Field) String() string {
	return f.Name()
}

// Location is a position in a proto source file
type Location struct {
	File   string
	Line   int
	Column int
}

// Method is an RPC operation under validation. Immutable once built.
type Method struct {
	desc   protoreflect.MethodDescriptor
	input  *MessageType
	output *MessageType
	loc    Location
}

// NewMethod wraps a method descriptor, resolving its input and output
// message types and its source location
func NewMethod(desc protoreflect.MethodDescriptor) *Method {
	if desc == nil {
		panic("model: nil method descriptor")
	}
	m := &Method{
		desc:   desc,
		input:  NewMessageType(desc.Input()),
		output: NewMessageType(desc.Output()),
	}
	if file := desc.ParentFile(); file != nil {
		m.loc.File = file.Path()
		src := file.SourceLocations().ByDescriptor(desc)
		// Source spans are zero-based.
		if src.Path != nil {
			m.loc.Line = src.StartLine + 1
			m.loc.Column = src.StartColumn + 1
		}
	}
	return m
}

// FullName returns the fully qualified method name
func (m *Method) FullName() string {
	return string(m.desc.FullName())
}

// Input returns the request message type
func (m *Method) Input() *MessageType {
	return m.input
}

// Output returns the response message type
func (m *Method) Output() *MessageType {
	return m.output
}

// InputMessageName returns the full name of the request message
func (m *Method) InputMessageName() string {
	return m.input.FullName()
}

// Location returns the method's declaration position
func (m *Method) Location() Location {
	return m.loc
}

// Descriptor exposes the underlying descriptor
func (m *Method) Descriptor() protoreflect.MethodDescriptor {
	return m.desc
}

func (m *Method) String() string {
	return m.FullName()
}
