package model

import (
	"google.golang.org/genproto/googleapis/api/httpbody"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// WellKnownType tags message types that have a designated JSON rendering
// with type-specific HTTP mapping rules. WellKnownTypeNone marks an
// ordinary message.
type WellKnownType int

const (
	WellKnownTypeNone WellKnownType = iota
	WellKnownTypeAny
	WellKnownTypeTimestamp
	WellKnownTypeDuration
	WellKnownTypeStruct
	WellKnownTypeValue
	WellKnownTypeListValue
	WellKnownTypeFieldMask
	WellKnownTypeEmpty
	WellKnownTypeHTTPBody
	WellKnownTypeDoubleValue
	WellKnownTypeFloatValue
	WellKnownTypeInt64Value
	WellKnownTypeUInt64Value
	WellKnownTypeInt32Value
	WellKnownTypeUInt32Value
	WellKnownTypeBoolValue
	WellKnownTypeStringValue
	WellKnownTypeBytesValue
)

func (w WellKnownType) String() string {
	return []string{
		"none",
		"any",
		"timestamp",
		"duration",
		"struct",
		"value",
		"list_value",
		"field_mask",
		"empty",
		"http_body",
		"double_value",
		"float_value",
		"int64_value",
		"uint64_value",
		"int32_value",
		"uint32_value",
		"bool_value",
		"string_value",
		"bytes_value",
	}[w]
}

// wktTraits holds the three HTTP mapping predicates for one well-known type.
// Ordinary messages and object-rendering well-known types may appear as
// request/response bodies; primitive-rendering types may appear as query or
// path parameters; Value and ListValue render as neither an object nor a
// flat primitive and are excluded everywhere.
type wktTraits struct {
	requestResponse bool
	parameter       bool
	path            bool
}

var wktTraitsTable = map[WellKnownType]wktTraits{
	WellKnownTypeNone:        {requestResponse: true},
	WellKnownTypeAny:         {requestResponse: true},
	WellKnownTypeEmpty:       {requestResponse: true},
	WellKnownTypeStruct:      {requestResponse: true},
	WellKnownTypeHTTPBody:    {requestResponse: true},
	WellKnownTypeValue:       {},
	WellKnownTypeListValue:   {},
	WellKnownTypeTimestamp:   {parameter: true, path: true},
	WellKnownTypeDuration:    {parameter: true, path: true},
	WellKnownTypeFieldMask:   {parameter: true, path: true},
	WellKnownTypeDoubleValue: {parameter: true, path: true},
	WellKnownTypeFloatValue:  {parameter: true, path: true},
	WellKnownTypeInt64Value:  {parameter: true, path: true},
	WellKnownTypeUInt64Value: {parameter: true, path: true},
	WellKnownTypeInt32Value:  {parameter: true, path: true},
	WellKnownTypeUInt32Value: {parameter: true, path: true},
	WellKnownTypeBoolValue:   {parameter: true, path: true},
	WellKnownTypeStringValue: {parameter: true, path: true},
	WellKnownTypeBytesValue:  {parameter: true, path: true},
}

// AllowedAsHTTPRequestResponse reports whether the type renders as a JSON
// object and may therefore serve as a request body or response
func (w WellKnownType) AllowedAsHTTPRequestResponse() bool {
	return wktTraitsTable[w].requestResponse
}

// AllowedAsHTTPParameter reports whether the type renders as a flat
// primitive and may therefore be bound to a query parameter
func (w WellKnownType) AllowedAsHTTPParameter() bool {
	return wktTraitsTable[w].parameter
}

// AllowedAsPathParameter reports whether the type may be bound to a path
// template variable
func (w WellKnownType) AllowedAsPathParameter() bool {
	return wktTraitsTable[w].path
}

// wellKnownTypeByName maps fully qualified message names to their tag.
// Names are derived from the generated types rather than spelled out so a
// rename in the upstream protos breaks the build instead of the lookup.
var wellKnownTypeByName = map[protoreflect.FullName]WellKnownType{
	(&anypb.Any{}).ProtoReflect().Descriptor().FullName():              WellKnownTypeAny,
	(&timestamppb.Timestamp{}).ProtoReflect().Descriptor().FullName():  WellKnownTypeTimestamp,
	(&durationpb.Duration{}).ProtoReflect().Descriptor().FullName():    WellKnownTypeDuration,
	(&structpb.Struct{}).ProtoReflect().Descriptor().FullName():        WellKnownTypeStruct,
	(&structpb.Value{}).ProtoReflect().Descriptor().FullName():         WellKnownTypeValue,
	(&structpb.ListValue{}).ProtoReflect().Descriptor().FullName():     WellKnownTypeListValue,
	(&fieldmaskpb.FieldMask{}).ProtoReflect().Descriptor().FullName():  WellKnownTypeFieldMask,
	(&emptypb.Empty{}).ProtoReflect().Descriptor().FullName():          WellKnownTypeEmpty,
	(&httpbody.HttpBody{}).ProtoReflect().Descriptor().FullName():      WellKnownTypeHTTPBody,
	(&wrapperspb.DoubleValue{}).ProtoReflect().Descriptor().FullName(): WellKnownTypeDoubleValue,
	(&wrapperspb.FloatValue{}).ProtoReflect().Descriptor().FullName():  WellKnownTypeFloatValue,
	(&wrapperspb.Int64Value{}).ProtoReflect().Descriptor().FullName():  WellKnownTypeInt64Value,
	(&wrapperspb.UInt64Value{}).ProtoReflect().Descriptor().FullName(): WellKnownTypeUInt64Value,
	(&wrapperspb.Int32Value{}).ProtoReflect().Descriptor().FullName():  WellKnownTypeInt32Value,
	(&wrapperspb.UInt32Value{}).ProtoReflect().Descriptor().FullName(): WellKnownTypeUInt32Value,
	(&wrapperspb.BoolValue{}).ProtoReflect().Descriptor().FullName():   WellKnownTypeBoolValue,
	(&wrapperspb.StringValue{}).ProtoReflect().Descriptor().FullName(): WellKnownTypeStringValue,
	(&wrapperspb.BytesValue{}).ProtoReflect().Descriptor().FullName():  WellKnownTypeBytesValue,
}

// WellKnownTypeOf classifies a message descriptor by its full name
func WellKnownTypeOf(md protoreflect.MessageDescriptor) WellKnownType {
	if md == nil {
		return WellKnownTypeNone
	}
	if wkt, ok := wellKnownTypeByName[md.FullName()]; ok {
		return wkt
	}
	return WellKnownTypeNone
}
