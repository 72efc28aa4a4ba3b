package model

import (
	"testing"

	"google.golang.org/genproto/googleapis/api/annotations"
	"google.golang.org/genproto/googleapis/api/httpbody"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func descriptorOf(m proto.Message) protoreflect.MessageDescriptor {
	return m.ProtoReflect().Descriptor()
}

func TestWellKnownTypeOf(t *testing.T) {
	tests := []struct {
		name string
		msg  proto.Message
		want WellKnownType
	}{
		{"any", &anypb.Any{}, WellKnownTypeAny},
		{"timestamp", &timestamppb.Timestamp{}, WellKnownTypeTimestamp},
		{"duration", &durationpb.Duration{}, WellKnownTypeDuration},
		{"struct", &structpb.Struct{}, WellKnownTypeStruct},
		{"value", &structpb.Value{}, WellKnownTypeValue},
		{"list value", &structpb.ListValue{}, WellKnownTypeListValue},
		{"field mask", &fieldmaskpb.FieldMask{}, WellKnownTypeFieldMask},
		{"empty", &emptypb.Empty{}, WellKnownTypeEmpty},
		{"http body", &httpbody.HttpBody{}, WellKnownTypeHTTPBody},
		{"double wrapper", &wrapperspb.DoubleValue{}, WellKnownTypeDoubleValue},
		{"float wrapper", &wrapperspb.FloatValue{}, WellKnownTypeFloatValue},
		{"int64 wrapper", &wrapperspb.Int64Value{}, WellKnownTypeInt64Value},
		{"uint64 wrapper", &wrapperspb.UInt64Value{}, WellKnownTypeUInt64Value},
		{"int32 wrapper", &wrapperspb.Int32Value{}, WellKnownTypeInt32Value},
		{"uint32 wrapper", &wrapperspb.UInt32Value{}, WellKnownTypeUInt32Value},
		{"bool wrapper", &wrapperspb.BoolValue{}, WellKnownTypeBoolValue},
		{"string wrapper", &wrapperspb.StringValue{}, WellKnownTypeStringValue},
		{"bytes wrapper", &wrapperspb.BytesValue{}, WellKnownTypeBytesValue},
		{"ordinary message", &annotations.HttpRule{}, WellKnownTypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WellKnownTypeOf(descriptorOf(tt.msg)); got != tt.want {
				t.Errorf("WellKnownTypeOf(%s) = %v, want %v", descriptorOf(tt.msg).FullName(), got, tt.want)
			}
		})
	}

	if got := WellKnownTypeOf(nil); got != WellKnownTypeNone {
		t.Errorf("WellKnownTypeOf(nil) = %v, want none", got)
	}
}

func TestWellKnownTypePredicates(t *testing.T) {
	tests := []struct {
		wkt             WellKnownType
		requestResponse bool
		parameter       bool
		path            bool
	}{
		{WellKnownTypeNone, true, false, false},
		{WellKnownTypeAny, true, false, false},
		{WellKnownTypeEmpty, true, false, false},
		{WellKnownTypeStruct, true, false, false},
		{WellKnownTypeHTTPBody, true, false, false},
		{WellKnownTypeValue, false, false, false},
		{WellKnownTypeListValue, false, false, false},
		{WellKnownTypeTimestamp, false, true, true},
		{WellKnownTypeDuration, false, true, true},
		{WellKnownTypeFieldMask, false, true, true},
		{WellKnownTypeDoubleValue, false, true, true},
		{WellKnownTypeFloatValue, false, true, true},
		{WellKnownTypeInt64Value, false, true, true},
		{WellKnownTypeUInt64Value, false, true, true},
		{WellKnownTypeInt32Value, false, true, true},
		{WellKnownTypeUInt32Value, false, true, true},
		{WellKnownTypeBoolValue, false, true, true},
		{WellKnownTypeStringValue, false, true, true},
		{WellKnownTypeBytesValue, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.wkt.String(), func(t *testing.T) {
			if got := tt.wkt.AllowedAsHTTPRequestResponse(); got != tt.requestResponse {
				t.Errorf("AllowedAsHTTPRequestResponse() = %v, want %v", got, tt.requestResponse)
			}
			if got := tt.wkt.AllowedAsHTTPParameter(); got != tt.parameter {
				t.Errorf("AllowedAsHTTPParameter() = %v, want %v", got, tt.parameter)
			}
			if got := tt.wkt.AllowedAsPathParameter(); got != tt.path {
				t.Errorf("AllowedAsPathParameter() = %v, want %v", got, tt.path)
			}
		})
	}
}

func TestWellKnownTypeString(t *testing.T) {
	if got := WellKnownTypeNone.String(); got != "none" {
		t.Errorf("String() = %q, want none", got)
	}
	if got := WellKnownTypeHTTPBody.String(); got != "http_body" {
		t.Errorf("String() = %q, want http_body", got)
	}
	if got := WellKnownTypeBytesValue.String(); got != "bytes_value" {
		t.Errorf("String() = %q, want bytes_value", got)
	}
}
