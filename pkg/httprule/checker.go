// Package httprule validates resolved HTTP bindings against the request
// and response message schemas. Every check is independent and
// exhaustive: one invalid binding never suppresses detection of other
// violations in the same or sibling bindings.
package httprule

import (
	"fmt"

	"google.golang.org/genproto/googleapis/api/annotations"

	"github.com/platinummonkey/httplint/pkg/binding"
	"github.com/platinummonkey/httplint/pkg/diag"
	"github.com/platinummonkey/httplint/pkg/model"
)

// allowedRepeatedFieldsInQueryParam lists fully qualified field names
// exempt from the repeated-message query restriction. Kept as a set so
// schema evolution can add further exceptions.
var allowedRepeatedFieldsInQueryParam = map[string]bool{
	// This map field is specially handled by the transcoding framework;
	// it is never mapped to a query parameter.
	"google.api.HttpBody.extensions": true,
}

// Checker applies the HTTP binding constraint rules for one method at a
// time. A Checker is stateless and may be reused across methods.
type Checker struct {
	reporter diag.Reporter
}

// NewChecker creates a checker reporting into the given sink
func NewChecker(reporter diag.Reporter) *Checker {
	if reporter == nil {
		panic("httprule: nil reporter")
	}
	return &Checker{reporter: reporter}
}

// CheckMethod validates a method's primary binding and each of its
// additional bindings. Additional bindings are checked against their
// meta-constraints first, then against the same five rules as the
// primary. A nil binding means the method has no HTTP mapping and is not
// validated.
func (c *Checker) CheckMethod(method *model.Method, b *binding.HTTPBinding) {
	if method == nil {
		panic("httprule: nil method")
	}
	if b == nil {
		return
	}
	c.check(method, b)
	for _, additional := range b.AdditionalBindings {
		c.checkAdditionalBindingConstraints(method, additional.Rule)
		c.check(method, additional)
	}
}

func (c *Checker) check(method *model.Method, b *binding.HTTPBinding) {
	c.checkBodyConstraints(method, b)
	c.checkOverlappingPathSelectors(method, b)
	c.checkResponseObject(method, b.Kind)
	c.checkQueryParameterConstraints(method, b)
	c.checkPathParameterConstraints(method, b.PathSelectors)
}

// checkBodyConstraints validates the body mapping. A body of "*" absorbs
// unbound fields and is always legal; an explicit body must name a
// direct, non-repeated message field of the request that renders as a
// JSON object.
func (c *Checker) checkBodyConstraints(method *model.Method, b *binding.HTTPBinding) {
	if !b.HasBody() || b.BodyCapturesUnboundFields() {
		return
	}
	if !model.HasSinglePathElement(b.Body) {
		c.errorf(method, diag.KindBodySubMessage,
			"body field path '%s' should not reference sub messages.", b.Body)
		return
	}
	// A resolvable single-element body yields exactly one selector.
	if len(b.BodySelectors) != 1 {
		return
	}
	bodyField := b.BodySelectors[0]
	if bodyField == nil {
		return
	}
	terminal := bodyField.Terminal()
	if !terminal.IsMessage() || terminal.IsRepeated() || !terminal.WellKnownType().AllowedAsHTTPRequestResponse() {
		c.errorf(method, diag.KindBodyFieldType,
			"body field path '%s' must be a non-repeated message.", bodyField)
	}
}

// checkOverlappingPathSelectors reports every ordered pair of path
// selectors where one is a strict prefix of the other. Both orderings of
// an overlapping pair are reported, one diagnostic each. Selectors
// describing the identical path are excluded by structural equality and
// are not considered overlapping.
func (c *Checker) checkOverlappingPathSelectors(method *model.Method, b *binding.HTTPBinding) {
	for _, selector := range b.PathSelectors {
		for _, other := range b.PathSelectors {
			if selector.Equal(other) {
				continue
			}
			if selector.IsPrefixOf(other) || other.IsPrefixOf(selector) {
				c.errorf(method, diag.KindOverlappingPathSelectors,
					"path contains overlapping field paths '%s' and '%s'.", selector, other)
			}
		}
	}
}

// checkResponseObject validates that the response type renders as a JSON
// object. A binding of kind NONE carries no response constraints.
func (c *Checker) checkResponseObject(method *model.Method, kind binding.MethodKind) {
	if kind == binding.MethodKindNone {
		return
	}
	output := method.Output()
	if !output.WellKnownType().AllowedAsHTTPRequestResponse() {
		c.errorf(method, diag.KindResponseNotJSONObject,
			"type '%s' is not allowed as a response because it does not render as a JSON object.",
			output.FullName())
	}
}

// checkQueryParameterConstraints reduces the binding's query selectors to
// their terminal fields and walks each one with a fresh visited set.
func (c *Checker) checkQueryParameterConstraints(method *model.Method, b *binding.HTTPBinding) {
	fields := make([]*model.Field, 0, len(b.ParamSelectors))
	for _, selector := range b.ParamSelectors {
		fields = append(fields, selector.Terminal())
	}
	c.checkHTTPQueryParameterConstraints(method, fields, make(map[string]bool))
}

func (c *Checker) checkHTTPQueryParameterConstraints(method *model.Method, fields []*model.Field, visited map[string]bool) {
	for _, field := range fields {
		c.checkHTTPParameterConditions(method, field, visited)
	}
}

// checkHTTPParameterConditions applies the query mapping rules to one
// field, descending into message-typed fields. Query parameters must
// serialize to flat key=value pairs, so maps, repeated messages, and
// unbounded nesting are rejected. The visited set holds the message
// types on the active descent path only: a type is added right before
// its fields are expanded and removed on the same call frame, so reuse
// of a type on unrelated sibling branches is not a cycle.
func (c *Checker) checkHTTPParameterConditions(method *model.Method, field *model.Field, visited map[string]bool) {
	if field.IsMap() {
		c.errorf(method, diag.KindMapParam,
			"map field '%s' referred to by message '%s' cannot be mapped as an HTTP parameter.",
			field.FullName(), method.InputMessageName())
		return
	}
	if !field.IsMessage() {
		// Scalar fields always serialize as flat parameters.
		return
	}
	if field.WellKnownType().AllowedAsHTTPParameter() {
		return
	}
	messageType := field.Message()
	if visited[messageType.FullName()] {
		c.errorf(method, diag.KindCyclicParamReference,
			"cyclic message field '%s' referred to by message '%s' in method '%s' cannot be mapped as an HTTP parameter.",
			field.FullName(), method.InputMessageName(), method.FullName())
		return
	}
	if field.IsRepeated() {
		if allowedRepeatedFieldsInQueryParam[field.FullName()] {
			return
		}
		c.errorf(method, diag.KindRepeatedMessageParam,
			"repeated message field '%s' referred to by message '%s' cannot be mapped as an HTTP parameter.",
			field.FullName(), method.InputMessageName())
	}
	visited[messageType.FullName()] = true
	c.checkHTTPQueryParameterConstraints(method, messageType.Fields(), visited)
	delete(visited, messageType.FullName())
}

// checkPathParameterConstraints validates each path selector's terminal
// field. Nil selectors are skipped defensively.
func (c *Checker) checkPathParameterConstraints(method *model.Method, selectors []*model.FieldSelector) {
	for _, selector := range selectors {
		if selector == nil {
			continue
		}
		c.checkPathParameterConditions(method, selector)
	}
}

// checkPathParameterConditions rejects terminal fields that cannot fill a
// path template variable. The conditions are mutually exclusive and
// evaluated in priority order: map, then repeated, then disallowed
// message.
func (c *Checker) checkPathParameterConditions(method *model.Method, selector *model.FieldSelector) {
	terminal := selector.Terminal()
	if terminal.IsMap() {
		c.errorf(method, diag.KindPathFieldType,
			"map field not allowed: reached via '%s' on message '%s'.",
			selector, method.InputMessageName())
	} else if terminal.IsRepeated() {
		c.errorf(method, diag.KindPathFieldType,
			"repeated field not allowed: reached via '%s' on message '%s'.",
			selector, method.InputMessageName())
	} else if terminal.IsMessage() && !terminal.WellKnownType().AllowedAsPathParameter() {
		c.errorf(method, diag.KindPathFieldType,
			"message field not allowed: reached via '%s' on message '%s'.",
			selector, method.InputMessageName())
	}
}

// checkAdditionalBindingConstraints validates the meta-constraints on a
// non-primary rule: additional bindings must not nest and must not carry
// a selector. Both violations are reported independently.
func (c *Checker) checkAdditionalBindingConstraints(method *model.Method, rule *annotations.HttpRule) {
	if len(rule.GetAdditionalBindings()) > 0 {
		c.errorf(method, diag.KindNestedAdditionalBindings,
			"rules in additional_bindings must not specify additional_bindings")
	}
	if rule.GetSelector() != "" {
		c.errorf(method, diag.KindAdditionalBindingSelector,
			"rules in additional_bindings must not specify a selector")
	}
}

func (c *Checker) errorf(method *model.Method, kind diag.Kind, format string, args ...interface{}) {
	loc := method.Location()
	c.reporter.Report(diag.Diagnostic{
		Kind:     kind,
		Severity: diag.SeverityError,
		Message:  fmt.Sprintf(format, args...),
		File:     loc.File,
		Line:     loc.Line,
		Column:   loc.Column,
		Method:   method.FullName(),
	})
}
