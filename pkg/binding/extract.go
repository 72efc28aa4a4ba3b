package binding

import (
	"fmt"
	"strings"

	"google.golang.org/genproto/googleapis/api/annotations"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/platinummonkey/httplint/pkg/diag"
	"github.com/platinummonkey/httplint/pkg/model"
)

// Extractor resolves google.api.http rules into HTTPBinding values.
// Resolution failures are reported as diagnostics and the offending
// selector is dropped; extraction never aborts a run.
type Extractor struct {
	reporter diag.Reporter
}

// NewExtractor creates an extractor reporting into the given sink
func NewExtractor(reporter diag.Reporter) *Extractor {
	if reporter == nil {
		panic("binding: nil reporter")
	}
	return &Extractor{reporter: reporter}
}

// FromMethod extracts the method's primary binding, or nil when the
// method carries no google.api.http annotation
func (e *Extractor) FromMethod(method *model.Method) *HTTPBinding {
	rule := HTTPRuleFor(method)
	if rule == nil {
		return nil
	}
	binding := e.resolve(method, rule)
	for _, additional := range rule.GetAdditionalBindings() {
		binding.AdditionalBindings = append(binding.AdditionalBindings, e.resolve(method, additional))
	}
	return binding
}

// HTTPRuleFor returns the raw google.api.http rule attached to a method,
// or nil when the annotation is absent. Descriptors compiled from source
// can carry the annotation under a dynamic extension type, so when the
// direct lookup misses, the options are round-tripped through the wire
// format to resolve against the linked extension instead.
func HTTPRuleFor(method *model.Method) *annotations.HttpRule {
	opts := method.Descriptor().Options()
	if opts == nil {
		return nil
	}
	if mo, ok := opts.(*descriptorpb.MethodOptions); ok && proto.HasExtension(mo, annotations.E_Http) {
		value := mo.ProtoReflect().Get(annotations.E_Http.TypeDescriptor())
		if rule, ok := value.Message().Interface().(*annotations.HttpRule); ok && rule != nil {
			return rule
		}
	}

	raw, err := proto.Marshal(opts)
	if err != nil || len(raw) == 0 {
		return nil
	}
	reparsed := &descriptorpb.MethodOptions{}
	if err := proto.Unmarshal(raw, reparsed); err != nil {
		return nil
	}
	if !proto.HasExtension(reparsed, annotations.E_Http) {
		return nil
	}
	rule, _ := proto.GetExtension(reparsed, annotations.E_Http).(*annotations.HttpRule)
	return rule
}

// resolve builds one binding from one rule. Additional bindings of the
// rule are not descended into here; the caller attaches them.
func (e *Extractor) resolve(method *model.Method, rule *annotations.HttpRule) *HTTPBinding {
	kind, template := methodKindOf(rule)
	binding := &HTTPBinding{
		Kind:         kind,
		PathTemplate: template,
		Body:         rule.GetBody(),
		Rule:         rule,
	}

	input := method.Input()
	loc := method.Location()

	bound := make(map[string]bool)
	for _, variable := range pathVariables(template) {
		selector, err := model.ResolveSelector(input, variable)
		if err != nil {
			e.reporter.Report(diag.Diagnostic{
				Kind:     diag.KindUnresolvedFieldPath,
				Severity: diag.SeverityError,
				Message:  fmt.Sprintf("path template variable '%s' in method '%s' does not resolve: %v.", variable, method.FullName(), err),
				File:     loc.File,
				Line:     loc.Line,
				Column:   loc.Column,
				Method:   method.FullName(),
			})
			continue
		}
		binding.PathSelectors = append(binding.PathSelectors, selector)
		bound[selector.Fields()[0].Name()] = true
	}

	if binding.HasBody() && !binding.BodyCapturesUnboundFields() {
		selector, err := model.ResolveSelector(input, binding.Body)
		if err != nil {
			e.reporter.Report(diag.Diagnostic{
				Kind:     diag.KindUnresolvedBodyPath,
				Severity: diag.SeverityError,
				Message:  fmt.Sprintf("body field path '%s' in method '%s' does not resolve: %v.", binding.Body, method.FullName(), err),
				File:     loc.File,
				Line:     loc.Line,
				Column:   loc.Column,
				Method:   method.FullName(),
			})
		} else {
			binding.BodySelectors = []*model.FieldSelector{selector}
			bound[selector.Fields()[0].Name()] = true
		}
	}

	// Everything not bound to the path or the body arrives via the query
	// string. A body of "*" leaves nothing unbound.
	if !binding.BodyCapturesUnboundFields() {
		for _, field := range input.Fields() {
			if bound[field.Name()] {
				continue
			}
			binding.ParamSelectors = append(binding.ParamSelectors, model.NewFieldSelector(field))
		}
	}

	return binding
}

// methodKindOf maps a rule's pattern to its verb category and path
// template. Custom verbs have no standard body/response semantics and map
// to MethodKindNone.
func methodKindOf(rule *annotations.HttpRule) (MethodKind, string) {
	switch pattern := rule.GetPattern().(type) {
	case *annotations.HttpRule_Get:
		return MethodKindGet, pattern.Get
	case *annotations.HttpRule_Put:
		return MethodKindPut, pattern.Put
	case *annotations.HttpRule_Post:
		return MethodKindPost, pattern.Post
	case *annotations.HttpRule_Delete:
		return MethodKindDelete, pattern.Delete
	case *annotations.HttpRule_Patch:
		return MethodKindPatch, pattern.Patch
	case *annotations.HttpRule_Custom:
		return MethodKindNone, pattern.Custom.GetPath()
	default:
		return MethodKindNone, ""
	}
}

// pathVariables extracts the {var} and {var=segments} field paths of a
// path template in declaration order. Variables do not nest.
func pathVariables(template string) []string {
	var variables []string
	for i := 0; i < len(template); i++ {
		if template[i] != '{' {
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			break
		}
		inner := template[i+1 : i+end]
		if eq := strings.IndexByte(inner, '='); eq >= 0 {
			inner = inner[:eq]
		}
		if inner != "" {
			variables = append(variables, inner)
		}
		i += end
	}
	return variables
}
