// Package binding extracts google.api.http annotations from method
// descriptors and resolves them into structured HTTP bindings ready for
// constraint checking.
package binding

import (
	"google.golang.org/genproto/googleapis/api/annotations"

	"github.com/platinummonkey/httplint/pkg/model"
)

// MethodKind categorizes which HTTP verb semantics apply to a binding.
// MethodKindNone carries no body or response constraints; custom verbs
// map to it.
type MethodKind int

const (
	MethodKindNone MethodKind = iota
	MethodKindGet
	MethodKindPut
	MethodKindPost
	MethodKindDelete
	MethodKindPatch
)

func (k MethodKind) String() string {
	return []string{"NONE", "GET", "PUT", "POST", "DELETE", "PATCH"}[k]
}

// HTTPBinding is one resolved google.api.http rule attached to a method.
// A method carries one primary binding; the primary binding may carry
// additional bindings, which never nest further.
type HTTPBinding struct {
	// Kind is the HTTP verb category of the rule's pattern.
	Kind MethodKind
	// PathTemplate is the raw path template of the rule's pattern.
	PathTemplate string
	// Body is the raw body field path. Empty means no body mapping; "*"
	// means the body captures all otherwise-unbound fields.
	Body string
	// BodySelectors holds the resolved body field path. Empty when the
	// body is absent, unbound-capturing, or failed to resolve.
	BodySelectors []*model.FieldSelector
	// PathSelectors holds the resolved path template variables in
	// declaration order.
	PathSelectors []*model.FieldSelector
	// ParamSelectors holds the query parameter selectors: every
	// top-level request field not bound by the path or the body.
	ParamSelectors []*model.FieldSelector
	// Rule is the raw annotation the binding was built from.
	Rule *annotations.HttpRule
	// AdditionalBindings holds the resolved additional bindings. Only a
	// primary binding has them.
	AdditionalBindings []*HTTPBinding
}

// HasBody reports whether the rule declares a body mapping
func (b *HTTPBinding) HasBody() bool {
	return b.Body != ""
}

// BodyCapturesUnboundFields reports whether the body mapping absorbs all
// fields not otherwise bound to the path or query
func (b *HTTPBinding) BodyCapturesUnboundFields() bool {
	return b.Body == "*"
}
