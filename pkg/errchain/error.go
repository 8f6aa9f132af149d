package errchain

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Error is one node of an error chain.
//
// Each node records the kind of failure seen by one layer of code, the call
// site that created it and, unless it is the root cause, the node it wraps.
// Nodes are immutable; chains grow only by wrapping an existing node in a new
// outer one.
type Error[K any] struct {
	kind  K
	cause *Error[K]
	site  CallSite

	// Set only on terminal nodes converted from a foreign error.
	source error
	// The node has no kind of its own and renders source instead.
	opaque bool
}

// Node is the kind-independent view of a chain node.
// Every *Error[K] implements it, so collaborators such as loggers can walk a
// chain without knowing K.
type Node interface {
	error
	Site() CallSite
	KindString() string
	Source() error
	Next() Node
}

var _ Node = (*Error[string])(nil)

// New creates a terminal node with the provided kind and site.
func New[K any](kind K, site CallSite) *Error[K] {
	return &Error[K]{kind: kind, site: site}
}

// From creates a terminal node for kind, recording the caller as its site.
func From[K any](kind K) *Error[K] {
	return New(kind, Caller(1))
}

// Lift converts a foreign error into a terminal node with the given kind.
// The foreign error stays reachable through Source and errors.Is/As.
// Lift returns nil if err is nil.
func Lift[K any](err error, kind K) *Error[K] {
	if err == nil {
		return nil
	}
	return &Error[K]{kind: kind, site: Caller(1), source: err}
}

// Kind returns why this layer considers the operation failed.
// Opaque nodes converted from foreign errors return the zero K.
func (e *Error[K]) Kind() K {
	if e == nil {
		var zero K
		return zero
	}
	return e.kind
}

// Cause returns the wrapped node, or nil for the root cause.
func (e *Error[K]) Cause() *Error[K] {
	if e == nil {
		return nil
	}
	return e.cause
}

// Site returns where this node was created.
func (e *Error[K]) Site() CallSite {
	if e == nil {
		return CallSite{}
	}
	return e.site
}

// Source returns the foreign error a terminal node was converted from.
func (e *Error[K]) Source() error {
	if e == nil {
		return nil
	}
	return e.source
}

// Next returns the cause as a Node.
func (e *Error[K]) Next() Node {
	if e == nil || e.cause == nil {
		return nil
	}
	return e.cause
}

// KindString returns the rendering of this node's kind alone.
func (e *Error[K]) KindString() string {
	if e == nil {
		return ""
	}
	if e.opaque {
		return e.source.Error()
	}
	return fmt.Sprint(e.kind)
}

// Opaque reports whether the node has no kind of its own.
func (e *Error[K]) Opaque() bool {
	return e != nil && e.opaque
}

func (e *Error[K]) isNil() bool { return e == nil }

// Depth returns the number of nodes in the chain starting at e.
func (e *Error[K]) Depth() int {
	n := 0
	for node := e; node != nil; node = node.cause {
		n++
	}
	return n
}

// Root returns the terminal node of the chain.
func (e *Error[K]) Root() *Error[K] {
	if e == nil {
		return nil
	}
	node := e
	for node.cause != nil {
		node = node.cause
	}
	return node
}

// Chain yields every node from e down to the root cause.
func (e *Error[K]) Chain() iter.Seq[*Error[K]] {
	return func(yield func(*Error[K]) bool) {
		for node := e; node != nil; node = node.cause {
			if !yield(node) {
				return
			}
		}
	}
}

// Error renders the chain on a single line, outermost node first:
//
//	[site] kind: [site] kind: ...
//
// An opaque root wrapping a chain of another kind type renders that chain
// in its place.
func (e *Error[K]) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	for node := e; node != nil; node = node.cause {
		if node != e {
			b.WriteString(": ")
		}
		if _, ok := node.source.(Node); ok && node.opaque {
			b.WriteString(node.source.Error())
			continue
		}
		b.WriteByte('[')
		b.WriteString(node.site.String())
		b.WriteString("] ")
		b.WriteString(node.KindString())
	}
	return b.String()
}

// Unwrap returns the cause, or the foreign source of a terminal node.
func (e *Error[K]) Unwrap() error {
	if e == nil {
		return nil
	}
	if e.cause != nil {
		return e.cause
	}
	return e.source
}

// Format implements fmt.Formatter. %+v prints one node per line.
func (e *Error[K]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, DebugString(e))
			return
		}
		_, _ = io.WriteString(s, e.Error())
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(%T=%s)", verb, e, e.Error())
	}
}
