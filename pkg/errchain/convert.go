package errchain

import "errors"

// errNilChain stands in for a nil *Error passed as a failure.
var errNilChain = errors.New("<nil>")

// Kinder is implemented by foreign errors that know which kind they map to.
// Context uses it when converting such an error into a chain.
type Kinder[K any] interface {
	ErrorKind() K
}

// into converts a failure into a chain node. site is used only when a new
// terminal node has to be built.
//
// Conversion order:
//   - a *Error[K] is reused as is
//   - a failure that is itself a K becomes a terminal node of that kind
//   - an error carrying a Kinder[K] becomes a terminal node of that kind
//   - anything else becomes an opaque terminal node
//
// A nil chain pointer of any kind stored in a non-nil error converts to an
// opaque node rendering errNilChain.
func into[K any](err error, site CallSite) *Error[K] {
	if n, ok := err.(interface{ isNil() bool }); ok && n.isNil() {
		return &Error[K]{site: site, source: errNilChain, opaque: true}
	}
	if e, ok := err.(*Error[K]); ok {
		return e
	}
	if kind, ok := any(err).(K); ok {
		return New(kind, site)
	}
	var kinder Kinder[K]
	if errors.As(err, &kinder) {
		return &Error[K]{kind: kinder.ErrorKind(), site: site, source: err}
	}
	return &Error[K]{site: site, source: err, opaque: true}
}

// IsChain reports whether err is, or wraps, a chain node of any kind.
func IsChain(err error) bool {
	if err == nil {
		return false
	}
	var n Node
	return errors.As(err, &n)
}

// KindOf returns the kind of the outermost *Error[K] in err's tree.
func KindOf[K any](err error) (K, bool) {
	var e *Error[K]
	if errors.As(err, &e) && !e.opaque {
		return e.kind, true
	}
	var zero K
	return zero, false
}

// HasKind reports whether any node in err's tree carries kind.
// Chains nested behind foreign wrappers are searched as well.
func HasKind[K comparable](err error, kind K) bool {
	for err != nil {
		var e *Error[K]
		if !errors.As(err, &e) {
			return false
		}
		for node := range e.Chain() {
			if !node.opaque && node.kind == kind {
				return true
			}
		}
		err = e.Root().source
	}
	return false
}
