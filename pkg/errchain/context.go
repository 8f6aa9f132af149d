package errchain

// Context wraps a failure in a new outer node of the given kind.
// A nil err is returned as nil without any allocation. Otherwise err is
// converted into a chain (see Kinder) and becomes the cause of a node
// whose site is the line calling Context.
func Context[K any](err error, kind K) error {
	if err == nil {
		return nil
	}
	return wrap(err, kind, Caller(1))
}

// ContextWith is like Context but only calls kind on the failure path.
// Use it when building the kind is expensive.
func ContextWith[K any](err error, kind func() K) error {
	if err == nil {
		return nil
	}
	return wrap(err, kind(), Caller(1))
}

// ContextAt is Context with an explicit site, for wrappers that capture
// the site of their own caller. It returns nil if err is nil.
func ContextAt[K any](err error, kind K, site CallSite) *Error[K] {
	if err == nil {
		return nil
	}
	return wrap(err, kind, site)
}

// Attach is the outcome form of Context: v is returned unchanged and err,
// if any, gains one node.
func Attach[V, K any](v V, err error, kind K) (V, error) {
	if err == nil {
		return v, nil
	}
	return v, wrap(err, kind, Caller(1))
}

// AttachWith is the outcome form of ContextWith.
func AttachWith[V, K any](v V, err error, kind func() K) (V, error) {
	if err == nil {
		return v, nil
	}
	return v, wrap(err, kind(), Caller(1))
}

func wrap[K any](err error, kind K, site CallSite) *Error[K] {
	return &Error[K]{kind: kind, cause: into[K](err, site), site: site}
}
