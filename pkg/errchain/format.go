package errchain

import (
	"errors"
	"fmt"
	"strings"
)

// UserString returns the kind of the outermost chain node, without sites.
// Non-chain errors fall back to err.Error().
func UserString(err error) string {
	if err == nil {
		return ""
	}
	var n Node
	if errors.As(err, &n) {
		return n.KindString()
	}
	return err.Error()
}

// DebugString returns one line per error in err's tree. Chain nodes print
// their site, kind and function; other errors print their type and message.
func DebugString(err error) string {
	if err == nil {
		return ""
	}
	chain := flattenChain(err)
	var b strings.Builder
	for i, item := range chain {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch typed := item.(type) {
		case Node:
			site := typed.Site()
			b.WriteString(fmt.Sprintf("%d: [%s] %s", i+1, site, typed.KindString()))
			if site.Function != "" {
				b.WriteString(fmt.Sprintf(" | func=%s", site.Function))
			}
		default:
			b.WriteString(fmt.Sprintf("%d: %T: %s", i+1, item, item.Error()))
		}
	}
	return b.String()
}

// Sites returns the call sites of every node, outermost first.
func Sites(err error) []CallSite {
	var n Node
	if !errors.As(err, &n) {
		return nil
	}
	var out []CallSite
	for ; n != nil; n = n.Next() {
		out = append(out, n.Site())
	}
	return out
}

func flattenChain(err error) []error {
	var out []error
	queue := []error{err}
	const maxEntries = 64
	for len(queue) > 0 && len(out) < maxEntries {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		out = append(out, current)
		queue = append(queue, unwrapAll(current)...)
	}
	return out
}

func unwrapAll(err error) []error {
	switch unwrapped := err.(type) {
	case interface{ Unwrap() []error }:
		return unwrapped.Unwrap()
	case interface{ Unwrap() error }:
		if next := unwrapped.Unwrap(); next != nil {
			return []error{next}
		}
	}
	return nil
}
