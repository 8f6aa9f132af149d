// Package chainlog logs errchain chains with structured fields.
//
// A chain is emitted with the following fields:
//   - error.kind: kind of the outermost node, e.g. "Startup"
//   - error.site: site of the outermost node, e.g. "cmd/app.go:41"
//   - error.depth: number of nodes
//   - error.chain: every node as {kind, site, func}, outermost first
//   - error.source: the foreign error at the root, if any
//
// Errors that are not chains fall back to a plain error field.
package chainlog

import (
	"errors"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"errchain/pkg/errchain"
)

// Fields returns zap fields describing err.
func Fields(err error) []zap.Field {
	if err == nil {
		return nil
	}
	var head errchain.Node
	if !errors.As(err, &head) {
		return []zap.Field{zap.Error(err)}
	}

	depth, root := walk(head)
	fields := []zap.Field{
		zap.String("error.kind", head.KindString()),
		zap.String("error.site", head.Site().String()),
		zap.Int("error.depth", depth),
		zap.Array("error.chain", chainArray{head: head}),
		zap.Error(err),
	}
	// Use a distinct field name to avoid a duplicate "error" field.
	if src := root.Source(); src != nil {
		fields = append(fields, zap.NamedError("error.source", src))
	}
	return fields
}

// Log logs err at error level with Fields. A nil logger or err is a no-op.
func Log(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil {
		return
	}
	logger.Error(msg, Fields(err)...)
}

// KeysAndValues returns err's fields as logr key/value pairs.
func KeysAndValues(err error) []any {
	var head errchain.Node
	if err == nil || !errors.As(err, &head) {
		return nil
	}

	depth, root := walk(head)
	lines := make([]string, 0, depth)
	for n := head; n != nil; n = n.Next() {
		lines = append(lines, "["+n.Site().String()+"] "+n.KindString())
	}
	keysAndValues := []any{
		"error.kind", head.KindString(),
		"error.site", head.Site().String(),
		"error.depth", depth,
		"error.chain", lines,
	}
	if src := root.Source(); src != nil {
		keysAndValues = append(keysAndValues, "error.source", src.Error())
	}
	return keysAndValues
}

// LogR logs err through a logr.Logger, such as the one controller-runtime
// hands to reconcilers.
func LogR(logger logr.Logger, err error, msg string) {
	if err == nil {
		return
	}
	if kv := KeysAndValues(err); kv != nil {
		logger.Error(err, msg, kv...)
		return
	}
	// Fallback for non-chain errors
	logger.Error(err, msg)
}

func walk(head errchain.Node) (depth int, root errchain.Node) {
	for n := head; n != nil; n = n.Next() {
		depth++
		root = n
	}
	return depth, root
}

type chainArray struct {
	head errchain.Node
}

func (c chainArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for n := c.head; n != nil; n = n.Next() {
		if err := enc.AppendObject(nodeObject{node: n}); err != nil {
			return err
		}
	}
	return nil
}

type nodeObject struct {
	node errchain.Node
}

func (o nodeObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	site := o.node.Site()
	enc.AddString("kind", o.node.KindString())
	enc.AddString("site", site.String())
	if site.Function != "" {
		enc.AddString("func", site.Function)
	}
	return nil
}
