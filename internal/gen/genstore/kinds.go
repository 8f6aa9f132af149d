// Package genstore holds error types produced by errchain gen from the
// errchain.yaml next to this file. Its tests exercise the generated helpers.
package genstore

//go:generate go run errchain/cmd/errchain gen --config errchain.yaml

// StoreKind is the error kind of the storage layer.
type StoreKind string

const (
	StoreNotFound StoreKind = "not found"
	StoreWrite    StoreKind = "write"
)

// APIKind is the error kind of the request layer.
type APIKind struct {
	Route string
}

func (k APIKind) String() string { return "handle " + k.Route }
