// Package errchain provides error chains with static call sites, a cheap
// replacement for stack traces.
//
// A chain is a sequence of *Error[K] nodes. K is a caller-defined kind
// (typically a small struct or an enum-like type with a String method)
// saying what a layer of code was trying to do when it failed. Each node
// records the call site that created it:
//   - the root cause is created with From, New or Lift when a failure first
//     happens
//   - every layer that sees the failure on its way up adds one node with
//     Context, ContextWith or Attach
//   - whole functions can be instrumented with Func, Func1 and Async so that
//     every error they return gains a node without the body naming Context
//
// A chain renders outermost-first on a single line:
//
//	[cmd/app.go:41] Startup: [config/load.go:17] Load: [config/load.go:52] disk full
//
// Example usage:
//
//	func load(path string) (*Config, error) {
//		data, err := os.ReadFile(path)
//		if err != nil {
//			return nil, errchain.Context(err, Kind{Op: "read config"})
//		}
//		// ...
//	}
//
//	if errchain.HasKind(err, Kind{Op: "read config"}) {
//		// Handle specific failure
//	}
//
//	fmt.Println(err)                      // Single-line chain
//	fmt.Println(errchain.DebugString(err)) // One node per line
//
// Chain nodes are immutable and own their cause exclusively. They unwrap
// to their cause, so errors.Is and errors.As work across the whole chain,
// including foreign errors converted at the root.
package errchain
