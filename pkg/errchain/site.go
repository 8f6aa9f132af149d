package errchain

import (
	"runtime"

	"go.uber.org/zap/zapcore"
)

// CallSite describes where a chain node was constructed.
type CallSite struct {
	File     string
	Line     int
	Function string
}

// Caller returns the call site skip frames above its caller.
// Caller(0) is the line that calls Caller.
func Caller(skip int) CallSite {
	// +2 skips runtime.Callers and Caller itself. CallersFrames resolves
	// inlined frames, which a bare FuncForPC would not.
	var pc [1]uintptr
	if runtime.Callers(skip+2, pc[:]) == 0 {
		return CallSite{}
	}
	frame, _ := runtime.CallersFrames(pc[:]).Next()
	return CallSite{File: frame.File, Line: frame.Line, Function: frame.Function}
}

// Here returns the call site of its caller.
func Here() CallSite {
	return Caller(1)
}

// IsZero reports whether the site was never captured.
func (s CallSite) IsZero() bool {
	return s.File == "" && s.Line == 0
}

// String renders the site as "dir/file.go:line".
func (s CallSite) String() string {
	if s.IsZero() {
		return "unknown"
	}
	return zapcore.EntryCaller{Defined: true, File: s.File, Line: s.Line}.TrimmedPath()
}
