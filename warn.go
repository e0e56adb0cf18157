package enumset

import (
	"log/slog"
	"runtime"
	"strings"
)

// Redeclaration describes a benign duplicate registration: the same key
// registered again with the same value. The registration succeeds and
// returns the original member; the redeclaration is only reported.
type Redeclaration struct {
	Set   string
	Key   string
	Value string // string form of the value, empty for valueless members
	File  string // call site of the duplicate registration, if known
	Line  int
}

// WarnFunc receives benign redeclaration reports. The default sink logs
// through the set's slog.Logger at warn level.
type WarnFunc func(Redeclaration)

func logWarn(logger *slog.Logger) WarnFunc {
	return func(r Redeclaration) {
		attrs := []any{
			slog.String("set", r.Set),
			slog.String("key", r.Key),
		}
		if r.Value != "" {
			attrs = append(attrs, slog.String("value", r.Value))
		}
		if r.File != "" {
			attrs = append(attrs, slog.String("file", r.File), slog.Int("line", r.Line))
		}
		logger.Warn("duplicate member declaration", attrs...)
	}
}

const pkgPrefix = "github.com/c360studio/enumset."

// callSite walks up the stack to the first frame outside this package,
// which is the registration call the redeclaration report should point at.
func callSite() (file string, line int) {
	var pcs [16]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, pkgPrefix) {
			return frame.File, frame.Line
		}
		if !more {
			return "", 0
		}
	}
}
