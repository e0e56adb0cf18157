package decl

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/c360studio/enumset"
	"gopkg.in/yaml.v3"
)

// BuildOption configures a Build pass.
type BuildOption func(*buildOptions)

type buildOptions struct {
	warn   enumset.WarnFunc
	logger *slog.Logger
}

// WithWarnFunc routes redeclaration warnings to fn instead of the build
// logger. Reports carry the declaration file path and, when the member
// declared an explicit value, its line.
func WithWarnFunc(fn enumset.WarnFunc) BuildOption {
	return func(o *buildOptions) { o.warn = fn }
}

// WithLogger sets the logger used for default warning output.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(o *buildOptions) { o.logger = logger }
}

// BuiltSet is one declared set realized in the engine. Exactly one of
// Strings or Ints is non-nil, matching the declared value type. The set
// is sealed.
type BuiltSet struct {
	Decl    *SetDecl
	Strings *enumset.Set[string]
	Ints    *enumset.Set[int]
}

// Name returns the set name.
func (b *BuiltSet) Name() string { return b.Decl.Name }

// GoType returns the Go value type, "string" or "int".
func (b *BuiltSet) GoType() string { return b.Decl.goType() }

// Len returns the number of members. Duplicate benign declarations in
// the file collapse to one member.
func (b *BuiltSet) Len() int {
	if b.Strings != nil {
		return b.Strings.Len()
	}
	return b.Ints.Len()
}

// EachMember calls fn for every member in ordinal order with its key,
// whether it carries a value, and the value rendered as a Go literal
// ("" for valueless members). This is the surface the generator renders
// from: it sees the engine's deduplicated, guarded view of the file,
// not the raw declaration entries.
func (b *BuiltSet) EachMember(fn func(key string, hasValue bool, literal string)) {
	if b.Strings != nil {
		b.Strings.Each(func(m *enumset.Member[string]) {
			lit := ""
			if m.HasValue() {
				lit = strconv.Quote(m.Value())
			}
			fn(m.Key(), m.HasValue(), lit)
		})
		return
	}
	b.Ints.Each(func(m *enumset.Member[int]) {
		lit := ""
		if m.HasValue() {
			lit = strconv.Itoa(m.Value())
		}
		fn(m.Key(), m.HasValue(), lit)
	})
}

// MemberDoc returns the doc string of the first declaration of key.
func (sd *SetDecl) MemberDoc(key string) string {
	for i := range sd.Members {
		if sd.Members[i].Key == key {
			return sd.Members[i].Doc
		}
	}
	return ""
}

// Build realizes every set the file declares, running each member
// through the registration guard: duplicate keys with diverging values,
// duplicate values and value-string collisions all fail with the
// file/set/member position attached. Benign duplicate entries succeed
// and are reported through the warn sink. Every returned set is sealed.
func (f *File) Build(opts ...BuildOption) ([]*BuiltSet, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	forward := o.warn
	if forward == nil {
		forward = func(r enumset.Redeclaration) {
			logger.Warn("duplicate member declaration",
				slog.String("set", r.Set),
				slog.String("key", r.Key),
				slog.String("value", r.Value),
				slog.String("file", r.File),
				slog.Int("line", r.Line))
		}
	}

	built := make([]*BuiltSet, 0, len(f.Sets))
	for i := range f.Sets {
		sd := &f.Sets[i]
		b, err := f.buildSet(sd, forward)
		if err != nil {
			return nil, err
		}
		built = append(built, b)
	}
	return built, nil
}

func (f *File) buildSet(sd *SetDecl, forward enumset.WarnFunc) (*BuiltSet, error) {
	switch sd.goType() {
	case TypeString:
		s, err := buildMembers(f, sd, forward, decodeString, func(key string) string {
			return strings.ToLower(key)
		})
		if err != nil {
			return nil, err
		}
		return &BuiltSet{Decl: sd, Strings: s}, nil
	case TypeInt:
		s, err := buildMembers(f, sd, forward, decodeInt, nil)
		if err != nil {
			return nil, err
		}
		return &BuiltSet{Decl: sd, Ints: s}, nil
	default:
		return nil, fmt.Errorf("%s: set %q: unsupported type %q", f.label(), sd.Name, sd.Type)
	}
}

// buildMembers registers a declaration's members into a fresh set.
// decode turns an explicit value node into a V; defaulted, when non-nil,
// supplies the value for members declared without one.
func buildMembers[V comparable](
	f *File,
	sd *SetDecl,
	forward enumset.WarnFunc,
	decode func(*yaml.Node) (V, error),
	defaulted func(key string) V,
) (*enumset.Set[V], error) {
	// Rewrite warning positions from the Go call site to the member's
	// spot in the declaration file. Build is sequential, so tracking the
	// current line in a captured variable is safe.
	line := 0
	warn := func(r enumset.Redeclaration) {
		r.File = f.Path
		r.Line = line
		forward(r)
	}
	s := enumset.New[V](sd.Name, enumset.WithWarnFunc[V](warn))

	for i := range sd.Members {
		md := &sd.Members[i]
		line = md.Line()

		var err error
		switch {
		case md.ValueNull():
			_, err = s.RegisterKey(md.Key)
		case md.ValueOmitted():
			if defaulted == nil {
				err = fmt.Errorf("missing value: %s sets have no default", sd.goType())
			} else {
				_, err = s.Register(md.Key, defaulted(md.Key))
			}
		default:
			var v V
			if v, err = decode(&md.Value); err == nil {
				_, err = s.Register(md.Key, v)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%s: set %s: member %d (%s): %w", f.label(), sd.Name, i, md.Key, err)
		}
	}

	s.Seal()
	return s, nil
}

func (f *File) label() string {
	if f.Path == "" {
		return "declaration"
	}
	return f.Path
}

func decodeString(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!str" {
		return "", fmt.Errorf("value must be a string scalar, got %s", node.Tag)
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return "", err
	}
	return s, nil
}

func decodeInt(node *yaml.Node) (int, error) {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!int" {
		return 0, fmt.Errorf("value must be an integer scalar, got %s", node.Tag)
	}
	var n int
	if err := node.Decode(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Result summarizes a validation pass.
type Result struct {
	Files    int
	Sets     int
	Members  int
	Warnings []enumset.Redeclaration
}

// Validate loads and builds every file, discarding the built sets. All
// files are attempted even after a failure; the returned error joins
// every failure and the Result still counts the files that passed.
func Validate(paths []string, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res := &Result{}
	collect := WithWarnFunc(func(r enumset.Redeclaration) {
		res.Warnings = append(res.Warnings, r)
	})

	var errs []error
	for _, path := range paths {
		f, err := Load(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		built, err := f.Build(collect, WithLogger(logger))
		if err != nil {
			errs = append(errs, err)
			continue
		}

		res.Files++
		for _, b := range built {
			res.Sets++
			res.Members += b.Len()
		}
		logger.Debug("validated declaration",
			slog.String("path", path),
			slog.Int("sets", len(built)))
	}
	return res, errors.Join(errs...)
}
