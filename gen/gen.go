// Package gen emits Go source from enum set declarations. Each
// declaration file becomes one generated file containing a package-level
// var per set, a var per member in declaration order, and an init that
// seals every set. Generated output is always run through go/format, so
// a formatting failure means the generator itself produced bad source.
package gen

import (
	"fmt"
	"go/format"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/enumset/decl"
)

// enginePath is the import path generated files depend on.
const enginePath = "github.com/c360studio/enumset"

// generatedHeader marks output files per the Go generated-code
// convention, so tooling (and reviewers) skip them.
const generatedHeader = "// Code generated by enumgen. DO NOT EDIT."

// Config configures a Generator.
type Config struct {
	// Package is the package clause used when a declaration file does
	// not name one.
	Package string

	// Logger for generation progress.
	Logger *slog.Logger
}

// Generator renders declaration files as Go source.
type Generator struct {
	config Config
	logger *slog.Logger
}

// New creates a Generator.
func New(config Config) *Generator {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.Package == "" {
		config.Package = "enums"
	}
	return &Generator{config: config, logger: logger}
}

// Filename maps a declaration path to its generated file name:
// suits.enum.yaml becomes suits_enum.go.
func Filename(declPath string) string {
	base := filepath.Base(declPath)
	for _, suffix := range []string{".enum.yaml", ".enum.yml", ".yaml", ".yml"} {
		if strings.HasSuffix(base, suffix) {
			base = strings.TrimSuffix(base, suffix)
			break
		}
	}
	base = strings.ReplaceAll(base, "-", "_")
	base = strings.ReplaceAll(base, ".", "_")
	return base + "_enum.go"
}

// Generate builds the file's sets and renders them. Guard violations in
// the declaration surface as build errors; redeclaration warnings go to
// the logger.
func (g *Generator) Generate(f *decl.File) ([]byte, error) {
	sets, err := f.Build(decl.WithLogger(g.logger))
	if err != nil {
		return nil, err
	}
	return g.Render(f, sets)
}

// Render renders already-built sets. Callers that need their own warn
// sink build the sets themselves and pass them in.
func (g *Generator) Render(f *decl.File, sets []*decl.BuiltSet) ([]byte, error) {
	var b strings.Builder

	b.WriteString(generatedHeader + "\n")
	if f.Path != "" {
		fmt.Fprintf(&b, "// Source: %s\n", filepath.Base(f.Path))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "package %s\n\n", g.packageFor(f))
	fmt.Fprintf(&b, "import %q\n\n", enginePath)

	names := make(map[string]string) // var name -> key it came from
	for _, s := range sets {
		if err := renderSet(&b, s, names); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}
	}

	b.WriteString("func init() {\n")
	for _, s := range sets {
		fmt.Fprintf(&b, "\t%s.Seal()\n", s.Name())
	}
	b.WriteString("}\n")

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

// Write renders sets and writes the generated file under outDir,
// creating the directory as needed. It returns the output path.
func (g *Generator) Write(f *decl.File, sets []*decl.BuiltSet, outDir string) (string, error) {
	src, err := g.Render(f, sets)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outPath := filepath.Join(outDir, Filename(f.Path))
	if err := os.WriteFile(outPath, src, 0644); err != nil {
		return "", fmt.Errorf("write generated file: %w", err)
	}

	g.logger.Info("generated enum source",
		slog.String("source", f.Path),
		slog.String("output", outPath),
		slog.Int("sets", len(sets)))
	return outPath, nil
}

func (g *Generator) packageFor(f *decl.File) string {
	if f.Package != "" {
		return f.Package
	}
	return g.config.Package
}

func renderSet(b *strings.Builder, s *decl.BuiltSet, names map[string]string) error {
	if prev, ok := names[s.Name()]; ok {
		return fmt.Errorf("set %s: var name already used by %s", s.Name(), prev)
	}
	names[s.Name()] = "set " + s.Name()

	writeDoc(b, s.Decl.Doc)
	fmt.Fprintf(b, "var %s = enumset.New[%s](%q)\n\n", s.Name(), s.GoType(), s.Name())

	var collision error
	b.WriteString("var (\n")
	s.EachMember(func(key string, hasValue bool, literal string) {
		if collision != nil {
			return
		}
		varName := s.Name() + pascal(key)
		if prev, ok := names[varName]; ok {
			collision = fmt.Errorf("set %s: member %s: var name %s already used by %s", s.Name(), key, varName, prev)
			return
		}
		names[varName] = fmt.Sprintf("member %s::%s", s.Name(), key)

		if doc := s.Decl.MemberDoc(key); doc != "" {
			writeIndentedDoc(b, doc)
		}
		if hasValue {
			fmt.Fprintf(b, "\t%s = %s.MustRegister(%q, %s)\n", varName, s.Name(), key, literal)
		} else {
			fmt.Fprintf(b, "\t%s = %s.MustRegisterKey(%q)\n", varName, s.Name(), key)
		}
	})
	b.WriteString(")\n\n")

	return collision
}

func writeDoc(b *strings.Builder, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
		fmt.Fprintf(b, "// %s\n", line)
	}
}

func writeIndentedDoc(b *strings.Builder, doc string) {
	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
		fmt.Fprintf(b, "\t// %s\n", line)
	}
}

// pascal converts a constant-style key to PascalCase for var names:
// ROYAL_FLUSH becomes RoyalFlush.
func pascal(key string) string {
	var b strings.Builder
	for _, part := range strings.Split(key, "_") {
		if part == "" {
			continue
		}
		b.WriteString(part[:1])
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}
