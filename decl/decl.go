// Package decl loads enum set declarations from YAML files and realizes
// them as enumset sets. Declaration files are the input to the enumgen
// code generator; building one runs every member through the same
// registration guard the generated code will run through, so a file
// that validates here produces source that initializes cleanly.
//
// A declaration file looks like:
//
//	package: cards
//	sets:
//	  - name: Suit
//	    type: string
//	    doc: French playing card suits.
//	    members:
//	      - key: CLUBS
//	      - key: DIAMONDS
//	      - key: HEARTS
//	      - key: SPADES
//
// A member without a value defaults to the lowercased key for string
// sets; int sets require explicit values. An explicit `value: null`
// declares the set's single valueless member.
package decl

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Set value types accepted in declaration files.
const (
	TypeString = "string"
	TypeInt    = "int"
)

// setNamePattern constrains set names to exported Go identifiers, since
// the generator emits each set as a package-level var.
var setNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// File is one parsed declaration file.
type File struct {
	// Path is where the file was loaded from, "" for in-memory data.
	Path string `yaml:"-"`

	// Package is the Go package the generated file belongs to. Optional;
	// the generator falls back to its configured package.
	Package string `yaml:"package"`

	Sets []SetDecl `yaml:"sets"`
}

// SetDecl declares one enum set.
type SetDecl struct {
	Name string `yaml:"name"`

	// Type is the Go value type, "string" (default) or "int".
	Type string `yaml:"type"`

	// Doc becomes the doc comment of the generated set var.
	Doc string `yaml:"doc"`

	Members []MemberDecl `yaml:"members"`
}

// MemberDecl declares one member of a set. Value is kept as a raw YAML
// node so an omitted value, an explicit null and a present scalar stay
// distinguishable after decoding.
type MemberDecl struct {
	Key   string    `yaml:"key"`
	Value yaml.Node `yaml:"value"`
	Doc   string    `yaml:"doc"`
}

// ValueOmitted reports whether the declaration carried no value field
// at all, as opposed to an explicit null.
func (m *MemberDecl) ValueOmitted() bool {
	return m.Value.IsZero()
}

// ValueNull reports whether the declaration carried an explicit
// `value: null`, declaring a valueless member.
func (m *MemberDecl) ValueNull() bool {
	return !m.Value.IsZero() && m.Value.Tag == "!!null"
}

// Line returns the best known source line for the member: the value
// node's position when one was declared, 0 otherwise.
func (m *MemberDecl) Line() int {
	if m.Value.IsZero() {
		return 0
	}
	return m.Value.Line
}

// Parse decodes declaration data. Unknown fields are rejected so typos
// in declaration files fail loudly instead of silently dropping members.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse declaration: %w", err)
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the declaration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load declaration: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// check validates the declaration shape before any set is built. Member
// level rules (key pattern, duplicates, value collisions) are enforced
// later by the registration guard itself.
func (f *File) check() error {
	if len(f.Sets) == 0 {
		return fmt.Errorf("declaration has no sets")
	}

	seen := make(map[string]bool, len(f.Sets))
	for i := range f.Sets {
		sd := &f.Sets[i]
		if sd.Name == "" {
			return fmt.Errorf("set %d: missing name", i)
		}
		if !setNamePattern.MatchString(sd.Name) {
			return fmt.Errorf("set %q: name must be an exported identifier matching %s", sd.Name, setNamePattern)
		}
		if seen[sd.Name] {
			return fmt.Errorf("set %q: declared twice", sd.Name)
		}
		seen[sd.Name] = true

		switch sd.Type {
		case "", TypeString, TypeInt:
		default:
			return fmt.Errorf("set %q: unsupported type %q (want %q or %q)", sd.Name, sd.Type, TypeString, TypeInt)
		}
	}
	return nil
}

// goType returns the effective Go value type of a set declaration.
func (sd *SetDecl) goType() string {
	if sd.Type == "" {
		return TypeString
	}
	return sd.Type
}
