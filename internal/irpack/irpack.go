// Package irpack lowers a checked unit into a flat, span-free package that
// external emitters can consume without parsing schema files. Types travel as
// mangled names; Demangle restores them.
package irpack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"vellum/internal/abi"
	"vellum/internal/ast"
	"vellum/internal/emit"
	"vellum/internal/sema"
)

// SchemaVersion is bumped whenever Package changes shape.
const SchemaVersion uint16 = 1

type ItemKind string

const (
	KindStruct   ItemKind = "struct"
	KindAbstract ItemKind = "abstract"
	KindFunction ItemKind = "function"
)

// Package is the lowered form of one unit.
type Package struct {
	Schema  uint16   `msgpack:"schema" json:"schema"`
	Name    string   `msgpack:"name" json:"name"`
	Source  string   `msgpack:"source" json:"source"`
	Items   []Item   `msgpack:"items,omitempty" json:"items,omitempty"`
	Helpers []Helper `msgpack:"helpers,omitempty" json:"helpers,omitempty"`
}

// Item keeps the unit order: concrete structs in dependency order, then the
// rest.
type Item struct {
	Kind   ItemKind `msgpack:"kind" json:"kind"`
	Name   string   `msgpack:"name" json:"name"`
	Docs   []string `msgpack:"docs,omitempty" json:"docs,omitempty"`
	Fields []Field  `msgpack:"fields,omitempty" json:"fields,omitempty"`
	Args   []Field  `msgpack:"args,omitempty" json:"args,omitempty"`
	// Returns is the mangled return type, empty for none.
	Returns string `msgpack:"returns,omitempty" json:"returns,omitempty"`
	// Deps lists the concrete structs this item's layout depends on.
	Deps []string `msgpack:"deps,omitempty" json:"deps,omitempty"`
}

type Field struct {
	Name string   `msgpack:"name" json:"name"`
	Type string   `msgpack:"type" json:"type"`
	Docs []string `msgpack:"docs,omitempty" json:"docs,omitempty"`
}

// DecodeType demangles the field type.
func (f Field) DecodeType() (ast.Type, error) {
	return abi.Demangle(f.Type)
}

type Helper struct {
	Kind  string `msgpack:"kind" json:"kind"`
	Name  string `msgpack:"name" json:"name"`
	CName string `msgpack:"c_name" json:"c_name"`
}

// Lower flattens u; deps come from the validity check.
func Lower(u *emit.Unit, deps sema.Dependencies) *Package {
	p := &Package{Schema: SchemaVersion, Name: u.Name, Source: u.Source}
	for _, it := range u.Items {
		name, ok := it.Name()
		if !ok {
			continue
		}
		out := Item{
			Name: name.Name,
			Docs: append([]string(nil), it.Docs...),
			Deps: append([]string(nil), deps.Of(name.Name)...),
		}
		switch {
		case it.IsAbstractStruct():
			out.Kind = KindAbstract
		case it.IsConcreteStruct():
			out.Kind = KindStruct
			for i := range it.Struct.Fields {
				f := &it.Struct.Fields[i]
				out.Fields = append(out.Fields, Field{
					Name: f.Name.Name,
					Type: abi.Mangle(f.Type),
					Docs: append([]string(nil), f.Docs...),
				})
			}
		default:
			out.Kind = KindFunction
			for i := range it.Function.Args {
				a := &it.Function.Args[i]
				out.Args = append(out.Args, Field{Name: a.Name.Name, Type: abi.Mangle(a.Type)})
			}
			if it.Function.Returns != nil {
				out.Returns = abi.Mangle(*it.Function.Returns)
			}
		}
		p.Items = append(p.Items, out)
	}
	for _, h := range u.Surface.Helpers() {
		p.Helpers = append(p.Helpers, Helper{Kind: h.Kind.String(), Name: h.Name, CName: h.CName()})
	}
	return p
}

type Encoding uint8

const (
	EncodingMsgpack Encoding = iota
	EncodingJSON
)

func (e Encoding) String() string {
	if e == EncodingJSON {
		return "json"
	}
	return "msgpack"
}

// Ext is the output file extension for the encoding.
func (e Encoding) Ext() string {
	if e == EncodingJSON {
		return ".vir.json"
	}
	return ".vir"
}

func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "msgpack", "mp":
		return EncodingMsgpack, nil
	case "json":
		return EncodingJSON, nil
	default:
		return EncodingMsgpack, fmt.Errorf("unknown IR encoding %q (want msgpack or json)", s)
	}
}

// ErrSchemaMismatch is returned by Decode for packages of another version.
var ErrSchemaMismatch = errors.New("irpack: schema version mismatch")

func Encode(w io.Writer, p *Package, enc Encoding) error {
	if enc == EncodingJSON {
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(p)
	}
	return msgpack.NewEncoder(w).Encode(p)
}

func Decode(r io.Reader, enc Encoding) (*Package, error) {
	var p Package
	var err error
	if enc == EncodingJSON {
		err = json.NewDecoder(r).Decode(&p)
	} else {
		err = msgpack.NewDecoder(r).Decode(&p)
	}
	if err != nil {
		return nil, fmt.Errorf("irpack: decode %s: %w", enc, err)
	}
	if p.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, p.Schema, SchemaVersion)
	}
	return &p, nil
}

// Backend writes the lowered unit as <name>.vir or <name>.vir.json.
func Backend(deps sema.Dependencies, enc Encoding) emit.Backend {
	return func(u *emit.Unit) ([]emit.File, error) {
		var buf strings.Builder
		if err := Encode(&buf, Lower(u, deps), enc); err != nil {
			return nil, err
		}
		return []emit.File{{Name: u.Name + enc.Ext(), Content: []byte(buf.String())}}, nil
	}
}
