// Package ast defines the parse-tree node types the core consumes as its
// S1 input contract (spec §6.1). The lexer and grammar-driven parser that
// actually build these trees are out of scope for the core (spec §1) — a
// driver builds a *File per compilation unit and hands it to the type
// checker. Every node carries a source span so diagnostics can always
// point back into the original source.
package ast

import "fmt"

// Pos is a single point in source: a byte offset plus the line/column a
// driver would render it at, tagged with the source-id it belongs to.
type Pos struct {
	SourceID string
	Line     int
	Column   int
	Offset   int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.SourceID, p.Line, p.Column)
}

// Span is a byte range within one source file (spec §6.1: "source-id +
// byte range").
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line, s.End.Column)
}

// Node is the base interface every parse-tree node implements.
type Node interface {
	Span() Span
}

// Kind is the top-level program flavor (spec §3.4, §4.1).
type Kind int

const (
	KindScript Kind = iota
	KindPredicate
	KindContract
	KindLibrary
)

func (k Kind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindPredicate:
		return "predicate"
	case KindContract:
		return "contract"
	case KindLibrary:
		return "library"
	default:
		return "unknown"
	}
}

// Visibility controls whether a declaration is visible outside its module.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// Purity is a function's statically-declared storage access attribute
// (spec §3.3, glossary "Purity").
type Purity int

const (
	Pure Purity = iota
	Reads
	Writes
	ReadsWrites
)

func (p Purity) String() string {
	switch p {
	case Pure:
		return "Pure"
	case Reads:
		return "Reads"
	case Writes:
		return "Writes"
	case ReadsWrites:
		return "ReadsWrites"
	default:
		return "Pure"
	}
}

// MayRead reports whether this purity permits storage reads. Writes
// permits reads too (spec §4.3: "in Writes, reads are allowed") — only
// Pure forbids touching storage at all.
func (p Purity) MayRead() bool { return p == Reads || p == Writes || p == ReadsWrites }

// MayWrite reports whether this purity permits storage writes.
func (p Purity) MayWrite() bool { return p == Writes || p == ReadsWrites }

// File is the root of one parsed compilation unit: a single module-path
// declaration, its imports, and its top-level declarations in source
// order (spec §5 "source order is preserved for top-level declarations").
type File struct {
	SourceID    string
	Kind        Kind
	ModulePath  []string // empty for the root module of a unit
	Imports     []*Import
	Decls       []Decl
	FileSpan    Span
}

func (f *File) Span() Span { return f.FileSpan }

// Import maps an identifier (or its last path segment) to an absolute
// module path, with an optional alias (spec §3.2 use-table).
type Import struct {
	Path    []string
	Alias   string
	ImpSpan Span
}

func (i *Import) Span() Span { return i.ImpSpan }
