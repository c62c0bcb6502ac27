package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintMinimalScript(t *testing.T) {
	f := &File{
		Kind: KindScript,
		Decls: []Decl{
			&FuncDecl{
				Name:       "main",
				ReturnType: &NamedTypeExpr{Path: []string{"u64"}},
				Body: &Block{
					Implicit: &IntLit{Value: 42},
				},
			},
		},
	}
	out := Print(f)
	assert.True(t, strings.HasPrefix(out, "script;\n"))
	assert.Contains(t, out, "fn main() -> u64")
}

func TestPrintImport(t *testing.T) {
	f := &File{
		Kind:    KindLibrary,
		Imports: []*Import{{Path: []string{"std", "option"}, Alias: "opt"}},
	}
	out := Print(f)
	assert.Contains(t, out, "use std::option as opt;")
}
