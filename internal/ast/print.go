package ast

import (
	"fmt"
	"strings"
)

// Print renders a File as indented pseudo-source, a debugging aid
// exercised by this package's tests; it is not a formatter and makes no
// promise of round-tripping through the parser.
func Print(f *File) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s;\n", f.Kind)
	for _, imp := range f.Imports {
		fmt.Fprintf(&b, "use %s", strings.Join(imp.Path, "::"))
		if imp.Alias != "" {
			fmt.Fprintf(&b, " as %s", imp.Alias)
		}
		b.WriteString(";\n")
	}
	for _, d := range f.Decls {
		printDecl(&b, d, 0)
	}
	return b.String()
}

func indent(b *strings.Builder, n int) {
	b.WriteString(strings.Repeat("  ", n))
}

func printDecl(b *strings.Builder, d Decl, depth int) {
	indent(b, depth)
	switch d := d.(type) {
	case *FuncDecl:
		fmt.Fprintf(b, "fn %s(%s) -> %s {%s}\n", d.Name, printParams(d.Params), printType(d.ReturnType), d.Purity)
	case *StructDecl:
		fmt.Fprintf(b, "struct %s { %d fields }\n", d.Name, len(d.Fields))
	case *EnumDecl:
		fmt.Fprintf(b, "enum %s { %d variants }\n", d.Name, len(d.Variants))
	case *TraitDecl:
		fmt.Fprintf(b, "trait %s { %d methods }\n", d.Name, len(d.Methods))
	case *ImplDecl:
		fmt.Fprintf(b, "impl %s for %s\n", d.Trait, printType(d.ForType))
	case *ConstDecl:
		fmt.Fprintf(b, "const %s: %s\n", d.Name, printType(d.Type))
	case *StorageDecl:
		fmt.Fprintf(b, "storage { %d fields }\n", len(d.Fields))
	case *ModDecl:
		fmt.Fprintf(b, "mod %s;\n", d.Name)
	default:
		fmt.Fprintf(b, "<unknown decl %T>\n", d)
	}
}

func printParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, printType(p.Type))
	}
	return strings.Join(parts, ", ")
}

func printType(t TypeExpr) string {
	if t == nil {
		return "()"
	}
	switch t := t.(type) {
	case *NamedTypeExpr:
		if len(t.TypeArgs) == 0 {
			return strings.Join(t.Path, "::")
		}
		args := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = printType(a)
		}
		return fmt.Sprintf("%s<%s>", strings.Join(t.Path, "::"), strings.Join(args, ", "))
	case *TupleTypeExpr:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = printType(e)
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	case *ArrayTypeExpr:
		return fmt.Sprintf("[%s; %d]", printType(t.Elem), t.Len)
	case *PtrTypeExpr:
		return "*" + printType(t.Elem)
	default:
		return fmt.Sprintf("<unknown type %T>", t)
	}
}
