package namespace

import (
	"testing"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

func TestInsertSubmoduleWriteOnce(t *testing.T) {
	root := Root("root")
	if _, err := root.InsertSubmodule("std", ast.Public); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := root.InsertSubmodule("std", ast.Public); err == nil {
		t.Fatalf("expected ResubmoduleError on second insert")
	}
}

func TestInsertSubmodulePreservesVisibility(t *testing.T) {
	root := Root("root")
	child, err := root.InsertSubmodule("internal", ast.Private)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if child.Visibility != ast.Private {
		t.Fatalf("expected child to be private, got %v", child.Visibility)
	}
}

func TestInsertSymbolShadowWarningVsError(t *testing.T) {
	root := Root("root")
	if err := root.InsertSymbol("foo", &DeclRef{Kind: DeclFunc}); err != nil {
		t.Fatalf("unexpected error on first insert: %v", err)
	}
	if err := root.InsertSymbol("foo", &DeclRef{Kind: DeclFunc}); err == nil {
		t.Fatalf("expected a ShadowWarning on re-insert")
	} else if _, ok := err.(*ShadowWarning); !ok {
		t.Fatalf("expected *ShadowWarning, got %T", err)
	}

	if err := root.InsertSymbol("Bar", &DeclRef{Kind: DeclStruct}); err != nil {
		t.Fatalf("unexpected error on first struct insert: %v", err)
	}
	if err := root.InsertSymbol("Bar", &DeclRef{Kind: DeclStruct}); err == nil {
		t.Fatalf("expected a ShadowError for struct re-declaration")
	} else if _, ok := err.(*ShadowError); !ok {
		t.Fatalf("expected *ShadowError, got %T", err)
	}
}

func TestTraitImplLookupThroughAncestors(t *testing.T) {
	root := Root("root")
	child, _ := root.InsertSubmodule("child", ast.Public)
	root.AddTraitImpl("Eq", types.U64, 42)

	if id, ok := child.HasTraitImpl("Eq", types.U64); !ok || id != 42 {
		t.Fatalf("expected child to see ancestor's trait impl, got %d, %v", id, ok)
	}
	if _, ok := child.HasTraitImpl("Ord", types.U64); ok {
		t.Fatalf("expected no Ord impl")
	}
}

func TestStorageOnlyOnContract(t *testing.T) {
	lib := Root("lib")
	if err := lib.SetStorage(nil); err == nil {
		t.Fatalf("expected error setting storage on a non-contract module")
	}

	contract := Root("contract")
	contract.IsContract = true
	if err := contract.SetStorage(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := contract.SetStorage(nil); err == nil {
		t.Fatalf("expected error setting storage twice")
	}
}

func TestTopoSortOrdersDependenciesFirst(t *testing.T) {
	graph := map[string][]string{
		"a": {"b", "c"},
		"b": {"c"},
		"c": {},
	}
	order, err := TopoSort([]string{"a"}, func(n string) ([]string, error) { return graph[n], nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos := make(map[string]int)
	for i, n := range order {
		pos[n] = i
	}
	if pos["c"] > pos["b"] || pos["b"] > pos["a"] {
		t.Fatalf("expected order c, b, a; got %v", order)
	}
}

func TestTopoSortDetectsCycle(t *testing.T) {
	graph := map[string][]string{
		"a": {"b"},
		"b": {"a"},
	}
	_, err := TopoSort([]string{"a"}, func(n string) ([]string, error) { return graph[n], nil })
	if err == nil {
		t.Fatalf("expected a cycle error")
	}
	if _, ok := err.(*CycleError); !ok {
		t.Fatalf("expected *CycleError, got %T", err)
	}
}
