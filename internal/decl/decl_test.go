package decl

import (
	"testing"

	"github.com/FuelLabs/sway-core-go/internal/types"
)

func TestInsertGetStructRoundtrip(t *testing.T) {
	e := New()
	id := e.InsertStruct(&StructDecl{Name: "Point", Fields: []Field{
		{Name: "x", Type: types.U64},
		{Name: "y", Type: types.U64},
	}})
	got := e.GetStruct(id)
	if got == nil || got.Name != "Point" || len(got.Fields) != 2 {
		t.Fatalf("GetStruct(%d) = %+v", id, got)
	}
}

func TestIDsAreDistinctAcrossKinds(t *testing.T) {
	e := New()
	s := e.InsertStruct(&StructDecl{Name: "S"})
	en := e.InsertEnum(&EnumDecl{Name: "E"})
	if s == en {
		t.Fatalf("expected distinct ids, got %d and %d", s, en)
	}
}

func TestFieldTypesWiresIntoStorageOnlyCheck(t *testing.T) {
	d := New()
	eng := types.New()
	m := eng.Struct(types.DeclID(0), "StorageMap", types.U64, types.U64)
	eng.MarkStorageOnly(m)

	wrapperID := d.InsertStruct(&StructDecl{Name: "Wrapper", Fields: []Field{
		{Name: "inner", Type: m},
	}})
	wrapper := eng.Struct(wrapperID, "Wrapper")
	eng.SetAggregateFieldsFn(d.FieldTypes)

	if !eng.IsStorageOnly(wrapper) {
		t.Fatalf("expected Wrapper to be storage-only via its StorageMap field")
	}
}
