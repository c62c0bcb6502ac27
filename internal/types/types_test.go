package types

import "testing"

func TestPrimitivesPreinterned(t *testing.T) {
	e := New()
	if e.Get(U64).Kind != KindU64 {
		t.Fatalf("U64 has kind %v", e.Get(U64).Kind)
	}
	if e.Get(Unit).Kind != KindUnit {
		t.Fatalf("Unit has kind %v", e.Get(Unit).Kind)
	}
}

func TestInterningDeduplicates(t *testing.T) {
	e := New()
	a := e.Array(U8, 4)
	b := e.Array(U8, 4)
	if a != b {
		t.Fatalf("expected equal array types to share an id, got %d and %d", a, b)
	}
	c := e.Array(U8, 5)
	if a == c {
		t.Fatalf("expected different-length arrays to have distinct ids")
	}
}

func TestTupleInterning(t *testing.T) {
	e := New()
	t1 := e.Tuple(U8, Bool)
	t2 := e.Tuple(U8, Bool)
	if t1 != t2 {
		t.Fatalf("expected equal tuples to share an id")
	}
	t3 := e.Tuple(Bool, U8)
	if t1 == t3 {
		t.Fatalf("expected differently-ordered tuples to have distinct ids")
	}
}

func TestStructInterningByDeclAndArgs(t *testing.T) {
	e := New()
	s1 := e.Struct(DeclID(1), "Option", U64)
	s2 := e.Struct(DeclID(1), "Option", U64)
	if s1 != s2 {
		t.Fatalf("expected equal instantiations to share an id")
	}
	s3 := e.Struct(DeclID(1), "Option", Bool)
	if s1 == s3 {
		t.Fatalf("expected different type arguments to produce distinct ids")
	}
}

func TestIsStorageOnlyDirect(t *testing.T) {
	e := New()
	m := e.Struct(DeclID(9), "StorageMap", U64, U64)
	e.MarkStorageOnly(m)
	if !e.IsStorageOnly(m) {
		t.Fatalf("expected StorageMap to be storage-only")
	}
	if e.IsStorageOnly(U64) {
		t.Fatalf("expected u64 to not be storage-only")
	}
}

func TestIsStorageOnlyNestedThroughFields(t *testing.T) {
	e := New()
	m := e.Struct(DeclID(9), "StorageMap", U64, U64)
	e.MarkStorageOnly(m)

	wrapper := e.Struct(DeclID(10), "Wrapper")
	e.SetAggregateFieldsFn(func(d DeclID) []TypeId {
		if d == DeclID(10) {
			return []TypeId{m}
		}
		return nil
	})
	if !e.IsStorageOnly(wrapper) {
		t.Fatalf("expected Wrapper to be storage-only via nested field")
	}
}

func TestString(t *testing.T) {
	e := New()
	arr := e.Array(U8, 32)
	if got := e.String(arr); got != "[u8; 32]" {
		t.Fatalf("String(array) = %q", got)
	}
}
