package complete

import "testing"

func TestNewProgram_BuiltinTypesInOrder(t *testing.T) {
	p := NewProgram()
	want := []TypeId{NoneTypeId, DeduceTypeId, VoidTypeId, IntTypeId, FloatTypeId, BoolTypeId, CharTypeId, ByteTypeId, TypeTypeId, NullTypeId}
	if len(p.Types) != len(want) {
		t.Fatalf("len(Types) = %d, want %d", len(p.Types), len(want))
	}
	if p.ABIName(IntTypeId) != "int" {
		t.Fatalf("ABIName(int) = %q", p.ABIName(IntTypeId))
	}
	if p.TypeSize(IntTypeId) != 8 {
		t.Fatalf("TypeSize(int) = %d, want 8", p.TypeSize(IntTypeId))
	}
}

func TestAddPointerType_Deduplicates(t *testing.T) {
	p := NewProgram()
	a := p.AddPointerType(IntTypeId)
	b := p.AddPointerType(IntTypeId)
	if a != b {
		t.Fatalf("AddPointerType not deduplicated: %v != %v", a, b)
	}
	if !p.IsPointer(a) {
		t.Fatalf("IsPointer(a) = false")
	}
}

func TestAddStructType_LayoutAndSize(t *testing.T) {
	p := NewProgram()
	id, _ := p.AddStructType("Pair", []MemberVariable{
		{Name: "a", Type: IntTypeId},
		{Name: "b", Type: CharTypeId},
	})
	typ := p.TypeWithId(id)
	if typ.Kind != KindStruct {
		t.Fatalf("Kind = %v, want KindStruct", typ.Kind)
	}
	s := p.StructFor(id)
	if len(s.Members) != 2 || s.Members[0].Offset != 0 || s.Members[1].Offset != 8 {
		t.Fatalf("unexpected member layout: %+v", s.Members)
	}
	if !s.IsTrivial() {
		t.Fatalf("Pair should be trivially destructible")
	}
}

func TestClassifyConversion(t *testing.T) {
	value := IntTypeId
	constRef := MakeTypeId(IntTypeId.Index, false, true)
	mutRef := MakeTypeId(IntTypeId.Index, true, true)

	if ClassifyConversion(value, value) != RankIdentity {
		t.Fatalf("value->value should be identity")
	}
	if ClassifyConversion(mutRef, constRef) != RankMutRefToConstRef {
		t.Fatalf("mutref->constref misranked")
	}
	if ClassifyConversion(constRef, mutRef) != RankIllegal {
		t.Fatalf("constref->mutref should be illegal")
	}
	if ClassifyConversion(value, mutRef) != RankIllegal {
		t.Fatalf("value->mutref should be illegal")
	}
	if ClassifyConversion(value, constRef) != RankValueToConstRef {
		t.Fatalf("value->constref misranked")
	}
}

func TestTemplateCache_ReserveThenStore(t *testing.T) {
	c := NewTemplateCache()
	tmpl := StructTemplateId{Index: 0}
	args := []TypeId{IntTypeId}

	if _, ok := c.LookupStruct(tmpl, args); ok {
		t.Fatalf("expected cache miss before reservation")
	}
	placeholder := TypeId{Index: 42}
	c.ReserveStruct(tmpl, args, placeholder)
	got, ok := c.LookupStruct(tmpl, args)
	if !ok || got != placeholder {
		t.Fatalf("LookupStruct after reservation = %v, %v", got, ok)
	}
}

func TestIntrinsicOperators_IntAdd(t *testing.T) {
	p := NewProgram()
	var found *IntrinsicFunction
	for i := range p.Intrinsics {
		if p.Intrinsics[i].Name == "int.+" {
			found = &p.Intrinsics[i]
		}
	}
	if found == nil {
		t.Fatalf("int.+ intrinsic not registered")
	}
	a, b := make([]byte, 8), make([]byte, 8)
	writeInt(a, 2)
	writeInt(b, 3)
	out := make([]byte, 8)
	found.Eval([][]byte{a, b}, out)
	if readInt(out) != 5 {
		t.Fatalf("int.+ (2,3) = %d, want 5", readInt(out))
	}
}
