package complete

// This file registers the IntrinsicFunction entries for every built-in
// arithmetic/comparison/logical operator over int/float/bool/char,
// each as a tiny IntrinsicEval working directly on
// byte slices so the evaluator never special-cases operators: a binary
// expression over built-in types analyses to an ordinary Call of one of
// these, exactly like a user function call.

func readInt(b []byte) int64         { return ReadInt(b) }
func writeInt(b []byte, v int64)     { WriteInt(b, v) }
func readFloat(b []byte) float64     { return ReadFloat(b) }
func writeFloat(b []byte, v float64) { WriteFloat(b, v) }
func readBool(b []byte) bool         { return ReadBool(b) }
func writeBool(b []byte, v bool)     { WriteBool(b, v) }

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// registerIntrinsicOperators populates both p.Intrinsics (keyed by the
// diagnostic "type.spelling" name) and p.GlobalScope's overload sets
// (keyed by bare spelling, e.g. "+"): a binary expression over built-in
// types resolves its operator exactly the same way a call to a
// user-declared `operator` function does, through the overload set
// named by the operator's spelling. Per-type variants of the same
// spelling (int.+, float.+, ...) become distinct members of one set;
// overload resolution (see semantic.resolveOverload) then picks the
// member whose parameter types accept the operands. Unary and binary
// forms of the same spelling (unary "-" vs binary "-") coexist in the
// same set since resolution filters candidates by parameter count
// before ranking them.
func registerIntrinsicOperators(p *Program) {
	operator := func(spelling, diagnosticName string, paramTypes []TypeId, returnType TypeId, eval IntrinsicEval) {
		id := p.AddIntrinsic(IntrinsicFunction{
			Name:           diagnosticName,
			ParameterTypes: paramTypes,
			ReturnType:     returnType,
			Eval:           eval,
		})
		set := p.GlobalScope.AddOverload(spelling)
		set.Functions = append(set.Functions, id)
	}
	bin := func(spelling, typeName string, paramType, returnType TypeId, eval IntrinsicEval) {
		operator(spelling, typeName+"."+spelling, []TypeId{paramType, paramType}, returnType, eval)
	}
	un := func(spelling, diagnosticName string, paramType, returnType TypeId, eval IntrinsicEval) {
		operator(spelling, diagnosticName, []TypeId{paramType}, returnType, eval)
	}

	bin("+", "int", IntTypeId, IntTypeId, func(a [][]byte, out []byte) { writeInt(out, readInt(a[0])+readInt(a[1])) })
	bin("-", "int", IntTypeId, IntTypeId, func(a [][]byte, out []byte) { writeInt(out, readInt(a[0])-readInt(a[1])) })
	bin("*", "int", IntTypeId, IntTypeId, func(a [][]byte, out []byte) { writeInt(out, readInt(a[0])*readInt(a[1])) })
	bin("/", "int", IntTypeId, IntTypeId, func(a [][]byte, out []byte) { writeInt(out, readInt(a[0])/readInt(a[1])) })
	bin("%", "int", IntTypeId, IntTypeId, func(a [][]byte, out []byte) { writeInt(out, readInt(a[0])%readInt(a[1])) })
	bin("==", "int", IntTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readInt(a[0]) == readInt(a[1])) })
	bin("!=", "int", IntTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readInt(a[0]) != readInt(a[1])) })
	bin("<", "int", IntTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readInt(a[0]) < readInt(a[1])) })
	bin("<=", "int", IntTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readInt(a[0]) <= readInt(a[1])) })
	bin(">", "int", IntTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readInt(a[0]) > readInt(a[1])) })
	bin(">=", "int", IntTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readInt(a[0]) >= readInt(a[1])) })
	bin("<=>", "int", IntTypeId, IntTypeId, func(a [][]byte, out []byte) {
		x, y := readInt(a[0]), readInt(a[1])
		switch {
		case x < y:
			writeInt(out, -1)
		case x > y:
			writeInt(out, 1)
		default:
			writeInt(out, 0)
		}
	})
	un("-", "int.-u", IntTypeId, IntTypeId, func(a [][]byte, out []byte) { writeInt(out, -readInt(a[0])) })

	bin("+", "float", FloatTypeId, FloatTypeId, func(a [][]byte, out []byte) { writeFloat(out, readFloat(a[0])+readFloat(a[1])) })
	bin("-", "float", FloatTypeId, FloatTypeId, func(a [][]byte, out []byte) { writeFloat(out, readFloat(a[0])-readFloat(a[1])) })
	bin("*", "float", FloatTypeId, FloatTypeId, func(a [][]byte, out []byte) { writeFloat(out, readFloat(a[0])*readFloat(a[1])) })
	bin("/", "float", FloatTypeId, FloatTypeId, func(a [][]byte, out []byte) { writeFloat(out, readFloat(a[0])/readFloat(a[1])) })
	bin("==", "float", FloatTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readFloat(a[0]) == readFloat(a[1])) })
	bin("!=", "float", FloatTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readFloat(a[0]) != readFloat(a[1])) })
	bin("<", "float", FloatTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readFloat(a[0]) < readFloat(a[1])) })
	bin("<=", "float", FloatTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readFloat(a[0]) <= readFloat(a[1])) })
	bin(">", "float", FloatTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readFloat(a[0]) > readFloat(a[1])) })
	bin(">=", "float", FloatTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readFloat(a[0]) >= readFloat(a[1])) })
	un("-", "float.-u", FloatTypeId, FloatTypeId, func(a [][]byte, out []byte) { writeFloat(out, -readFloat(a[0])) })

	bin("&&", "bool", BoolTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readBool(a[0]) && readBool(a[1])) })
	bin("||", "bool", BoolTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readBool(a[0]) || readBool(a[1])) })
	bin("==", "bool", BoolTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readBool(a[0]) == readBool(a[1])) })
	bin("!=", "bool", BoolTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, readBool(a[0]) != readBool(a[1])) })
	un("!", "bool.!", BoolTypeId, BoolTypeId, func(a [][]byte, out []byte) { writeBool(out, !readBool(a[0])) })

	bin("==", "char", CharTypeId, BoolTypeId, func(a [][]byte, out []byte) { out[0] = boolByte(a[0][0] == a[1][0]) })
	bin("!=", "char", CharTypeId, BoolTypeId, func(a [][]byte, out []byte) { out[0] = boolByte(a[0][0] != a[1][0]) })
	bin("<", "char", CharTypeId, BoolTypeId, func(a [][]byte, out []byte) { out[0] = boolByte(a[0][0] < a[1][0]) })
	bin("<=", "char", CharTypeId, BoolTypeId, func(a [][]byte, out []byte) { out[0] = boolByte(a[0][0] <= a[1][0]) })
	bin(">", "char", CharTypeId, BoolTypeId, func(a [][]byte, out []byte) { out[0] = boolByte(a[0][0] > a[1][0]) })
	bin(">=", "char", CharTypeId, BoolTypeId, func(a [][]byte, out []byte) { out[0] = boolByte(a[0][0] >= a[1][0]) })

	// Conversion builtins are named functions, not operators: they keep
	// their own diagnostic name as their overload-set spelling since
	// there is no infix/prefix syntax for them.
	convert := func(name string, paramType, returnType TypeId, eval IntrinsicEval) {
		operator(name, name, []TypeId{paramType}, returnType, eval)
	}
	convert("int.as_float", IntTypeId, FloatTypeId, func(a [][]byte, out []byte) { writeFloat(out, float64(readInt(a[0]))) })
	convert("float.as_int", FloatTypeId, IntTypeId, func(a [][]byte, out []byte) { writeInt(out, int64(readFloat(a[0]))) })

	// IntrinsicFunctionTemplates: built-ins generated per bound type
	// argument rather than registered once. `destroy<T>` takes a mutable
	// reference to a T; its Eval is empty, so a call runs no destructor
	// for any T.
	p.IntrinsicTemplates = append(p.IntrinsicTemplates, IntrinsicFunctionTemplate{
		Name: "destroy",
		Generator: func(prog *Program, arg TypeId) IntrinsicFunction {
			target := arg
			return IntrinsicFunction{
				Name:           "destroy<" + prog.ABIName(arg) + ">",
				ParameterTypes: []TypeId{target.WithReference(true, true)},
				ReturnType:     VoidTypeId,
				// The evaluator runs this Eval like any other
				// intrinsic's, with no special handling for destroy<T>;
				// it does nothing.
				Eval: func(args [][]byte, out []byte) {},
			}
		},
	})
}
