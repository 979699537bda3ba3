package evaluator

import (
	"encoding/binary"
	"fmt"

	"github.com/cwbudde/afil/internal/complete"
)

// mode distinguishes the two execution contexts sharing one code path:
// runtime evaluation (extern calls allowed) and compile-time constant
// folding (extern calls rejected). Both walk the exact same eval/run
// machinery below; only callExternFunction consults mode.
type mode int

const (
	modeRuntime mode = iota
	modeCompileTime
)

// interpreter is the evaluator's execution context: the analysed
// program, the activation stack, and which mode it's running in. One
// type serves both runtime and compile-time execution — the two never
// actually needed different scope/template bookkeeping here: the
// semantic package's `compiles{}` probe (evaluateCompiles) never runs
// code, and its compile-time folds (evaluateConstantInt, checkConcepts)
// enter this interpreter through EvaluateConstantExpression only with
// already-analysed expressions; see DESIGN.md.
type interpreter struct {
	program *complete.Program
	stack   *stack
	mode    mode

	// returnAddress is where the current function's ReturnStatement
	// writes its value; callFunction sets it per activation, mirroring
	// how every other expression writes into a caller-supplied address.
	returnAddress []byte
}

func (it *interpreter) size(t complete.TypeId) int {
	return it.program.TypeSize(t)
}

func (it *interpreter) align(t complete.TypeId) int {
	return it.program.TypeAlignment(t)
}

// eval evaluates e directly into dest, which must be exactly
// len(dest) == it.size(e.ResultType()) bytes: the pointer bits when
// e.ResultType().IsReference, the value's own bits otherwise — every
// expression evaluates into a caller-supplied return address.
func (it *interpreter) eval(e complete.Expression, dest []byte) (*UnmetPrecondition, error) {
	switch n := e.(type) {
	case *complete.IntLiteral:
		complete.WriteInt(dest, n.Value)
		return nil, nil
	case *complete.FloatLiteral:
		complete.WriteFloat(dest, n.Value)
		return nil, nil
	case *complete.BoolLiteral:
		complete.WriteBool(dest, n.Value)
		return nil, nil
	case *complete.CharLiteral:
		dest[0] = n.Value
		return nil, nil
	case *complete.TypeValue:
		// Only `typeof`/`compiles` ever produce a TypeValue, both resolved
		// entirely during analysis; if one somehow reaches the evaluator,
		// its type's Index, as the 4-byte `type` value, is a stable enough
		// runtime representation.
		binary.LittleEndian.PutUint32(dest, n.Value.Index)
		return nil, nil
	case *complete.VariableLoad:
		base := 0
		if !n.IsGlobal {
			base = it.stack.basePointer
		}
		addr := base + n.Offset
		copy(dest, it.stack.memory[addr:addr+len(dest)])
		return nil, nil
	case *complete.MemberAccess:
		addr, up, err := it.lvalueAddress(n.Receiver)
		if up != nil || err != nil {
			return up, err
		}
		complete.WriteInt(dest, int64(addr+n.MemberOffset))
		return nil, nil
	case *complete.Subscript:
		return it.evalSubscript(n, dest)
	case *complete.Dereference:
		return it.eval(n.Operand, dest)
	case *complete.AddressOf:
		addr, up, err := it.lvalueAddress(n.Operand)
		if up != nil || err != nil {
			return up, err
		}
		complete.WriteInt(dest, int64(addr))
		return nil, nil
	case *complete.Call:
		return it.evalCall(n, dest)
	case *complete.OverloadSetValue:
		// An overload set used as a value (never called) carries no
		// runtime payload in this language; zero it.
		for i := range dest {
			dest[i] = 0
		}
		return nil, nil
	case *complete.IfExpr:
		return it.evalIfExpr(n, dest)
	case *complete.BlockExpr:
		return it.evalBlockExpr(n, dest)
	case *complete.Construct:
		return it.evalConstruct(n, dest)
	case *complete.Reinterpret:
		return it.evalReinterpret(n, dest)
	case *complete.Assign:
		return it.evalAssign(n)
	case *complete.MutabilityConversion:
		return it.evalMutabilityConversion(n, dest)
	default:
		return nil, fmt.Errorf("evaluator: unsupported expression %T", e)
	}
}

// lvalueAddress returns the absolute stack address where e's storage
// physically lives, for the subset of expressions that denote an
// addressable lvalue. Every reference-typed expression already
// evaluates to that address directly (a reference-typed result always
// writes a pointer); a plain (non-reference) VariableLoad is
// the only kind of value-typed expression that is itself directly
// addressable — everything else value-typed is a temporary with no
// stable address.
func (it *interpreter) lvalueAddress(e complete.Expression) (int, *UnmetPrecondition, error) {
	if e.ResultType().IsReference {
		buf := make([]byte, complete.PointerWidth)
		up, err := it.eval(e, buf)
		if up != nil || err != nil {
			return 0, up, err
		}
		return int(complete.ReadInt(buf)), nil, nil
	}
	vl, ok := e.(*complete.VariableLoad)
	if !ok {
		return 0, nil, fmt.Errorf("evaluator: expression of kind %T is not addressable", e)
	}
	base := 0
	if !vl.IsGlobal {
		base = it.stack.basePointer
	}
	return base + vl.Offset, nil, nil
}

// evalValue evaluates e as a value of its underlying (non-reference)
// type into dest, dereferencing through e's own reference bit if
// necessary. dest must be it.size(e.ResultType().Value()) bytes.
func (it *interpreter) evalValue(e complete.Expression, dest []byte) (*UnmetPrecondition, error) {
	if !e.ResultType().IsReference {
		return it.eval(e, dest)
	}
	addr, up, err := it.lvalueAddress(e)
	if up != nil || err != nil {
		return up, err
	}
	copy(dest, it.stack.memory[addr:addr+len(dest)])
	return nil, nil
}

func (it *interpreter) evalSubscript(n *complete.Subscript, dest []byte) (*UnmetPrecondition, error) {
	recvAddr, up, err := it.lvalueAddress(n.Receiver)
	if up != nil || err != nil {
		return up, err
	}
	idxBuf := make([]byte, 8)
	if up, err := it.eval(n.Index, idxBuf); up != nil || err != nil {
		return up, err
	}
	elemType := n.ResultType().Value()
	elemSize := it.size(elemType)
	addr := recvAddr + int(complete.ReadInt(idxBuf))*elemSize
	complete.WriteInt(dest, int64(addr))
	return nil, nil
}

func (it *interpreter) evalConstruct(n *complete.Construct, dest []byte) (*UnmetPrecondition, error) {
	s := it.program.StructFor(n.ResultType())
	for i, arg := range n.Arguments {
		m := s.Members[i]
		sz := it.size(m.Type)
		if up, err := it.evalValue(arg, dest[m.Offset:m.Offset+sz]); up != nil || err != nil {
			return up, err
		}
	}
	return nil, nil
}

func (it *interpreter) evalReinterpret(n *complete.Reinterpret, dest []byte) (*UnmetPrecondition, error) {
	buf := make([]byte, it.size(n.Operand.ResultType()))
	if up, err := it.eval(n.Operand, buf); up != nil || err != nil {
		return up, err
	}
	copy(dest, buf)
	return nil, nil
}

func (it *interpreter) evalAssign(n *complete.Assign) (*UnmetPrecondition, error) {
	addr, up, err := it.lvalueAddress(n.Target)
	if up != nil || err != nil {
		return up, err
	}
	size := it.size(n.Target.ResultType().Value())
	return it.evalValue(n.Value, it.stack.memory[addr:addr+size])
}

func (it *interpreter) evalMutabilityConversion(n *complete.MutabilityConversion, dest []byte) (*UnmetPrecondition, error) {
	wrapRef := n.ResultType().IsReference
	opRef := n.Operand.ResultType().IsReference
	switch {
	case wrapRef && opRef:
		// Only the mutable/const bits differ; same pointer bytes.
		return it.eval(n.Operand, dest)
	case !wrapRef:
		// Binding a reference (or a value) to a by-value parameter:
		// dereference through to the underlying value.
		return it.evalValue(n.Operand, dest)
	default:
		// Binding a value to a reference parameter materialises a
		// temporary that lives for the rest of the current frame.
		valueType := n.ResultType().Value()
		size := it.size(valueType)
		addr := it.stack.alloc(size, it.align(valueType))
		if up, err := it.eval(n.Operand, it.stack.memory[addr:addr+size]); up != nil || err != nil {
			return up, err
		}
		complete.WriteInt(dest, int64(addr))
		return nil, nil
	}
}

func (it *interpreter) evalIfExpr(n *complete.IfExpr, dest []byte) (*UnmetPrecondition, error) {
	cond := make([]byte, 1)
	if up, err := it.eval(n.Condition, cond); up != nil || err != nil {
		return up, err
	}
	if complete.ReadBool(cond) {
		return it.eval(n.Then, dest)
	}
	if n.Else == nil {
		return nil, nil
	}
	return it.eval(n.Else, dest)
}

func (it *interpreter) evalBlockExpr(n *complete.BlockExpr, dest []byte) (*UnmetPrecondition, error) {
	entry := it.stack.topPointer
	it.stack.alloc(n.FrameSize, 1)
	defer it.stack.freeUpTo(entry)

	for i, stmt := range n.Statements {
		last := i == len(n.Statements)-1
		if last && n.HasResult {
			es := stmt.(*complete.ExpressionStatement)
			return it.eval(es.Expr, dest)
		}
		flow, up, err := it.runStatement(stmt)
		if up != nil || err != nil {
			return up, err
		}
		if flow.kind != flowNothing {
			// A block used as an expression never completes normally if a
			// non-trailing statement diverts control flow; the diverted
			// flow is the caller's concern (run_statement surfaces it),
			// this path exists only for defensive completeness.
			break
		}
	}
	return nil, nil
}
