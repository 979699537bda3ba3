package evaluator

import "github.com/cwbudde/afil/internal/complete"

// runStatement executes one statement and reports how control left it:
// UnmetPrecondition is the program-level fault axis, error is reserved
// for evaluator-internal faults — a malformed program the analyser
// should never have produced.
func (it *interpreter) runStatement(s complete.Statement) (controlFlow, *UnmetPrecondition, error) {
	switch n := s.(type) {
	case *complete.VariableDeclaration:
		up, err := it.runVariableDeclaration(n)
		return flowFallthrough, up, err
	case *complete.ExpressionStatement:
		buf := make([]byte, it.size(n.Expr.ResultType()))
		up, err := it.eval(n.Expr, buf)
		return flowFallthrough, up, err
	case *complete.ReturnStatement:
		return it.runReturn(n)
	case *complete.IfStatement:
		return it.runIf(n)
	case *complete.BlockStatement:
		return it.runBlock(n)
	case *complete.WhileStatement:
		return it.runWhile(n)
	case *complete.ForStatement:
		return it.runFor(n)
	case *complete.BreakStatement:
		return controlFlow{kind: flowBreak}, nil, nil
	case *complete.ContinueStatement:
		return controlFlow{kind: flowContinue}, nil, nil
	default:
		return flowFallthrough, nil, nil
	}
}

// runVariableDeclaration places a new local's value at its slot. When
// the declared type is a reference (every mutable local, per
// is_mutable⇒is_reference), the slot holds a pointer to freshly
// allocated backing storage rather than the value itself, so that a
// later `&x` or pass-by-reference aliases the same cell a plain
// assignment writes through.
func (it *interpreter) runVariableDeclaration(n *complete.VariableDeclaration) (*UnmetPrecondition, error) {
	base := it.stack.basePointer
	slot := base + n.Offset
	if !n.Type.IsReference {
		return it.eval(n.Init, it.stack.memory[slot:slot+it.size(n.Type)])
	}
	valueType := n.Type.Value()
	size := it.size(valueType)
	addr := it.stack.alloc(size, it.align(valueType))
	if up, err := it.evalValue(n.Init, it.stack.memory[addr:addr+size]); up != nil || err != nil {
		return up, err
	}
	complete.WriteInt(it.stack.memory[slot:slot+complete.PointerWidth], int64(addr))
	return nil, nil
}

func (it *interpreter) runReturn(n *complete.ReturnStatement) (controlFlow, *UnmetPrecondition, error) {
	if n.Value == nil {
		return controlFlow{kind: flowReturn}, nil, nil
	}
	up, err := it.eval(n.Value, it.returnAddress)
	return controlFlow{kind: flowReturn}, up, err
}

func (it *interpreter) runIf(n *complete.IfStatement) (controlFlow, *UnmetPrecondition, error) {
	cond := make([]byte, 1)
	if up, err := it.eval(n.Condition, cond); up != nil || err != nil {
		return flowFallthrough, up, err
	}
	if complete.ReadBool(cond) {
		return it.runStatement(n.Then)
	}
	if n.Else == nil {
		return flowFallthrough, nil, nil
	}
	return it.runStatement(n.Else)
}

func (it *interpreter) runBlock(n *complete.BlockStatement) (controlFlow, *UnmetPrecondition, error) {
	entry := it.stack.topPointer
	it.stack.alloc(n.FrameSize, 1)
	defer it.stack.freeUpTo(entry)

	for _, stmt := range n.Statements {
		flow, up, err := it.runStatement(stmt)
		if up != nil || err != nil {
			return flow, up, err
		}
		if flow.kind != flowNothing {
			return flow, nil, nil
		}
	}
	return flowFallthrough, nil, nil
}

func (it *interpreter) runWhile(n *complete.WhileStatement) (controlFlow, *UnmetPrecondition, error) {
	for {
		cond := make([]byte, 1)
		if up, err := it.eval(n.Condition, cond); up != nil || err != nil {
			return flowFallthrough, up, err
		}
		if !complete.ReadBool(cond) {
			return flowFallthrough, nil, nil
		}
		flow, up, err := it.runStatement(n.Body)
		if up != nil || err != nil {
			return flow, up, err
		}
		switch flow.kind {
		case flowReturn:
			return flow, nil, nil
		case flowBreak:
			return flowFallthrough, nil, nil
		}
	}
}

func (it *interpreter) runFor(n *complete.ForStatement) (controlFlow, *UnmetPrecondition, error) {
	entry := it.stack.topPointer
	it.stack.alloc(n.FrameSize, 1)
	defer it.stack.freeUpTo(entry)

	if n.Init != nil {
		flow, up, err := it.runStatement(n.Init)
		if up != nil || err != nil {
			return flow, up, err
		}
	}
	for {
		if n.Condition != nil {
			cond := make([]byte, 1)
			if up, err := it.eval(n.Condition, cond); up != nil || err != nil {
				return flowFallthrough, up, err
			}
			if !complete.ReadBool(cond) {
				return flowFallthrough, nil, nil
			}
		}
		flow, up, err := it.runStatement(n.Body)
		if up != nil || err != nil {
			return flow, up, err
		}
		if flow.kind == flowReturn {
			return flow, nil, nil
		}
		if flow.kind == flowBreak {
			return flowFallthrough, nil, nil
		}
		if n.Step != nil {
			stepBuf := make([]byte, it.size(n.Step.ResultType()))
			if up, err := it.eval(n.Step, stepBuf); up != nil || err != nil {
				return flowFallthrough, up, err
			}
		}
	}
}
