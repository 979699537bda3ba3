package complete

// Expression is a fully-typed, resolved expression node: the result of
// semantic analysis on an ast.Expression. Every variant knows its own
// ResultType so the evaluator never has to re-derive a type at run time.
// This is a closed sum type; new node kinds are added here, never via an
// external implementation of the interface.
type Expression interface {
	ResultType() TypeId
	isExpression()
}

type baseExpr struct{ Type TypeId }

func (b baseExpr) ResultType() TypeId { return b.Type }
func (baseExpr) isExpression()        {}

// IntLiteral is a literal `int` constant.
type IntLiteral struct {
	baseExpr
	Value int64
}

// NewIntLiteral builds an IntLiteral.
func NewIntLiteral(v int64) *IntLiteral { return &IntLiteral{baseExpr{IntTypeId}, v} }

// FloatLiteral is a literal `float` constant.
type FloatLiteral struct {
	baseExpr
	Value float64
}

// NewFloatLiteral builds a FloatLiteral.
func NewFloatLiteral(v float64) *FloatLiteral { return &FloatLiteral{baseExpr{FloatTypeId}, v} }

// BoolLiteral is a literal `bool` constant.
type BoolLiteral struct {
	baseExpr
	Value bool
}

// NewBoolLiteral builds a BoolLiteral.
func NewBoolLiteral(v bool) *BoolLiteral { return &BoolLiteral{baseExpr{BoolTypeId}, v} }

// CharLiteral is a literal `char` constant.
type CharLiteral struct {
	baseExpr
	Value byte
}

// NewCharLiteral builds a CharLiteral.
func NewCharLiteral(v byte) *CharLiteral { return &CharLiteral{baseExpr{CharTypeId}, v} }

// TypeValue is a type used as a first-class value, e.g. the operand of
// `typeof` or a template argument passed through a runtime-shaped path.
type TypeValue struct {
	baseExpr
	Value TypeId
}

// NewTypeValue builds a TypeValue.
func NewTypeValue(v TypeId) *TypeValue { return &TypeValue{baseExpr{TypeTypeId}, v} }

// VariableLoad reads a local or global variable. IsGlobal selects
// whether Offset is relative to the current call frame's base pointer
// or an absolute address into the global data segment.
type VariableLoad struct {
	baseExpr
	Offset   int
	IsGlobal bool
}

// NewVariableLoad builds a VariableLoad.
func NewVariableLoad(t TypeId, offset int, isGlobal bool) *VariableLoad {
	return &VariableLoad{baseExpr{t}, offset, isGlobal}
}

// MemberAccess reads (or, through a mutable reference, addresses) one
// member of a struct-typed expression.
type MemberAccess struct {
	baseExpr
	Receiver     Expression
	MemberOffset int
}

// NewMemberAccess builds a MemberAccess.
func NewMemberAccess(t TypeId, receiver Expression, offset int) *MemberAccess {
	return &MemberAccess{baseExpr{t}, receiver, offset}
}

// Dereference follows a pointer-typed expression to the value it points
// to.
type Dereference struct {
	baseExpr
	Operand Expression
}

// NewDereference builds a Dereference.
func NewDereference(t TypeId, operand Expression) *Dereference {
	return &Dereference{baseExpr{t}, operand}
}

// AddressOf takes the address of an addressable (reference-typed)
// expression, producing a pointer value.
type AddressOf struct {
	baseExpr
	Operand Expression
}

// NewAddressOf builds an AddressOf.
func NewAddressOf(t TypeId, operand Expression) *AddressOf {
	return &AddressOf{baseExpr{t}, operand}
}

// Subscript indexes an array or array-pointer-typed expression.
type Subscript struct {
	baseExpr
	Receiver Expression
	Index    Expression
}

// NewSubscript builds a Subscript.
func NewSubscript(t TypeId, receiver, index Expression) *Subscript {
	return &Subscript{baseExpr{t}, receiver, index}
}

// Call invokes a resolved function (already chosen by overload
// resolution) with fully-converted argument expressions.
type Call struct {
	baseExpr
	Function  FunctionId
	Arguments []Expression
}

// NewCall builds a Call.
func NewCall(t TypeId, fn FunctionId, args []Expression) *Call {
	return &Call{baseExpr{t}, fn, args}
}

// OverloadSetValue is an overload-set-typed value: the name resolved to
// a set of candidates, deferred until it's called or otherwise used.
type OverloadSetValue struct {
	baseExpr
	Set int // index into Program.OverloadSetTypes
}

// NewOverloadSetValue builds an OverloadSetValue.
func NewOverloadSetValue(t TypeId, set int) *OverloadSetValue {
	return &OverloadSetValue{baseExpr{t}, set}
}

// IfExpr is if-as-an-expression: ResultType is the Then branch's type
// when Else is present (Else's type is not checked against it) and void
// when Else is nil.
type IfExpr struct {
	baseExpr
	Condition Expression
	Then      Expression
	Else      Expression
}

// NewIfExpr builds an IfExpr.
func NewIfExpr(t TypeId, cond, then, els Expression) *IfExpr {
	return &IfExpr{baseExpr{t}, cond, then, els}
}

// BlockExpr is block-as-an-expression: a sequence of statements whose
// ResultType is void unless the last statement is a trailing expression
// statement, in which case that expression's value is the block's value.
type BlockExpr struct {
	baseExpr
	Statements []Statement
	// HasResult reports whether the last statement's expression value
	// (rather than void) is this block's result.
	HasResult bool
	FrameSize int
}

// NewBlockExpr builds a BlockExpr.
func NewBlockExpr(t TypeId, statements []Statement, hasResult bool, frameSize int) *BlockExpr {
	return &BlockExpr{baseExpr{t}, statements, hasResult, frameSize}
}

// Construct builds a struct value member-by-member, in declaration
// order, either from a designated initializer or from synthesized
// default/copy/move-constructor logic.
type Construct struct {
	baseExpr
	Arguments []Expression
}

// NewConstruct builds a Construct.
func NewConstruct(t TypeId, args []Expression) *Construct {
	return &Construct{baseExpr{t}, args}
}

// Reinterpret implements an `as` cast that reuses the operand's bytes
// unchanged (e.g. pointer reinterpretation). int <-> float casts are not
// Reinterpret nodes: the analyser lowers them to calls of the
// "int.as_float"/"float.as_int" conversion intrinsics.
type Reinterpret struct {
	baseExpr
	Operand Expression
}

// NewReinterpret builds a Reinterpret.
func NewReinterpret(t TypeId, operand Expression) *Reinterpret {
	return &Reinterpret{baseExpr{t}, operand}
}

// Assign evaluates Value into the address Target resolves to, and is
// itself an expression whose ResultType is the (void) result of the
// assignment — afil has no chained-assignment value, so Assign is only
// ever used as an ExpressionStatement.
type Assign struct {
	baseExpr
	Target Expression
	Value  Expression
}

// NewAssign builds an Assign.
func NewAssign(target, value Expression) *Assign {
	return &Assign{baseExpr{VoidTypeId}, target, value}
}

// MutabilityConversion wraps a reference-typed expression to adjust its
// mutable/reference bits, per the conversion lattice in conversion.go.
// It never touches bytes; it only changes what further conversions are
// legal from this point.
type MutabilityConversion struct {
	baseExpr
	Operand Expression
}

// NewMutabilityConversion builds a MutabilityConversion.
func NewMutabilityConversion(t TypeId, operand Expression) *MutabilityConversion {
	return &MutabilityConversion{baseExpr{t}, operand}
}
