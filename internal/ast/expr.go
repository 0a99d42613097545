package ast

import (
	"vischeck/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprField
	ExprCall
	ExprStruct
	ExprUnary
	ExprBinary
	ExprBlock
	ExprIf
	ExprMatch
	ExprReturn
	ExprIndex
	ExprTuple
)

var exprKindNames = [...]string{
	ExprIdent:  "ident",
	ExprLit:    "literal",
	ExprField:  "field",
	ExprCall:   "call",
	ExprStruct: "struct literal",
	ExprUnary:  "unary",
	ExprBinary: "binary",
	ExprBlock:  "block",
	ExprIf:     "if",
	ExprMatch:  "match",
	ExprReturn: "return",
	ExprIndex:  "index",
	ExprTuple:  "tuple",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "unknown"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprUnaryOp uint8

const (
	ExprUnaryDeref ExprUnaryOp = iota
	ExprUnaryRef
	ExprUnaryNeg
	ExprUnaryNot
)

type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryEq
	ExprBinaryNe
	ExprBinaryLt
	ExprBinaryGt
	ExprBinaryAnd
	ExprBinaryOr
	ExprBinaryAssign
)

type ExprIdentData struct {
	Name string
}

type ExprLitData struct {
	Text string
}

// ExprFieldData is `Base.Name`. When the type checker resolved the access
// as a method, the enclosing call uses this expression as its callee and
// the method origin is keyed by this expression's id.
type ExprFieldData struct {
	Base     ExprID
	Name     string
	NameSpan source.Span
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprStructField struct {
	Name  string
	Value ExprID
	Span  source.Span
}

// ExprStructData is a record literal or a struct-like variant construction.
// Base is the optional functional update source (`..base`).
type ExprStructData struct {
	Path   string
	Fields []ExprStructField
	Base   ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprBlockData struct {
	Stmts []StmtID
	Tail  ExprID
}

type ExprIfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type MatchArm struct {
	Pat   PatID
	Guard ExprID
	Body  ExprID
}

type ExprMatchData struct {
	Scrutinee ExprID
	Arms      []MatchArm
}

type ExprReturnData struct {
	Value ExprID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprTupleData struct {
	Elems []ExprID
}

type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Lits     *Arena[ExprLitData]
	Fields   *Arena[ExprFieldData]
	Calls    *Arena[ExprCallData]
	Structs  *Arena[ExprStructData]
	Unaries  *Arena[ExprUnaryData]
	Binaries *Arena[ExprBinaryData]
	Blocks   *Arena[ExprBlockData]
	Ifs      *Arena[ExprIfData]
	Matches  *Arena[ExprMatchData]
	Returns  *Arena[ExprReturnData]
	Indices  *Arena[ExprIndexData]
	Tuples   *Arena[ExprTupleData]
}

func NewExprs(capHint uint) *Exprs {
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint / 4),
		Lits:     NewArena[ExprLitData](capHint / 4),
		Fields:   NewArena[ExprFieldData](capHint / 8),
		Calls:    NewArena[ExprCallData](capHint / 8),
		Structs:  NewArena[ExprStructData](capHint / 16),
		Unaries:  NewArena[ExprUnaryData](capHint / 16),
		Binaries: NewArena[ExprBinaryData](capHint / 8),
		Blocks:   NewArena[ExprBlockData](capHint / 16),
		Ifs:      NewArena[ExprIfData](capHint / 32),
		Matches:  NewArena[ExprMatchData](capHint / 32),
		Returns:  NewArena[ExprReturnData](capHint / 32),
		Indices:  NewArena[ExprIndexData](capHint / 32),
		Tuples:   NewArena[ExprTupleData](capHint / 32),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// payload returns the payload index of id if it has the requested kind.
func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

func (e *Exprs) NewIdent(span source.Span, name string) ExprID {
	return e.new(ExprIdent, span, PayloadID(e.Idents.Allocate(ExprIdentData{Name: name})))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	if !ok {
		return nil, false
	}
	data := e.Idents.Get(p)
	return data, data != nil
}

func (e *Exprs) NewLit(span source.Span, text string) ExprID {
	return e.new(ExprLit, span, PayloadID(e.Lits.Allocate(ExprLitData{Text: text})))
}

func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	p, ok := e.payload(id, ExprLit)
	if !ok {
		return nil, false
	}
	data := e.Lits.Get(p)
	return data, data != nil
}

func (e *Exprs) NewField(span source.Span, base ExprID, name string, nameSpan source.Span) ExprID {
	return e.new(ExprField, span, PayloadID(e.Fields.Allocate(ExprFieldData{Base: base, Name: name, NameSpan: nameSpan})))
}

func (e *Exprs) Field(id ExprID) (*ExprFieldData, bool) {
	p, ok := e.payload(id, ExprField)
	if !ok {
		return nil, false
	}
	data := e.Fields.Get(p)
	return data, data != nil
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	return e.new(ExprCall, span, PayloadID(e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	data := e.Calls.Get(p)
	return data, data != nil
}

func (e *Exprs) NewStruct(span source.Span, path string, fields []ExprStructField, base ExprID) ExprID {
	return e.new(ExprStruct, span, PayloadID(e.Structs.Allocate(ExprStructData{Path: path, Fields: fields, Base: base})))
}

func (e *Exprs) Struct(id ExprID) (*ExprStructData, bool) {
	p, ok := e.payload(id, ExprStruct)
	if !ok {
		return nil, false
	}
	data := e.Structs.Get(p)
	return data, data != nil
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, PayloadID(e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	data := e.Unaries.Get(p)
	return data, data != nil
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, PayloadID(e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	data := e.Binaries.Get(p)
	return data, data != nil
}

func (e *Exprs) NewBlock(span source.Span, stmts []StmtID, tail ExprID) ExprID {
	return e.new(ExprBlock, span, PayloadID(e.Blocks.Allocate(ExprBlockData{Stmts: stmts, Tail: tail})))
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	p, ok := e.payload(id, ExprBlock)
	if !ok {
		return nil, false
	}
	data := e.Blocks.Get(p)
	return data, data != nil
}

func (e *Exprs) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprIf, span, PayloadID(e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els})))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	p, ok := e.payload(id, ExprIf)
	if !ok {
		return nil, false
	}
	data := e.Ifs.Get(p)
	return data, data != nil
}

func (e *Exprs) NewMatch(span source.Span, scrutinee ExprID, arms []MatchArm) ExprID {
	return e.new(ExprMatch, span, PayloadID(e.Matches.Allocate(ExprMatchData{Scrutinee: scrutinee, Arms: arms})))
}

func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) {
	p, ok := e.payload(id, ExprMatch)
	if !ok {
		return nil, false
	}
	data := e.Matches.Get(p)
	return data, data != nil
}

func (e *Exprs) NewReturn(span source.Span, value ExprID) ExprID {
	return e.new(ExprReturn, span, PayloadID(e.Returns.Allocate(ExprReturnData{Value: value})))
}

func (e *Exprs) Return(id ExprID) (*ExprReturnData, bool) {
	p, ok := e.payload(id, ExprReturn)
	if !ok {
		return nil, false
	}
	data := e.Returns.Get(p)
	return data, data != nil
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	return e.new(ExprIndex, span, PayloadID(e.Indices.Allocate(ExprIndexData{Target: target, Index: index})))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	p, ok := e.payload(id, ExprIndex)
	if !ok {
		return nil, false
	}
	data := e.Indices.Get(p)
	return data, data != nil
}

func (e *Exprs) NewTuple(span source.Span, elems []ExprID) ExprID {
	return e.new(ExprTuple, span, PayloadID(e.Tuples.Allocate(ExprTupleData{Elems: elems})))
}

func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	p, ok := e.payload(id, ExprTuple)
	if !ok {
		return nil, false
	}
	data := e.Tuples.Get(p)
	return data, data != nil
}
