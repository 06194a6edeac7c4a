package mft

// Statement is a node in a markup block body.
type Statement interface {
	Node
	stmt()
}

// Expr is an expression in markup code.
type Expr interface {
	Node
	expr()
}

// Element is `tag.class.other?(cond) [attr=expr, ...]` with an optional
// body of child statements.
type Element struct {
	Name       string
	Classes    []Class
	Attributes []Attribute
	Body       []Statement
	Position   Position
}

// Class is a class suffix on an element. Cond is nil for unconditional
// classes.
type Class struct {
	Name string
	Cond Expr
}

// Attribute is a name=expr pair in an element's attribute list.
type Attribute struct {
	Name  string
	Value Expr
}

// TextContent is a string literal line, possibly with {expr} interpolation.
type TextContent struct {
	Segments []Segment
	Position Position
}

// Output is `= expr`; the value is rendered as a child.
type Output struct {
	Value    Expr
	Position Position
}

// StoreBinding is `store name = expr`; the value survives re-renders.
type StoreBinding struct {
	Name     string
	Value    Expr
	Position Position
}

// LetBinding is `let name = expr`.
type LetBinding struct {
	Name     string
	Value    Expr
	Position Position
}

// LinkStmt is `link ...`, binding element events to streams.
type LinkStmt struct {
	Links    []Link
	Position Position
}

// IfStmt is an if/elif/else chain.
type IfStmt struct {
	Branches []Branch
	Else     []Statement
	HasElse  bool
	Position Position
}

// Branch is one condition and its body.
type Branch struct {
	Cond Expr
	Body []Statement
}

// ForLoop is `for name of iterable:`.
type ForLoop struct {
	Var      string
	Iterable Expr
	Body     []Statement
	Position Position
}

func (s *Element) node()      {}
func (s *TextContent) node()  {}
func (s *Output) node()       {}
func (s *StoreBinding) node() {}
func (s *LetBinding) node()   {}
func (s *LinkStmt) node()     {}
func (s *IfStmt) node()       {}
func (s *ForLoop) node()      {}

func (s *Element) stmt()      {}
func (s *TextContent) stmt()  {}
func (s *Output) stmt()       {}
func (s *StoreBinding) stmt() {}
func (s *LetBinding) stmt()   {}
func (s *LinkStmt) stmt()     {}
func (s *IfStmt) stmt()       {}
func (s *ForLoop) stmt()      {}

func (s *Element) Pos() Position      { return s.Position }
func (s *TextContent) Pos() Position  { return s.Position }
func (s *Output) Pos() Position       { return s.Position }
func (s *StoreBinding) Pos() Position { return s.Position }
func (s *LetBinding) Pos() Position   { return s.Position }
func (s *LinkStmt) Pos() Position     { return s.Position }
func (s *IfStmt) Pos() Position       { return s.Position }
func (s *ForLoop) Pos() Position      { return s.Position }

// IsControl reports whether s is a binding statement that never renders a
// node of its own.
func IsControl(s Statement) bool {
	switch s.(type) {
	case *StoreBinding, *LetBinding, *LinkStmt:
		return true
	}
	return false
}

// Link is *SingleLink or *MultiLink.
type Link interface {
	link()
}

// SingleLink is `event[filter] = dest`.
type SingleLink struct {
	Event  string
	Filter Expr // nil when absent
	Dest   LinkDest
}

// MultiLink is `{attr[filter]: alias, ...} = dest`: each entry reads
// dest.attr and binds it to the event alias (or attr).
type MultiLink struct {
	Entries []LinkEntry
	Dest    LinkDest
}

// LinkEntry is one attribute of a multi link.
type LinkEntry struct {
	Attr   string
	Filter Expr   // nil when absent
	Alias  string // empty when the event is named after Attr
}

// Event returns the event name the entry binds.
func (e LinkEntry) Event() string {
	if e.Alias != "" {
		return e.Alias
	}
	return e.Attr
}

func (*SingleLink) link() {}
func (*MultiLink) link()  {}

// LinkDest is where events go. A plain stream has only Target; a mapping
// `value -> target` also carries Value, evaluated per event as ev.
type LinkDest struct {
	Target Expr
	Value  Expr
}

// IsMapping reports whether the destination maps event values.
func (d LinkDest) IsMapping() bool {
	return d.Value != nil
}

// Segment is one piece of an interpolated string: literal text when Expr
// is nil, otherwise an embedded expression.
type Segment struct {
	Text string
	Expr Expr
}

// NameExpr is a variable reference.
type NameExpr struct {
	Name     string
	Position Position
}

// StringLit is a string without interpolation; Value is unescaped.
type StringLit struct {
	Value    string
	Position Position
}

// NumberLit is a numeric literal kept as source text.
type NumberLit struct {
	Text     string
	Position Position
}

// NewExpr is `new X`.
type NewExpr struct {
	X        Expr
	Position Position
}

// NotExpr is `not X`.
type NotExpr struct {
	X        Expr
	Position Position
}

// AndExpr is `L and R`.
type AndExpr struct {
	Left, Right Expr
	Position    Position
}

// OrExpr is `L or R`.
type OrExpr struct {
	Left, Right Expr
	Position    Position
}

// AttrExpr is `X.Name`.
type AttrExpr struct {
	X        Expr
	Name     string
	Position Position
}

// ItemExpr is `X[Index]`.
type ItemExpr struct {
	X, Index Expr
	Position Position
}

// CallExpr is `Func(Args...)`.
type CallExpr struct {
	Func     Expr
	Args     []Expr
	Position Position
}

// ArithOp is an arithmetic operator.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
)

// BinaryExpr is an arithmetic expression.
type BinaryExpr struct {
	Op          ArithOp
	Left, Right Expr
	Position    Position
}

// Comparator is a comparison operator.
type Comparator int

const (
	CmpEq Comparator = iota
	CmpNotEq
	CmpLess
	CmpLessEq
	CmpGreater
	CmpGreaterEq
)

// CompareExpr is a comparison. Chains fold to the left.
type CompareExpr struct {
	Op          Comparator
	Left, Right Expr
	Position    Position
}

// FormatString is a string literal with at least one interpolation.
type FormatString struct {
	Segments []Segment
	Position Position
}

// DictLit is `{key: value, ...}`.
type DictLit struct {
	Items    []DictItem
	Position Position
}

// DictItem is a key and its value.
type DictItem struct {
	Key   string
	Value Expr
}

// ListLit is `[a, b, ...]`.
type ListLit struct {
	Items    []Expr
	Position Position
}

func (e *NameExpr) node()     {}
func (e *StringLit) node()    {}
func (e *NumberLit) node()    {}
func (e *NewExpr) node()      {}
func (e *NotExpr) node()      {}
func (e *AndExpr) node()      {}
func (e *OrExpr) node()       {}
func (e *AttrExpr) node()     {}
func (e *ItemExpr) node()     {}
func (e *CallExpr) node()     {}
func (e *BinaryExpr) node()   {}
func (e *CompareExpr) node()  {}
func (e *FormatString) node() {}
func (e *DictLit) node()      {}
func (e *ListLit) node()      {}

func (e *NameExpr) expr()     {}
func (e *StringLit) expr()    {}
func (e *NumberLit) expr()    {}
func (e *NewExpr) expr()      {}
func (e *NotExpr) expr()      {}
func (e *AndExpr) expr()      {}
func (e *OrExpr) expr()       {}
func (e *AttrExpr) expr()     {}
func (e *ItemExpr) expr()     {}
func (e *CallExpr) expr()     {}
func (e *BinaryExpr) expr()   {}
func (e *CompareExpr) expr()  {}
func (e *FormatString) expr() {}
func (e *DictLit) expr()      {}
func (e *ListLit) expr()      {}

func (e *NameExpr) Pos() Position     { return e.Position }
func (e *StringLit) Pos() Position    { return e.Position }
func (e *NumberLit) Pos() Position    { return e.Position }
func (e *NewExpr) Pos() Position      { return e.Position }
func (e *NotExpr) Pos() Position      { return e.Position }
func (e *AndExpr) Pos() Position      { return e.Position }
func (e *OrExpr) Pos() Position       { return e.Position }
func (e *AttrExpr) Pos() Position     { return e.Position }
func (e *ItemExpr) Pos() Position     { return e.Position }
func (e *CallExpr) Pos() Position     { return e.Position }
func (e *BinaryExpr) Pos() Position   { return e.Position }
func (e *CompareExpr) Pos() Position  { return e.Position }
func (e *FormatString) Pos() Position { return e.Position }
func (e *DictLit) Pos() Position      { return e.Position }
func (e *ListLit) Pos() Position      { return e.Position }
