// Package js holds the JavaScript code tree produced by the compiler and
// the emitter that prints it.
package js

// Code is a list of top-level statements.
type Code struct {
	Statements []Statement
}

// Statement is *ExprStmt, *Return, *Var or *Function.
type Statement interface {
	stmt()
}

// Expr is a JavaScript expression.
type Expr interface {
	expr()
}

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	X Expr
}

// Return is `return X;`.
type Return struct {
	X Expr
}

// Var is `var Name = Value;`.
type Var struct {
	Name  string
	Value Expr
}

// Function is a named function declaration.
type Function struct {
	Name   string
	Params []Param
	Body   []Statement
}

// Param is a function parameter. Default is carried in the tree but never
// printed.
type Param struct {
	Name    string
	Default Expr
}

func (*ExprStmt) stmt() {}
func (*Return) stmt()   {}
func (*Var) stmt()      {}
func (*Function) stmt() {}

// Str is a string literal holding the unescaped value.
type Str struct {
	Value string
}

// Num is a numeric literal printed verbatim.
type Num struct {
	Text string
}

// Object is an object literal; property order is preserved.
type Object struct {
	Props []Prop
}

// Prop is one key: value entry of an Object.
type Prop struct {
	Key   string
	Value Expr
}

// List is an array literal.
type List struct {
	Items []Expr
}

// Name is an identifier reference.
type Name struct {
	Name string
}

// Attr is `X.Name`.
type Attr struct {
	X    Expr
	Name string
}

// Item is `X[Index]`.
type Item struct {
	X, Index Expr
}

// Call is `Func(Args...)`.
type Call struct {
	Func Expr
	Args []Expr
}

// New is `new X`.
type New struct {
	X Expr
}

// Not is `!X`.
type Not struct {
	X Expr
}

// And is `Left && Right`.
type And struct {
	Left, Right Expr
}

// Or is `Left || Right`.
type Or struct {
	Left, Right Expr
}

// Op is an arithmetic operator.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
)

// Binary is an arithmetic expression.
type Binary struct {
	Op          Op
	Left, Right Expr
}

// Comparator is a comparison operator; equality is always strict.
type Comparator int

const (
	Eq Comparator = iota
	NotEq
	Less
	LessEq
	Greater
	GreaterEq
)

// Comparison is `Left op Right`.
type Comparison struct {
	Op          Comparator
	Left, Right Expr
}

// FunctionExpr is a function literal; Name is empty when anonymous.
type FunctionExpr struct {
	Name   string
	Params []Param
	Body   []Statement
}

// AssignAttr is `X.Name = Value`.
type AssignAttr struct {
	X     Expr
	Name  string
	Value Expr
}

// Ternary is `Cond ? Then : Else`.
type Ternary struct {
	Cond, Then, Else Expr
}

func (*Str) expr()          {}
func (*Num) expr()          {}
func (*Object) expr()       {}
func (*List) expr()         {}
func (*Name) expr()         {}
func (*Attr) expr()         {}
func (*Item) expr()         {}
func (*Call) expr()         {}
func (*New) expr()          {}
func (*Not) expr()          {}
func (*And) expr()          {}
func (*Or) expr()           {}
func (*Binary) expr()       {}
func (*Comparison) expr()   {}
func (*FunctionExpr) expr() {}
func (*AssignAttr) expr()   {}
func (*Ternary) expr()      {}

// Concat folds parts into left-associated string additions. It returns
// nil when parts is empty.
func Concat(parts ...Expr) Expr {
	if len(parts) == 0 {
		return nil
	}
	acc := parts[0]
	for _, part := range parts[1:] {
		acc = &Binary{Op: Add, Left: acc, Right: part}
	}
	return acc
}

// Dot builds a chain of attribute accesses, such as Dot(x, "a", "b") for
// x.a.b.
func Dot(x Expr, names ...string) Expr {
	for _, name := range names {
		x = &Attr{X: x, Name: name}
	}
	return x
}

// Ident is shorthand for &Name{Name: name}.
func Ident(name string) Expr {
	return &Name{Name: name}
}

// String is shorthand for &Str{Value: value}.
func String(value string) Expr {
	return &Str{Value: value}
}
