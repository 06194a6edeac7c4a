package js

import (
	"bytes"
	"fmt"
	"strings"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 4

// Operator precedence, loosest first. Values follow the JavaScript grammar.
const (
	precLowest     = 0
	precAssign     = 2
	precOr         = 4
	precAnd        = 5
	precEquality   = 8
	precRelational = 9
	precAdditive   = 11
	precMultiply   = 12
	precUnary      = 14
	precNew        = 17
	precCall       = 18
	precPrimary    = 20
)

// Emitter prints a Code tree as JavaScript source.
type Emitter struct {
	buf    bytes.Buffer
	width  int // spaces per level
	indent int // current level
}

// NewEmitter creates an emitter indenting by width spaces per level.
// A non-positive width selects DefaultIndent.
func NewEmitter(width int) *Emitter {
	if width <= 0 {
		width = DefaultIndent
	}
	return &Emitter{width: width}
}

// Emit returns the source text for code. Output is deterministic.
func (e *Emitter) Emit(code *Code) string {
	e.buf.Reset()
	e.indent = 0
	e.statements(code.Statements)
	return e.buf.String()
}

// write writes a string without indentation.
func (e *Emitter) write(s string) {
	e.buf.WriteString(s)
}

// writef writes a formatted string with indentation.
func (e *Emitter) writef(format string, args ...any) {
	e.writeIndent()
	fmt.Fprintf(&e.buf, format, args...)
}

// writeIndent writes the current indentation.
func (e *Emitter) writeIndent() {
	for i := 0; i < e.indent*e.width; i++ {
		e.buf.WriteByte(' ')
	}
}

func (e *Emitter) statements(stmts []Statement) {
	for _, stmt := range stmts {
		e.statement(stmt)
	}
}

func (e *Emitter) statement(stmt Statement) {
	switch s := stmt.(type) {
	case *ExprStmt:
		e.writeIndent()
		switch s.X.(type) {
		case *FunctionExpr, *Object:
			// would parse as a declaration or a block
			e.write("(")
			e.expr(s.X, precLowest)
			e.write(")")
		default:
			e.expr(s.X, precLowest)
		}
		e.write(";\n")

	case *Return:
		e.writef("return ")
		e.expr(s.X, precLowest)
		e.write(";\n")

	case *Var:
		e.writef("var %s = ", s.Name)
		e.expr(s.Value, precAssign)
		e.write(";\n")

	case *Function:
		e.writef("function %s(%s) {\n", s.Name, paramList(s.Params))
		e.body(s.Body)
		e.writeIndent()
		e.write("}\n")

	default:
		panic(fmt.Sprintf("js: unknown statement %T", stmt))
	}
}

// body writes statements one level deeper.
func (e *Emitter) body(stmts []Statement) {
	e.indent++
	e.statements(stmts)
	e.indent--
}

func paramList(params []Param) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// precedence returns the binding strength of x.
func precedence(x Expr) int {
	switch x := x.(type) {
	case *AssignAttr:
		return precAssign
	case *Or:
		return precOr
	case *And:
		return precAnd
	case *Comparison:
		if x.Op == Eq || x.Op == NotEq {
			return precEquality
		}
		return precRelational
	case *Binary:
		if x.Op == Add || x.Op == Sub {
			return precAdditive
		}
		return precMultiply
	case *Not:
		return precUnary
	case *New:
		return precNew
	case *Attr, *Item, *Call:
		return precCall
	}
	return precPrimary
}

// expr writes x, parenthesized when it binds looser than min.
func (e *Emitter) expr(x Expr, min int) {
	if precedence(x) < min {
		e.write("(")
		defer e.write(")")
	}

	switch x := x.(type) {
	case *Str:
		e.write(Quote(x.Value))

	case *Num:
		e.write(x.Text)

	case *Name:
		e.write(x.Name)

	case *Object:
		e.object(x)

	case *List:
		e.list(x)

	case *Attr:
		e.expr(x.X, precCall)
		e.write(".")
		e.write(x.Name)

	case *Item:
		e.expr(x.X, precCall)
		e.write("[")
		e.expr(x.Index, precLowest)
		e.write("]")

	case *Call:
		e.expr(x.Func, precCall)
		e.write("(")
		for i, arg := range x.Args {
			if i > 0 {
				e.write(", ")
			}
			e.expr(arg, precAssign)
		}
		e.write(")")

	case *New:
		e.write("new ")
		e.expr(x.X, precNew)

	case *Not:
		e.write("!")
		e.expr(x.X, precUnary)

	case *And:
		e.expr(x.Left, precAnd)
		e.write(" && ")
		e.expr(x.Right, precAnd+1)

	case *Or:
		e.logicalOperand(x.Left, precOr)
		e.write(" || ")
		e.logicalOperand(x.Right, precOr+1)

	case *Binary:
		p := precedence(x)
		e.expr(x.Left, p)
		e.write(" " + opTokens[x.Op] + " ")
		e.expr(x.Right, p+1)

	case *Comparison:
		p := precedence(x)
		e.expr(x.Left, p)
		e.write(" " + comparatorTokens[x.Op] + " ")
		e.expr(x.Right, p+1)

	case *Ternary:
		e.write("((")
		e.expr(x.Cond, precLowest)
		e.write(")?(")
		e.expr(x.Then, precLowest)
		e.write("):(")
		e.expr(x.Else, precLowest)
		e.write("))")

	case *FunctionExpr:
		e.write("function")
		if x.Name != "" {
			e.write(" " + x.Name)
		}
		e.write("(" + paramList(x.Params) + ") {")
		if len(x.Body) == 0 {
			e.write("}")
			return
		}
		e.write("\n")
		e.body(x.Body)
		e.writeIndent()
		e.write("}")

	case *AssignAttr:
		e.expr(x.X, precCall)
		e.write("." + x.Name + " = ")
		e.expr(x.Value, precAssign)

	default:
		panic(fmt.Sprintf("js: unknown expression %T", x))
	}
}

// logicalOperand writes an operand of ||; a nested && is always wrapped.
func (e *Emitter) logicalOperand(x Expr, min int) {
	if _, ok := x.(*And); ok {
		min = precPrimary
	}
	e.expr(x, min)
}

var opTokens = map[Op]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
}

var comparatorTokens = map[Comparator]string{
	Eq:        "===",
	NotEq:     "!==",
	Less:      "<",
	LessEq:    "<=",
	Greater:   ">",
	GreaterEq: ">=",
}

// object writes {} for no properties, {key: value} for one and one
// property per line otherwise.
func (e *Emitter) object(o *Object) {
	switch len(o.Props) {
	case 0:
		e.write("{}")
	case 1:
		e.write("{" + propertyKey(o.Props[0].Key) + ": ")
		e.expr(o.Props[0].Value, precAssign)
		e.write("}")
	default:
		e.write("{\n")
		e.indent++
		for _, prop := range o.Props {
			e.writef("%s: ", propertyKey(prop.Key))
			e.expr(prop.Value, precAssign)
			e.write(",\n")
		}
		e.indent--
		e.writeIndent()
		e.write("}")
	}
}

// list follows the same layout as object.
func (e *Emitter) list(l *List) {
	switch len(l.Items) {
	case 0:
		e.write("[]")
	case 1:
		e.write("[")
		e.expr(l.Items[0], precAssign)
		e.write("]")
	default:
		e.write("[\n")
		e.indent++
		for _, item := range l.Items {
			e.writeIndent()
			e.expr(item, precAssign)
			e.write(",\n")
		}
		e.indent--
		e.writeIndent()
		e.write("]")
	}
}

// propertyKey returns key bare when it is a valid identifier and quoted
// otherwise.
func propertyKey(key string) string {
	if isIdentifier(key) {
		return key
	}
	return Quote(key)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// Quote returns s as a double-quoted JavaScript string literal.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\r':
			sb.WriteString(`\r`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '"':
			sb.WriteString(`\"`)
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\x%02x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
