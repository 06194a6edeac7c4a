// Package compiler lowers parsed .mft markup blocks into a JavaScript code
// tree of cito.js virtual DOM builders.
package compiler

import (
	"fmt"

	"github.com/grindlemire/go-marafet/internal/js"
	"github.com/grindlemire/go-marafet/internal/mft"
)

// Settings controls lowering.
type Settings struct {
	// BlockName is the scoping class added to styled elements and the
	// prefix of every render function's root key.
	BlockName string

	// BareElements lists tag names that style rules select without a
	// class. Elements with these tags get the scoping class even when they
	// have no classes. See mft.BareElements.
	BareElements map[string]bool
}

type compiler struct {
	settings Settings
}

// Compile lowers every markup block of file into a render function.
// Other blocks are ignored. Compile panics if the tree contains a shape the
// parser never produces.
func Compile(file *mft.File, settings Settings) *js.Code {
	c := &compiler{settings: settings}
	code := &js.Code{}
	for _, blk := range file.Blocks {
		if html, ok := blk.(*mft.HTMLBlock); ok {
			code.Statements = append(code.Statements, c.block(html))
		}
	}
	return code
}

// block lowers a markup block to `function name(params) {...}`. Top-level
// let bindings become vars ahead of the returned root fragment.
func (c *compiler) block(blk *mft.HTMLBlock) *js.Function {
	fn := &js.Function{Name: blk.Name}
	for _, p := range blk.Params {
		param := js.Param{Name: p.Name}
		if p.Default != "" {
			if value, err := mft.Unescape(p.Default); err == nil {
				param.Default = js.String(value)
			}
		}
		fn.Params = append(fn.Params, param)
	}

	for _, stmt := range blk.Body {
		if let, ok := stmt.(*mft.LetBinding); ok {
			fn.Body = append(fn.Body, &js.Var{Name: let.Name, Value: compileExpr(let.Value)})
		}
	}

	key := js.String(c.settings.BlockName + ":" + blk.Name)
	fn.Body = append(fn.Body, &js.Return{X: c.fragment(blk.Body, key)})
	return fn
}

// fragment lowers the renderable statements of a body. A single statement
// is returned as is and takes the key; otherwise the result is an object
// holding a children list, led by the key when there is one. Children of a
// keyed list are keyed by their ordinal.
func (c *compiler) fragment(body []mft.Statement, key js.Expr) js.Expr {
	var nodes []mft.Statement
	for _, stmt := range body {
		if !mft.IsControl(stmt) {
			nodes = append(nodes, stmt)
		}
	}
	if len(nodes) == 1 {
		return c.node(nodes[0], key)
	}

	obj := &js.Object{}
	if key != nil {
		obj.Props = append(obj.Props, js.Prop{Key: "key", Value: key})
	}
	children := &js.List{Items: make([]js.Expr, 0, len(nodes))}
	for i, stmt := range nodes {
		children.Items = append(children.Items, c.node(stmt, branchKey(key, i)))
	}
	obj.Props = append(obj.Props, js.Prop{Key: "children", Value: children})
	return obj
}

// node lowers one renderable statement.
func (c *compiler) node(stmt mft.Statement, key js.Expr) js.Expr {
	switch s := stmt.(type) {
	case *mft.Element:
		return c.element(s, key)
	case *mft.TextContent:
		return compileFormat(s.Segments)
	case *mft.Output:
		return compileExpr(s.Value)
	case *mft.IfStmt:
		return c.condition(s, key)
	case *mft.ForLoop:
		return c.iteration(s, key)
	default:
		panic(fmt.Sprintf("compiler: %T at %s is not a renderable statement", stmt, stmt.Pos()))
	}
}
