package compiler

import (
	"fmt"

	"github.com/grindlemire/go-marafet/internal/js"
	"github.com/grindlemire/go-marafet/internal/mft"
)

var (
	arithOps = map[mft.ArithOp]js.Op{
		mft.OpAdd: js.Add,
		mft.OpSub: js.Sub,
		mft.OpMul: js.Mul,
		mft.OpDiv: js.Div,
	}
	comparators = map[mft.Comparator]js.Comparator{
		mft.CmpEq:        js.Eq,
		mft.CmpNotEq:     js.NotEq,
		mft.CmpLess:      js.Less,
		mft.CmpLessEq:    js.LessEq,
		mft.CmpGreater:   js.Greater,
		mft.CmpGreaterEq: js.GreaterEq,
	}
)

// compileExpr maps a markup expression onto its JavaScript counterpart.
func compileExpr(x mft.Expr) js.Expr {
	switch x := x.(type) {
	case *mft.NameExpr:
		return js.Ident(x.Name)
	case *mft.StringLit:
		return js.String(x.Value)
	case *mft.NumberLit:
		return &js.Num{Text: x.Text}
	case *mft.FormatString:
		return compileFormat(x.Segments)
	case *mft.NewExpr:
		return &js.New{X: compileExpr(x.X)}
	case *mft.NotExpr:
		return &js.Not{X: compileExpr(x.X)}
	case *mft.AndExpr:
		return &js.And{Left: compileExpr(x.Left), Right: compileExpr(x.Right)}
	case *mft.OrExpr:
		return &js.Or{Left: compileExpr(x.Left), Right: compileExpr(x.Right)}
	case *mft.AttrExpr:
		return js.Dot(compileExpr(x.X), x.Name)
	case *mft.ItemExpr:
		return &js.Item{X: compileExpr(x.X), Index: compileExpr(x.Index)}
	case *mft.CallExpr:
		args := make([]js.Expr, len(x.Args))
		for i, arg := range x.Args {
			args[i] = compileExpr(arg)
		}
		return &js.Call{Func: compileExpr(x.Func), Args: args}
	case *mft.BinaryExpr:
		return &js.Binary{Op: arithOps[x.Op], Left: compileExpr(x.Left), Right: compileExpr(x.Right)}
	case *mft.CompareExpr:
		return &js.Comparison{Op: comparators[x.Op], Left: compileExpr(x.Left), Right: compileExpr(x.Right)}
	case *mft.DictLit:
		obj := &js.Object{Props: make([]js.Prop, len(x.Items))}
		for i, item := range x.Items {
			obj.Props[i] = js.Prop{Key: item.Key, Value: compileExpr(item.Value)}
		}
		return obj
	case *mft.ListLit:
		list := &js.List{Items: make([]js.Expr, len(x.Items))}
		for i, item := range x.Items {
			list.Items[i] = compileExpr(item)
		}
		return list
	default:
		panic(fmt.Sprintf("compiler: unknown expression %T", x))
	}
}
