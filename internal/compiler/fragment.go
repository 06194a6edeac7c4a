package compiler

import (
	"strconv"

	"github.com/grindlemire/go-marafet/internal/js"
	"github.com/grindlemire/go-marafet/internal/mft"
)

// condition folds an if chain into nested ternaries from the last branch
// back to the first. The chain ends in the else fragment, or in "" when
// there is no else.
func (c *compiler) condition(s *mft.IfStmt, key js.Expr) js.Expr {
	var result js.Expr = js.String("")
	if s.HasElse {
		result = c.fragment(s.Else, branchKey(key, len(s.Branches)))
	}
	for i := len(s.Branches) - 1; i >= 0; i-- {
		br := s.Branches[i]
		result = &js.Ternary{
			Cond: compileExpr(br.Cond),
			Then: c.fragment(br.Body, branchKey(key, i)),
			Else: result,
		}
	}
	return result
}

// branchKey suffixes key with the branch ordinal. Unkeyed nodes stay
// unkeyed.
func branchKey(key js.Expr, i int) js.Expr {
	if key == nil {
		return nil
	}
	return js.Concat(key, js.String(":"+strconv.Itoa(i)))
}

// iteration lowers a for loop to `iterable.map(function(name) {...})`. Each
// item is keyed by the parent key and the loop variable.
func (c *compiler) iteration(s *mft.ForLoop, key js.Expr) js.Expr {
	var itemKey js.Expr
	if key != nil {
		itemKey = js.Concat(key, js.String(":"), js.Ident(s.Var))
	}
	callback := &js.FunctionExpr{
		Params: []js.Param{{Name: s.Var}},
		Body:   []js.Statement{&js.Return{X: c.fragment(s.Body, itemKey)}},
	}
	return &js.Call{
		Func: js.Dot(compileExpr(s.Iterable), "map"),
		Args: []js.Expr{callback},
	}
}

// compileFormat joins the segments of an interpolated string with string
// addition. Embedded expressions are converted with String(...).
func compileFormat(segs []mft.Segment) js.Expr {
	parts := make([]js.Expr, 0, len(segs))
	for _, seg := range segs {
		if seg.Expr == nil {
			parts = append(parts, js.String(seg.Text))
			continue
		}
		parts = append(parts, &js.Call{
			Func: js.Ident("String"),
			Args: []js.Expr{compileExpr(seg.Expr)},
		})
	}
	if len(parts) == 0 {
		return js.String("")
	}
	return js.Concat(parts...)
}
