package compiler

import (
	"fmt"

	"github.com/grindlemire/go-marafet/internal/js"
	"github.com/grindlemire/go-marafet/internal/mft"
)

// WrapAMD wraps code in a define call. Imports of file become module
// dependencies and every markup block is exported by name:
//
//	define("name", ["require", "exports", deps...], function(require, exports, args...) {
//	    ...
//	    exports.view = view;
//	});
//
// The module name is left out when name is empty.
func WrapAMD(code *js.Code, file *mft.File, name string) *js.Code {
	deps := []js.Expr{js.String("require"), js.String("exports")}
	params := []js.Param{{Name: "require"}, {Name: "exports"}}

	var body []js.Statement
	modules := make(map[string]string) // source -> parameter

	for _, blk := range file.Blocks {
		switch b := blk.(type) {
		case *mft.ImportModule:
			deps = append(deps, js.String(b.Source))
			params = append(params, js.Param{Name: b.Name})

		case *mft.ImportVars:
			param, ok := modules[b.Source]
			if !ok {
				param = fmt.Sprintf("_mod_%d", len(modules))
				modules[b.Source] = param
				deps = append(deps, js.String(b.Source))
				params = append(params, js.Param{Name: param})
			}
			for _, n := range b.Names {
				body = append(body, &js.Var{Name: n.LocalName(), Value: js.Dot(js.Ident(param), n.Name)})
			}
		}
	}

	body = append(body, code.Statements...)
	for _, blk := range file.Blocks {
		if html, ok := blk.(*mft.HTMLBlock); ok {
			body = append(body, &js.ExprStmt{X: &js.AssignAttr{
				X:     js.Ident("exports"),
				Name:  html.Name,
				Value: js.Ident(html.Name),
			}})
		}
	}

	var args []js.Expr
	if name != "" {
		args = append(args, js.String(name))
	}
	args = append(args, &js.List{Items: deps}, &js.FunctionExpr{Params: params, Body: body})

	return &js.Code{Statements: []js.Statement{
		&js.ExprStmt{X: &js.Call{Func: js.Ident("define"), Args: args}},
	}}
}

// AddCSSLoader prepends statements that append css to the document head
// in a <style> element when the module runs.
func AddCSSLoader(code *js.Code, css string) *js.Code {
	style := js.Ident("_style")
	document := js.Ident("document")
	prologue := []js.Statement{
		&js.Var{Name: "_style", Value: &js.Call{
			Func: js.Dot(document, "createElement"),
			Args: []js.Expr{js.String("style")},
		}},
		&js.ExprStmt{X: &js.Call{
			Func: js.Dot(style, "appendChild"),
			Args: []js.Expr{&js.Call{
				Func: js.Dot(document, "createTextNode"),
				Args: []js.Expr{js.String(css)},
			}},
		}},
		&js.ExprStmt{X: &js.Call{
			Func: js.Dot(document, "head", "appendChild"),
			Args: []js.Expr{style},
		}},
	}
	return &js.Code{Statements: append(prologue, code.Statements...)}
}
