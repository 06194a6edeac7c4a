package mft

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

// exprString renders an expression as a prefix form for comparisons.
func exprString(x Expr) string {
	switch x := x.(type) {
	case nil:
		return "<nil>"
	case *NameExpr:
		return x.Name
	case *StringLit:
		return strconv.Quote(x.Value)
	case *NumberLit:
		return x.Text
	case *NewExpr:
		return "(new " + exprString(x.X) + ")"
	case *NotExpr:
		return "(not " + exprString(x.X) + ")"
	case *AndExpr:
		return "(and " + exprString(x.Left) + " " + exprString(x.Right) + ")"
	case *OrExpr:
		return "(or " + exprString(x.Left) + " " + exprString(x.Right) + ")"
	case *AttrExpr:
		return "(. " + exprString(x.X) + " " + x.Name + ")"
	case *ItemExpr:
		return "([] " + exprString(x.X) + " " + exprString(x.Index) + ")"
	case *CallExpr:
		parts := []string{"call", exprString(x.Func)}
		for _, arg := range x.Args {
			parts = append(parts, exprString(arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *BinaryExpr:
		return "(" + string("+-*/"[x.Op]) + " " + exprString(x.Left) + " " + exprString(x.Right) + ")"
	case *CompareExpr:
		ops := []string{"==", "!=", "<", "<=", ">", ">="}
		return "(" + ops[x.Op] + " " + exprString(x.Left) + " " + exprString(x.Right) + ")"
	case *FormatString:
		return "(fmt " + segmentsString(x.Segments) + ")"
	case *DictLit:
		var items []string
		for _, item := range x.Items {
			items = append(items, strconv.Quote(item.Key)+": "+exprString(item.Value))
		}
		return "{" + strings.Join(items, ", ") + "}"
	case *ListLit:
		var items []string
		for _, item := range x.Items {
			items = append(items, exprString(item))
		}
		return "[" + strings.Join(items, " ") + "]"
	}
	return fmt.Sprintf("<%T>", x)
}

func segmentsString(segs []Segment) string {
	var parts []string
	for _, seg := range segs {
		if seg.Expr != nil {
			parts = append(parts, exprString(seg.Expr))
		} else {
			parts = append(parts, strconv.Quote(seg.Text))
		}
	}
	return strings.Join(parts, " ")
}

func parseOK(t *testing.T, input string) *File {
	t.Helper()
	file, err := Parse("test.mft", input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return file
}

func TestParser_CSSBlock(t *testing.T) {
	type tc struct {
		input      string
		wantParams []string
		wantRules  []*Rule
	}

	tests := map[string]tc{
		"class rule with trailing colon": {
			input: "css:\n  .foo:\n    color: red\n",
			wantRules: []*Rule{{
				Selectors:  []Selector{{Classes: []string{"foo"}}},
				Properties: []Property{{Name: "color", Value: "red"}},
			}},
		},
		"element, state and selector list": {
			input: "css:\n  a:hover, p\n    text-decoration: none\n",
			wantRules: []*Rule{{
				Selectors: []Selector{
					{Element: "a", State: "hover"},
					{Element: "p"},
				},
				Properties: []Property{{Name: "text-decoration", Value: "none"}},
			}},
		},
		"dotted word and conditional class": {
			input: "css:\n  button.big.red, .x?(active):\n    margin: 0\n",
			wantRules: []*Rule{{
				Selectors: []Selector{
					{Element: "button", Classes: []string{"big", "red"}},
					{Classes: []string{"x"}},
				},
				Properties: []Property{{Name: "margin", Value: "0"}},
			}},
		},
		"property value shapes": {
			input: "css:\n  p\n    font: 12px/1.5 \"Open Sans\", sans-serif\n" +
				"    color: rgba(0, 0, 0, 0.5)\n    width: calc(100% - 2px)\n    margin:\n",
			wantRules: []*Rule{{
				Selectors: []Selector{{Element: "p"}},
				Properties: []Property{
					{Name: "font", Value: `12px/1.5 "Open Sans", sans-serif`},
					{Name: "color", Value: "rgba(0, 0, 0, 0.5)"},
					{Name: "width", Value: "calc(100% - 2px)"},
					{Name: "margin", Value: ""},
				},
			}},
		},
		"params with defaults": {
			input:      "css(color=\"red\", size):\n  p\n    color: color\n",
			wantParams: []string{`color="red"`, "size"},
			wantRules: []*Rule{{
				Selectors:  []Selector{{Element: "p"}},
				Properties: []Property{{Name: "color", Value: "color"}},
			}},
		},
		"rule without properties": {
			input:     "css:\n  .empty\n",
			wantRules: []*Rule{{Selectors: []Selector{{Classes: []string{"empty"}}}}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			file := parseOK(t, tt.input)
			if len(file.Blocks) != 1 {
				t.Fatalf("got %d blocks, want 1", len(file.Blocks))
			}
			css, ok := file.Blocks[0].(*CSSBlock)
			if !ok {
				t.Fatalf("block = %T, want *CSSBlock", file.Blocks[0])
			}

			var params []string
			for _, p := range css.Params {
				if p.Default != "" {
					params = append(params, p.Name+"="+p.Default)
				} else {
					params = append(params, p.Name)
				}
			}
			if !reflect.DeepEqual(params, tt.wantParams) {
				t.Errorf("params = %v, want %v", params, tt.wantParams)
			}

			if len(css.Rules) != len(tt.wantRules) {
				t.Fatalf("got %d rules, want %d", len(css.Rules), len(tt.wantRules))
			}
			for i, want := range tt.wantRules {
				got := css.Rules[i]
				if !reflect.DeepEqual(got.Selectors, want.Selectors) {
					t.Errorf("rule %d: Selectors = %+v, want %+v", i, got.Selectors, want.Selectors)
				}
				if !reflect.DeepEqual(got.Properties, want.Properties) {
					t.Errorf("rule %d: Properties = %+v, want %+v", i, got.Properties, want.Properties)
				}
			}
		})
	}
}

func TestParser_HTMLBlockHeader(t *testing.T) {
	type tc struct {
		input      string
		wantName   string
		wantParams []string
		wantEvents []string
	}

	tests := map[string]tc{
		"bare name": {
			input:    "hello:\n  div\n",
			wantName: "hello",
		},
		"html keyword": {
			input:    "html hello:\n  div\n",
			wantName: "hello",
		},
		"params and events": {
			input:      "html item(title, kind='plain') events click, close:\n  div\n",
			wantName:   "item",
			wantParams: []string{"title", "kind='plain'"},
			wantEvents: []string{"click", "close"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			file := parseOK(t, tt.input)
			blk, ok := file.Blocks[0].(*HTMLBlock)
			if !ok {
				t.Fatalf("block = %T, want *HTMLBlock", file.Blocks[0])
			}
			if blk.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", blk.Name, tt.wantName)
			}
			var params []string
			for _, p := range blk.Params {
				if p.Default != "" {
					params = append(params, p.Name+"="+p.Default)
				} else {
					params = append(params, p.Name)
				}
			}
			if !reflect.DeepEqual(params, tt.wantParams) {
				t.Errorf("Params = %v, want %v", params, tt.wantParams)
			}
			if !reflect.DeepEqual(blk.Events, tt.wantEvents) {
				t.Errorf("Events = %v, want %v", blk.Events, tt.wantEvents)
			}
		})
	}
}

func TestParser_Element(t *testing.T) {
	input := `view:
  a.link.btn-primary.active?(selected)[href=url, title="x"] "Go"
  .box
    p
      "Hi {name}!"
    = content
`
	file := parseOK(t, input)
	blk := file.Blocks[0].(*HTMLBlock)
	if len(blk.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(blk.Body))
	}

	link, ok := blk.Body[0].(*Element)
	if !ok {
		t.Fatalf("statement 0 = %T, want *Element", blk.Body[0])
	}
	if link.Name != "a" {
		t.Errorf("Name = %q, want %q", link.Name, "a")
	}
	var classes []string
	for _, cls := range link.Classes {
		classes = append(classes, cls.Name+"?"+exprString(cls.Cond))
	}
	wantClasses := []string{"link?<nil>", "btn-primary?<nil>", "active?selected"}
	if !reflect.DeepEqual(classes, wantClasses) {
		t.Errorf("Classes = %v, want %v", classes, wantClasses)
	}
	var attrs []string
	for _, attr := range link.Attributes {
		attrs = append(attrs, attr.Name+"="+exprString(attr.Value))
	}
	wantAttrs := []string{"href=url", `title="x"`}
	if !reflect.DeepEqual(attrs, wantAttrs) {
		t.Errorf("Attributes = %v, want %v", attrs, wantAttrs)
	}
	if len(link.Body) != 1 {
		t.Fatalf("link body has %d statements, want 1", len(link.Body))
	}
	if text, ok := link.Body[0].(*TextContent); !ok || segmentsString(text.Segments) != `"Go"` {
		t.Errorf("link body = %#v, want text Go", link.Body[0])
	}

	box, ok := blk.Body[1].(*Element)
	if !ok {
		t.Fatalf("statement 1 = %T, want *Element", blk.Body[1])
	}
	if box.Name != "div" {
		t.Errorf("class-only element Name = %q, want div", box.Name)
	}
	if len(box.Body) != 2 {
		t.Fatalf("box body has %d statements, want 2", len(box.Body))
	}
	p := box.Body[0].(*Element)
	text := p.Body[0].(*TextContent)
	if got := segmentsString(text.Segments); got != `"Hi " name "!"` {
		t.Errorf("text segments = %s", got)
	}
	out, ok := box.Body[1].(*Output)
	if !ok || exprString(out.Value) != "content" {
		t.Errorf("statement = %#v, want output of content", box.Body[1])
	}
}

func TestParser_ElementNames(t *testing.T) {
	type tc struct {
		input     string
		wantName  string
		wantClass []string
		wantAttrs []string
	}

	tests := map[string]tc{
		"keyword classes": {
			input:     "view:\n  a.link.new.events \"x\"\n",
			wantName:  "a",
			wantClass: []string{"link", "new", "events"},
		},
		"keyword class without tag": {
			input:     "view:\n  .key\n",
			wantName:  "div",
			wantClass: []string{"key"},
		},
		"keyword and dashed attributes": {
			input:     "view:\n  label[for=x, data-id=y]\n",
			wantName:  "label",
			wantAttrs: []string{"for", "data-id"},
		},
		"digits inside class names": {
			input:     "view:\n  div.btn-2x.col-12.btn-primary\n",
			wantName:  "div",
			wantClass: []string{"btn-2x", "col-12", "btn-primary"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			file := parseOK(t, tt.input)
			elem, ok := file.Blocks[0].(*HTMLBlock).Body[0].(*Element)
			if !ok {
				t.Fatalf("statement = %T, want *Element", file.Blocks[0].(*HTMLBlock).Body[0])
			}
			if elem.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", elem.Name, tt.wantName)
			}
			var classes []string
			for _, cls := range elem.Classes {
				classes = append(classes, cls.Name)
			}
			if !reflect.DeepEqual(classes, tt.wantClass) {
				t.Errorf("Classes = %v, want %v", classes, tt.wantClass)
			}
			var attrs []string
			for _, attr := range elem.Attributes {
				attrs = append(attrs, attr.Name)
			}
			if !reflect.DeepEqual(attrs, tt.wantAttrs) {
				t.Errorf("Attributes = %v, want %v", attrs, tt.wantAttrs)
			}
		})
	}
}

func TestParser_Control(t *testing.T) {
	input := `list(items):
  let count = len(items)
  ul
    store state = new State()
    link click = state.toggle, {value[ok]: input} = v -> state.text
    if count > 0:
      "some"
    elif count == 0:
      "none"
    else:
      "never"
    for item of items:
      li "{item.name}"
`
	file := parseOK(t, input)
	blk := file.Blocks[0].(*HTMLBlock)
	if len(blk.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(blk.Body))
	}

	let, ok := blk.Body[0].(*LetBinding)
	if !ok || let.Name != "count" || exprString(let.Value) != "(call len items)" {
		t.Errorf("statement 0 = %#v, want let count", blk.Body[0])
	}

	ul := blk.Body[1].(*Element)
	if len(ul.Body) != 4 {
		t.Fatalf("ul has %d statements, want 4", len(ul.Body))
	}

	store, ok := ul.Body[0].(*StoreBinding)
	if !ok || store.Name != "state" || exprString(store.Value) != "(new (call State))" {
		t.Errorf("store = %#v", ul.Body[0])
	}

	link, ok := ul.Body[1].(*LinkStmt)
	if !ok || len(link.Links) != 2 {
		t.Fatalf("link = %#v, want two links", ul.Body[1])
	}
	single := link.Links[0].(*SingleLink)
	if single.Event != "click" || single.Filter != nil || exprString(single.Dest.Target) != "(. state toggle)" {
		t.Errorf("single link = %+v", single)
	}
	multi := link.Links[1].(*MultiLink)
	if len(multi.Entries) != 1 {
		t.Fatalf("multi link has %d entries, want 1", len(multi.Entries))
	}
	entry := multi.Entries[0]
	if entry.Attr != "value" || entry.Event() != "input" || exprString(entry.Filter) != "ok" {
		t.Errorf("entry = %+v", entry)
	}
	if !multi.Dest.IsMapping() || exprString(multi.Dest.Value) != "v" || exprString(multi.Dest.Target) != "(. state text)" {
		t.Errorf("dest = %+v", multi.Dest)
	}

	cond, ok := ul.Body[2].(*IfStmt)
	if !ok {
		t.Fatalf("statement = %T, want *IfStmt", ul.Body[2])
	}
	if len(cond.Branches) != 2 || !cond.HasElse || len(cond.Else) != 1 {
		t.Errorf("if = %+v, want two branches and else", cond)
	}
	if got := exprString(cond.Branches[1].Cond); got != "(== count 0)" {
		t.Errorf("elif cond = %s", got)
	}

	loop, ok := ul.Body[3].(*ForLoop)
	if !ok || loop.Var != "item" || exprString(loop.Iterable) != "items" || len(loop.Body) != 1 {
		t.Errorf("for = %#v", ul.Body[3])
	}
}

func TestParser_Imports(t *testing.T) {
	input := `import dom from "lib/dom"
import {render, stream as s,} from 'lib/util'
`
	file := parseOK(t, input)
	if len(file.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(file.Blocks))
	}
	mod, ok := file.Blocks[0].(*ImportModule)
	if !ok || mod.Name != "dom" || mod.Source != "lib/dom" {
		t.Errorf("block 0 = %#v", file.Blocks[0])
	}
	vars, ok := file.Blocks[1].(*ImportVars)
	if !ok || vars.Source != "lib/util" {
		t.Fatalf("block 1 = %#v", file.Blocks[1])
	}
	want := []ImportName{{Name: "render"}, {Name: "stream", Alias: "s"}}
	if !reflect.DeepEqual(vars.Names, want) {
		t.Errorf("Names = %+v, want %+v", vars.Names, want)
	}
	if vars.Names[1].LocalName() != "s" {
		t.Errorf("LocalName() = %q, want s", vars.Names[1].LocalName())
	}
}

func TestParser_MixedBlocks(t *testing.T) {
	input := `import {x} from "x"

css:
  .a
    color: red

html main:
  .a "A"

second:
  p
`
	file := parseOK(t, input)
	var kinds []string
	for _, blk := range file.Blocks {
		kinds = append(kinds, fmt.Sprintf("%T", blk))
	}
	want := []string{"*mft.ImportVars", "*mft.CSSBlock", "*mft.HTMLBlock", "*mft.HTMLBlock"}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("blocks = %v, want %v", kinds, want)
	}
}

func TestParser_Errors(t *testing.T) {
	type tc struct {
		input   string
		wantErr string
	}

	tests := map[string]tc{
		"store outside element": {
			input:   "a:\n  store x = 1\n",
			wantErr: "test.mft:2:3: error: store is only allowed inside an element",
		},
		"link outside element": {
			input:   "a:\n  link click = s\n",
			wantErr: "link is only allowed inside an element",
		},
		"let inside if": {
			input:   "a:\n  if x:\n    let y = 1\n",
			wantErr: "let is not allowed inside if or for",
		},
		"missing header colon": {
			input:   "a\n  div\n",
			wantErr: "expected colon, got new line",
		},
		"unexpected top level": {
			input:   "\"text\"\n",
			wantErr: "expected css, html or import block, got quoted string \"text\"",
		},
		"bad statement": {
			input:   "a:\n  ,\n",
			wantErr: "expected statement, got comma",
		},
		"paren after element": {
			input:   "a:\n  div(\n",
			wantErr: "expected text or new line after element",
		},
		"unmatched paren": {
			input:   "a:\n  div) \"x\"\n",
			wantErr: "test.mft:2:6: error: unmatched closing bracket ')'",
		},
		"bad property": {
			input:   "css:\n  p\n    \"x\": y\n",
			wantErr: "expected property name, got quoted string",
		},
		"empty selector": {
			input:   "css:\n  :hover\n",
			wantErr: "expected selector, got colon",
		},
		"import without source": {
			input:   "import x\n",
			wantErr: "expected from, got new line",
		},
		"spaced dash in class": {
			input:   "a:\n  div.btn - primary\n",
			wantErr: "expected text or new line after element, got dash (class and attribute names cannot contain spaces)",
		},
		"tab indentation": {
			input:   "a:\n\tdiv\n",
			wantErr: "tab character in indentation (indent with spaces)",
		},
		"bang as class name": {
			input:   "a:\n  div.!\n",
			wantErr: "expected name, got not",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			file, err := Parse("test.mft", tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if file != nil {
				t.Error("expected nil file on error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParser_FirstErrorWins(t *testing.T) {
	p := NewParser(NewLexer("test.mft", "a:\n  ,\n  ,\nb\n"))
	if _, err := p.ParseFile(); err == nil {
		t.Fatal("expected error")
	}
	if p.Errors().Len() != 1 {
		t.Errorf("Errors().Len() = %d, want 1", p.Errors().Len())
	}
}

func TestParseExpression(t *testing.T) {
	type tc struct {
		input   string
		want    string
		wantErr string
	}

	tests := map[string]tc{
		"or binds loosest":    {input: "a or b and c", want: "(or a (and b c))"},
		"not over comparison": {input: "not a == b", want: "(not (== a b))"},
		"bang is not":         {input: "!a", want: "(not a)"},
		"product over sum":    {input: "a + b * c", want: "(+ a (* b c))"},
		"left assoc minus":    {input: "a - b - c", want: "(- (- a b) c)"},
		"chained compare":     {input: "a == b == c", want: "(== (== a b) c)"},
		"postfix chain":       {input: "x.y[0](1, z)", want: "(call ([] (. x y) 0) 1 z)"},
		"keyword attribute":   {input: "ev.key", want: "(. ev key)"},
		"new":                 {input: "new Foo(1)", want: "(new (call Foo 1))"},
		"grouping":            {input: "(a or b) and c", want: "(and (or a b) c)"},
		"plain string":        {input: `"plain"`, want: `"plain"`},
		"format string":       {input: `"a{b}c"`, want: `(fmt "a" b "c")`},
		"dict":                {input: `{a: 1, "b c": x}`, want: `{"a": 1, "b c": x}`},
		"list trailing comma": {input: "[1, 2,]", want: "[1 2]"},
		"empty call":          {input: "f()", want: "(call f)"},
		"comparisons":         {input: "a < b != c >= d", want: "(>= (!= (< a b) c) d)"},
		"dangling operator":   {input: "a +", wantErr: "expected expression, got new line"},
		"trailing token":      {input: "a b", wantErr: `expected end of file, got identifier "b"`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			x, err := ParseExpression("", tt.input)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error, got %s", exprString(x))
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseExpression(%q) error = %v", tt.input, err)
			}
			if got := exprString(x); got != tt.want {
				t.Errorf("ParseExpression(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
