package compiler

import (
	"testing"

	"github.com/grindlemire/go-marafet/internal/js"
	"github.com/grindlemire/go-marafet/internal/mft"
)

func parseFile(t *testing.T, input string) *mft.File {
	t.Helper()
	file, err := mft.Parse("test.mft", input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return file
}

func emit(code *js.Code) string {
	return js.NewEmitter(0).Emit(code)
}

func TestCompile(t *testing.T) {
	type tc struct {
		input    string
		settings *Settings
		want     string
	}

	tests := map[string]tc{
		"single child becomes the fragment": {
			input: "hello:\n  div\n    \"Hi\"\n",
			want: `function hello() {
    return {
        key: "btn:hello",
        tag: "div",
        children: "Hi",
    };
}
`,
		},
		"several children form a keyed list": {
			input: "view:\n  \"a\"\n  = b\n",
			want: `function view() {
    return {
        key: "btn:view",
        children: [
            "a",
            b,
        ],
    };
}
`,
		},
		"params and top-level let": {
			input: "item(title, kind='plain'):\n  let label = kind + \": \" + title\n  span \"{label}\"\n",
			want: `function item(title, kind) {
    var label = kind + ": " + title;
    return {
        key: "btn:item",
        tag: "span",
        children: String(label),
    };
}
`,
		},
		"classes get the block name": {
			input: "view:\n  a.link.active?(on)\n",
			want: `function view() {
    return {
        key: "btn:view",
        tag: "a",
        attrs: {class: "btn link" + " " + ((on)?("active"):(""))},
    };
}
`,
		},
		"class attribute joins the class list": {
			input: "view:\n  input.field[type=\"text\", class=extra]\n",
			want: `function view() {
    return {
        key: "btn:view",
        tag: "input",
        attrs: {
            type: "text",
            class: "btn field" + " " + extra,
        },
    };
}
`,
		},
		"bare element gets the block name": {
			input:    "view:\n  p \"x\"\n",
			settings: &Settings{BlockName: "btn", BareElements: map[string]bool{"p": true}},
			want: `function view() {
    return {
        key: "btn:view",
        tag: "p",
        attrs: {class: "btn"},
        children: "x",
    };
}
`,
		},
		"no block name adds no class": {
			input:    "view:\n  p.x \"y\"\n",
			settings: &Settings{BareElements: map[string]bool{"p": true}},
			want: `function view() {
    return {
        key: ":view",
        tag: "p",
        attrs: {class: "x"},
        children: "y",
    };
}
`,
		},
		"conditions fold into ternaries": {
			input: "view(x):\n  if x > 1:\n    \"big\"\n  elif x:\n    \"some\"\n  else:\n    \"none\"\n",
			want: `function view(x) {
    return ((x > 1)?("big"):(((x)?("some"):("none"))));
}
`,
		},
		"branch keys carry the ordinal": {
			input: "view(x):\n  if x:\n    p \"y\"\n",
			want: `function view(x) {
    return ((x)?({
        key: "btn:view" + ":0",
        tag: "p",
        children: "y",
    }):(""));
}
`,
		},
		"keyed iteration": {
			input: "view(items):\n  for item of items:\n    li \"x\"\n",
			want: `function view(items) {
    return items.map(function(item) {
        return {
            key: "btn:view" + ":" + item,
            tag: "li",
            children: "x",
        };
    });
}
`,
		},
		"iteration inside an element keeps the key": {
			input: "view(items):\n  ul\n    for item of items:\n      li \"{item}\"\n",
			want: `function view(items) {
    return {
        key: "btn:view",
        tag: "ul",
        children: items.map(function(item) {
            return {
                key: "btn:view" + ":" + item,
                tag: "li",
                children: String(item),
            };
        }),
    };
}
`,
		},
		"condition inside an element keeps the key": {
			input: "view(x):\n  div\n    if x:\n      p \"y\"\n",
			want: `function view(x) {
    return {
        key: "btn:view",
        tag: "div",
        children: ((x)?({
            key: "btn:view" + ":0",
            tag: "p",
            children: "y",
        }):("")),
    };
}
`,
		},
		"sibling elements are keyed by ordinal": {
			input: "view:\n  ul\n    li \"a\"\n    li \"b\"\n",
			want: `function view() {
    return {
        key: "btn:view",
        tag: "ul",
        children: {
            key: "btn:view",
            children: [
                {
                    key: "btn:view" + ":0",
                    tag: "li",
                    children: "a",
                },
                {
                    key: "btn:view" + ":1",
                    tag: "li",
                    children: "b",
                },
            ],
        },
    };
}
`,
		},
		"single link": {
			input: "view:\n  button\n    link click = stream\n",
			want: `function view() {
    return {
        key: "btn:view",
        tag: "button",
        events: {click: stream.handle_event},
    };
}
`,
		},
		"links on the same event accumulate": {
			input: "view:\n  button\n    link click = a, click = b\n",
			want: `function view() {
    return {
        key: "btn:view",
        tag: "button",
        events: {click: [
            a.handle_event,
            b.handle_event,
        ]},
    };
}
`,
		},
		"store wraps the element": {
			input: "counter:\n  button\n    store n = new Counter()\n    link click = n.inc\n    = n.value\n",
			want: `function counter() {
    return function(old_node) {
        var n = (old_node && old_node.store_n) || new Counter();
        return {
            key: "btn:counter",
            tag: "button",
            store_n: n,
            children: n.value,
            events: {
                $destroyed: ((n.owner_destroyed)?(n.owner_destroyed.handle_event):(function() {})),
                click: n.inc.handle_event,
            },
        };
    };
}
`,
		},
		"multi link reads one stream": {
			input: "form:\n  input\n    link {value[ok]: changed, checked} = ev.x -> state\n",
			want: `function form() {
    return function(old_node) {
        var _stream_0 = state;
        return {
            key: "btn:form",
            tag: "input",
            events: {
                changed: _stream_0.value.map(function(ev) {
                    return ev.x;
                }).filter(function(ev) {
                    return ok;
                }).handle_event,
                checked: _stream_0.checked.map(function(ev) {
                    return ev.x;
                }).handle_event,
            },
        };
    };
}
`,
		},
		"element let": {
			input: "view:\n  p\n    let x = 1\n    = x\n",
			want: `function view() {
    return function(old_node) {
        var x = 1;
        return {
            key: "btn:view",
            tag: "p",
            children: x,
        };
    };
}
`,
		},
		"css and imports are skipped": {
			input: "import dom from \"dom\"\ncss:\n  p\n    color: red\nhtml a:\n  \"x\"\nhtml b:\n  \"y\"\n",
			want: `function a() {
    return "x";
}
function b() {
    return "y";
}
`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			settings := Settings{BlockName: "btn"}
			if tt.settings != nil {
				settings = *tt.settings
			}
			got := emit(Compile(parseFile(t, tt.input), settings))
			if got != tt.want {
				t.Errorf("Compile() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestCompile_EmptyBlock(t *testing.T) {
	file := &mft.File{Blocks: []mft.Block{&mft.HTMLBlock{Name: "view"}}}
	got := emit(Compile(file, Settings{BlockName: "btn"}))
	want := `function view() {
    return {
        key: "btn:view",
        children: [],
    };
}
`
	if got != want {
		t.Errorf("Compile() =\n%s\nwant\n%s", got, want)
	}
}

func TestCompile_ParamDefaults(t *testing.T) {
	file := parseFile(t, "item(title, kind='plain'):\n  \"x\"\n")
	code := Compile(file, Settings{})
	fn, ok := code.Statements[0].(*js.Function)
	if !ok {
		t.Fatalf("statement = %T, want *js.Function", code.Statements[0])
	}
	if fn.Params[0].Default != nil {
		t.Errorf("title default = %#v, want nil", fn.Params[0].Default)
	}
	def, ok := fn.Params[1].Default.(*js.Str)
	if !ok || def.Value != "plain" {
		t.Errorf("kind default = %#v, want \"plain\"", fn.Params[1].Default)
	}
}

func TestCompileExpr(t *testing.T) {
	type tc struct {
		input string
		want  string
	}

	tests := map[string]tc{
		"postfix chain": {
			input: "a.b[0](c, 1)",
			want:  "a.b[0](c, 1)",
		},
		"boolean operators": {
			input: "not a and b or c",
			want:  "(!a && b) || c",
		},
		"strict comparisons chain left": {
			input: "a == b != c",
			want:  "a === b !== c",
		},
		"arithmetic keeps grouping": {
			input: "(a + b) * c / 2",
			want:  "(a + b) * c / 2",
		},
		"new": {
			input: "new Foo(1)",
			want:  "new Foo(1)",
		},
		"format string": {
			input: `"x{y}z"`,
			want:  `"x" + String(y) + "z"`,
		},
		"plain string": {
			input: `'it\'s'`,
			want:  `"it\'s"`,
		},
		"list": {
			input: "[a, 2]",
			want:  "[\n    a,\n    2,\n]",
		},
		"dict": {
			input: `{a: 1, "b-c": [x]}`,
			want:  "{\n    a: 1,\n    \"b-c\": [x],\n}",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			x, err := mft.ParseExpression("test", tt.input)
			if err != nil {
				t.Fatalf("ParseExpression() error = %v", err)
			}
			got := emit(&js.Code{Statements: []js.Statement{&js.Return{X: compileExpr(x)}}})
			want := "return " + tt.want + ";\n"
			if got != want {
				t.Errorf("compileExpr() =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestWrapAMD(t *testing.T) {
	type tc struct {
		input string
		name  string
		want  string
	}

	tests := map[string]tc{
		"imports become dependencies": {
			input: "import dom from \"lib/dom\"\n" +
				"import {render, stream as s} from \"lib/util\"\n" +
				"import {other} from \"lib/util\"\n" +
				"view:\n  \"x\"\n",
			name: "mod/view",
			want: `define("mod/view", [
    "require",
    "exports",
    "lib/dom",
    "lib/util",
], function(require, exports, dom, _mod_0) {
    var render = _mod_0.render;
    var s = _mod_0.stream;
    var other = _mod_0.other;
    function view() {
        return "x";
    }
    exports.view = view;
});
`,
		},
		"anonymous module": {
			input: "a:\n  \"x\"\nb:\n  \"y\"\n",
			want: `define([
    "require",
    "exports",
], function(require, exports) {
    function a() {
        return "x";
    }
    function b() {
        return "y";
    }
    exports.a = a;
    exports.b = b;
});
`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			file := parseFile(t, tt.input)
			got := emit(WrapAMD(Compile(file, Settings{}), file, tt.name))
			if got != tt.want {
				t.Errorf("WrapAMD() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestAddCSSLoader(t *testing.T) {
	code := &js.Code{Statements: []js.Statement{&js.Var{Name: "a", Value: &js.Num{Text: "1"}}}}
	got := emit(AddCSSLoader(code, "p {\n}\n"))
	want := `var _style = document.createElement("style");
_style.appendChild(document.createTextNode("p {\n}\n"));
document.head.appendChild(_style);
var a = 1;
`
	if got != want {
		t.Errorf("AddCSSLoader() =\n%s\nwant\n%s", got, want)
	}
	if len(code.Statements) != 1 {
		t.Errorf("input code was modified: %d statements", len(code.Statements))
	}
}
