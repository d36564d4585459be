package plugin

import (
	"errors"
	"testing"

	"github.com/dshills/modal/builtin"
	"github.com/dshills/modal/interp"
	"github.com/dshills/modal/key"
	"github.com/dshills/modal/register"
	"github.com/dshills/modal/token"
)

func loadAction(t *testing.T, script string) interp.Action {
	t.Helper()
	h := NewHost()
	t.Cleanup(h.Close)
	act, err := h.LoadAction("test", script)
	if err != nil {
		t.Fatal(err)
	}
	return act
}

func actionContext(buf *interp.Buffer) interp.ActionContext {
	return interp.ActionContext{
		Editor:   buf,
		Session:  interp.NewSession(),
		Count:    1,
		Register: register.Unnamed,
	}
}

func TestScriptMutatesBuffer(t *testing.T) {
	act := loadAction(t, `
function execute(ctx)
	ctx.update_content(string.upper(ctx.content))
	ctx.set_cursor(0, 0)
end
`)
	buf := interp.NewBuffer("hello\nworld")
	buf.SetCursorPosition(interp.Position{Line: 1, Col: 3})

	if _, err := act.Execute(actionContext(buf)); err != nil {
		t.Fatal(err)
	}
	if buf.Content() != "HELLO\nWORLD" {
		t.Errorf("content = %q", buf.Content())
	}
	if buf.Cursor() != (interp.Position{}) {
		t.Errorf("cursor = %+v, want origin", buf.Cursor())
	}
}

func TestScriptSeesContext(t *testing.T) {
	act := loadAction(t, `
function execute(ctx)
	ctx.update_content(ctx.lines[ctx.line + 1] .. "/" .. ctx.count .. "/" .. ctx.register)
end
`)
	buf := interp.NewBuffer("zero\none")
	buf.SetCursorPosition(interp.Position{Line: 1})
	ctx := actionContext(buf)
	ctx.Count = 3

	if _, err := act.Execute(ctx); err != nil {
		t.Fatal(err)
	}
	if buf.Content() != `one/3/"` {
		t.Errorf("content = %q", buf.Content())
	}
}

func TestScriptResultTable(t *testing.T) {
	act := loadAction(t, `
function execute(ctx)
	return { text = "captured", prepend = true, enters_insert = true }
end
`)
	res, err := act.Execute(actionContext(interp.NewBuffer("x")))
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "captured" || !res.Prepend || !res.EntersInsert {
		t.Errorf("result = %+v", res)
	}
}

func TestScriptWritesRegister(t *testing.T) {
	act := loadAction(t, `
function execute(ctx)
	ctx.set_register("from lua")
end
`)
	ctx := actionContext(interp.NewBuffer("x"))
	if _, err := act.Execute(ctx); err != nil {
		t.Fatal(err)
	}
	got, ok := ctx.Session.GetRegisterContent(register.Unnamed)
	if !ok || got.Text != "from lua" {
		t.Errorf("register = %+v", got)
	}
}

func TestScriptErrorsBecomeErrors(t *testing.T) {
	act := loadAction(t, `
function execute(ctx)
	error("boom")
end
`)
	if _, err := act.Execute(actionContext(interp.NewBuffer("x"))); err == nil {
		t.Error("script error was swallowed")
	}
}

func TestLoadRejectsBadScripts(t *testing.T) {
	h := NewHost()
	defer h.Close()

	if _, err := h.LoadAction("syn", "function execute("); err == nil {
		t.Error("syntax error accepted")
	}
	if _, err := h.LoadAction("none", "x = 1"); !errors.Is(err, ErrNoEntryPoint) {
		t.Errorf("err = %v, want ErrNoEntryPoint", err)
	}

	script := "function execute(ctx) end"
	if _, err := h.LoadAction("dup", script); err != nil {
		t.Fatal(err)
	}
	if _, err := h.LoadAction("dup", script); !errors.Is(err, ErrDuplicateAction) {
		t.Errorf("err = %v, want ErrDuplicateAction", err)
	}

	if h.Action("dup") == nil {
		t.Error("loaded action not found by name")
	}
	if h.Action("missing") != nil {
		t.Error("unknown action name resolved")
	}
}

// A scripted action bound to an extra token runs through the full
// keystroke pipeline like any built-in.
func TestScriptedActionThroughInterpreter(t *testing.T) {
	tokens, err := token.BuildRegistry(token.Customization{
		Extra: []*token.Token{{Key: "Q", Kind: token.KindAction}},
	})
	if err != nil {
		t.Fatal(err)
	}

	h := NewHost()
	defer h.Close()
	act, err := h.LoadAction("reverse-line", `
function execute(ctx)
	ctx.update_content(string.reverse(ctx.content))
end
`)
	if err != nil {
		t.Fatal(err)
	}

	reg := builtin.Default()
	reg.RegisterAction("Q", act)
	in := interp.New(tokens, reg)
	buf := interp.NewBuffer("abc")

	for _, k := range key.MustParse("Q") {
		in.HandleKey(k, buf)
	}
	if buf.Content() != "cba" {
		t.Errorf("content = %q, want %q", buf.Content(), "cba")
	}
}
