// Package plugin hosts Lua-scripted actions. A script defines a global
// execute(ctx) function; the host wraps it as an interp.Action so hosts
// can extend the command vocabulary without recompiling.
package plugin

import (
	"fmt"
	"log/slog"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modal/interp"
	"github.com/dshills/modal/register"
)

// entryPoint is the global function a script must define.
const entryPoint = "execute"

// Host owns the Lua states behind scripted actions. Close it when the
// interpreter shuts down.
type Host struct {
	mu      sync.Mutex
	log     *slog.Logger
	actions map[string]*scriptAction
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithLogger supplies the logger for script failures.
func WithLogger(l *slog.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHost creates an empty plugin host.
func NewHost(opts ...HostOption) *Host {
	h := &Host{
		log:     slog.Default(),
		actions: make(map[string]*scriptAction),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// LoadAction compiles a script and returns it as an action. The script
// runs once at load time and must leave a global execute function; each
// invocation later calls that function with a context table.
func (h *Host) LoadAction(name, script string) (interp.Action, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.actions[name]; exists {
		return nil, fmt.Errorf("action %q: %w", name, ErrDuplicateAction)
	}

	state := lua.NewState()
	if err := state.DoString(script); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading action %q: %w", name, err)
	}
	fn, ok := state.GetGlobal(entryPoint).(*lua.LFunction)
	if !ok {
		state.Close()
		return nil, fmt.Errorf("action %q: %w", name, ErrNoEntryPoint)
	}

	act := &scriptAction{name: name, state: state, fn: fn, log: h.log}
	h.actions[name] = act
	return act, nil
}

// Action returns a previously loaded action, or nil.
func (h *Host) Action(name string) interp.Action {
	h.mu.Lock()
	defer h.mu.Unlock()
	if act, ok := h.actions[name]; ok {
		return act
	}
	return nil
}

// Close shuts down every script state. The host is unusable afterwards.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, act := range h.actions {
		act.state.Close()
	}
	h.actions = make(map[string]*scriptAction)
}

// scriptAction adapts one Lua function to interp.Action. A Lua state is
// single-threaded; the mutex serializes invocations.
type scriptAction struct {
	mu    sync.Mutex
	name  string
	state *lua.LState
	fn    *lua.LFunction
	log   *slog.Logger
}

// Execute implements interp.Action. Script errors and panics become
// ordinary errors; the buffer keeps whatever the script applied before
// failing.
func (a *scriptAction) Execute(ctx interp.ActionContext) (res interp.ActionResult, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			a.log.Error("script panicked", "action", a.name, "panic", r)
			err = fmt.Errorf("action %q panicked: %v", a.name, r)
		}
	}()

	L := a.state
	table := a.contextTable(ctx)

	if err := L.CallByParam(lua.P{Fn: a.fn, NRet: 1, Protect: true}, table); err != nil {
		return interp.ActionResult{}, fmt.Errorf("action %q: %w", a.name, err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	return resultFrom(ret), nil
}

// contextTable builds the ctx argument: cursor, count, char, register,
// buffer accessors, and the two mutation functions.
func (a *scriptAction) contextTable(ctx interp.ActionContext) *lua.LTable {
	L := a.state
	ed := ctx.Editor
	cur := ed.Cursor()

	t := L.NewTable()
	L.SetField(t, "line", lua.LNumber(cur.Line))
	L.SetField(t, "col", lua.LNumber(cur.Col))
	L.SetField(t, "count", lua.LNumber(ctx.Count))
	L.SetField(t, "char", lua.LString(ctx.Char))
	L.SetField(t, "register", lua.LString(ctx.Register))
	L.SetField(t, "content", lua.LString(ed.Content()))
	L.SetField(t, "mode", lua.LString(ctx.Session.Mode().String()))

	lines := L.NewTable()
	for i, line := range ed.Lines() {
		L.RawSetInt(lines, i+1, lua.LString(line))
	}
	L.SetField(t, "lines", lines)

	L.SetField(t, "update_content", L.NewFunction(func(L *lua.LState) int {
		ed.UpdateContent(L.CheckString(1))
		return 0
	}))
	L.SetField(t, "set_cursor", L.NewFunction(func(L *lua.LState) int {
		ed.SetCursorPosition(interp.Position{
			Line: L.CheckInt(1),
			Col:  L.CheckInt(2),
		})
		return 0
	}))
	L.SetField(t, "set_register", L.NewFunction(func(L *lua.LState) int {
		ctx.Session.SetRegisterContent(ctx.Register, L.CheckString(1), register.Charwise)
		return 0
	}))
	return t
}

// resultFrom reads the optional result table a script may return.
func resultFrom(lv lua.LValue) interp.ActionResult {
	t, ok := lv.(*lua.LTable)
	if !ok {
		return interp.ActionResult{}
	}
	var res interp.ActionResult
	if s, ok := t.RawGetString("text").(lua.LString); ok {
		res.Text = string(s)
	}
	if b, ok := t.RawGetString("prepend").(lua.LBool); ok {
		res.Prepend = bool(b)
	}
	if b, ok := t.RawGetString("enters_insert").(lua.LBool); ok {
		res.EntersInsert = bool(b)
	}
	return res
}
