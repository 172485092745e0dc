// Package hook runs user-supplied Lua hooks around transformations.
//
// A hook file may define two global functions:
//
//	function on_request(req)  -- req = {text, instruction, filetype, path}
//	    req.instruction = req.instruction .. " (keep comments)"
//	    return req
//	end
//
//	function on_response(text)
//	    return text:gsub("%s+$", "")
//	end
//
// Either function may return nil to leave its input unchanged. Hooks run in
// a sandboxed interpreter without file, OS, or module-loading access.
package hook

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/revise/internal/transform"
)

// ErrClosed is returned when a hook runs after Close.
var ErrClosed = errors.New("hook runner closed")

// Hook function names looked up in the Lua globals.
const (
	fnOnRequest  = "on_request"
	fnOnResponse = "on_response"
)

// Runner owns one sandboxed Lua state. Methods are safe for concurrent use;
// calls into the interpreter are serialized.
type Runner struct {
	mu     sync.Mutex
	state  *lua.LState
	closed bool
}

// Load creates a runner from a Lua hook file.
func Load(path string) (*Runner, error) {
	L := newSandboxedState()

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("load hooks %s: %w", path, err)
	}

	return &Runner{state: L}, nil
}

// LoadString creates a runner from Lua source. Used by tests.
func LoadString(src string) (*Runner, error) {
	L := newSandboxedState()

	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("load hooks: %w", err)
	}

	return &Runner{state: L}, nil
}

// newSandboxedState creates a Lua state with only the safe libraries open.
func newSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	// Remove escape hatches from the base library.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	return L
}

// OnRequest runs the on_request hook, if defined. The hook may rewrite any
// request field; a nil return keeps the request as-is.
func (r *Runner) OnRequest(req transform.Request) (transform.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return req, ErrClosed
	}

	fn := r.state.GetGlobal(fnOnRequest)
	if fn == lua.LNil {
		return req, nil
	}

	tbl := r.state.NewTable()
	r.state.SetField(tbl, "text", lua.LString(req.Text))
	r.state.SetField(tbl, "instruction", lua.LString(req.Instruction))
	r.state.SetField(tbl, "filetype", lua.LString(req.Filetype))
	r.state.SetField(tbl, "path", lua.LString(req.Path))

	if err := r.state.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, tbl); err != nil {
		return req, fmt.Errorf("on_request: %w", err)
	}

	ret := r.state.Get(-1)
	r.state.Pop(1)

	out, ok := ret.(*lua.LTable)
	if !ok {
		return req, nil
	}

	if v := r.state.GetField(out, "text"); v != lua.LNil {
		req.Text = lua.LVAsString(v)
	}
	if v := r.state.GetField(out, "instruction"); v != lua.LNil {
		req.Instruction = lua.LVAsString(v)
	}
	if v := r.state.GetField(out, "filetype"); v != lua.LNil {
		req.Filetype = lua.LVAsString(v)
	}
	if v := r.state.GetField(out, "path"); v != lua.LNil {
		req.Path = lua.LVAsString(v)
	}
	return req, nil
}

// OnResponse runs the on_response hook, if defined. A nil return keeps the
// text as-is.
func (r *Runner) OnResponse(text string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return text, ErrClosed
	}

	fn := r.state.GetGlobal(fnOnResponse)
	if fn == lua.LNil {
		return text, nil
	}

	if err := r.state.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LString(text)); err != nil {
		return text, fmt.Errorf("on_response: %w", err)
	}

	ret := r.state.Get(-1)
	r.state.Pop(1)

	if s, ok := ret.(lua.LString); ok {
		return string(s), nil
	}
	return text, nil
}

// Close shuts down the interpreter. Safe to call twice.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.state.Close()
}
