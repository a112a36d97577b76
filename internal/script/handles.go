package script

import (
	"fmt"
	"reflect"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/input/key"
	"github.com/dshills/inputkit/internal/inputmap"
)

// Lua type names.
const (
	typeContext  = "InputContext"
	typeAction   = "InputAction"
	typeBinding  = "InputBinding"
	typeInstance = "Instance"
	typeError    = "InputError"
)

// propertyHandle is the part of every handle kind the metatables use.
type propertyHandle interface {
	Get(name string) (any, error)
	Set(name string, value any) error
	Destroyed() bool
	Destroy() error
	Err() error
}

// registerTypes installs the metatables for handles, native objects and
// raised errors.
func (r *Runtime) registerTypes() {
	L := r.L
	r.registerHandleType(typeContext, r.contextMethods())
	r.registerHandleType(typeAction, r.actionMethods())
	r.registerHandleType(typeBinding, r.bindingMethods())

	inst := L.NewTypeMetatable(typeInstance)
	L.SetField(inst, "__index", L.NewFunction(r.instanceIndex))
	L.SetField(inst, "__newindex", L.NewFunction(instanceNewIndex))
	L.SetField(inst, "__tostring", L.NewFunction(func(L *lua.LState) int {
		obj := check[host.Object](L, 1)
		L.Push(lua.LString(fmt.Sprintf("%s<%s>", obj.Class(), obj.ID())))
		return 1
	}))

	errMT := L.NewTypeMetatable(typeError)
	L.SetField(errMT, "__tostring", L.NewFunction(func(L *lua.LState) int {
		err := check[error](L, 1)
		L.Push(lua.LString(err.Error()))
		return 1
	}))
}

// registerHandleType builds a handle metatable. Methods shadow properties
// of the same name.
func (r *Runtime) registerHandleType(name string, funcs map[string]lua.LGFunction) {
	L := r.L
	mt := L.NewTypeMetatable(name)
	methods := L.SetFuncs(L.NewTable(), funcs)

	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		h := check[propertyHandle](L, 1)
		prop := L.CheckString(2)
		if m := methods.RawGetString(prop); m != lua.LNil {
			L.Push(m)
			return 1
		}
		v, err := h.Get(prop)
		if err != nil {
			raise(L, err)
		}
		L.Push(r.toLua(L, v))
		return 1
	}))

	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		h := check[propertyHandle](L, 1)
		prop := L.CheckString(2)
		if methods.RawGetString(prop) != lua.LNil {
			raise(L, fmt.Errorf("%w: %s is a method", inputmap.ErrInvalidPropertyAccess, prop))
		}
		if inputmap.IsReserved(prop) {
			return done(L, h.Set(prop, nil))
		}
		v, err := fromLua(L.Get(3))
		if err != nil {
			raise(L, err)
		}
		return done(L, h.Set(prop, v))
	}))

	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		h := check[propertyHandle](L, 1)
		if h.Destroyed() {
			L.Push(lua.LString(name + "(destroyed)"))
			return 1
		}
		n, _ := h.Get("Name")
		L.Push(lua.LString(fmt.Sprintf("%s(%v)", name, n)))
		return 1
	}))
}

func (r *Runtime) instanceIndex(L *lua.LState) int {
	obj := check[host.Object](L, 1)
	v, err := obj.Get(L.CheckString(2))
	if err != nil {
		raise(L, err)
	}
	L.Push(r.toLua(L, v))
	return 1
}

func instanceNewIndex(L *lua.LState) int {
	obj := check[host.Object](L, 1)
	prop := L.CheckString(2)
	v, err := fromLua(L.Get(3))
	if err != nil {
		raise(L, err)
	}
	if err := obj.Set(prop, v); err != nil {
		raise(L, err)
	}
	return 0
}

// registerInput installs the global Input table.
func (r *Runtime) registerInput() {
	L := r.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"createContext": r.createContext,
		"wrapContext":   r.wrapContext,
		"newObject":     r.newObject,
	})

	codes := L.NewTable()
	for _, c := range key.Codes() {
		codes.RawSetString(c.String(), lua.LString(c.String()))
	}
	L.SetField(mod, "keyCodes", codes)

	types := L.NewTable()
	for _, t := range []host.ActionType{host.ActionBool, host.ActionDirection1D, host.ActionDirection2D, host.ActionDirection3D} {
		types.RawSetString(t.String(), lua.LString(t.String()))
	}
	L.SetField(mod, "actionTypes", types)

	L.SetGlobal("Input", mod)
}

// userdata returns the one userdata for v, creating it on first use so
// that a handle compares equal to itself in Lua.
func (r *Runtime) userdata(L *lua.LState, v any, typ string) *lua.LUserData {
	if ud, ok := r.handles[v]; ok {
		return ud
	}
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(typ))
	r.handles[v] = ud
	return ud
}

// raise raises err as a Lua error. The error value is a userdata holding
// err, so Go callers can recover it.
func raise(L *lua.LState, err error) {
	ud := L.NewUserData()
	ud.Value = err
	L.SetMetatable(ud, L.GetTypeMetatable(typeError))
	L.Error(ud, 1)
}

// check reads userdata argument n holding a T.
func check[T any](L *lua.LState, n int) T {
	ud := L.CheckUserData(n)
	v, ok := ud.Value.(T)
	if !ok {
		L.ArgError(n, reflect.TypeOf((*T)(nil)).Elem().String()+" expected")
		return v
	}
	return v
}

// chain surfaces errors recorded by a fluent call and returns the receiver.
func chain(L *lua.LState, h propertyHandle) int {
	if err := h.Err(); err != nil {
		raise(L, err)
	}
	L.Push(L.Get(1))
	return 1
}

// done raises err or returns nothing.
func done(L *lua.LState, err error) int {
	if err != nil {
		raise(L, err)
	}
	return 0
}
