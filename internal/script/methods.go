package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/input/key"
	"github.com/dshills/inputkit/internal/inputmap"
)

// Input.createContext(name, parent?) -> context
func (r *Runtime) createContext(L *lua.LState) int {
	name := L.CheckString(1)
	var opts []inputmap.Option
	if L.GetTop() >= 2 && L.Get(2) != lua.LNil {
		opts = append(opts, inputmap.WithParent(checkObject(L, 2)))
	}
	c, err := inputmap.Create(r.engine, name, opts...)
	if err != nil {
		raise(L, err)
	}
	r.track(c)
	L.Push(r.toLua(L, c))
	return 1
}

// Input.wrapContext(native) -> context
func (r *Runtime) wrapContext(L *lua.LState) int {
	c, err := inputmap.Wrap(r.engine, checkObject(L, 1))
	if err != nil {
		raise(L, err)
	}
	r.track(c)
	L.Push(r.toLua(L, c))
	return 1
}

// Input.newObject(className) -> native object
func (r *Runtime) newObject(L *lua.LState) int {
	obj, err := r.engine.New(host.Class(L.CheckString(1)))
	if err != nil {
		raise(L, err)
	}
	r.objects.Add(obj)
	L.Push(r.toLua(L, obj))
	return 1
}

func (r *Runtime) contextMethods() map[string]lua.LGFunction {
	self := func(L *lua.LState) *inputmap.Context { return check[*inputmap.Context](L, 1) }
	return map[string]lua.LGFunction{
		"createAction": func(L *lua.LState) int {
			c := self(L)
			name := L.CheckString(2)
			var typ []host.ActionType
			if L.GetTop() >= 3 && L.Get(3) != lua.LNil {
				typ = append(typ, checkActionType(L, 3))
			}
			a, err := c.CreateAction(name, typ...)
			if err != nil {
				raise(L, err)
			}
			L.Push(r.toLua(L, a))
			return 1
		},
		"wrapAction": func(L *lua.LState) int {
			a, err := self(L).WrapAction(checkObject(L, 2))
			if err != nil {
				raise(L, err)
			}
			L.Push(r.toLua(L, a))
			return 1
		},
		"getAction": func(L *lua.LState) int {
			c := self(L)
			if c.Destroyed() {
				raise(L, fmt.Errorf("InputContext getAction: %w", inputmap.ErrUseAfterDestroy))
			}
			a, ok := c.Action(L.CheckString(2))
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(r.toLua(L, a))
			return 1
		},
		"getAllActions": func(L *lua.LState) int {
			L.Push(r.toLua(L, self(L).Actions()))
			return 1
		},
		"removeAction": func(L *lua.LState) int {
			err := self(L).RemoveAction(L.CheckString(2))
			r.prune()
			return done(L, err)
		},
		"setEnabled": func(L *lua.LState) int {
			c := self(L)
			return chain(L, c.SetEnabled(L.CheckBool(2)))
		},
		"setPriority": func(L *lua.LState) int {
			c := self(L)
			return chain(L, c.SetPriority(L.CheckInt(2)))
		},
		"setSink": func(L *lua.LState) int {
			c := self(L)
			return chain(L, c.SetSink(L.CheckBool(2)))
		},
		"setParent": func(L *lua.LState) int {
			c := self(L)
			var parent host.Object
			if L.Get(2) != lua.LNil {
				parent = checkObject(L, 2)
			}
			return chain(L, c.SetParent(parent))
		},
		"destroy": func(L *lua.LState) int {
			err := self(L).Destroy()
			r.prune()
			return done(L, err)
		},
		"isDestroyed": func(L *lua.LState) int {
			L.Push(lua.LBool(self(L).Destroyed()))
			return 1
		},
	}
}

func (r *Runtime) actionMethods() map[string]lua.LGFunction {
	self := func(L *lua.LState) *inputmap.Action { return check[*inputmap.Action](L, 1) }
	on := func(event string, register func(*inputmap.Action, func(any)) *inputmap.Action) lua.LGFunction {
		return func(L *lua.LState) int {
			a := self(L)
			fn := L.CheckFunction(2)
			return chain(L, register(a, r.callback(fn, event)))
		}
	}
	return map[string]lua.LGFunction{
		"setType": func(L *lua.LState) int {
			a := self(L)
			return chain(L, a.SetType(checkActionType(L, 2)))
		},
		"setEnabled": func(L *lua.LState) int {
			a := self(L)
			return chain(L, a.SetEnabled(L.CheckBool(2)))
		},
		"fire": func(L *lua.LState) int {
			a := self(L)
			state, err := fromLua(L.CheckAny(2))
			if err != nil {
				raise(L, err)
			}
			return done(L, a.Fire(state))
		},
		"getState": func(L *lua.LState) int {
			state, err := self(L).State()
			if err != nil {
				raise(L, err)
			}
			L.Push(r.toLua(L, state))
			return 1
		},
		"createBinding": func(L *lua.LState) int {
			b, err := self(L).CreateBinding(L.CheckString(2))
			if err != nil {
				raise(L, err)
			}
			L.Push(r.toLua(L, b))
			return 1
		},
		"wrapBinding": func(L *lua.LState) int {
			b, err := self(L).WrapBinding(checkObject(L, 2))
			if err != nil {
				raise(L, err)
			}
			L.Push(r.toLua(L, b))
			return 1
		},
		"getBinding": func(L *lua.LState) int {
			a := self(L)
			if a.Destroyed() {
				raise(L, fmt.Errorf("InputAction getBinding: %w", inputmap.ErrUseAfterDestroy))
			}
			b, ok := a.Binding(L.CheckString(2))
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(r.toLua(L, b))
			return 1
		},
		"getAllBindings": func(L *lua.LState) int {
			L.Push(r.toLua(L, self(L).Bindings()))
			return 1
		},
		"removeBinding": func(L *lua.LState) int {
			err := self(L).RemoveBinding(L.CheckString(2))
			r.prune()
			return done(L, err)
		},
		"addBinding": func(L *lua.LState) int {
			a := self(L)
			return chain(L, a.AddBinding(L.CheckString(2), checkCode(L, 3)))
		},
		"addTouchBinding": func(L *lua.LState) int {
			a := self(L)
			return chain(L, a.AddTouchBinding(L.CheckString(2), L.CheckString(3)))
		},
		"addWASDBinding": func(L *lua.LState) int {
			a := self(L)
			return chain(L, a.AddWASDBinding(L.CheckString(2)))
		},
		"addArrowKeysBinding": func(L *lua.LState) int {
			a := self(L)
			return chain(L, a.AddArrowKeysBinding(L.CheckString(2)))
		},
		"onPressed":      on("Pressed", (*inputmap.Action).OnPressed),
		"onReleased":     on("Released", (*inputmap.Action).OnReleased),
		"onStateChanged": on("StateChanged", (*inputmap.Action).OnStateChanged),
		"destroy": func(L *lua.LState) int {
			err := self(L).Destroy()
			r.prune()
			return done(L, err)
		},
		"isDestroyed": func(L *lua.LState) int {
			L.Push(lua.LBool(self(L).Destroyed()))
			return 1
		},
	}
}

func (r *Runtime) bindingMethods() map[string]lua.LGFunction {
	self := func(L *lua.LState) *inputmap.Binding { return check[*inputmap.Binding](L, 1) }
	direction := func(set func(*inputmap.Binding, key.Code) *inputmap.Binding) lua.LGFunction {
		return func(L *lua.LState) int {
			b := self(L)
			return chain(L, set(b, checkCode(L, 2)))
		}
	}
	number := func(set func(*inputmap.Binding, float64) *inputmap.Binding) lua.LGFunction {
		return func(L *lua.LState) int {
			b := self(L)
			return chain(L, set(b, float64(L.CheckNumber(2))))
		}
	}
	return map[string]lua.LGFunction{
		"setForward":  direction((*inputmap.Binding).SetForward),
		"setBackward": direction((*inputmap.Binding).SetBackward),
		"setUp":       direction((*inputmap.Binding).SetUp),
		"setDown":     direction((*inputmap.Binding).SetDown),
		"setLeft":     direction((*inputmap.Binding).SetLeft),
		"setRight":    direction((*inputmap.Binding).SetRight),
		"setDirections": func(L *lua.LState) int {
			b := self(L)
			tbl := L.CheckTable(2)
			dirs := make(map[inputmap.Direction]key.Code)
			var bad error
			tbl.ForEach(func(k, v lua.LValue) {
				d := inputmap.Direction(lua.LVAsString(k))
				if !validDirection(d) {
					bad = fmt.Errorf("%w: unknown direction %q", ErrBadArgument, k.String())
					return
				}
				code, err := key.Parse(lua.LVAsString(v))
				if err != nil {
					bad = err
					return
				}
				dirs[d] = code
			})
			if bad != nil {
				raise(L, bad)
			}
			return chain(L, b.SetDirections(dirs))
		},
		"setWASD": func(L *lua.LState) int {
			return chain(L, self(L).SetWASD())
		},
		"setArrowKeys": func(L *lua.LState) int {
			return chain(L, self(L).SetArrowKeys())
		},
		"setKeyCode": direction((*inputmap.Binding).SetKeyCode),
		"setUIButton": func(L *lua.LState) int {
			b := self(L)
			return chain(L, b.SetUIButton(L.CheckString(2)))
		},
		"setPressedThreshold":  number((*inputmap.Binding).SetPressedThreshold),
		"setReleasedThreshold": number((*inputmap.Binding).SetReleasedThreshold),
		"setScale":             number((*inputmap.Binding).SetScale),
		"setVector2Scale": func(L *lua.LState) int {
			b := self(L)
			return chain(L, b.SetVector2Scale(checkVector2(L, 2)))
		},
		"destroy": func(L *lua.LState) int {
			err := self(L).Destroy()
			r.prune()
			return done(L, err)
		},
		"isDestroyed": func(L *lua.LState) int {
			L.Push(lua.LBool(self(L).Destroyed()))
			return 1
		},
	}
}

func validDirection(d inputmap.Direction) bool {
	for _, known := range inputmap.Directions {
		if d == known {
			return true
		}
	}
	return false
}
