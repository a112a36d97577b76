package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/inputkit/internal/host"
	"github.com/dshills/inputkit/internal/input/key"
	"github.com/dshills/inputkit/internal/inputmap"
)

// toLua converts a property, state or handle value for Lua.
func (r *Runtime) toLua(L *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(x)
	case string:
		return lua.LString(x)
	case int:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case key.Code:
		return lua.LString(x.String())
	case host.ActionType:
		return lua.LString(x.String())
	case host.Vector2:
		t := L.NewTable()
		t.RawSetString("X", lua.LNumber(x.X))
		t.RawSetString("Y", lua.LNumber(x.Y))
		return t
	case host.Vector3:
		t := L.NewTable()
		t.RawSetString("X", lua.LNumber(x.X))
		t.RawSetString("Y", lua.LNumber(x.Y))
		t.RawSetString("Z", lua.LNumber(x.Z))
		return t
	case *inputmap.Context:
		if x == nil {
			return lua.LNil
		}
		return r.userdata(L, x, typeContext)
	case *inputmap.Action:
		if x == nil {
			return lua.LNil
		}
		return r.userdata(L, x, typeAction)
	case *inputmap.Binding:
		if x == nil {
			return lua.LNil
		}
		return r.userdata(L, x, typeBinding)
	case map[string]*inputmap.Action:
		t := L.NewTable()
		for name, a := range x {
			t.RawSetString(name, r.toLua(L, a))
		}
		return t
	case map[string]*inputmap.Binding:
		t := L.NewTable()
		for name, b := range x {
			t.RawSetString(name, r.toLua(L, b))
		}
		return t
	case host.Object:
		return r.userdata(L, x, typeInstance)
	default:
		ud := L.NewUserData()
		ud.Value = v
		return ud
	}
}

// fromLua converts a Lua value for a property write or a fire.
// Handles convert to their native objects and vector tables to vectors.
func fromLua(lv lua.LValue) (any, error) {
	switch x := lv.(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LBool:
		return bool(x), nil
	case lua.LNumber:
		return float64(x), nil
	case lua.LString:
		return string(x), nil
	case *lua.LTable:
		return vectorFromTable(x)
	case *lua.LUserData:
		switch h := x.Value.(type) {
		case *inputmap.Context:
			return h.Native(), nil
		case *inputmap.Action:
			return h.Native(), nil
		case *inputmap.Binding:
			return h.Native(), nil
		default:
			return x.Value, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot convert %s", ErrBadArgument, lv.Type())
}

// vectorFromTable reads {X=..., Y=...} or {X=..., Y=..., Z=...}.
// Lower-case keys and array form {x, y[, z]} are accepted too.
func vectorFromTable(t *lua.LTable) (any, error) {
	comp := func(upper, lower string, index int) (float64, bool) {
		for _, v := range []lua.LValue{t.RawGetString(upper), t.RawGetString(lower), t.RawGetInt(index)} {
			if n, ok := v.(lua.LNumber); ok {
				return float64(n), true
			}
		}
		return 0, false
	}
	x, okX := comp("X", "x", 1)
	y, okY := comp("Y", "y", 2)
	if !okX || !okY {
		return nil, fmt.Errorf("%w: table is not a vector", ErrBadArgument)
	}
	if z, ok := comp("Z", "z", 3); ok {
		return host.Vector3{X: x, Y: y, Z: z}, nil
	}
	return host.Vector2{X: x, Y: y}, nil
}

// checkCode reads a key code argument given by name or number.
func checkCode(L *lua.LState, n int) key.Code {
	switch v := L.Get(n).(type) {
	case lua.LString:
		code, err := key.Parse(string(v))
		if err != nil {
			L.ArgError(n, err.Error())
		}
		return code
	case lua.LNumber:
		code := key.Code(v)
		if !code.Valid() {
			L.ArgError(n, fmt.Sprintf("invalid key code %v", v))
		}
		return code
	}
	L.ArgError(n, "key code expected")
	return key.Unknown
}

// checkActionType reads an action type argument given by name.
func checkActionType(L *lua.LState, n int) host.ActionType {
	t, err := host.ParseActionType(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return t
}

// checkVector2 reads a two-component vector table.
func checkVector2(L *lua.LState, n int) host.Vector2 {
	v, err := vectorFromTable(L.CheckTable(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	switch vec := v.(type) {
	case host.Vector2:
		return vec
	case host.Vector3:
		return host.Vector2{X: vec.X, Y: vec.Y}
	}
	return host.Vector2{}
}

// checkObject reads a native object argument. Handles are accepted and
// resolve to the object they wrap.
func checkObject(L *lua.LState, n int) host.Object {
	v, err := fromLua(L.CheckUserData(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	obj, ok := v.(host.Object)
	if !ok {
		L.ArgError(n, "native object expected")
	}
	return obj
}
