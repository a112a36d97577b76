// Package script exposes input handles to sandboxed Lua scripts.
//
// A Runtime owns a gopher-lua state with a global Input table:
//
//	local gameplay = Input.createContext("Gameplay")
//	gameplay:createAction("Jump")
//		:addBinding("Keyboard", Input.keyCodes.Space)
//		:onPressed(function(state) print("jump", state) end)
//
//	local move = gameplay:createAction("Move", Input.actionTypes.Direction2D)
//	move:addWASDBinding("WASD")
//	move:getBinding("WASD"):setDirections({ Up = Input.keyCodes.I })
//
//	gameplay.Priority = 10
//
// Handles are userdata. Indexing a handle resolves its methods first, then
// the reserved keys (_instance, _children, _tracker, _parent), then the
// native object's properties. Assignments are forwarded to the native
// object. Failures are raised as Lua errors carrying the Go error, so
// errors.Is works on the error returned by DoString or DoFile.
//
// Key codes and action types are passed as their names. Vectors are tables
// with X, Y and optionally Z fields.
//
// A Runtime is not safe for concurrent use. Fire actions from the goroutine
// that runs scripts, since callbacks run on the Lua state.
package script
