// Package inputmap provides fluent, owning handles over engine input objects.
//
// Three handle kinds mirror the engine object tree:
//
//   - Context wraps an InputContext and owns Actions
//   - Action wraps an InputAction and owns Bindings
//   - Binding wraps an InputBinding
//
// Every handle owns a lifecycle.Tracker holding its native object and the
// signal connections it opened. Destroying a handle destroys its children
// first, then disconnects its subscriptions, then destroys its native
// object, and finally removes it from its parent. Destroy is idempotent;
// every other method fails with ErrUseAfterDestroy afterwards.
//
// # Properties
//
// Get and Set forward to the native object's property table. A few
// reserved keys (_instance, _children, _tracker, _parent) are answered by
// the handle itself and never forwarded. Unknown, read-only and
// type-unavailable properties fail with ErrInvalidPropertyAccess; nothing
// silently reads as nil.
//
// # Chaining
//
// Configuration methods return the receiver so calls can be chained:
//
//	ctx, err := inputmap.Create(engine, "Gameplay")
//	if err != nil {
//	    return err
//	}
//	move, err := ctx.SetPriority(10).CreateAction("Move", host.ActionDirection2D)
//	if err != nil {
//	    return err
//	}
//	move.AddWASDBinding("Keyboard").
//	    AddArrowKeysBinding("Arrows").
//	    OnStateChanged(func(state any) { ... })
//	if err := move.Err(); err != nil {
//	    return err
//	}
//
// A chained call that fails records its error on the handle; Err returns
// the recorded errors and clears them.
//
// Handles are not safe for concurrent use. They are meant to be driven
// from the single goroutine that delivers input events.
package inputmap
