// Package host describes the engine object system that input handles wrap.
//
// The engine owns three object classes: InputContext, InputAction and
// InputBinding. Objects are created by a Host, expose a property table
// through Get and Set, are placed in a tree through their Parent property,
// and are released with Destroy. Action objects additionally carry runtime
// state and three signals (Pressed, Released, StateChanged).
//
// The property table for every class is published by Lookup and Properties.
// Which binding properties are available depends on the owning action's
// Type; the Host enforces that.
package host
