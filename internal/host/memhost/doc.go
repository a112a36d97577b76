// Package memhost is an in-memory implementation of the host object system.
//
// It keeps every object's property table in memory, enforces the published
// schema (read-only properties, value kinds, per-action-type availability of
// binding properties), maintains the parent/child tree, and delivers action
// signals synchronously when Fire changes an action's state.
//
// memhost does not read input devices and does not arbitrate between
// contexts; state changes come only from Fire.
package memhost
