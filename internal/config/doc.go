// Package config loads declarative input maps and builds them on an engine.
//
// A definition lists contexts, their actions and the actions' bindings:
//
//	[[contexts]]
//	name = "Gameplay"
//	priority = 10
//
//	[[contexts.actions]]
//	name = "Move"
//	type = "Direction2D"
//
//	[[contexts.actions.bindings]]
//	name = "Keyboard"
//	preset = "wasd"
//
// TOML, YAML and JSON sources are supported. Load picks the format from the
// file extension and validates the result; Apply builds the handles through
// package inputmap and tears everything down again if any step fails.
package config
