// Package key defines the engine key codes that input bindings refer to.
//
// Codes cover keyboard keys, gamepad buttons and thumbsticks, and mouse
// buttons. Names follow the engine's canonical spelling:
//
//   - Letters and digits: "W", "A", "Zero", "Nine"
//   - Navigation: "Up", "Down", "Left", "Right", "PageUp"
//   - Special keys: "Space", "Return", "Escape", "Tab", "Backspace"
//   - Gamepad: "ButtonA", "ButtonR2", "DPadLeft", "Thumbstick1"
//   - Mouse: "MouseLeftButton", "MouseRightButton"
//
// Parse is case-insensitive and understands a few common aliases
// ("Enter", "Esc", "ArrowUp", "1").
package key
