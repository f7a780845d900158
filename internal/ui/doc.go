// Package ui contains the Bubble Tea program that hosts the settings
// surface and the quick-open palette layered over it.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each tea.Msg through a typed handler registry so every
//     message kind is handled by one focused function (key presses, window
//     sizes, finished remote searches, bus signals, highlight expiry).
//   - Input helpers (internal/ui/input.go) own all text entry for the query
//     box and drive the coordinator's Begin/Commit generation cycle; remote
//     searches run as tea.Cmds and return as generation-stamped messages.
//   - Navigation helpers (internal/ui/navigation.go) translate an activated
//     row into its effect on the host surface: switching sections and
//     flashing a local target, or pinning a remote document preview.
package ui
