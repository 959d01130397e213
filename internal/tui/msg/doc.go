// Package msg defines the message types used by the TUI's Bubbletea event loop.
//
// This package contains all [tea.Msg] types the dashboard can receive:
// session and panel load results, navigation requests from the API layer's
// redirect policy, payment progress, and clipboard outcomes. Centralizing
// them gives the view files one vocabulary to produce and handle events
// with, and keeps the update loop's type switch exhaustive in one place.
package msg
