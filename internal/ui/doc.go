// Package ui provides the user interface components for the tenfoot TUI.
//
// # Overview
//
// The ui package renders a living-room style content catalog using Lipgloss.
// It follows the Model-Update-View pattern established by Bubble Tea: state
// lives in small structs owned by the app model, and each exposes a View
// method returning a string.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line): title, layout tabs, restore phase  │
//	├─────────────────────────────────────────────────────┤
//	│ Hero row                                            │
//	│ Provider row                                        │
//	│ Catalog rows ...                                    │
//	│ Genre rows ...                                      │
//	│ end of catalog (fallback region)                    │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line): key help or flash message          │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
//
// Surface: The rendered composition of a browse screen. It decides which
// item holds focus, scrolls rows, and implements the focus handles and
// viewport controllers consumed by the focus package. Focus changes are
// queued as events and drained by the app.
//
// Header, Footer: top and bottom bars. The footer shows key help from a
// bubbles help model, or a transient flash message.
//
// LogViewer: overlay showing the debug log with level highlighting.
package ui
