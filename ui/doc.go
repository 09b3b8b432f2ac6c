// Package ui provides the terminal and desktop presentation for wg-toggle.
//
// Nothing here decides outcomes; every type renders a vpn.Report produced
// elsewhere.
//
//   - styles.go: lipgloss rendering of report lines
//   - progress.go: bubbletea spinner shown while toggling on a terminal
//   - notifications.go: desktop notifications over D-Bus
//   - tray.go: system tray with "Activate all" and "Deactivate all"
//   - icons.go: tray icon drawing
//
// Plain (uncolored) rendering of a report is byte-identical to
// vpn.Report.String, so scripts can parse the output either way.
package ui
