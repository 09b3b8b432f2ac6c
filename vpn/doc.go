// Package vpn provides VPN tunnel toggling functionality for wg-toggle.
//
// This package implements:
//
//   - Toggling: bringing every registered tunnel up or down in one call
//   - Reporting: per-path outcomes aggregated into a Report
//   - Tool execution: running wg-quick (or another tool) behind sudo or pkexec
//   - Status: checking which registered tunnels currently have an interface
//
// # Architecture
//
//   - Manager: caller-facing operations over the path registry and toggler
//   - Toggler: reads the registry and drives a Runner for each path
//   - Runner: capability that applies one change; ExecRunner runs a subprocess
//   - Report/Result: structured outcomes with the text rendering in String()
//
// # Toggle Flow
//
//  1. Caller invokes Manager.Activate() or Manager.Deactivate()
//  2. Toggler lists every registered path; a read failure aborts the call
//  3. For each path the Runner executes "<tool> up|down <path>", one at a time
//  4. Each outcome (Success, Failed, Error) is appended to the Report
//  5. The Report is returned even when some or all paths failed
//
// # Thread Safety
//
// A single toggle is sequential. Concurrent Activate and Deactivate calls
// are not coordinated here; callers serialize them.
package vpn
