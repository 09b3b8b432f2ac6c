// Package common provides shared constants, types, utilities, and interfaces
// used throughout wg-toggle.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: application name, file names, elevation and color modes
//   - Errors: sentinel errors for consistent error handling across packages
//   - Interfaces: abstractions for desktop notifications
//   - Logger: zerolog-backed logging with console and rotating file output
//   - Utils: application directories and small file helpers
//
// # Usage
//
//	// Use logger
//	common.LogInfo("Adding path %s", path)
//	common.Log().Debug().Str("path", path).Msg("running tool")
//
//	// Check errors
//	if errors.Is(err, common.ErrStorageUnavailable) {
//	    // Handle unreachable database
//	}
package common
