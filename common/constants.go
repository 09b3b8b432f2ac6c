// Package common provides shared constants, types, and utilities
// used across the wg-toggle application.
package common

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "com.wgtoggle.app"
	// AppName is the display name of the application.
	AppName = "WG Toggle"
	// ConfigDirName is the name of the configuration and data directories.
	ConfigDirName = "wg-toggle"
)

// File names used by the application.
const (
	ConfigFileName   = "config.yaml"
	DatabaseFileName = "vpn_paths.db"
	LogFileName      = "wg-toggle.log"
)

// External tool defaults.
const (
	// DefaultTool is the command that brings a tunnel up or down.
	DefaultTool = "wg-quick"
	// ConfigExtension is stripped from a config file name to get its interface name.
	ConfigExtension = ".conf"
	// SysClassNet is where the kernel lists existing network interfaces.
	SysClassNet = "/sys/class/net"
)

// Elevation modes for the external tool.
const (
	ElevateSudo   = "sudo"
	ElevatePkexec = "pkexec"
	ElevateNone   = "none"
)

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// TrayIconSize is the size of the system tray icon.
const TrayIconSize = 22
