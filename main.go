// Package main provides the entry point for wg-toggle.
// wg-toggle keeps a list of wg-quick configuration files and brings all of
// them up or down at once, from the terminal or the system tray.
//
// Usage:
//
//	wg-toggle add /etc/wireguard/home.conf /etc/wireguard/work.conf
//	wg-toggle up
//	wg-toggle down
//	wg-toggle tray
//
// Environment:
//
//	The application requires wg-quick (wireguard-tools) on the system.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/wg-toggle/cli"
	"github.com/yllada/wg-toggle/common"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

func main() {
	// Cancel running tunnel commands on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := cli.New(cli.BuildInfo{
		Version:   appVersion,
		BuildTime: buildTime,
		Commit:    commitSHA,
	})
	code := app.Execute(ctx, os.Args[1:])

	stop()
	common.CloseLogger()
	os.Exit(code)
}
