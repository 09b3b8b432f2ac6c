// Package ui provides the terminal and desktop presentation for wg-toggle.
// This file contains the system tray indicator.
package ui

import (
	"context"
	"fmt"
	"sync"

	"fyne.io/systray"

	"github.com/yllada/wg-toggle/common"
	"github.com/yllada/wg-toggle/vpn"
)

// Toggler is the subset of vpn.Manager the tray drives.
type Toggler interface {
	Activate(ctx context.Context) (*vpn.Report, error)
	Deactivate(ctx context.Context) (*vpn.Report, error)
}

// TrayIndicator shows a tray icon with "Activate all", "Deactivate all"
// and "Quit". Clicks are serialized: a toggle never overlaps another.
type TrayIndicator struct {
	ctx      context.Context
	manager  Toggler
	notifier common.Notifier

	mu    sync.Mutex
	state TrayState

	activateItem   *systray.MenuItem
	deactivateItem *systray.MenuItem

	// setState is replaced in tests; it defaults to updating systray.
	setState func(TrayState, string)
}

// NewTrayIndicator creates a tray bound to manager. notifier may be nil.
func NewTrayIndicator(ctx context.Context, manager Toggler, notifier common.Notifier) *TrayIndicator {
	t := &TrayIndicator{
		ctx:      ctx,
		manager:  manager,
		notifier: notifier,
		state:    StateIdle,
	}
	t.setState = t.applyState
	return t
}

// Run starts the tray and blocks until Quit is clicked or ctx is done.
func (t *TrayIndicator) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayIndicator) onReady() {
	t.applyState(StateIdle, "")
	systray.SetTitle(common.AppName)

	t.activateItem = systray.AddMenuItem("Activate all", "Bring every registered tunnel up")
	t.deactivateItem = systray.AddMenuItem("Deactivate all", "Bring every registered tunnel down")
	systray.AddSeparator()
	quitItem := systray.AddMenuItem("Quit", "Close "+common.AppName)

	go func() {
		for {
			select {
			case <-t.activateItem.ClickedCh:
				go t.Toggle(vpn.Up)
			case <-t.deactivateItem.ClickedCh:
				go t.Toggle(vpn.Down)
			case <-quitItem.ClickedCh:
				systray.Quit()
				return
			case <-t.ctx.Done():
				systray.Quit()
				return
			}
		}
	}()

	common.LogInfo("Tray indicator ready")
}

func (t *TrayIndicator) onExit() {
	common.LogInfo("Tray indicator cleanup completed")
}

// Toggle runs one direction and updates the icon. It returns the report,
// or nil when the path list could not be read.
func (t *TrayIndicator) Toggle(dir vpn.Direction) *vpn.Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.setMenuEnabled(false)
	defer t.setMenuEnabled(true)

	var report *vpn.Report
	var err error
	if dir == vpn.Up {
		report, err = t.manager.Activate(t.ctx)
	} else {
		report, err = t.manager.Deactivate(t.ctx)
	}

	if err != nil {
		common.LogError("Tray: %s failed: %v", dir, err)
		t.state = StateDegraded
		t.setState(t.state, err.Error())
		if t.notifier != nil {
			if nerr := t.notifier.NotifyWithIcon(dir.String()+" failed", err.Error(), "network-vpn-error"); nerr != nil {
				common.LogWarn("Error showing notification: %v", nerr)
			}
		}
		return nil
	}

	t.state = StateFor(report)
	t.setState(t.state, Summary(report))
	if t.notifier != nil {
		NotifyReport(t.notifier, report)
	}
	return report
}

// State returns the state of the last toggle.
func (t *TrayIndicator) State() TrayState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// StateFor maps a finished report to the icon state.
func StateFor(report *vpn.Report) TrayState {
	switch {
	case !report.OK():
		return StateDegraded
	case report.Direction == vpn.Up && len(report.Results) > 0:
		return StateActive
	default:
		return StateIdle
	}
}

func (t *TrayIndicator) setMenuEnabled(enabled bool) {
	for _, item := range []*systray.MenuItem{t.activateItem, t.deactivateItem} {
		if item == nil {
			continue
		}
		if enabled {
			item.Enable()
		} else {
			item.Disable()
		}
	}
}

func (t *TrayIndicator) applyState(state TrayState, detail string) {
	icon, err := TrayIcon(state)
	if err != nil {
		common.LogWarn("Failed to draw tray icon: %v", err)
	} else {
		systray.SetIcon(icon)
	}

	tooltip := fmt.Sprintf("%s - %s", common.AppName, state)
	if detail != "" {
		tooltip += " (" + detail + ")"
	}
	systray.SetTooltip(tooltip)
}
