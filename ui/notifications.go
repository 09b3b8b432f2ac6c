// Package ui provides the terminal and desktop presentation for wg-toggle.
// This file contains desktop notifications sent over the D-Bus session bus.
package ui

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/yllada/wg-toggle/common"
	"github.com/yllada/wg-toggle/vpn"
)

const (
	notifyDest      = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyMethod    = "org.freedesktop.Notifications.Notify"
	notifyTimeoutMs = 5000
)

// Notification urgency hint values.
const (
	urgencyNormal   byte = 1
	urgencyCritical byte = 2
)

// busCaller is the part of a D-Bus object used to send notifications.
type busCaller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DBusNotifier sends notifications through org.freedesktop.Notifications.
type DBusNotifier struct {
	obj     busCaller
	urgency byte
}

// NewDBusNotifier connects to the session bus.
func NewDBusNotifier() (*DBusNotifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DBusNotifier{
		obj:     conn.Object(notifyDest, dbus.ObjectPath(notifyPath)),
		urgency: urgencyNormal,
	}, nil
}

// Notify sends a notification with the default VPN icon.
func (n *DBusNotifier) Notify(title, message string) error {
	return n.NotifyWithIcon(title, message, "network-vpn")
}

// NotifyWithIcon sends a notification with a custom icon.
func (n *DBusNotifier) NotifyWithIcon(title, message, icon string) error {
	return n.send(title, message, icon, n.urgency)
}

// NotifyCritical sends a notification that stays until dismissed on most
// notification daemons.
func (n *DBusNotifier) NotifyCritical(title, message, icon string) error {
	return n.send(title, message, icon, urgencyCritical)
}

func (n *DBusNotifier) send(title, message, icon string, urgency byte) error {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(urgency),
		"desktop-entry": dbus.MakeVariant(common.AppID),
	}
	call := n.obj.Call(notifyMethod, 0,
		common.AppName,
		uint32(0),
		icon,
		title,
		message,
		[]string{},
		hints,
		int32(notifyTimeoutMs),
	)
	if call.Err != nil {
		return fmt.Errorf("notification failed: %w", call.Err)
	}
	return nil
}

// criticalNotifier is implemented by notifiers that support urgency.
type criticalNotifier interface {
	NotifyCritical(title, message, icon string) error
}

// NotifyReport summarizes a toggle report on the desktop.
// Errors are logged, never returned.
func NotifyReport(n common.Notifier, report *vpn.Report) {
	var err error
	title := report.Direction.String()
	if report.OK() {
		err = n.NotifyWithIcon(title, Summary(report), "network-vpn")
	} else {
		title += " finished with errors"
		if c, ok := n.(criticalNotifier); ok {
			err = c.NotifyCritical(title, Summary(report), "network-vpn-error")
		} else {
			err = n.NotifyWithIcon(title, Summary(report), "network-vpn-error")
		}
	}
	if err != nil {
		common.LogWarn("Error showing notification: %v", err)
	}
}
