//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyCall  = "org.freedesktop.Notifications.Notify"
	expireByApp = int32(-1)
)

// Notify sends a notification over the session bus.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}
	defer conn.Close()

	timeout := opts.TimeoutMillis
	if timeout == 0 {
		timeout = expireByApp
	}
	hints := map[string]dbus.Variant{"category": dbus.MakeVariant("transfer.complete")}
	call := conn.Object(notifyDest, notifyPath).Call(notifyCall, 0,
		opts.appName(), uint32(0), opts.IconPath, title, body, []string{}, hints, timeout)
	return call.Err
}
