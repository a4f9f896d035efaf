package notify

import "github.com/gen2brain/beeep"

// DesktopNotifier raises OS desktop notifications.
type DesktopNotifier struct {
	appName string
}

// NewDesktopNotifier constructs a DesktopNotifier. appName is shown by
// platforms that surface the sending application.
func NewDesktopNotifier(appName string) *DesktopNotifier {
	return &DesktopNotifier{appName: appName}
}

// Notify presents a desktop notification.
func (n *DesktopNotifier) Notify(title, body string) error {
	beeep.AppName = n.appName
	return beeep.Notify(title, body, "")
}

var _ Notifier = (*DesktopNotifier)(nil)
