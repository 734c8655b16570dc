// Package platform delivers desktop notifications through the host OS.
package platform

// DefaultAppName identifies stageplot to notification daemons.
const DefaultAppName = "StagePlot"

// Options configures how a notification is displayed.
type Options struct {
	// AppName overrides DefaultAppName.
	AppName string
	// IconPath is an image shown with the notification where supported.
	IconPath string
	// TimeoutMillis is how long the notification stays up. Zero lets the
	// platform decide.
	TimeoutMillis int32
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}
