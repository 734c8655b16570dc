// Package notify tells the user when a stage plot was saved, exported or
// copied.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/stageplot/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when a configuration is written to the store.
	EventSave Event = "save"
	// EventExport fires when a PNG or JSON file is written.
	EventExport Event = "export"
	// EventCopy fires when a plot is placed on the clipboard.
	EventCopy Event = "copy"
)

// Events lists every event in display order.
var Events = []Event{EventSave, EventExport, EventCopy}

// Preferences holds the title and per-event message templates. Each
// template receives one %s with the event detail.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in messages.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.DefaultAppName,
		Templates: map[Event]string{
			EventSave:   "Saved %s",
			EventExport: "Exported %s",
			EventCopy:   "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies STAGEPLOT_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("STAGEPLOT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, e := range Events {
		key := "STAGEPLOT_NOTIFY_" + strings.ToUpper(string(e)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[e] = v
		}
	}
	return prefs
}

// send is replaced in tests.
var send = platform.Notify

// Notifier sends notifications for the events enabled on it. A nil
// Notifier is valid and sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	logger  *log.Logger
}

// New returns a notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	n := &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))},
		enabled: make(map[Event]bool),
		logger:  log.Default(),
	}
	for k, v := range prefs.Templates {
		n.prefs.Templates[k] = v
	}
	return n
}

// Enable turns an event on or off.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[event] = on
}

// Enabled reports whether event is on.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Save announces a stored configuration.
func (n *Notifier) Save(name string) {
	if strings.TrimSpace(name) == "" {
		name = "stage plot"
	}
	n.dispatch(EventSave, name, platform.Options{})
}

// Export announces a written file and shows it as the icon when it is a
// PNG that exists.
func (n *Notifier) Export(path string) {
	detail := path
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if strings.EqualFold(filepath.Ext(abs), ".png") {
			if _, err := os.Stat(abs); err == nil {
				opts.IconPath = abs
			}
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy announces a clipboard copy.
func (n *Notifier) Copy(what string) {
	if strings.TrimSpace(what) == "" {
		what = "image"
	}
	n.dispatch(EventCopy, what, platform.Options{})
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.Enabled(event) {
		return
	}
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := tmpl
	if strings.Contains(tmpl, "%s") {
		body = fmt.Sprintf(tmpl, strings.TrimSpace(detail))
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		n.logger.Printf("notification %s: %v", event, err)
	}
}
