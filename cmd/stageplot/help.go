package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

// UsageError reports a command line that cannot be run. Error renders the
// command's help, prefixed by the reason when there is one.
type UsageError struct {
	of     HelpData
	reason string
}

func usageError(h HelpData, format string, args ...any) *UsageError {
	return &UsageError{of: h, reason: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	if e.reason == "" {
		return help
	}
	return fmt.Sprintf("%s: %s\n\n%s", e.of.Program(), e.reason, help)
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

func usageFunc(h HelpData) func() {
	return func() {
		fmt.Fprint(os.Stderr, (&UsageError{of: h}).Error())
	}
}

func (r *root) Template() string { return "root.txt" }
func (c *editCmd) Template() string { return "edit.txt" }
func (c *newCmd) Template() string { return "new.txt" }
func (c *listCmd) Template() string { return "list.txt" }
func (c *placeCmd) Template() string { return "place.txt" }
func (c *exportCmd) Template() string { return "export.txt" }
func (c *importCmd) Template() string { return "import.txt" }
func (c *presetCmd) Template() string { return "preset.txt" }
func (c *templatesCmd) Template() string { return "templates.txt" }
func (c *configCmd) Template() string { return "config.txt" }
func (v *versionCmd) Template() string { return "version.txt" }
