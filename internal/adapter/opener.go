package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Opener opens show pages in an external browser
type Opener struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments for the browser
	logger  *slog.Logger

	// Replaceable in tests
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// openPath defines a single way to open a URL
type openPath struct {
	path string   // Command name looked up in PATH
	args []string // Arguments placed before the URL
}

// candidateOpeners defines the system handlers to try for each platform
var candidateOpeners = map[string][]openPath{
	"darwin": {{path: "open"}},
	"linux": {
		{path: "xdg-open"},
		{path: "sensible-browser"},
		{path: "x-www-browser"},
	},
	"windows": {
		{path: "rundll32", args: []string{"url.dll,FileProtocolHandler"}},
		{path: "cmd", args: []string{"/c", "start", ""}},
	},
}

// NewOpener creates an Opener. An empty command selects the system default.
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command:  command,
		args:     args,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start() // Start async, don't wait
		},
	}
}

// Open opens url in the configured browser or the first available system
// handler
func (o *Opener) Open(url string) error {
	if url == "" {
		return fmt.Errorf("show has no page URL")
	}

	// Tier 1: User configured a specific browser
	if o.command != "" {
		args := append(append([]string{}, o.args...), url)
		o.logger.Info("opening with configured browser", "command", o.command, "url", url)
		return o.start(o.command, args...)
	}

	// Tier 2: Platform handlers in order
	candidates, ok := candidateOpeners[runtime.GOOS]
	if !ok {
		candidates = candidateOpeners["linux"]
	}
	for _, op := range candidates {
		if _, err := o.lookPath(op.path); err != nil {
			o.logger.Debug("opener not available", "path", op.path, "error", err)
			continue
		}
		args := append(append([]string{}, op.args...), url)
		if err := o.start(op.path, args...); err != nil {
			o.logger.Debug("opener failed", "path", op.path, "error", err)
			continue
		}
		o.logger.Info("opened with system handler", "path", op.path, "url", url)
		return nil
	}

	return fmt.Errorf("no browser found; set ui.browser in the config")
}
