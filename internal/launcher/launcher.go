// ABOUTME: Spawns desktop applications and opens web searches in the default browser
// ABOUTME: Fire-and-forget: success means the process was started, not that it stayed up
package launcher

import (
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/harper/vegra/internal/logger"
	"github.com/harper/vegra/internal/models"
	"go.uber.org/zap"
)

// DefaultSearchURL is used when no template is configured. {query} is replaced with the escaped query.
const DefaultSearchURL = "https://www.google.com/search?q={query}"

// Runner starts a process without waiting for it to exit
type Runner func(name string, args ...string) error

// Option configures a Launcher
type Option func(*Launcher)

// WithRunner replaces process spawning, mainly for tests
func WithRunner(r Runner) Option {
	return func(l *Launcher) { l.run = r }
}

// WithOS overrides the platform used to choose an opener
func WithOS(goos string) Option {
	return func(l *Launcher) { l.goos = goos }
}

// Launcher maps app keys to commands and runs them
type Launcher struct {
	apps      []models.App
	searchURL string
	goos      string
	run       Runner
}

// New creates a Launcher. Nil apps select the default table.
func New(apps []models.App, searchURL string, opts ...Option) *Launcher {
	if apps == nil {
		apps = models.DefaultApps
	}
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}
	l := &Launcher{
		apps:      apps,
		searchURL: searchURL,
		goos:      runtime.GOOS,
		run:       startDetached,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OpenApp starts the program registered under key
func (l *Launcher) OpenApp(key string) bool {
	command, ok := l.resolve(key)
	if !ok {
		logger.Log.Debug("no command for app", zap.String("app", key))
		return false
	}
	return l.start(command)
}

// SearchInBrowser opens the search URL for query. An empty query never spawns.
func (l *Launcher) SearchInBrowser(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}
	return l.start(l.SearchURL(query))
}

// SearchURL renders the search template for query
func (l *Launcher) SearchURL(query string) string {
	return strings.ReplaceAll(l.searchURL, "{query}", url.QueryEscape(strings.TrimSpace(query)))
}

// resolve finds the command for key: exact key first, then either containing the other
func (l *Launcher) resolve(key string) (string, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", false
	}
	for _, a := range l.apps {
		if a.Key == key {
			return a.Command, a.Command != ""
		}
	}
	for _, a := range l.apps {
		if strings.Contains(key, a.Key) || strings.Contains(a.Key, key) {
			return a.Command, a.Command != ""
		}
	}
	return "", false
}

func (l *Launcher) start(target string) bool {
	name, args := l.commandLine(target)
	if err := l.run(name, args...); err != nil {
		logger.Log.Warn("failed to start process",
			zap.String("target", target),
			zap.String("command", name),
			zap.Error(err),
		)
		return false
	}
	logger.Log.Debug("process started", zap.String("target", target))
	return true
}

// commandLine picks the platform opener for URLs, settings pages and browsers
func (l *Launcher) commandLine(target string) (string, []string) {
	opener := needsOpener(target)
	switch l.goos {
	case "windows":
		if opener {
			return "cmd", []string{"/c", "start", "", target}
		}
		return "cmd", []string{"/c", target}
	case "darwin":
		if strings.Contains(target, "://") {
			return "open", []string{target}
		}
		return "open", []string{"-a", target}
	default:
		if opener {
			return "xdg-open", []string{target}
		}
		fields := strings.Fields(target)
		return fields[0], fields[1:]
	}
}

func needsOpener(target string) bool {
	if strings.HasPrefix(target, "ms-") || strings.Contains(target, "://") {
		return true
	}
	switch target {
	case "chrome", "msedge", "firefox":
		return true
	}
	return false
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
