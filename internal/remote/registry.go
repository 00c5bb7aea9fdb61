package remote

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/GriffinCanCode/wdremote/internal/wderr"
)

// CommandEntry maps a command name to an HTTP method and a URL template
// with $name or ${name} placeholders.
type CommandEntry struct {
	Name        string
	Method      string
	URLTemplate string
}

// Registry maps command names to entries. Each connection owns one.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]CommandEntry
}

// NewRegistry returns a registry preloaded with BuiltinCommands.
func NewRegistry() *Registry {
	builtins := BuiltinCommands()
	r := &Registry{entries: make(map[string]CommandEntry, len(builtins))}
	for _, e := range builtins {
		r.entries[e.Name] = e
	}
	return r
}

// Register adds or silently replaces a command.
func (r *Registry) Register(name, method, template string) error {
	if name == "" {
		return wderr.NewConfigurationError("command", "name is required", nil)
	}
	m, err := normalizeMethod(method)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = CommandEntry{Name: name, Method: m, URLTemplate: template}
	return nil
}

// Resolve returns the entry most recently registered under name.
func (r *Registry) Resolve(name string) (CommandEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return CommandEntry{}, &wderr.UnknownCommandError{Command: name}
	}
	return e, nil
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func normalizeMethod(method string) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(method))
	switch m {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return m, nil
	}
	return "", wderr.NewConfigurationError("method", fmt.Sprintf("unsupported HTTP method %q", method), nil)
}
