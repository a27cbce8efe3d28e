package autoload

import "sync"

// InstallOutcome reports the effect of a Table.Install call.
type InstallOutcome int

const (
	// Installed means the candidate handler was installed and is now
	// visible to all subsequent lookups.
	Installed InstallOutcome = iota
	// AlreadyPresent means another install for the name won the race;
	// the candidate was discarded and callers must use the handler
	// already in the table.
	AlreadyPresent
)

// Table maps names to installed handlers. It is safe for concurrent use:
// lookups never block each other and installs are atomic first-writer-wins.
// Installs happen only through the generation coordinator.
type Table struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewTable creates an empty dispatch table.
func NewTable() *Table {
	return &Table{
		handlers: make(map[string]Handler),
	}
}

// Lookup returns the handler installed for name.
// Returns false if no handler is installed.
func (t *Table) Lookup(name string) (Handler, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	h, ok := t.handlers[name]
	return h, ok
}

// Install atomically installs h for name. At most one install per name
// takes effect; concurrent and later installs observe AlreadyPresent and
// must use the handler already present.
func (t *Table) Install(name string, h Handler) InstallOutcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.handlers[name]; ok {
		return AlreadyPresent
	}
	t.handlers[name] = h
	return Installed
}

// Names returns all names with an installed handler.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.handlers))
	for name := range t.handlers {
		names = append(names, name)
	}
	return names
}

// Len returns the number of installed handlers.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.handlers)
}
