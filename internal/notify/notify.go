package notify

import (
	"sort"
	"sync"
	"time"
)

// Notification is a status message posted under a stable ID. Posting again
// with the same ID replaces the previous message.
type Notification struct {
	ID       int
	Title    string
	Content  string
	Ongoing  bool
	PostedAt time.Time
}

type Notifier interface {
	Notify(n Notification)
	Cancel(id int)
}

// Tray keeps the currently posted notifications so the UI can draw them.
type Tray struct {
	mu      sync.RWMutex
	entries map[int]Notification
}

func NewTray() *Tray {
	return &Tray{entries: make(map[int]Notification)}
}

func (t *Tray) Notify(n Notification) {
	if n.PostedAt.IsZero() {
		n.PostedAt = time.Now()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[n.ID] = n
}

func (t *Tray) Cancel(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

func (t *Tray) Get(id int) (Notification, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.entries[id]
	return n, ok
}

// Active returns the posted notifications ordered by ID.
func (t *Tray) Active() []Notification {
	t.mu.RLock()
	defer t.mu.RUnlock()

	active := make([]Notification, 0, len(t.entries))
	for _, n := range t.entries {
		active = append(active, n)
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].ID < active[j].ID
	})
	return active
}
