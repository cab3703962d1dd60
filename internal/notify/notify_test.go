package notify

import (
	"testing"
	"time"
)

func TestTrayReplacesByID(t *testing.T) {
	tray := NewTray()
	tray.Notify(Notification{ID: 1, Title: "Timer: Running"})
	tray.Notify(Notification{ID: 1, Title: "Timer: Stopped"})

	active := tray.Active()
	if len(active) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(active))
	}
	if active[0].Title != "Timer: Stopped" {
		t.Fatalf("unexpected title: %q", active[0].Title)
	}
	if active[0].PostedAt.IsZero() {
		t.Fatalf("expected PostedAt to be stamped")
	}
}

func TestTrayKeepsPostedAt(t *testing.T) {
	tray := NewTray()
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tray.Notify(Notification{ID: 7, PostedAt: at})
	n, ok := tray.Get(7)
	if !ok {
		t.Fatalf("expected notification 7")
	}
	if !n.PostedAt.Equal(at) {
		t.Fatalf("expected %v, got %v", at, n.PostedAt)
	}
}

func TestTrayCancel(t *testing.T) {
	tray := NewTray()
	tray.Notify(Notification{ID: 2})
	tray.Notify(Notification{ID: 1})
	tray.Cancel(2)

	if _, ok := tray.Get(2); ok {
		t.Fatalf("expected notification 2 to be cancelled")
	}
	active := tray.Active()
	if len(active) != 1 || active[0].ID != 1 {
		t.Fatalf("unexpected active notifications: %#v", active)
	}

	// cancelling an unknown id is a no-op
	tray.Cancel(42)
}

func TestTrayActiveOrder(t *testing.T) {
	tray := NewTray()
	tray.Notify(Notification{ID: 3})
	tray.Notify(Notification{ID: 1})
	tray.Notify(Notification{ID: 2})

	active := tray.Active()
	for i, n := range active {
		if n.ID != i+1 {
			t.Fatalf("expected id %d at %d, got %d", i+1, i, n.ID)
		}
	}
}
