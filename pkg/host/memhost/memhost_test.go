package memhost

import (
	"testing"

	"github.com/gurugeek/m4d-router/pkg/host"
)

func TestPushHistory(t *testing.T) {
	h := New("/")

	h.PushHistory("Users", "/users")

	if got := h.CurrentPath(); got != "/users" {
		t.Errorf("CurrentPath() = %q, want %q", got, "/users")
	}
	if got := h.HistoryLen(); got != 2 {
		t.Errorf("HistoryLen() = %d, want 2", got)
	}
}

func TestAssignLocationFragmentEmitsHashChange(t *testing.T) {
	h := New("/")

	changes := 0
	h.OnHashChange(func() { changes++ })

	h.AssignLocation("#/users/42")

	if got := h.CurrentPath(); got != "/#/users/42" {
		t.Errorf("CurrentPath() = %q, want %q", got, "/#/users/42")
	}
	if changes != 1 {
		t.Errorf("hash changes = %d, want 1", changes)
	}
}

func TestAssignLocationIdenticalURLEmitsNothing(t *testing.T) {
	h := New("/")
	h.AssignLocation("#/home")

	changes := 0
	h.OnHashChange(func() { changes++ })

	h.AssignLocation("#/home")

	if changes != 0 {
		t.Errorf("hash changes = %d, want 0", changes)
	}
}

func TestAssignLocationNewPathnameEmitsNothing(t *testing.T) {
	h := New("/")

	changes := 0
	h.OnHashChange(func() { changes++ })

	// A pathname change is a full load, not a fragment navigation.
	h.AssignLocation("/other")

	if changes != 0 {
		t.Errorf("hash changes = %d, want 0", changes)
	}
	if got := h.CurrentPath(); got != "/other" {
		t.Errorf("CurrentPath() = %q, want %q", got, "/other")
	}
}

func TestBackEmitsPopState(t *testing.T) {
	h := New("/")
	h.PushHistory("", "/users")

	pops := 0
	h.OnPopState(func() { pops++ })

	h.Back()

	if pops != 1 {
		t.Errorf("pops = %d, want 1", pops)
	}
	if got := h.CurrentPath(); got != "/" {
		t.Errorf("CurrentPath() = %q, want %q", got, "/")
	}

	// Bottom of the stack: nothing happens.
	h.Back()
	if pops != 1 {
		t.Errorf("pops after bottom = %d, want 1", pops)
	}
}

func TestClickDelivery(t *testing.T) {
	h := New("/")

	var seen []host.Click
	cancel := h.OnClick(func(c host.Click) bool {
		seen = append(seen, c)
		return c.SameHost
	})

	if !h.Click(host.Click{SameHost: true, Path: "/users/1"}) {
		t.Error("same-host click should be claimed")
	}
	if h.Click(host.Click{SameHost: false, Path: "https://elsewhere/x"}) {
		t.Error("cross-host click should not be claimed")
	}
	if len(seen) != 2 {
		t.Errorf("len(seen) = %d, want 2", len(seen))
	}

	cancel()
	if h.Click(host.Click{SameHost: true}) {
		t.Error("cancelled subscriber should not claim clicks")
	}
}

func TestWithoutPushState(t *testing.T) {
	h := New("/", WithoutPushState())
	if h.SupportsPushState() {
		t.Error("SupportsPushState() = true, want false")
	}
	if !New("/").SupportsPushState() {
		t.Error("default SupportsPushState() = false, want true")
	}
}

func TestSetDocumentTitle(t *testing.T) {
	h := New("/")
	h.SetDocumentTitle("Home")
	if got := h.Title(); got != "Home" {
		t.Errorf("Title() = %q, want %q", got, "Home")
	}
}
