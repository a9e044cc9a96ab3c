package testfixtures

import "testing"

func TestIDGeneratorProducesSequentialIDs(t *testing.T) {
	gen := NewIDGenerator("invite")

	if first, second := gen.Next(), gen.Next(); first != "invite-1" || second != "invite-2" {
		t.Fatalf("unexpected identifiers: %q, %q", first, second)
	}
}

func TestIDGeneratorDefaultsPrefix(t *testing.T) {
	gen := NewIDGenerator("")

	if next := gen.Next(); next != "sched-1" {
		t.Fatalf("expected sched-1, got %q", next)
	}
}

func TestIDGeneratorReset(t *testing.T) {
	gen := NewIDGenerator("group")
	_ = gen.Next()
	_ = gen.Next()
	gen.Reset("event")

	if next := gen.Next(); next != "event-1" {
		t.Fatalf("expected event-1 after reset, got %q", next)
	}
}
