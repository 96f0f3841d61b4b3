package domain

import (
	"testing"
	"time"
)

func TestNewGreeting_WithoutTarget(t *testing.T) {
	g := NewGreeting(0)

	if g.Message != WelcomeEmote {
		t.Errorf("expected message %q, got %q", WelcomeEmote, g.Message)
	}
}

func TestNewGreeting_MentionsTarget(t *testing.T) {
	g := NewGreeting(42)

	expected := "Welcome, <@42>! " + WelcomeEmote
	if g.Message != expected {
		t.Errorf("expected message %q, got %q", expected, g.Message)
	}
	if g.TargetID != 42 {
		t.Errorf("expected target 42, got %s", g.TargetID)
	}
}

func TestGreeting_TimestampIsRecent(t *testing.T) {
	before := time.Now()
	g := NewGreeting(0)
	after := time.Now()

	if g.Timestamp.Before(before) || g.Timestamp.After(after) {
		t.Error("expected timestamp to be between before and after")
	}
}
