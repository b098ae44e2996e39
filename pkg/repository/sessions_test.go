package repository

import (
	"testing"
	"time"

	"github.com/ThisisBizness/Study-Buddy/pkg/chat"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	if _, ok := repo.GetByID("missing"); ok {
		t.Error("expected miss for unknown id")
	}

	session := chat.NewSession("s1", nil)
	repo.Save(session)

	got, ok := repo.GetByID("s1")
	if !ok || got != session {
		t.Fatalf("GetByID returned %v, %v", got, ok)
	}

	repo.Delete("s1")
	if _, ok := repo.GetByID("s1"); ok {
		t.Error("expected miss after delete")
	}
}

func TestSessionRepositoryTTL(t *testing.T) {
	repo := NewSessionRepository(time.Nanosecond)
	repo.Save(chat.NewSession("s1", nil))

	time.Sleep(time.Millisecond)
	if _, ok := repo.GetByID("s1"); ok {
		t.Error("expected expired session to be dropped")
	}
}
