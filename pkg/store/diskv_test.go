package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/timeblock/pkg/entry"
)

func TestPersistenceStoreListDelete(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx := context.Background()

	task := entry.NewTask("2026-10-19", "write report '1h")
	task.LineIndex = 2
	early := entry.NewTask("2026-10-19", "email")
	early.LineIndex = 1
	standup := entry.NewEvent("2026-10-19", "Standup",
		time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 19, 9, 15, 0, 0, time.UTC))
	other := entry.NewTask("2026-10-20", "tomorrow")

	for _, e := range []*entry.Entry{task, early, standup, other} {
		if err := p.Store(e); err != nil {
			t.Fatalf("store %q: %v", e.Content, err)
		}
		if e.ID == "" {
			t.Fatalf("store should assign an id")
		}
	}

	got := p.List(ctx, "2026-10-19")
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	want := []string{"Standup", "email", "write report '1h"}
	for i, w := range want {
		if got[i].Content != w {
			t.Errorf("entry %d: expected %q, got %q", i, w, got[i].Content)
		}
	}
	if got[0].Start == nil || !got[0].Start.Equal(standup.Start.Time) {
		t.Fatalf("event start not preserved: %+v", got[0])
	}

	days := p.Days(ctx)
	if len(days) != 2 || days[0] != "2026-10-19" || days[1] != "2026-10-20" {
		t.Fatalf("unexpected days %v", days)
	}

	if err := p.Delete(got[1]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := len(p.List(ctx, "2026-10-19")); n != 2 {
		t.Fatalf("expected 2 entries after delete, got %d", n)
	}
}

func TestPersistenceRejectsIncompleteEntries(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if err := p.Store(&entry.Entry{Content: "no day"}); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
	if err := p.Delete(&entry.Entry{Day: "2026-10-19", Kind: entry.KindTask}); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
}

func TestLoadRequiresPath(t *testing.T) {
	if _, err := Load(testConfig{}); err == nil {
		t.Fatalf("expected an error without a base path")
	}
}

func TestKeyTransformRoundTrip(t *testing.T) {
	e := &entry.Entry{ID: "abc", Day: "2026-10-19", Kind: entry.KindEvent}
	key := toKey(e)
	pk := keyToPathTransform(key)
	if pathToKeyTransform(pk) != key {
		t.Fatalf("round trip changed %q", key)
	}
	if fromDay(pk.Path[0]) != "2026-10-19" || pk.Path[1] != "event" || pk.FileName != "abc" {
		t.Fatalf("unexpected path key %+v", pk)
	}
}
