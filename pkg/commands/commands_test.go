package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"tableflip.dev/timeblock/pkg/config"
	"tableflip.dev/timeblock/pkg/entry"
	"tableflip.dev/timeblock/pkg/store"
)

func testEnv(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	db := filepath.Join(dir, "db")
	file := filepath.Join(dir, ".timeblock.yaml")
	body := fmt.Sprintf("path: %s\nworkDayStart: \"09:00\"\nworkDayEnd: \"17:00\"\n", db)
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return file, db
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(&discard{})
	cmd.SetErr(&discard{})
	return cmd.Execute()
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestCommandTree(t *testing.T) {
	cmd := New()
	for _, name := range []string{"schedule", "add", "import", "get", "remove", "key", "info", "version", "completion"} {
		if c, _, err := cmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("missing command %q", name)
		}
	}
	if c, _, err := cmd.Find([]string{"add", "event"}); err != nil || c.Name() != "event" {
		t.Errorf("missing add event")
	}
}

func TestAddAndSchedule(t *testing.T) {
	file, db := testEnv(t)

	if err := run(t, "--config", file, "add", "task", "write", "'30m", "--day", "2026-10-19"); err != nil {
		t.Fatalf("add task: %v", err)
	}
	if err := run(t, "--config", file, "add", "event", "standup", "--start", "09:00", "--end", "09:15", "--day", "2026-10-19"); err != nil {
		t.Fatalf("add event: %v", err)
	}

	cfg, err := config.Load(file)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Path != db {
		t.Fatalf("expected store at %s, got %s", db, cfg.Path)
	}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	got := p.List(context.Background(), "2026-10-19")
	if len(got) != 2 || got[0].Kind != entry.KindEvent {
		t.Fatalf("unexpected stored entries %+v", got)
	}

	if err := run(t, "--config", file, "schedule", "--day", "2026-10-19", "--json"); err != nil {
		t.Fatalf("schedule: %v", err)
	}
}

func TestScheduleFromPlan(t *testing.T) {
	file, _ := testEnv(t)
	planFile := filepath.Join(filepath.Dir(file), "day.yaml")
	body := "day: 2026-10-19\ntasks:\n  - content: \"email '15m\"\n"
	if err := os.WriteFile(planFile, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(t, "--config", file, "schedule", "--from", planFile, "--yaml", "--now", "10:00"); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := run(t, "--config", file, "schedule", "--from", planFile, "--mode", "FASTEST"); err == nil {
		t.Fatalf("expected an unknown mode error")
	}
	if err := run(t, "--config", file, "schedule", "--from", planFile, "--watch"); err == nil {
		t.Fatalf("expected --watch with --from to fail")
	}
}

func TestFilterPrefix(t *testing.T) {
	got := filterPrefix([]string{"today", "tomorrow", "2026-10-19"}, "to")
	if len(got) != 2 || got[0] != "today" || got[1] != "tomorrow" {
		t.Fatalf("unexpected completions %v", got)
	}
}
