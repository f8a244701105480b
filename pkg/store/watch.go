package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventDayChanged indicates the tasks or events of Day changed.
	EventDayChanged EventType = iota

	// EventDaysInvalidated signals a change that could not be traced to one
	// day; callers should reload whatever they show.
	EventDaysInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Day  string
}

// Affects reports whether ev may change what is stored for day.
func (ev Event) Affects(day string) bool {
	return ev.Type == EventDaysInvalidated || ev.Day == day
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				log.Warn().Err(err).Msg("store: watcher close")
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)
	go p.watchLoop(ctx, watcher, dirs, events, closeWatcher)
	return events, nil
}

// settle is how long the loop waits after a change before reporting it, so a
// store followed by a rename lands as one event.
const settle = 100 * time.Millisecond

func (p *persistence) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, dirs []string, events chan<- Event, done func()) {
	defer close(events)
	defer done()

	watched := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		watched[dir] = true
	}

	var (
		batch dayBatch
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	queue := func(ev Event) {
		batch.add(ev)
		if timer == nil {
			timer = time.NewTimer(settle)
			fire = timer.C
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-fire:
			timer, fire = nil, nil
			for _, ev := range batch.drain() {
				select {
				case events <- ev:
				default:
					log.Debug().Str("day", ev.Day).Msg("store: watch event dropped")
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Debug().Err(err).Msg("store: watcher error")
			queue(Event{Type: EventDaysInvalidated})
		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					dir := filepath.Clean(evt.Name)
					if !watched[dir] {
						if err := watcher.Add(dir); err != nil {
							log.Warn().Err(err).Str("dir", dir).Msg("store: watch")
						} else {
							watched[dir] = true
						}
					}
				}
			}
			queue(Event{Type: EventDayChanged, Day: p.dayForPath(evt.Name)})
		}
	}
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// dayForPath derives the day from a diskv path.
func (p *persistence) dayForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil {
		return ""
	}
	if rel == "." {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) == 0 {
		return ""
	}
	encoded := parts[0]
	if encoded == "" {
		return ""
	}
	day, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(day)
}

// dayBatch collects the days touched since the last report. A change that
// maps to no day turns the whole batch into one invalidation.
type dayBatch struct {
	days map[string]bool
	all  bool
}

func (b *dayBatch) add(ev Event) {
	if ev.Type == EventDaysInvalidated || ev.Day == "" {
		b.all = true
		return
	}
	if b.days == nil {
		b.days = make(map[string]bool)
	}
	b.days[ev.Day] = true
}

// drain returns the batch as events, days in order, and empties it.
func (b *dayBatch) drain() []Event {
	defer func() { *b = dayBatch{} }()
	if b.all {
		return []Event{{Type: EventDaysInvalidated}}
	}
	days := make([]string, 0, len(b.days))
	for day := range b.days {
		days = append(days, day)
	}
	sort.Strings(days)
	out := make([]Event, len(days))
	for i, day := range days {
		out[i] = Event{Type: EventDayChanged, Day: day}
	}
	return out
}
