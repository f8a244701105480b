// Package storetest provides an in-memory store.Persistence for tests.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"tableflip.dev/timeblock/pkg/entry"
	"tableflip.dev/timeblock/pkg/store"
)

// Memory keeps entries per day. Store and Delete emit EventDayChanged on
// every channel returned by Watch.
type Memory struct {
	mu       sync.Mutex
	counter  int
	days     map[string]map[string]*entry.Entry
	watchers []chan store.Event
}

var _ store.Persistence = (*Memory)(nil)

func NewMemory(entries ...*entry.Entry) *Memory {
	m := &Memory{days: make(map[string]map[string]*entry.Entry)}
	for _, e := range entries {
		if err := m.put(e); err != nil {
			panic(err)
		}
	}
	return m
}

func (m *Memory) newID() string {
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

func (m *Memory) put(e *entry.Entry) error {
	if e == nil || e.Day == "" || e.Kind == "" {
		return store.ErrInvalidEntry
	}
	if e.ID == "" {
		e.ID = m.newID()
	}
	if m.days[e.Day] == nil {
		m.days[e.Day] = make(map[string]*entry.Entry)
	}
	cp := *e
	m.days[e.Day][e.ID] = &cp
	return nil
}

func (m *Memory) List(_ context.Context, day string) []*entry.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.days[day]
	out := make([]*entry.Entry, 0, len(items))
	for _, e := range items {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Memory) Days(_ context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	days := make([]string, 0, len(m.days))
	for d := range m.days {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

func (m *Memory) Store(e *entry.Entry) error {
	m.mu.Lock()
	err := m.put(e)
	m.mu.Unlock()
	if err == nil {
		m.notify(e.Day)
	}
	return err
}

func (m *Memory) Delete(e *entry.Entry) error {
	if e == nil {
		return errors.New("nil entry")
	}
	m.mu.Lock()
	items := m.days[e.Day]
	if _, ok := items[e.ID]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("entry %q not found", e.ID)
	}
	delete(items, e.ID)
	if len(items) == 0 {
		delete(m.days, e.Day)
	}
	m.mu.Unlock()
	m.notify(e.Day)
	return nil
}

func (m *Memory) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event, 16)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()
	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

func (m *Memory) notify(day string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.watchers {
		select {
		case w <- store.Event{Type: store.EventDayChanged, Day: day}:
		default:
		}
	}
}
