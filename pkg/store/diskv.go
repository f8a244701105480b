package store

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog/log"

	"tableflip.dev/timeblock/pkg/entry"
)

// ErrInvalidEntry is returned for entries without a day or kind.
var ErrInvalidEntry = errors.New("store: entry needs a day and a kind")

// Config locates the store on disk.
type Config interface {
	BasePath() string
}

// Persistence defines the persistence contract for a day's tasks and events.
type Persistence interface {
	List(ctx context.Context, day string) []*entry.Entry
	Days(ctx context.Context) []string
	Store(e *entry.Entry) error
	Delete(e *entry.Entry) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil || cfg.BasePath() == "" {
		return nil, errors.New("store: base path required")
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	pk := keyToPathTransform(key)
	e.ID = pk.FileName
	return e, nil
}

func (p *persistence) List(ctx context.Context, day string) []*entry.Entry {
	dk := toDay(day)
	all := make([]*entry.Entry, 0)
	for key := range p.d.KeysPrefix(dk+"-", ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("store: skipping unreadable entry")
			continue
		}
		all = append(all, e)
	}
	sortEntries(all)
	return all
}

func (p *persistence) Days(ctx context.Context) []string {
	seen := make(map[string]struct{})
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) == 0 {
			continue
		}
		seen[fromDay(pk.Path[0])] = struct{}{}
	}
	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

func (p *persistence) Store(e *entry.Entry) error {
	if e == nil || e.Day == "" || e.Kind == "" {
		return ErrInvalidEntry
	}
	key := toKey(e)
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Delete(e *entry.Entry) error {
	if e == nil || e.Day == "" || e.Kind == "" || e.ID == "" {
		return ErrInvalidEntry
	}
	return p.d.Erase(toKey(e))
}

// sortEntries orders events by start, then tasks by file and line, then by
// creation.
func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left := entries[i]
		right := entries[j]
		if left.Kind != right.Kind {
			return left.Kind == entry.KindEvent
		}
		if left.Kind == entry.KindEvent && left.Start != nil && right.Start != nil && !left.Start.Equal(right.Start.Time) {
			return left.Start.Before(right.Start.Time)
		}
		if left.Filename != right.Filename {
			return left.Filename < right.Filename
		}
		if left.LineIndex != right.LineIndex {
			return left.LineIndex < right.LineIndex
		}
		lt := left.Created.Time
		rt := right.Created.Time
		if lt.Equal(rt) {
			return left.ID < right.ID
		}
		return lt.Before(rt)
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `day-kind-id`
func toKey(e *entry.Entry) string {
	if e.ID == "" {
		b, _ := json.Marshal(e)
		id := md5.Sum(b)
		e.ID = fmt.Sprintf("%x", id[:8])
	}

	return fmt.Sprintf("%s-%s-%s", toDay(e.Day), e.Kind, e.ID)
}

func toDay(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func fromDay(s string) string {
	day, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromDay: %s", err)
	}
	return string(day)
}
