package glyph

import (
	"fmt"
	"strings"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Noun    string
	Aliases []string
}

func DefaultGlyphs() []Glyph {
	g := make([]Glyph, 0, 6)

	g = append(g, Glyph{
		Key:     "+",
		Symbol:  "●",
		Meaning: "task waiting for a time block",
		Noun:    "tasks",
		Aliases: []string{"task", "todo", "todos"},
	}, Glyph{
		Key:     "o",
		Symbol:  "○",
		Meaning: "calendar event",
		Noun:    "events",
		Aliases: []string{"event", "meeting", "meetings"},
	}, Glyph{
		Key:     "*",
		Symbol:  "✷",
		Meaning: "task placed in a time block",
	}, Glyph{
		Key:     "-",
		Symbol:  "⁃",
		Meaning: "open time",
	}, Glyph{
		Key:     "x",
		Symbol:  "✘",
		Meaning: "task with no room today",
	}, Glyph{
		Key:     "",
		Symbol:  "",
		Meaning: "any",
		Noun:    "all",
		Aliases: []string{"any", "everything"},
	})

	return g
}

func (g Glyph) String() string {
	return g.Symbol
}

type Bullet int

const (
	Task Bullet = iota
	Event
	Scheduled
	Open
	Unscheduled
	Any
)

func (b Bullet) Glyph() Glyph {
	return DefaultGlyphs()[b]
}

func (b Bullet) String() string {
	return b.Glyph().String()
}

// BulletForAlias finds the bullet named by its noun, an alias or its key.
func BulletForAlias(alias string) (Bullet, error) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	for i, g := range DefaultGlyphs() {
		if g.Noun == "" {
			continue
		}
		if alias == g.Noun || alias == g.Key {
			return Bullet(i), nil
		}
		for _, a := range g.Aliases {
			if alias == a {
				return Bullet(i), nil
			}
		}
	}
	return Any, fmt.Errorf("unknown bullet %q", alias)
}
