package timeblock

import (
	"reflect"
	"testing"
	"time"
)

func allDay() Config {
	cfg := testConfig()
	cfg.WorkDayStart = "00:00"
	cfg.WorkDayEnd = "24:00"
	return cfg
}

func TestFindOpenBlocksAllFree(t *testing.T) {
	cfg := allDay()
	blocks := FindOpenBlocks(FilterToOpenSlots(BlankDayMap(5), cfg), cfg)
	want := []OpenBlock{{Start: "00:00", End: "23:59", MinsAvailable: 1439}}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("expected %+v, got %+v", want, blocks)
	}
}

func TestFindOpenBlocksPartialRange(t *testing.T) {
	cfg := allDay()
	m := BuildIntervalMap(at("08:00"), at("08:55"), Free, 5)
	blocks := FindOpenBlocks(m, cfg)
	want := []OpenBlock{{Start: "08:00", End: "09:00", MinsAvailable: 60}}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("expected %+v, got %+v", want, blocks)
	}
}

func TestFindOpenBlocksAllBusy(t *testing.T) {
	cfg := allDay()
	m := BuildIntervalMap(at("08:00"), at("12:00"), Occupied, 5)
	if blocks := FindOpenBlocks(FilterToOpenSlots(m, cfg), cfg); len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %+v", blocks)
	}
}

func TestFindOpenBlocksEmpty(t *testing.T) {
	blocks := FindOpenBlocks(nil, allDay())
	if blocks == nil || len(blocks) != 0 {
		t.Fatalf("expected an empty list, got %#v", blocks)
	}
}

func TestFindOpenBlocksFlushesTrailingRun(t *testing.T) {
	cfg := allDay()
	m, _ := PaintRange(BlankDayMap(5), Range{Start: "10:00", End: "10:30"}, cfg)
	blocks := FindOpenBlocks(FilterToOpenSlots(m, cfg), cfg)
	want := []OpenBlock{
		{Start: "00:00", End: "10:00", MinsAvailable: 600},
		{Start: "10:30", End: "23:59", MinsAvailable: 809},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("expected %+v, got %+v", want, blocks)
	}
}

func TestFindOpenBlocksSingleTrailingSlot(t *testing.T) {
	cfg := allDay()
	m, _ := PaintRange(BlankDayMap(5), Range{Start: "00:00", End: "23:55"}, cfg)
	blocks := FindOpenBlocks(FilterToOpenSlots(m, cfg), cfg)
	want := []OpenBlock{{Start: "23:55", End: "23:59", MinsAvailable: 4}}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("expected %+v, got %+v", want, blocks)
	}
}

func TestFindOpenBlocksIdempotent(t *testing.T) {
	cfg := allDay()
	m := PaintEvents([]Event{
		{Title: "a", Date: at("09:00"), EndDate: atPtr("10:00")},
		{Title: "b", Date: at("13:00"), EndDate: atPtr("13:45")},
	}, BlankDayMap(5), cfg)
	open := FilterToOpenSlots(m, cfg)
	first := FindOpenBlocks(open, cfg)
	second := FindOpenBlocks(open, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 blocks, got %+v", first)
	}
}

func TestFindOpenBlocksNamedBlocks(t *testing.T) {
	cfg := tagConfig()
	m := PaintEvents([]Event{
		{Title: "Work  #tb", Date: at("09:00"), EndDate: atPtr("10:00")},
		{Title: "Standup", Date: at("10:00"), EndDate: atPtr("10:15")},
	}, BlankDayMap(5), cfg)

	blocks := FindOpenBlocks(FilterToOpenSlots(m, cfg), cfg)
	want := []OpenBlock{
		{Start: "08:00", End: "09:00", MinsAvailable: 60},
		{Start: "09:00", End: "10:00", MinsAvailable: 60, Title: "Work"},
		{Start: "10:15", End: "17:00", MinsAvailable: 405},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("expected %+v, got %+v", want, blocks)
	}

	cfg.Mode = ModePriorityFirst
	blocks = FindOpenBlocks(FilterToOpenSlots(m, cfg), cfg)
	if len(blocks) != 2 || blocks[0].End != "09:00" || blocks[1].Start != "10:15" {
		t.Fatalf("named blocks should be busy outside tag mode, got %+v", blocks)
	}
}

func TestPaintThenFilterRemovesExactlyThoseSlots(t *testing.T) {
	cfg := allDay()
	m := BlankDayMap(5)
	painted, _ := PaintRange(m, Range{Start: "12:00", End: "13:00", Title: "lunch"}, cfg)

	before := FilterToOpenSlots(m, cfg)
	after := FilterToOpenSlots(painted, cfg)
	if len(before)-len(after) != 12 {
		t.Fatalf("expected 12 slots removed, got %d", len(before)-len(after))
	}
	for _, s := range after {
		if s.Start >= "12:00" && s.Start < "13:00" {
			t.Fatalf("slot %s should have been removed", s.Start)
		}
	}
}

func TestFilterToOpenSlotsWindow(t *testing.T) {
	cfg := testConfig()
	cfg.NowStrOverride = "09:02"
	got := FilterToOpenSlots(BlankDayMap(5), cfg)
	if got[0].Start != "09:05" {
		t.Fatalf("expected first open slot 09:05, got %s", got[0].Start)
	}
	if last := got[len(got)-1].Start; last != "16:55" {
		t.Fatalf("expected last open slot 16:55, got %s", last)
	}
}

func TestFilterToOpenSlotsUsesInjectedClock(t *testing.T) {
	cfg := testConfig()
	cfg.NowStrOverride = ""
	cfg.Now = func() time.Time { return at("15:30") }
	got := FilterToOpenSlots(BlankDayMap(5), cfg)
	if len(got) != 18 || got[0].Start != "15:30" {
		t.Fatalf("expected 18 slots from 15:30, got %d starting %v", len(got), got)
	}
}
