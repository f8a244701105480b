package timeblock

import (
	"reflect"
	"testing"
)

func namedBlockDay(cfg Config, title, start, end string) IntervalMap {
	return PaintEvents([]Event{{Title: title, Date: at(start), EndDate: atPtr(end)}}, BlankDayMap(5), cfg)
}

func TestScheduleByTagFillsNamedBlockInOrder(t *testing.T) {
	cfg := tagConfig()
	m := namedBlockDay(cfg, "foo #tb", "10:00", "10:10")
	tasks := EnrichTasks([]Task{
		{Content: "#foo one '5m"},
		{Content: "#foo two '5m"},
	}, cfg)

	res := ScheduleDay(m, tasks, cfg)

	expectLines(t, res.TimeBlockTextList,
		"* 10:00-10:05 #foo one #tb",
		"* 10:05-10:10 #foo two #tb",
	)
	if res.NoTimeForTasks.Len() != 0 {
		t.Fatalf("expected nothing unscheduled, got %+v", res.NoTimeForTasks)
	}
}

func TestScheduleByTagOrphanPolicies(t *testing.T) {
	tasks := []Task{
		{Content: "#foo one '5m"},
		{Content: "#foo two '5m"},
		{Content: "#foo three '5m"},
	}
	tests := []struct {
		policy     OrphanPolicy
		lines      []string
		unschedule []BucketKey
	}{
		{
			policy: OrphansOutputForInfo,
			lines: []string{
				"* 10:00-10:05 #foo one #tb",
				"* 10:05-10:10 #foo two #tb",
			},
			unschedule: []BucketKey{NamedBlockBucket("foo")},
		},
		{
			policy: OrphansIgnore,
			lines: []string{
				"* 10:00-10:05 #foo one #tb",
				"* 10:05-10:10 #foo two #tb",
			},
		},
		{
			policy: OrphansScheduleElsewhereLast,
			lines: []string{
				"* 08:00-08:05 #foo three #tb",
				"* 10:00-10:05 #foo one #tb",
				"* 10:05-10:10 #foo two #tb",
			},
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			cfg := tagConfig()
			cfg.OrphanTagggedTasks = tt.policy
			m := namedBlockDay(cfg, "foo #tb", "10:00", "10:10")

			res := ScheduleDay(m, EnrichTasks(tasks, cfg), cfg)

			expectLines(t, res.TimeBlockTextList, tt.lines...)
			var keys []BucketKey
			for _, b := range res.NoTimeForTasks {
				keys = append(keys, b.Key)
			}
			if !reflect.DeepEqual(keys, tt.unschedule) {
				t.Fatalf("expected buckets %v, got %v", tt.unschedule, keys)
			}
		})
	}
}

func TestScheduleByTagRemainderAvoidsNamedBlocks(t *testing.T) {
	cfg := tagConfig()
	m := namedBlockDay(cfg, "Work #tb", "08:00", "09:00")

	res := ScheduleDay(m, EnrichTasks([]Task{{Content: "other '30m"}}, cfg), cfg)

	expectLines(t, res.TimeBlockTextList, "* 09:00-09:30 other #tb")
	if len(res.BlockList) == 0 || res.BlockList[0].Title != "Work" {
		t.Fatalf("expected the untouched Work block to stay open, got %+v", res.BlockList)
	}
}

func TestScheduleByTagMatchesTitleCaseInsensitively(t *testing.T) {
	cfg := tagConfig()
	m := namedBlockDay(cfg, "Deep Work #tb", "13:00", "14:00")

	res := ScheduleDay(m, EnrichTasks([]Task{{Content: "write chapter for deep work '45m"}}, cfg), cfg)
	expectLines(t, res.TimeBlockTextList, "* 13:00-13:45 write chapter for deep work #tb")
}

func TestScheduleByTagNamedBlockWithRepeatedSpaces(t *testing.T) {
	cfg := tagConfig()
	m := namedBlockDay(cfg, "Deep  Work #tb", "13:00", "14:00")

	res := ScheduleDay(m, EnrichTasks([]Task{{Content: "deep work review '30m"}}, cfg), cfg)

	expectLines(t, res.TimeBlockTextList, "* 13:00-13:30 deep work review #tb")
	if res.NoTimeForTasks.Len() != 0 {
		t.Fatalf("expected nothing unscheduled, got %+v", res.NoTimeForTasks)
	}
}

func TestScheduleByTagTimeframeLabelIgnoresCase(t *testing.T) {
	cfg := tagConfig()
	cfg.Timeframes = map[string][]string{"work": {"09:00", "12:00"}}

	res := ScheduleDay(BlankDayMap(5), EnrichTasks([]Task{{Content: "report #Work '30m"}}, cfg), cfg)

	expectLines(t, res.TimeBlockTextList, "* 09:00-09:30 report #Work #tb")
}

func TestScheduleByTagTaskInTwoTimeframes(t *testing.T) {
	cfg := tagConfig()
	cfg.WorkDayEnd = "22:00"
	cfg.Timeframes = map[string][]string{
		"gym":  {"06:00", "10:00"},
		"home": {"17:00", "19:00"},
	}

	res := ScheduleDay(BlankDayMap(5), EnrichTasks([]Task{{Content: "stretch #gym #home '30m"}}, cfg), cfg)

	// Placed once per timeframe.
	expectLines(t, res.TimeBlockTextList,
		"* 08:00-08:30 stretch #gym #home #tb",
		"* 17:00-17:30 stretch #gym #home #tb",
	)
}

func TestScheduleByTagTaskOrphanedInTwoTimeframes(t *testing.T) {
	frames := map[string][]string{
		"gym":  {"08:00", "08:10"},
		"home": {"17:00", "17:10"},
	}
	tasks := []Task{{Content: "yoga #gym #home '30m"}}

	t.Run("recorded per timeframe", func(t *testing.T) {
		cfg := tagConfig()
		cfg.WorkDayEnd = "22:00"
		cfg.Timeframes = frames

		res := ScheduleDay(BlankDayMap(5), EnrichTasks(tasks, cfg), cfg)

		expectLines(t, res.TimeBlockTextList)
		var keys []BucketKey
		for _, b := range res.NoTimeForTasks {
			keys = append(keys, b.Key)
		}
		want := []BucketKey{TimeframeBucket("gym"), TimeframeBucket("home")}
		if !reflect.DeepEqual(keys, want) {
			t.Fatalf("expected buckets %v, got %v", want, keys)
		}
	})

	t.Run("rescheduled once per timeframe", func(t *testing.T) {
		cfg := tagConfig()
		cfg.WorkDayEnd = "22:00"
		cfg.Timeframes = frames
		cfg.OrphanTagggedTasks = OrphansScheduleElsewhereLast

		res := ScheduleDay(BlankDayMap(5), EnrichTasks(tasks, cfg), cfg)

		expectLines(t, res.TimeBlockTextList,
			"* 08:00-08:30 yoga #gym #home #tb",
			"* 08:30-09:00 yoga #gym #home #tb",
		)
		if res.NoTimeForTasks.Len() != 0 {
			t.Fatalf("expected orphans rescheduled, got %+v", res.NoTimeForTasks)
		}
	})
}

func TestScheduleByTagTimeframes(t *testing.T) {
	cfg := tagConfig()
	cfg.WorkDayEnd = "22:00"
	cfg.Timeframes = map[string][]string{"home": {"17:00", "19:00"}}
	tasks := EnrichTasks([]Task{
		{Content: "fix the sink #home '30m"},
		{Content: "email '30m"},
	}, cfg)

	res := ScheduleDay(BlankDayMap(5), tasks, cfg)

	expectLines(t, res.TimeBlockTextList,
		"* 08:00-08:30 email #tb",
		"* 17:00-17:30 fix the sink #home #tb",
	)
	if s := slotAt(t, res.TimeMap, "17:25"); !s.Busy.IsBusy() {
		t.Fatalf("timeframe placement should be reflected in the day map")
	}
}

func TestScheduleByTagTimeframeOverflowFirst(t *testing.T) {
	cfg := tagConfig()
	cfg.WorkDayEnd = "22:00"
	cfg.Timeframes = map[string][]string{"#home": {"17:00", "17:30"}}
	cfg.OrphanTagggedTasks = OrphansScheduleElsewhereFirst
	tasks := EnrichTasks([]Task{
		{Content: "sink #home '30m"},
		{Content: "laundry #home '30m"},
		{Content: "email '30m"},
	}, cfg)

	res := ScheduleDay(BlankDayMap(5), tasks, cfg)

	expectLines(t, res.TimeBlockTextList,
		"* 08:00-08:30 laundry #home #tb",
		"* 08:30-09:00 email #tb",
		"* 17:00-17:30 sink #home #tb",
	)
	if res.NoTimeForTasks.Len() != 0 {
		t.Fatalf("expected orphans rescheduled, got %+v", res.NoTimeForTasks)
	}
}

func TestScheduleByTagTimeframeOverflowRecorded(t *testing.T) {
	cfg := tagConfig()
	cfg.Timeframes = map[string][]string{"home": {"16:00", "16:30"}}
	tasks := EnrichTasks([]Task{
		{Content: "sink #home '30m"},
		{Content: "laundry #home '30m"},
	}, cfg)

	res := ScheduleDay(BlankDayMap(5), tasks, cfg)

	expectLines(t, res.TimeBlockTextList, "* 16:00-16:30 sink #home #tb")
	left := res.NoTimeForTasks.Tasks(TimeframeBucket("home"))
	if len(left) != 1 || left[0].Content != "laundry #home '30m" {
		t.Fatalf("expected laundry recorded under home, got %+v", res.NoTimeForTasks)
	}
}

func TestScheduleByTagIgnoresMalformedTimeframes(t *testing.T) {
	cfg := tagConfig()
	cfg.Timeframes = map[string][]string{"home": {"19:00"}}
	res := ScheduleDay(BlankDayMap(5), EnrichTasks([]Task{{Content: "sink #home '30m"}}, cfg), cfg)
	expectLines(t, res.TimeBlockTextList, "* 08:00-08:30 sink #home #tb")
}

func TestScheduleByTagDoesNotModifyInput(t *testing.T) {
	cfg := tagConfig()
	m := namedBlockDay(cfg, "foo #tb", "10:00", "10:10")
	before := m.Clone()
	_ = ScheduleByTimeblockTag([]Task{{Content: "foo '5m"}}, NewResult(m), cfg)
	if !reflect.DeepEqual(m, before) {
		t.Fatalf("input map was modified")
	}
}

func TestSplitItemsByTags(t *testing.T) {
	frames := map[string][]string{
		"home": {"17:00", "19:00"},
		"#gym": {"06:00", "07:00"},
		"bad":  {"nope", "07:00"},
	}
	tasks := []Task{
		{Content: "a #home"},
		{Content: "b #gym #home"},
		{Content: "c #bad"},
		{Content: "d"},
	}
	framed, rest := splitItemsByTags(tasks, frames)

	if len(framed["home"]) != 2 || len(framed["#gym"]) != 1 {
		t.Fatalf("unexpected split %+v", framed)
	}
	if _, ok := framed["bad"]; ok {
		t.Fatalf("malformed timeframe should not collect tasks")
	}
	if len(rest) != 2 || rest[0].Content != "c #bad" || rest[1].Content != "d" {
		t.Fatalf("unexpected rest %+v", rest)
	}
}
