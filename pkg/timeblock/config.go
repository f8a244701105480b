package timeblock

import (
	"time"

	"tableflip.dev/timeblock/pkg/timeutil"
)

// Mode selects how tasks are ordered and matched to blocks.
type Mode string

const (
	ModePriorityFirst  Mode = "PRIORITY_FIRST"
	ModeLargestFirst   Mode = "LARGEST_FIRST"
	ModeByTimeblockTag Mode = "BY_TIMEBLOCK_TAG"
	ModeManualOrdering Mode = "MANUAL_ORDERING"
)

// Modes lists the recognised modes.
func Modes() []Mode {
	return []Mode{ModePriorityFirst, ModeLargestFirst, ModeByTimeblockTag, ModeManualOrdering}
}

// Valid reports whether m is one of Modes.
func (m Mode) Valid() bool {
	for _, candidate := range Modes() {
		if m == candidate {
			return true
		}
	}
	return false
}

// OrphanPolicy decides what happens to tasks that matched a timeframe or
// named block but found no room in it.
type OrphanPolicy string

const (
	OrphansIgnore                 OrphanPolicy = "IGNORE_THEM"
	OrphansOutputForInfo          OrphanPolicy = "OUTPUT_FOR_INFO_BUT_DONT_SCHEDULE"
	OrphansScheduleElsewhereLast  OrphanPolicy = "SCHEDULE_ELSEWHERE_LAST"
	OrphansScheduleElsewhereFirst OrphanPolicy = "SCHEDULE_ELSEWHERE_FIRST"
)

// OrphanPolicies lists the recognised policies.
func OrphanPolicies() []OrphanPolicy {
	return []OrphanPolicy{OrphansIgnore, OrphansOutputForInfo, OrphansScheduleElsewhereLast, OrphansScheduleElsewhereFirst}
}

// Valid reports whether p is one of OrphanPolicies.
func (p OrphanPolicy) Valid() bool {
	for _, candidate := range OrphanPolicies() {
		if p == candidate {
			return true
		}
	}
	return false
}

// Config holds the scheduling parameters. It is read-only to this package.
// Field keys follow the host's configuration names, including the
// misspelled orphanTagggedTasks.
type Config struct {
	TodoChar                       string              `mapstructure:"todoChar" json:"todoChar" yaml:"todoChar"`
	TimeBlockTag                   string              `mapstructure:"timeBlockTag" json:"timeBlockTag" yaml:"timeBlockTag"`
	TimeBlockHeading               string              `mapstructure:"timeBlockHeading" json:"timeBlockHeading" yaml:"timeBlockHeading"`
	WorkDayStart                   string              `mapstructure:"workDayStart" json:"workDayStart" yaml:"workDayStart"`
	WorkDayEnd                     string              `mapstructure:"workDayEnd" json:"workDayEnd" yaml:"workDayEnd"`
	DurationMarker                 string              `mapstructure:"durationMarker" json:"durationMarker" yaml:"durationMarker"`
	IntervalMins                   int                 `mapstructure:"intervalMins" json:"intervalMins" yaml:"intervalMins"`
	RemoveDuration                 bool                `mapstructure:"removeDuration" json:"removeDuration" yaml:"removeDuration"`
	DefaultDuration                int                 `mapstructure:"defaultDuration" json:"defaultDuration" yaml:"defaultDuration"`
	Mode                           Mode                `mapstructure:"mode" json:"mode" yaml:"mode"`
	AllowEventSplits               bool                `mapstructure:"allowEventSplits" json:"allowEventSplits" yaml:"allowEventSplits"`
	NowStrOverride                 string              `mapstructure:"nowStrOverride" json:"nowStrOverride,omitempty" yaml:"nowStrOverride,omitempty"`
	TimeblockTextMustContainString string              `mapstructure:"timeblockTextMustContainString" json:"timeblockTextMustContainString" yaml:"timeblockTextMustContainString"`
	Timeframes                     map[string][]string `mapstructure:"timeframes" json:"timeframes,omitempty" yaml:"timeframes,omitempty"`
	OrphanTagggedTasks             OrphanPolicy        `mapstructure:"orphanTagggedTasks" json:"orphanTagggedTasks" yaml:"orphanTagggedTasks"`

	// Now is the time source used when NowStrOverride is empty. Nil means
	// time.Now.
	Now func() time.Time `mapstructure:"-" json:"-" yaml:"-"`
}

func (c Config) byTagMode() bool {
	return c.Mode == ModeByTimeblockTag
}

// nowMins is the earliest minute that may still be scheduled.
func (c Config) nowMins() int {
	if c.NowStrOverride != "" {
		if m, err := timeutil.ParseClock(c.NowStrOverride); err == nil {
			return m
		}
		return 0
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	t := now()
	return t.Hour()*60 + t.Minute()
}

// workDay returns the working window in minutes, falling back to the whole
// day for unparseable bounds.
func (c Config) workDay() (int, int) {
	start, err := timeutil.ParseClock(c.WorkDayStart)
	if err != nil {
		start = 0
	}
	end, err := timeutil.ParseClock(c.WorkDayEnd)
	if err != nil {
		end = timeutil.MinutesPerDay
	}
	return start, end
}
