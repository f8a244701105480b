package options

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// DayOptions
type DayOptions struct {
	DayString string
}

func AddDayArgs(cmd *cobra.Command, o *DayOptions) {
	cmd.Flags().StringVarP(&o.DayString, "day", "d", "today",
		`Specify a day, example: --day=tomorrow, --day="2020-2-28" or --day="2/28".`)
}

// GetDay resolves the flag to midnight of a day in now's location.
func (o *DayOptions) GetDay(now time.Time) (time.Time, error) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch strings.ToLower(strings.TrimSpace(o.DayString)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	t, err := time.ParseInLocation(layoutISO, o.DayString, now.Location())
	if err != nil {
		// Let the year be the same.
		t, err = time.ParseInLocation(layoutISOShort, o.DayString, now.Location())
		if err != nil {
			return time.Time{}, err
		}
		t = t.AddDate(now.Year(), 0, 0)
		// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
		if t.Before(today) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return t, nil
}
