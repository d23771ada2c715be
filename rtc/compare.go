package rtc

import "fmt"

// TimePassed reports whether trigger is at or before the snapshot. Triggers below 10000 are read as hhmm and compared
// against the time of day; anything larger is read as yymmddhhmm.
func TimePassed(s Snapshot, trigger uint64) bool {
	var now uint64
	if trigger < 10000 {
		now = uint64(s.Hour)*100 + uint64(s.Minute)
	} else {
		now = uint64(s.Year)
		now = now*100 + uint64(s.Month)
		now = now*100 + uint64(s.DayOfMonth)
		now = now*100 + uint64(s.Hour)
		now = now*100 + uint64(s.Minute)
	}
	return trigger <= now
}

// Difference formats the distance between the snapshot's time of day and targetSeconds (seconds since midnight) as
// "hh-mm-ss" while the target is still ahead, or "hh=mm=ss" once it has passed. Only the time of day is compared, so
// a passed target may be further away by whole days.
func Difference(s Snapshot, targetSeconds int64) string {
	now := int64(s.Hour)*3600 + int64(s.Minute)*60 + int64(s.Second)
	diff := targetSeconds - now
	div := '-'
	if diff < 0 {
		diff = -diff
		div = '='
	}
	h := diff / 3600
	diff %= 3600
	return fmt.Sprintf("%02d%c%02d%c%02d", h, div, diff/60, div, diff%60)
}

func targetSeconds(hour, minute int64) int64 {
	return hour*3600 + minute*60
}
