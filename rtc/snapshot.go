package rtc

import (
	"fmt"
	"time"
)

// Snapshot is an in-memory copy of the seven time registers of a clock chip at one point in time.
//
// Values are not validated on their way to the chip; see Validate for the calendar ranges.
type Snapshot struct {
	Year       uint8 // 0-99
	Month      uint8 // 1-12
	DayOfMonth uint8 // 1-31
	Hour       uint8 // 0-23
	Minute     uint8 // 0-59
	Second     uint8 // 0-59
	DayOfWeek  uint8 // 1-7, 1 is Sunday
}

// FromTime builds a snapshot from t. The century is dropped.
func FromTime(t time.Time) Snapshot {
	return Snapshot{
		Year:       uint8(t.Year() % 100),
		Month:      uint8(t.Month()),
		DayOfMonth: uint8(t.Day()),
		Hour:       uint8(t.Hour()),
		Minute:     uint8(t.Minute()),
		Second:     uint8(t.Second()),
		DayOfWeek:  uint8(t.Weekday()) + 1,
	}
}

// Time converts the snapshot to a UTC time in the 2000s. DayOfWeek is ignored.
func (s Snapshot) Time() time.Time {
	return time.Date(2000+int(s.Year), time.Month(s.Month), int(s.DayOfMonth),
		int(s.Hour), int(s.Minute), int(s.Second), 0, time.UTC)
}

// String renders the snapshot as "dd/m/y h:mm:ss". Only day, minute and second are zero-padded; existing consumers
// of the console line depend on that.
func (s Snapshot) String() string {
	return fmt.Sprintf("%02d/%d/%d %d:%02d:%02d", s.DayOfMonth, s.Month, s.Year, s.Hour, s.Minute, s.Second)
}

var fieldRanges = []struct {
	field    Field
	min, max uint8
}{
	{FieldYear, 0, 99},
	{FieldMonth, 1, 12},
	{FieldDay, 1, 31},
	{FieldHour, 0, 23},
	{FieldMinute, 0, 59},
	{FieldSecond, 0, 59},
	{FieldWeekday, 1, 7},
}

// Validate returns a *RangeError for the first field outside its calendar range, checked in the order year, month,
// day, hour, minute, second, weekday.
func (s Snapshot) Validate() error {
	for _, r := range fieldRanges {
		v, _ := s.value(r.field)
		if v < r.min || v > r.max {
			return &RangeError{Field: r.field, Value: int(v)}
		}
	}
	return nil
}

func (s Snapshot) value(f Field) (uint8, bool) {
	switch f {
	case FieldYear:
		return s.Year, true
	case FieldMonth:
		return s.Month, true
	case FieldDay:
		return s.DayOfMonth, true
	case FieldHour:
		return s.Hour, true
	case FieldMinute:
		return s.Minute, true
	case FieldSecond:
		return s.Second, true
	case FieldWeekday:
		return s.DayOfWeek, true
	}
	return 0, false
}
