package rtc

import "strings"

// Field selects one of the snapshot fields. The values are the single-letter selectors accepted from callers.
type Field byte

const (
	FieldYear    Field = 'y'
	FieldMonth   Field = 'm'
	FieldDay     Field = 'd'
	FieldHour    Field = 'h'
	FieldMinute  Field = 'n' // 'm' is taken by month
	FieldSecond  Field = 's'
	FieldWeekday Field = 'w'
)

// unknownFieldValue is reported for selectors that name no field.
const unknownFieldValue = 99

const digits = "0123456789ABCDEF"

func (f Field) String() string {
	switch f {
	case FieldYear:
		return "year"
	case FieldMonth:
		return "month"
	case FieldDay:
		return "day"
	case FieldHour:
		return "hour"
	case FieldMinute:
		return "minute"
	case FieldSecond:
		return "second"
	case FieldWeekday:
		return "weekday"
	}
	return "field '" + string(rune(f)) + "'"
}

// EncodeField returns the tens and units digits of the selected field. An unknown selector encodes as "99". Tens
// digits beyond 'F', which only garbage register values produce, encode as '?'.
func EncodeField(s Snapshot, f Field) [2]byte {
	v, ok := s.value(f)
	if !ok {
		v = unknownFieldValue
	}
	return encodeDigits(v)
}

func encodeDigits(v uint8) [2]byte {
	out := [2]byte{'?', digits[v%10]}
	if t := v / 10; int(t) < len(digits) {
		out[0] = digits[t]
	}
	return out
}

// FixedString returns the 14-character "yymmddhhnnssww" form of the snapshot.
func (s Snapshot) FixedString() string {
	var sb strings.Builder
	sb.Grow(14)
	for _, f := range []Field{FieldYear, FieldMonth, FieldDay, FieldHour, FieldMinute, FieldSecond, FieldWeekday} {
		d := EncodeField(s, f)
		sb.WriteByte(d[0])
		sb.WriteByte(d[1])
	}
	return sb.String()
}
