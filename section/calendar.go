package section

import (
	"time"

	"github.com/vbuslog/blf/endian"
)

// SystemTime is the on-wire calendar tuple used by the file header's start
// and stop timestamps: year/month/weekday/day/hour/minute/second/millisecond,
// in that field order (spec.md §3, §6).
type SystemTime struct {
	Year         uint16
	Month        uint16
	DayOfWeek    uint16 // unused by this decoder, per spec.md §9 Open Questions
	Day          uint16
	Hour         uint16
	Minute       uint16
	Second       uint16
	Milliseconds uint16
}

// EpochNs converts the tuple to nanoseconds since the Unix epoch using the
// Gregorian calendar. An out-of-range field (month, day, hour, minute,
// second, or millisecond outside its valid domain) yields 0 rather than an
// error: the file header never fails the parse over a bad timestamp.
func (t SystemTime) EpochNs() int64 {
	if !t.valid() {
		return 0
	}

	ts := time.Date(
		int(t.Year), time.Month(t.Month), int(t.Day),
		int(t.Hour), int(t.Minute), int(t.Second),
		int(t.Milliseconds)*int(time.Millisecond),
		time.UTC,
	)

	return ts.UnixNano()
}

func (t SystemTime) valid() bool {
	if t.Month < 1 || t.Month > 12 {
		return false
	}
	if t.Day < 1 || t.Day > 31 {
		return false
	}
	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return false
	}
	if t.Milliseconds > 999 {
		return false
	}

	// time.Date silently normalizes an out-of-range day (Feb 31 becomes
	// Mar 3 rather than an error); round-trip the date through it and
	// reject anything that didn't land back on the day requested, so a
	// tuple like (2024, Feb, 31) is invalid here exactly as it is for the
	// original parser's date construction.
	ts := time.Date(int(t.Year), time.Month(t.Month), int(t.Day), 0, 0, 0, 0, time.UTC)
	return ts.Year() == int(t.Year) && ts.Month() == time.Month(t.Month) && ts.Day() == int(t.Day)
}

// parseSystemTime reads a SystemTime tuple (8 little-endian uint16 fields,
// 16 bytes) from data.
func parseSystemTime(data []byte) SystemTime {
	u16 := func(off int) uint16 {
		return uint16(data[off]) | uint16(data[off+1])<<8
	}

	return SystemTime{
		Year:         u16(0),
		Month:        u16(2),
		DayOfWeek:    u16(4),
		Day:          u16(6),
		Hour:         u16(8),
		Minute:       u16(10),
		Second:       u16(12),
		Milliseconds: u16(14),
	}
}

// putSystemTime writes t into data (16 bytes) using engine's byte order.
func putSystemTime(data []byte, t SystemTime, engine endian.EndianEngine) {
	engine.PutUint16(data[0:2], t.Year)
	engine.PutUint16(data[2:4], t.Month)
	engine.PutUint16(data[4:6], t.DayOfWeek)
	engine.PutUint16(data[6:8], t.Day)
	engine.PutUint16(data[8:10], t.Hour)
	engine.PutUint16(data[10:12], t.Minute)
	engine.PutUint16(data[12:14], t.Second)
	engine.PutUint16(data[14:16], t.Milliseconds)
}
