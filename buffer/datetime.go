package buffer

import (
	"time"
	"unsafe"
)

// Timestamp is the 16-byte layout of a timestamp cell (SQL_TIMESTAMP_STRUCT).
// Fraction is in nanoseconds.
type Timestamp struct {
	Year     int16
	Month    uint16
	Day      uint16
	Hour     uint16
	Minute   uint16
	Second   uint16
	Fraction uint32
}

// Date is the 6-byte layout of a date cell (SQL_DATE_STRUCT).
type Date struct {
	Year  int16
	Month uint16
	Day   uint16
}

const secondsPerDay = 24 * 60 * 60

func init() {
	if unsafe.Sizeof(Timestamp{}) != 16 || unsafe.Sizeof(Date{}) != 6 {
		panic("buffer: unexpected date/time struct layout")
	}
}

// NewTimestamp returns the wall-clock fields of t, which is taken as is
// without time zone conversion.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{
		Year:     int16(t.Year()),
		Month:    uint16(t.Month()),
		Day:      uint16(t.Day()),
		Hour:     uint16(t.Hour()),
		Minute:   uint16(t.Minute()),
		Second:   uint16(t.Second()),
		Fraction: uint32(t.Nanosecond()),
	}
}

// Micros returns the number of microseconds between the Unix epoch and ts,
// reading ts as UTC.
func (ts Timestamp) Micros() int64 {
	t := time.Date(int(ts.Year), time.Month(ts.Month), int(ts.Day),
		int(ts.Hour), int(ts.Minute), int(ts.Second), 0, time.UTC)
	return t.Unix()*1_000_000 + int64(ts.Fraction/1000)
}

func NewDate(t time.Time) Date {
	return Date{
		Year:  int16(t.Year()),
		Month: uint16(t.Month()),
		Day:   uint16(t.Day()),
	}
}

// Days returns the number of days between the Unix epoch and d.
func (d Date) Days() int32 {
	t := time.Date(int(d.Year), time.Month(d.Month), int(d.Day), 0, 0, 0, 0, time.UTC)
	return int32(t.Unix() / secondsPerDay)
}

func (c *Column) SetTimestamp(i int, t time.Time) {
	*(*Timestamp)(c.ptr(i)) = NewTimestamp(t)
	c.present(i)
}

func (c *Column) Timestamp(i int) Timestamp {
	return *(*Timestamp)(c.ptr(i))
}

func (c *Column) SetDate(i int, t time.Time) {
	*(*Date)(c.ptr(i)) = NewDate(t)
	c.present(i)
}

func (c *Column) Date(i int) Date {
	return *(*Date)(c.ptr(i))
}
