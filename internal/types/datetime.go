package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const localLayout = "2006-01-02T15:04:05.999999999"

// localLayouts are tried in order when parsing. Fractional seconds are
// accepted by the first layout even though it does not spell them out.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// LocalDateTime is a wall-clock date and time without a zone, written as
// 2025-10-28T17:35:00 on the wire and in the database.
type LocalDateTime time.Time

// NewLocalDateTime keeps only the wall-clock reading of t.
func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime(time.Date(t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC))
}

// ParseLocalDateTime parses an ISO-8601 date-time. A zone suffix, when
// present, is dropped and the wall-clock reading kept.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return LocalDateTime(t), nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return NewLocalDateTime(t), nil
	}
	return LocalDateTime{}, fmt.Errorf("invalid local date-time %q: want YYYY-MM-DDTHH:MM:SS", s)
}

// MustLocalDateTime is ParseLocalDateTime for literals known to be valid.
func MustLocalDateTime(s string) LocalDateTime {
	t, err := ParseLocalDateTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (l LocalDateTime) Time() time.Time { return time.Time(l) }

func (l LocalDateTime) Equal(o LocalDateTime) bool { return time.Time(l).Equal(time.Time(o)) }

func (l LocalDateTime) String() string { return time.Time(l).Format(localLayout) }

func (l LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *LocalDateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLocalDateTime(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Value stores the date-time as ISO-8601 text.
func (l LocalDateTime) Value() (driver.Value, error) {
	return l.String(), nil
}

// Scan accepts text (SQLite) as well as native timestamps (Postgres).
func (l *LocalDateTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = LocalDateTime{}
		return nil
	case time.Time:
		*l = NewLocalDateTime(v)
		return nil
	case string:
		return l.scanText(v)
	case []byte:
		return l.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into LocalDateTime", src)
	}
}

func (l *LocalDateTime) scanText(s string) error {
	parsed, err := ParseLocalDateTime(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ZonedDateTime is an instant, written as RFC 3339 in UTC
// (2025-11-04T12:12:00Z). Offsets are accepted on input and normalised, so
// a value reads back the same from every store whatever the host's zone.
type ZonedDateTime time.Time

func ParseZonedDateTime(s string) (ZonedDateTime, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return ZonedDateTime{}, fmt.Errorf("invalid zoned date-time %q: want RFC 3339", s)
	}
	return ZonedDateTime(t.UTC()), nil
}

// MustZonedDateTime is ParseZonedDateTime for literals known to be valid.
func MustZonedDateTime(s string) ZonedDateTime {
	t, err := ParseZonedDateTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (z ZonedDateTime) Time() time.Time { return time.Time(z) }

// Equal reports whether z and o are the same instant, whatever their zones.
func (z ZonedDateTime) Equal(o ZonedDateTime) bool { return time.Time(z).Equal(time.Time(o)) }

func (z ZonedDateTime) String() string { return time.Time(z).Format(time.RFC3339Nano) }

func (z ZonedDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.String())
}

func (z *ZonedDateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseZonedDateTime(s)
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}

func (z ZonedDateTime) Value() (driver.Value, error) {
	return z.String(), nil
}

func (z *ZonedDateTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*z = ZonedDateTime{}
		return nil
	case time.Time:
		// pgx hands timestamptz back in time.Local
		*z = ZonedDateTime(v.UTC())
		return nil
	case string:
		return z.scanText(v)
	case []byte:
		return z.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ZonedDateTime", src)
	}
}

func (z *ZonedDateTime) scanText(s string) error {
	parsed, err := ParseZonedDateTime(s)
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}
