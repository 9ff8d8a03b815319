package entities

import (
	"database/sql/driver"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Date is a calendar day with no time of day or zone, stored as "2006-01-02" text.
type Date struct {
	civil.Date
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{civil.Date{Year: year, Month: month, Day: day}}
}

func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, err
	}
	return Date{d}, nil
}

// Today returns the current day in loc. A nil loc means UTC.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return Date{civil.DateOf(time.Now().In(loc))}
}

func (d Date) AddDays(n int) Date { return Date{d.Date.AddDays(n)} }

func (d Date) Before(o Date) bool { return d.Date.Before(o.Date) }

func (d Date) After(o Date) bool { return d.Date.After(o.Date) }

func (d Date) IsZero() bool { return d.Date == (civil.Date{}) }

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case time.Time:
		*d = Date{civil.DateOf(v)}
		return nil
	default:
		return fmt.Errorf("entities.Date: cannot scan %T", src)
	}
}

func (d *Date) parse(s string) error {
	if s == "" {
		*d = Date{}
		return nil
	}
	// sqlite drivers may hand back a full timestamp for date-typed columns
	if len(s) > 10 {
		s = s[:10]
	}
	p, err := civil.ParseDate(s)
	if err != nil {
		return fmt.Errorf("entities.Date: %w", err)
	}
	*d = Date{p}
	return nil
}
