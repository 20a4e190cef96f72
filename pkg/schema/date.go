package schema

import (
	"database/sql/driver"
	"fmt"
	"time"

	// Packages
	meteo "github.com/abeyrathna-np/meteo"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Date is a day-precision calendar date. It marshals to and from the
// "2006-01-02" form in JSON and is stored as TEXT in the database.
type Date struct {
	time.Time
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	dateFormat = "2006-01-02"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewDate returns a date for the given year, month and day
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in "2006-01-02" form
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateFormat, value)
	if err != nil {
		return Date{}, meteo.ErrBadParameter.Withf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return Date{t}, nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (d Date) String() string {
	return d.Format(dateFormat)
}

////////////////////////////////////////////////////////////////////////////////
// MARSHAL

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format(dateFormat))), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := unquote(data, &value); err != nil {
		return err
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// SQL

func (d Date) Value() (driver.Value, error) {
	return d.Format(dateFormat), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case time.Time:
		*d = Date{v}
		return nil
	}
	return meteo.ErrBadParameter.Withf("cannot scan %T into Date", src)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// unquote decodes a JSON string literal into value
func unquote(data []byte, value *string) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return meteo.ErrBadParameter.Withf("expected string, got %q", string(data))
	}
	*value = string(data[1 : len(data)-1])
	return nil
}
