package models

import (
	"fmt"
	"strconv"
	"time"
)

// Date is a day/month/year triple. Field constraints are enforced by NewDate
// so an invalid Date cannot enter the system through a constructor.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewDate builds a Date, validating each component range.
func NewDate(day, month, year int) (Date, error) {
	if day < 1 || day > 31 {
		return Date{}, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}
	if year < 1900 || year > time.Now().Year() {
		return Date{}, fmt.Errorf("year must be between 1900 and %d", time.Now().Year())
	}
	return Date{Day: day, Month: month, Year: year}, nil
}

// ParseDate parses the DD-MM-YYYY format used by transaction date filters.
func ParseDate(s string) (Date, error) {
	if len(s) != 10 || s[2] != '-' || s[5] != '-' {
		return Date{}, fmt.Errorf("date must be in format DD-MM-YYYY")
	}
	day, err := strconv.Atoi(s[0:2])
	if err != nil {
		return Date{}, fmt.Errorf("date must be in format DD-MM-YYYY")
	}
	month, err := strconv.Atoi(s[3:5])
	if err != nil {
		return Date{}, fmt.Errorf("date must be in format DD-MM-YYYY")
	}
	year, err := strconv.Atoi(s[6:10])
	if err != nil {
		return Date{}, fmt.Errorf("date must be in format DD-MM-YYYY")
	}
	return NewDate(day, month, year)
}

// Today returns the server's current date
func Today() Date {
	now := time.Now()
	return Date{Day: now.Day(), Month: int(now.Month()), Year: now.Year()}
}

// DateFromTime converts a time.Time to a Date
func DateFromTime(t time.Time) Date {
	return Date{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// Time converts the Date to a time.Time at UTC midnight, which is how dates
// are stored in DATE columns.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, d.Month, d.Year)
}
