// Package biztime keeps every stored timestamp in UTC and converts to the
// organization's timezone only for display in notifications.
package biztime

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // hosts without a zoneinfo database
)

const DefaultTimezone = "Asia/Bangkok"

// DisplayLayout is used in email and LINE message bodies.
const DisplayLayout = "02 Jan 2006 15:04"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init loads the business timezone once. An empty tz selects Asia/Bangkok.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

func Location() *time.Location {
	if err := Init(""); err != nil {
		panic(fmt.Sprintf("biztime: failed to load default timezone: %v", err))
	}
	if bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatInBizTimezone renders a UTC time in the business timezone.
func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}

// FormatDisplay renders t with DisplayLayout, or "-" for the zero time.
func FormatDisplay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return FormatInBizTimezone(t, DisplayLayout)
}

// ToMillis and FromMillis convert between domain times and the int64
// millisecond columns used by the persistence models.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func ToMillisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func FromMillisPtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := FromMillis(*ms)
	return &t
}
