package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDisplay_UsesBusinessTimezone(t *testing.T) {
	ts := time.Date(2024, 3, 1, 1, 30, 0, 0, time.UTC)
	// Bangkok is UTC+7 without DST.
	assert.Equal(t, "01 Mar 2024 08:30", FormatDisplay(ts))
	assert.Equal(t, "-", FormatDisplay(time.Time{}))
}

func TestMillisRoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 1, 1, 30, 0, 123000000, time.UTC)
	assert.True(t, ts.Equal(FromMillis(ToMillis(ts))))
	assert.Nil(t, ToMillisPtr(nil))
	assert.Nil(t, FromMillisPtr(nil))

	ms := ToMillisPtr(&ts)
	assert.True(t, ts.Equal(*FromMillisPtr(ms)))
}
