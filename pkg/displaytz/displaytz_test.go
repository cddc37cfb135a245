package displaytz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsToKolkata(t *testing.T) {
	loc, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestLoadRejectsUnknownZone(t *testing.T) {
	_, err := Load("Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestConvertShiftsUTCToDisplayZone(t *testing.T) {
	loc, err := Load("Asia/Kolkata")
	require.NoError(t, err)

	utc := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := Convert(utc, loc)

	assert.Equal(t, 5, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.True(t, got.Equal(utc), "conversion must not change the instant")
}

func TestConvertTreatsNaiveAsUTC(t *testing.T) {
	loc, err := Load("Asia/Kolkata")
	require.NoError(t, err)

	// A timestamp carrying a non-UTC zone still converts from its
	// actual instant, not its wall clock.
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	stamp := time.Date(2024, 1, 1, 0, 0, 0, 0, ny)

	got := Convert(stamp, loc)
	assert.True(t, got.Equal(stamp))
	assert.Equal(t, "Asia/Kolkata", got.Location().String())
}

func TestConvertNilLocationIsIdentity(t *testing.T) {
	utc := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, utc, Convert(utc, nil))
}

func TestConvertPtr(t *testing.T) {
	loc, err := Load("Asia/Kolkata")
	require.NoError(t, err)

	assert.Nil(t, ConvertPtr(nil, loc))

	utc := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	got := ConvertPtr(&utc, loc)
	require.NotNil(t, got)
	assert.Equal(t, 17, got.Hour())
	assert.Equal(t, 30, got.Minute())
}
