package stamper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateShort(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{Date{2025, time.December, 5}, "25.12.05"},
		{Date{2099, time.January, 31}, "99.01.31"},
		{Date{2000, time.February, 29}, "00.02.29"},
		{Date{2030, time.January, 9}, "30.01.09"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.date.Short())
		})
	}
}

func TestParseDate(t *testing.T) {
	want := Date{2025, time.December, 5}

	dash, err := ParseDate("2025-12-05")
	require.NoError(t, err)
	dot, err := ParseDate("2025.12.05")
	require.NoError(t, err)

	assert.Equal(t, want, dash)
	assert.Equal(t, want, dot)

	padded, err := ParseDate("  2025-12-05\n")
	require.NoError(t, err)
	assert.Equal(t, want, padded)
}

func TestParseDate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"february 30th", "2025-02-30", "day out of range"},
		{"month 13", "2025-13-01", "month out of range"},
		{"month 13 with dots", "2025.13.01", "month out of range"},
		{"april 31st", "2025.04.31", "day out of range"},
		{"mixed separators", "2025-12.05", "YYYY-MM-DD"},
		{"unpadded fields", "2025-1-5", "YYYY-MM-DD"},
		{"slashes", "2025/12/05", "YYYY-MM-DD"},
		{"day first", "05-12-2025", "YYYY-MM-DD"},
		{"empty", "", "YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindInput))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseDate_LeapDay(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "24.02.29", d.Short())

	_, err = ParseDate("2025-02-29")
	assert.Error(t, err)
}

func TestParseRange(t *testing.T) {
	t.Run("single date used for both ends", func(t *testing.T) {
		from, to, err := ParseRange([]string{"2025-12-01"})
		require.NoError(t, err)
		assert.Equal(t, from, to)
		assert.Equal(t, "25.12.01", to.Short())
	})

	t.Run("two dates parsed independently", func(t *testing.T) {
		from, to, err := ParseRange([]string{"2025-12-01", "2025.12.05"})
		require.NoError(t, err)
		assert.Equal(t, "25.12.01", from.Short())
		assert.Equal(t, "25.12.05", to.Short())
	})

	t.Run("wrong argument count", func(t *testing.T) {
		for _, args := range [][]string{nil, {"2025-12-01", "2025-12-02", "2025-12-03"}} {
			_, _, err := ParseRange(args)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindInput))
		}
	})

	t.Run("bad second date", func(t *testing.T) {
		_, _, err := ParseRange([]string{"2025-12-01", "2025-12-32"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2025-12-32")
	})
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2030, time.January, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, Date{2030, time.January, 9}, DateOf(ts))
	assert.Equal(t, "2030-01-09", DateOf(ts).String())
}
