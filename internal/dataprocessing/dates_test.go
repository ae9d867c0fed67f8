package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bridgesched/internal/errors"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateParser_ParseToken(t *testing.T) {
	p := NewDateParser(2025, 2000)

	tests := []struct {
		name    string
		token   string
		want    time.Time
		wantErr bool
	}{
		{name: "two digit year", token: "10/14/25", want: day(2025, time.October, 14)},
		{name: "four digit year", token: "10/14/2025", want: day(2025, time.October, 14)},
		{name: "no year uses implicit", token: "10/14", want: day(2025, time.October, 14)},
		{name: "bare MMDD", token: "1107", want: day(2025, time.November, 7)},
		{name: "single digit month and day", token: "3/4/25", want: day(2025, time.March, 4)},
		{name: "surrounding whitespace", token: "  10/14/25 ", want: day(2025, time.October, 14)},
		{name: "high two digit year stays in century", token: "12/31/69", want: day(2069, time.December, 31)},
		{name: "invalid month", token: "13/01/25", wantErr: true},
		{name: "invalid MMDD", token: "1340", wantErr: true},
		{name: "not a date", token: "not a date", wantErr: true},
		{name: "empty", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ParseToken(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				var parseErr *apperrors.DateParseError
				assert.ErrorAs(t, err, &parseErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateParser_ExpandDates_Single(t *testing.T) {
	p := NewDateParser(2025, 2000)

	// Every MM/DD/YY token must come back as exactly one date in 2000+YY.
	for month := time.January; month <= time.December; month += 3 {
		raw := day(2025, month, 14).Format("01/02/06")
		dates, err := p.ExpandDates(raw)
		require.NoError(t, err)
		require.Len(t, dates, 1)
		assert.Equal(t, day(2025, month, 14), dates[0])
	}
}

func TestDateParser_ExpandDates_Multi(t *testing.T) {
	p := NewDateParser(2025, 2000)

	tests := []struct {
		name string
		raw  string
		want []time.Time
	}{
		{
			name: "two dates",
			raw:  "10/14/25 & 10/25/25",
			want: []time.Time{day(2025, time.October, 14), day(2025, time.October, 25)},
		},
		{
			name: "listed order preserved",
			raw:  "10/25/25 & 10/14/25",
			want: []time.Time{day(2025, time.October, 25), day(2025, time.October, 14)},
		},
		{
			name: "duplicates preserved",
			raw:  "10/14/25 & 10/14/25",
			want: []time.Time{day(2025, time.October, 14), day(2025, time.October, 14)},
		},
		{
			name: "three dates",
			raw:  "10/14/25 & 10/16/25 & 10/20/25",
			want: []time.Time{day(2025, time.October, 14), day(2025, time.October, 16), day(2025, time.October, 20)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates, err := p.ExpandDates(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dates)
		})
	}
}

func TestDateParser_ExpandDates_Range(t *testing.T) {
	p := NewDateParser(2025, 2000)

	t.Run("inclusive ascending", func(t *testing.T) {
		dates, err := p.ExpandDates("10/14/25 to 10/16/25")
		require.NoError(t, err)
		want := []time.Time{
			day(2025, time.October, 14),
			day(2025, time.October, 15),
			day(2025, time.October, 16),
		}
		assert.Equal(t, want, dates)
	})

	t.Run("length matches day span", func(t *testing.T) {
		start := day(2025, time.September, 29)
		for span := 0; span < 10; span++ {
			end := start.AddDate(0, 0, span)
			raw := start.Format("01/02/06") + " to " + end.Format("01/02/06")
			dates, err := p.ExpandDates(raw)
			require.NoError(t, err)
			require.Len(t, dates, span+1)
			for i := 1; i < len(dates); i++ {
				assert.Equal(t, dates[i-1].AddDate(0, 0, 1), dates[i])
			}
		}
	})

	t.Run("single day range", func(t *testing.T) {
		dates, err := p.ExpandDates("10/14/25 to 10/14/25")
		require.NoError(t, err)
		assert.Equal(t, []time.Time{day(2025, time.October, 14)}, dates)
	})

	t.Run("crosses month boundary", func(t *testing.T) {
		dates, err := p.ExpandDates("10/30/25 to 11/02/25")
		require.NoError(t, err)
		require.Len(t, dates, 4)
		assert.Equal(t, day(2025, time.November, 2), dates[3])
	})

	t.Run("case insensitive separator", func(t *testing.T) {
		dates, err := p.ExpandDates("10/14/25 TO 10/15/25")
		require.NoError(t, err)
		assert.Len(t, dates, 2)
	})

	t.Run("multibyte rune before separator keeps offsets", func(t *testing.T) {
		// "İ" grows by a byte under ToLower; the failing token must come
		// back exactly as pasted, not sliced mid-expression.
		_, err := p.ExpandDates("İ 10/14/25 to 10/16/25")
		var parseErr *apperrors.DateParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "İ 10/14/25", parseErr.Input)
	})

	t.Run("reversed range fails", func(t *testing.T) {
		_, err := p.ExpandDates("10/16/25 to 10/14/25")
		require.Error(t, err)
		var parseErr *apperrors.DateParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Reason, "precedes")
	})

	t.Run("range wins over ampersand", func(t *testing.T) {
		// " to " binds first, so the ampersand half becomes a bad token.
		_, err := p.ExpandDates("10/14/25 to 10/16/25 & 10/20/25")
		require.Error(t, err)
	})
}

func TestDateParser_ExpandDates_Failures(t *testing.T) {
	p := NewDateParser(2025, 2000)

	for _, raw := range []string{"", "   ", "not a date", "10/14/25 & soon", "TBD to 10/16/25"} {
		t.Run(raw, func(t *testing.T) {
			_, err := p.ExpandDates(raw)
			require.Error(t, err)
			var parseErr *apperrors.DateParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestNewDateParser_Defaults(t *testing.T) {
	p := NewDateParser(0, 0)
	d, err := p.ParseToken("6/1")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Year(), d.Year())

	d, err = p.ParseToken("6/1/30")
	require.NoError(t, err)
	assert.Equal(t, 2030, d.Year())
}
