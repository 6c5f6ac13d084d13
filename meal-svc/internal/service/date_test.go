package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServeDate(t *testing.T) {
	// 2025-03-02 20:30 UTC is already 2025-03-03 in Seoul.
	now := time.Date(2025, 3, 2, 20, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "default_today_in_seoul", raw: "", want: "20250303"},
		{name: "html_date_input", raw: "2025-01-01", want: "20250101"},
		{name: "neis_format", raw: "20250315", want: "20250315"},
		{name: "garbage", raw: "tomorrow", wantErr: true},
		{name: "impossible_day", raw: "2025-02-30", wantErr: true},
		{name: "injection", raw: "20250101&SD_SCHUL_CODE=1", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			date, err := ParseServeDate(testCase.raw, now)
			if testCase.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, NEISDate(date))
			assert.Equal(t, Seoul, date.Location())
		})
	}
}
