package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkill_DecodesRateAsNumberOrString(t *testing.T) {
	payloads := []string{
		`{"skill_name":"Plumbing","hourly_rate":50,"currency":"USD"}`,
		`{"skill_name":"Plumbing","hourly_rate":"50.00","currency":"USD"}`,
	}

	for _, p := range payloads {
		var s Skill
		require.NoError(t, json.Unmarshal([]byte(p), &s))
		require.NotNil(t, s.HourlyRate)
		assert.Equal(t, 50.0, s.HourlyRate.Float64())
	}

	var noRate Skill
	require.NoError(t, json.Unmarshal([]byte(`{"skill_name":"Design","hourly_rate":null}`), &noRate))
	assert.Nil(t, noRate.HourlyRate)
}

func TestTimestamp_AcceptsBackendFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{`"2024-03-05T10:20:30Z"`, time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)},
		{`"2024-03-05T10:20:30.123456"`, time.Date(2024, 3, 5, 10, 20, 30, 123456000, time.UTC)},
		{`"2024-03-05T10:20:30+00:00"`, time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)},
		{`"2024-03-05 10:20:30"`, time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_RejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12345`), &ts))
}

func TestFormatRate(t *testing.T) {
	rate := Amount(50)
	assert.Equal(t, "$50 USD", FormatRate(&rate, "USD"))
	assert.Equal(t, "$50 USD", FormatRate(&rate, ""))
	assert.Equal(t, "Not set", FormatRate(nil, "USD"))
}

func TestUser_HasLocation(t *testing.T) {
	lat, lng, zero := 40.7, -74.0, 0.0

	assert.True(t, (&User{Latitude: &lat, Longitude: &lng}).HasLocation())
	assert.False(t, (&User{Latitude: &lat}).HasLocation())
	assert.False(t, (&User{Latitude: &zero, Longitude: &lng}).HasLocation())
}
