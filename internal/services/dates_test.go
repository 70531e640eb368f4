package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected time.Time
	}{
		{
			name:     "full date",
			raw:      "2021-05-17",
			expected: time.Date(2021, 5, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "year and month defaults day to the 1st",
			raw:      "2021-05",
			expected: time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "year only defaults to January 1st",
			raw:      "2021",
			expected: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "surrounding whitespace",
			raw:      " 2019-02 ",
			expected: time.Date(2019, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.raw)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.expected), "got %v, want %v", got, tt.expected)
		})
	}
}

func TestNormalizeDateInvalid(t *testing.T) {
	invalid := []string{
		"",
		"2021-13-01",
		"2021-00",
		"May 2021",
		"present",
		"13/05/2021",
	}

	for _, raw := range invalid {
		t.Run(raw, func(t *testing.T) {
			_, err := NormalizeDate(raw)
			assert.ErrorIs(t, err, ErrInvalidDateFormat)
		})
	}
}
