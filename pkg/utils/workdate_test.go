package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkDateWithBase(t *testing.T) {
	// A Saturday, mid-afternoon, so day arithmetic is visible.
	base := time.Date(2025, 3, 15, 15, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "empty defaults to today",
			input: "",
			want:  time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "iso date",
			input: "2025-01-20",
			want:  time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "yesterday",
			input: "yesterday",
			want:  time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "today",
			input: "today",
			want:  time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "last friday",
			input: "last friday",
			want:  time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "surrounding whitespace",
			input: "  2025-01-20  ",
			want:  time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "gibberish",
			input:   "the heat death of the universe",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWorkDateWithBase(tt.input, base)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWorkDateResultIsMidnight(t *testing.T) {
	base := time.Date(2025, 6, 1, 23, 59, 59, 0, time.UTC)

	got, err := ParseWorkDateWithBase("yesterday", base)
	require.NoError(t, err)

	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, 0, got.Second())
	assert.Equal(t, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), got)
}
