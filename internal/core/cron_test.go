package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCronExpression_Valid(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		readable   string
	}{
		{"six fields with question mark", "0 0 12 * * ?", "At 12:00, every day"},
		{"five fields get implicit seconds", "30 4 * * *", "At 04:30, every day"},
		{"seven fields drop the year", "0 0 2 * * ? 2026", "At 02:00, every day"},
		{"minute steps", "0 */15 * * * ?", "Every 15 minutes"},
		{"every minute", "0 * * * * ?", "Every minute"},
		{"every second", "* * * * * ?", "Every second"},
		{"hourly at fixed minute", "0 30 * * * ?", "At minute 30 past every hour"},
		{"month and weekday names", "0 0 9 * JAN MON", "At 09:00, in January, on Monday"},
		{"day of month", "0 0 0 15 * ?", "At 00:00, on day 15 of the month"},
		{"nonzero seconds in clock", "45 10 6 * * ?", "At 06:10:45, every day"},
		{"last day of month", "0 0 0 L * ?", "At 00:00, on the last day of the month"},
		{"last weekday of month", "0 0 0 LW * ?", "At 00:00, on the last weekday of the month"},
		{"offset from last day", "0 0 0 L-3 * ?", "At 00:00, 3 days before the end of the month"},
		{"nearest weekday", "0 0 0 15W * ?", "At 00:00, on the weekday nearest day 15 of the month"},
		{"last weekday of week in month", "0 15 10 ? * 6L", "At 10:15, on the last Saturday of the month"},
		{"nth weekday of month", "0 15 10 ? * 6#3", "At 10:15, on the third Saturday of the month"},
		{"named nth weekday", "0 0 9 ? * FRI#2", "At 09:00, on the second Friday of the month"},
		{"bare L day of week", "0 0 9 ? * L", "At 09:00, on Saturday"},
		{"day of week seven", "0 0 9 ? * 7", "At 09:00, on Sunday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCronExpression(tt.expression)
			require.True(t, result.Valid, "expected %q to be valid: %s", tt.expression, result.Error)
			assert.Equal(t, tt.readable, result.Readable)
			assert.Empty(t, result.Error)
		})
	}
}

func TestValidateCronExpression_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{"free text", "not a cron"},
		{"empty", ""},
		{"too many fields", "0 0 0 0 0 0 0 0"},
		{"minute out of range", "0 99 * * * ?"},
		{"garbage field", "0 0 x * * ?"},
		{"nth weekday out of range", "0 0 9 ? * 6#6"},
		{"day of week out of range", "0 0 9 ? * 8"},
		{"W on day of week", "0 0 9 ? * 6W"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCronExpression(tt.expression)
			assert.False(t, result.Valid)
			assert.NotEmpty(t, result.Error)
			assert.Empty(t, result.Readable)
		})
	}
}

func TestNormalizeQuartzFields(t *testing.T) {
	fields, err := normalizeQuartzFields("0 0 12 * * ?")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "0", "12", "*", "*", "*"}, fields)

	fields, err = normalizeQuartzFields("30 4 * * *")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "30", "4", "*", "*", "*"}, fields)

	fields, err = normalizeQuartzFields("0 0 2 ? * MON 2026")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "0", "2", "*", "*", "MON"}, fields)

	_, err = normalizeQuartzFields("* *")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must have 5, 6, or 7 fields")
}

func TestDescribeCronExpression_Error(t *testing.T) {
	_, err := DescribeCronExpression("61 61 25 * * ?")
	require.Error(t, err)
}
