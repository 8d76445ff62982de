package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testTime = time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

func TestLogFilePath(t *testing.T) {
	tests := []struct {
		name    string
		logsDir string
		app     string
		start   time.Time
		want    string
	}{
		{
			name:    "basic path",
			logsDir: "cranelogs",
			app:     "cranesim",
			start:   testTime,
			want:    filepath.Join("cranelogs", "cranesim.20260212_213836.log"),
		},
		{
			name:    "relative path with dot",
			logsDir: "./cranelogs",
			app:     "cranesim",
			start:   testTime,
			want:    filepath.Join(".", "cranelogs", "cranesim.20260212_213836.log"),
		},
		{
			name:    "local time is stored as UTC",
			logsDir: "logs",
			app:     "cranesim",
			start:   testTime.In(time.FixedZone("east", 3*3600)),
			want:    filepath.Join("logs", "cranesim.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LogFilePath(tt.logsDir, tt.app, tt.start))
		})
	}
}
