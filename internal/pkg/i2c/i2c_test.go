package i2c

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	original := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(func() {
		zap.ReplaceGlobals(original)
	})
	return logs
}

func TestScan(t *testing.T) {
	tests := map[string]struct {
		present  []uint8
		expected []uint8
	}{
		"oled only": {
			present:  []uint8{0x3c},
			expected: []uint8{0x3c},
		},
		"sorted regardless of bus order": {
			present:  []uint8{0x76, 0x3c, 0x08},
			expected: []uint8{0x08, 0x3c, 0x76},
		},
		"reserved addresses are never probed": {
			present:  []uint8{0x00, 0x07, 0x78, 0x7f, 0x77},
			expected: []uint8{0x77},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			observedLogger(t)
			bus := NewSimBus(tc.present...)

			found, err := Scan(context.Background(), bus)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
			assert.Equal(t, 0x70, bus.Probes())
		})
	}
}

func TestScan_NothingFound(t *testing.T) {
	logs := observedLogger(t)

	found, err := Scan(context.Background(), NewSimBus())

	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Equal(t, 1, logs.FilterMessage("no i2c devices found, check wiring").Len())
}

func TestScan_Cancelled(t *testing.T) {
	observedLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus := NewSimBus(0x3c)

	_, err := Scan(ctx, bus)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, bus.Probes())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, []string{"0x08", "0x3c", "0x77"}, Format([]uint8{0x08, 0x3c, 0x77}))
	assert.Empty(t, Format(nil))
}
