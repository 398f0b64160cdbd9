// Package monitor polls the climate sensor onto the display and reacts to
// button presses between polls.
package monitor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/anicoll/esp32-status/internal/pkg/config"
	"github.com/anicoll/esp32-status/internal/pkg/display"
	"github.com/anicoll/esp32-status/internal/pkg/model"
)

type sensor interface {
	Read(ctx context.Context) (model.Reading, error)
}

type screen interface {
	Render(lines []string) error
}

type Monitor struct {
	sensor   sensor
	screen   screen
	interval time.Duration
	debounce time.Duration
	pressed  atomic.Bool
	logger   *zap.Logger
}

func New(s sensor, sc screen, cfg *config.MonitorConfig) *Monitor {
	return &Monitor{
		sensor:   s,
		screen:   sc,
		interval: cfg.Interval,
		debounce: cfg.Debounce,
		logger:   zap.L(),
	}
}

// Press records a button press. It is safe to call from any goroutine and
// does no work beyond setting a flag; the next tick handles it.
func (m *Monitor) Press() {
	m.pressed.Store(true)
}

func (m *Monitor) Pressed() bool {
	return m.pressed.Load()
}

// Tick does one poll: show the latest reading, then the button message if
// a press is pending.
func (m *Monitor) Tick(ctx context.Context) {
	r, err := m.sensor.Read(ctx)
	if err != nil {
		m.logger.Warn("sensor read failed", zap.Error(err))
	} else {
		m.render(display.ReadingLines(r))
	}

	if !m.pressed.Load() {
		return
	}
	m.logger.Info("button pressed")
	m.render(display.MessageLines(display.ButtonPressText))

	t := time.NewTimer(m.debounce)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
	m.pressed.Store(false)
}

// Run ticks immediately and then every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	c := cron.New(
		cron.WithLogger(cron.PrintfLogger(zap.NewStdLog(m.logger))),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", m.interval), func() {
		m.Tick(ctx)
	}); err != nil {
		return fmt.Errorf("schedule poll: %w", err)
	}

	m.logger.Info("monitor started", zap.Duration("interval", m.interval))
	m.Tick(ctx)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	m.logger.Info("monitor stopped")
	return ctx.Err()
}

func (m *Monitor) render(lines []string) {
	if err := m.screen.Render(lines); err != nil {
		m.logger.Warn("failed to update display", zap.Error(err))
	}
}
