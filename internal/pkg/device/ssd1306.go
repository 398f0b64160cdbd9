package device

import (
	"slices"
	"sync"

	"go.uber.org/zap"
)

// 128x64 panel with the 8x8 built-in font.
const (
	SSD1306Columns = 16
	SSD1306Rows    = 8
)

type SSD1306 struct {
	mu      sync.Mutex
	lines   []string
	renders int
	logger  *zap.Logger
}

func NewSSD1306() *SSD1306 {
	return &SSD1306{logger: zap.L()}
}

// Render clears the panel and draws lines from the top. Lines longer than
// the panel are clipped, rows past the bottom are dropped.
func (d *SSD1306) Render(lines []string) error {
	clipped := make([]string, 0, min(len(lines), SSD1306Rows))
	for i, line := range lines {
		if i >= SSD1306Rows {
			break
		}
		if r := []rune(line); len(r) > SSD1306Columns {
			line = string(r[:SSD1306Columns])
		}
		clipped = append(clipped, line)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = clipped
	d.renders++
	d.logger.Debug("display updated", zap.Strings("lines", clipped))
	return nil
}

func (d *SSD1306) Lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.lines)
}

func (d *SSD1306) Renders() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.renders
}
