package device

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anicoll/esp32-status/internal/pkg/model"
)

func TestDHT11_Read(t *testing.T) {
	d := NewDHT11(25, 40)

	r, err := d.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.NewReading(25, 40), r)

	d.Set(80, 5)
	r, err = d.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DHT11MaxTemperature, r.TemperatureC, "clamped to the sensor range")
	assert.Equal(t, DHT11MinHumidity, r.HumidityPct, "clamped to the sensor range")

	d.SetFailing(true)
	r, err = d.Read(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, model.Unavailable, r)
	assert.Equal(t, 3, d.Reads())
}

func TestDHT11_ReadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDHT11(20, 50).Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNeoPixel_SetColor(t *testing.T) {
	tests := map[string]struct {
		color   model.RGB
		wantErr bool
	}{
		"black":     {color: model.RGB{}},
		"white":     {color: model.RGB{R: 255, G: 255, B: 255}},
		"too large": {color: model.RGB{R: 256}, wantErr: true},
		"negative":  {color: model.RGB{B: -1}, wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewNeoPixel()
			err := p.SetColor(tt.color)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOutOfRange)
				assert.Equal(t, 0, p.Writes())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.color, p.Color())
			assert.Equal(t, 1, p.Writes())
		})
	}
}

func TestBuzzer(t *testing.T) {
	b := NewBuzzer()
	assert.False(t, b.On())
	assert.NoError(t, b.SetAlarm(true))
	assert.True(t, b.On())
	assert.NoError(t, b.SetAlarm(true))
	assert.True(t, b.On())
	assert.NoError(t, b.SetAlarm(false))
	assert.False(t, b.On())
}

func TestSSD1306_Render(t *testing.T) {
	d := NewSSD1306()
	lines := []string{"Temp: 25 C", "RGB: R255 G255 B255", "", "3", "4", "5", "6", "7", "8"}

	require.NoError(t, d.Render(lines))

	got := d.Lines()
	assert.Len(t, got, SSD1306Rows)
	assert.Equal(t, "Temp: 25 C", got[0])
	assert.Equal(t, "RGB: R255 G255 B", got[1])
	assert.Equal(t, 1, d.Renders())
}
