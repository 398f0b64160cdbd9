package responder

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anicoll/esp32-status/internal/pkg/model"
)

func TestRender_RGB(t *testing.T) {
	resp, err := Render(model.Status{
		Flavor:  model.FlavorRGB,
		Reading: model.NewReading(23, 41),
		RGB:     model.RGB{R: 255, G: 0, B: 0},
	})
	require.NoError(t, err)

	body := string(resp)
	assert.True(t, strings.HasPrefix(body, "HTTP/1.1 200 OK\r\nContent-Type: text/html\r\n\r\n<!DOCTYPE html>"))
	assert.Contains(t, body, "Temperature: 23°C")
	assert.Contains(t, body, "Humidity: 41%")
	assert.Contains(t, body, "R255 G0 B0")
	assert.Contains(t, body, `name="r"`)
	assert.NotContains(t, body, "Alarm Status")
	assert.NotContains(t, strings.ToLower(body), "content-length")
}

func TestRender_Alarm(t *testing.T) {
	tests := map[string]struct {
		enabled bool
		want    string
	}{
		"on":  {enabled: true, want: "Alarm Status: <span class='alert'>ON</span>"},
		"off": {enabled: false, want: "Alarm Status: OFF"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			resp, err := Render(model.Status{
				Flavor:  model.FlavorAlarm,
				Reading: model.NewReading(35, 50),
				Alarm:   model.Alarm{Enabled: tt.enabled},
			})
			require.NoError(t, err)

			body := string(resp)
			assert.Contains(t, body, tt.want)
			assert.Contains(t, body, "Temperature: 35°C")
			assert.Contains(t, body, "Humidity: 50%")
			assert.Contains(t, body, `href="/?alarm=on"`)
			assert.NotContains(t, body, `name="r"`)
		})
	}
}

func TestRender_Unavailable(t *testing.T) {
	resp, err := Render(model.Status{Flavor: model.FlavorRGB, Reading: model.Unavailable})
	require.NoError(t, err)
	assert.Contains(t, string(resp), "Temperature: --°C")
	assert.Contains(t, string(resp), "Humidity: --%")
}

func TestRender_EveryState(t *testing.T) {
	readings := []model.Reading{model.NewReading(0, 20), model.NewReading(50, 90), model.Unavailable}
	for _, r := range readings {
		for _, c := range []model.RGB{{}, {R: 1, G: 2, B: 3}, {R: 255, G: 255, B: 255}} {
			resp, err := Render(model.Status{Flavor: model.FlavorRGB, Reading: r, RGB: c})
			require.NoError(t, err)
			assert.Contains(t, string(resp), "Temperature: "+r.Temperature()+"°C")
			assert.Contains(t, string(resp), "Humidity: "+r.Humidity()+"%")
			assert.Contains(t, string(resp), c.String())
		}
		for _, enabled := range []bool{true, false} {
			resp, err := Render(model.Status{Flavor: model.FlavorAlarm, Reading: r, Alarm: model.Alarm{Enabled: enabled}})
			require.NoError(t, err)
			assert.Contains(t, string(resp), "Temperature: "+r.Temperature()+"°C")
		}
	}
}

type countingWriter struct {
	bytes.Buffer
	writes int
	err    error
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.err != nil {
		return 0, w.err
	}
	return w.Buffer.Write(p)
}

func TestWrite_SingleCall(t *testing.T) {
	w := &countingWriter{}
	require.NoError(t, Write(w, model.Status{Flavor: model.FlavorRGB, Reading: model.NewReading(20, 30)}))
	assert.Equal(t, 1, w.writes)
	assert.True(t, strings.HasPrefix(w.String(), Header))
}

func TestWrite_Error(t *testing.T) {
	w := &countingWriter{err: errors.New("broken pipe")}
	assert.Error(t, Write(w, model.Status{}))
}
