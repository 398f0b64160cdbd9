package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anicoll/esp32-status/internal/pkg/model"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		raw           string
		wantStatus    Status
		wantParams    map[string]string
		wantMalformed []string
	}{
		"no query string": {
			raw:        "GET / HTTP/1.1\r\nHost: 192.168.4.1\r\n\r\n",
			wantStatus: Absent,
		},
		"not a get": {
			raw:        "POST /?r=1&g=2&b=3 HTTP/1.1\r\n\r\n",
			wantStatus: Absent,
		},
		"favicon": {
			raw:        "GET /favicon.ico HTTP/1.1\r\n\r\n",
			wantStatus: Absent,
		},
		"rgb": {
			raw:        "GET /?r=255&g=0&b=0 HTTP/1.1\r\nHost: x\r\n\r\n",
			wantStatus: Present,
			wantParams: map[string]string{"r": "255", "g": "0", "b": "0"},
		},
		"empty value is kept": {
			raw:        "GET /?r=&g=1 HTTP/1.1\r\n",
			wantStatus: Present,
			wantParams: map[string]string{"r": "", "g": "1"},
		},
		"pair without equals does not stop the others": {
			raw:           "GET /?r&g=1&b=2 HTTP/1.1\r\n",
			wantStatus:    Present,
			wantParams:    map[string]string{"g": "1", "b": "2"},
			wantMalformed: []string{"r"},
		},
		"only malformed pairs": {
			raw:           "GET /?junk HTTP/1.1\r\n",
			wantStatus:    Malformed,
			wantMalformed: []string{"junk"},
		},
		"first value wins": {
			raw:        "GET /?alarm=on&alarm=off HTTP/1.1\r\n",
			wantStatus: Present,
			wantParams: map[string]string{"alarm": "on"},
		},
		"no percent decoding": {
			raw:        "GET /?name=a%20b HTTP/1.1\r\n",
			wantStatus: Present,
			wantParams: map[string]string{"name": "a%20b"},
		},
		"truncated request line": {
			raw:        "GET /?r=1&g=2&b",
			wantStatus: Present,
			wantParams: map[string]string{"r": "1", "g": "2"},
			wantMalformed: []string{
				"b",
			},
		},
		"marker with nothing after it": {
			raw:        "GET /? HTTP/1.1\r\n",
			wantStatus: Absent,
		},
		"leading CRLF": {
			raw:        "\r\nGET /?r=1&g=2&b=3 HTTP/1.1\r\n\r\n",
			wantStatus: Present,
			wantParams: map[string]string{"r": "1", "g": "2", "b": "3"},
		},
		"request line after blank lines": {
			raw:        "\r\n\r\nGET /?alarm=on HTTP/1.1\r\nHost: x\r\n\r\n",
			wantStatus: Present,
			wantParams: map[string]string{"alarm": "on"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			q := Parse(tt.raw)
			assert.Equal(t, tt.wantStatus, q.Status)
			if tt.wantParams != nil {
				assert.Equal(t, tt.wantParams, q.Params)
			}
			assert.Equal(t, tt.wantMalformed, q.Malformed)
		})
	}
}

func TestQueryInt(t *testing.T) {
	q := Parse("GET /?a=12&b=x HTTP/1.1")

	n, ok, err := q.Int("a")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok, err = q.Int("b")
	assert.True(t, ok)
	assert.True(t, errors.Is(err, ErrNotNumeric))

	_, ok, err = q.Int("c")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRGB(t *testing.T) {
	tests := map[string]struct {
		raw        string
		wantStatus Status
		wantColor  model.RGB
	}{
		"full set": {
			raw:        "GET /?r=10&g=20&b=30 HTTP/1.1",
			wantStatus: Present,
			wantColor:  model.RGB{R: 10, G: 20, B: 30},
		},
		"order does not matter": {
			raw:        "GET /?b=3&r=1&g=2 HTTP/1.1",
			wantStatus: Present,
			wantColor:  model.RGB{R: 1, G: 2, B: 3},
		},
		"out of range is passed through": {
			raw:        "GET /?r=300&g=0&b=-1 HTTP/1.1",
			wantStatus: Present,
			wantColor:  model.RGB{R: 300, G: 0, B: -1},
		},
		"partial set": {
			raw:        "GET /?r=10&g=20 HTTP/1.1",
			wantStatus: Absent,
		},
		"no command": {
			raw:        "GET / HTTP/1.1",
			wantStatus: Absent,
		},
		"unrelated keys": {
			raw:        "GET /?alarm=on HTTP/1.1",
			wantStatus: Absent,
		},
		"one bad value discards all": {
			raw:        "GET /?r=10&g=abc&b=30 HTTP/1.1",
			wantStatus: Malformed,
		},
		"empty value discards all": {
			raw:        "GET /?r=&g=1&b=2 HTTP/1.1",
			wantStatus: Malformed,
		},
		"key without value discards all": {
			raw:        "GET /?r&g=1&b=2 HTTP/1.1",
			wantStatus: Malformed,
		},
		"only a bare key": {
			raw:        "GET /?g HTTP/1.1",
			wantStatus: Malformed,
		},
		"only an unrelated bare key": {
			raw:        "GET /?x HTTP/1.1",
			wantStatus: Absent,
		},
		"leading CRLF": {
			raw:        "\r\nGET /?r=1&g=2&b=3 HTTP/1.1\r\n\r\n",
			wantStatus: Present,
			wantColor:  model.RGB{R: 1, G: 2, B: 3},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := RGB(Parse(tt.raw))
			assert.Equal(t, tt.wantStatus, cmd.Status)
			assert.Equal(t, tt.wantColor, cmd.Color)
			if tt.wantStatus == Malformed {
				assert.Error(t, cmd.Err)
			}
		})
	}
}

func TestAlarm(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want AlarmAction
	}{
		"on":           {raw: "GET /?alarm=on HTTP/1.1", want: AlarmOn},
		"off":          {raw: "GET /?alarm=off HTTP/1.1", want: AlarmOff},
		"absent":       {raw: "GET / HTTP/1.1", want: AlarmNone},
		"garbage":      {raw: "GET /?alarm=maybe HTTP/1.1", want: AlarmNone},
		"prefix only":  {raw: "GET /?alarm=onion HTTP/1.1", want: AlarmNone},
		"bare key":     {raw: "GET /?alarm HTTP/1.1", want: AlarmNone},
		"among others": {raw: "GET /?x=1&alarm=off HTTP/1.1", want: AlarmOff},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Alarm(Parse(tt.raw)))
		})
	}
}
