package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const minAPPasswordLength = 8

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"INFO"`
	ListenAddr  string        `env:"LISTEN_ADDR" envDefault:"0.0.0.0:80"`
	BufferSize  int           `env:"READ_BUFFER_SIZE" envDefault:"1024"`
	ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"0s"`

	WifiCfg    WifiConfig    `envPrefix:"WIFI_"`
	SensorCfg  SensorConfig  `envPrefix:"SENSOR_"`
	AlarmCfg   AlarmConfig   `envPrefix:"ALARM_"`
	MqttCfg    MqttConfig    `envPrefix:"MQTT_"`
	EvokCfg    EvokConfig    `envPrefix:"EVOK_"`
	MonitorCfg MonitorConfig `envPrefix:"MONITOR_"`
	I2CCfg     I2CConfig     `envPrefix:"I2C_"`
}

type WifiConfig struct {
	// Mode is "ap" or "station". Empty lets the command pick.
	Mode     string `env:"MODE"`
	Radio    string `env:"RADIO" envDefault:"sim"`
	SSID     string `env:"SSID"`
	Password string `env:"PASSWORD"`

	StaticIP   string `env:"STATIC_IP"`
	SubnetMask string `env:"SUBNET_MASK" envDefault:"255.255.255.0"`
	Gateway    string `env:"GATEWAY"`
	DNS        string `env:"DNS" envDefault:"8.8.8.8"`

	RetryInterval    time.Duration `env:"RETRY_INTERVAL" envDefault:"1s"`
	MaxRetryInterval time.Duration `env:"MAX_RETRY_INTERVAL" envDefault:"8s"`
	ConnectTimeout   time.Duration `env:"CONNECT_TIMEOUT" envDefault:"30s"`
	SimPollsToJoin   int           `env:"SIM_POLLS_TO_JOIN" envDefault:"2"`
}

type SensorConfig struct {
	Temperature int `env:"TEMPERATURE" envDefault:"24"`
	Humidity    int `env:"HUMIDITY" envDefault:"45"`
}

type AlarmConfig struct {
	TemperatureC int `env:"TEMPERATURE" envDefault:"30"`
	HumidityPct  int `env:"HUMIDITY" envDefault:"80"`
}

type MqttConfig struct {
	Host     string        `env:"HOST"`
	Username string        `env:"USER"`
	Password string        `env:"PASS"`
	ClientID string        `env:"CLIENT_ID"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"5s"`

	// DeviceName names the device in Home Assistant.
	DeviceName string `env:"DEVICE_NAME" envDefault:"ESP32 Status"`
}

// EvokConfig points actuators at an EVOK websocket API instead of the
// on-board drivers.
type EvokConfig struct {
	URL          string `env:"URL"`
	RedCircuit   string `env:"RED_CIRCUIT" envDefault:"1"`
	GreenCircuit string `env:"GREEN_CIRCUIT" envDefault:"2"`
	BlueCircuit  string `env:"BLUE_CIRCUIT" envDefault:"3"`
	RelayCircuit string `env:"RELAY_CIRCUIT" envDefault:"1"`
}

type MonitorConfig struct {
	Interval time.Duration `env:"INTERVAL" envDefault:"2s"`
	Debounce time.Duration `env:"DEBOUNCE" envDefault:"1s"`
}

type I2CConfig struct {
	Bus string `env:"BUS" envDefault:"sim"`

	// Addresses answered by the simulated bus.
	SimAddresses []uint8 `env:"SIM_ADDRESSES" envDefault:"60"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default access point credentials.
const (
	DefaultAPSSID     = "ESP32_AP"
	DefaultAPPassword = "12345678"
)

// WithMode fills in the wifi mode when none was configured, along with the
// access point credentials it needs.
func (c *Config) WithMode(mode string) *Config {
	w := &c.WifiCfg
	if w.Mode == "" {
		w.Mode = mode
	}
	if w.Mode == "ap" {
		if w.SSID == "" {
			w.SSID = DefaultAPSSID
		}
		if w.Password == "" {
			w.Password = DefaultAPPassword
		}
	}
	return c
}

// Validate checks the settings. Wifi settings are only checked once a mode
// is set; commands that never bring the link up leave it empty.
func (c *Config) Validate() error {
	if c.BufferSize <= 0 {
		return fmt.Errorf("%w: READ_BUFFER_SIZE must be positive", ErrInvalid)
	}
	if c.MonitorCfg.Interval <= 0 {
		return fmt.Errorf("%w: MONITOR_INTERVAL must be positive", ErrInvalid)
	}
	w := &c.WifiCfg
	switch w.Mode {
	case "":
		return nil
	case "ap":
		if len(w.Password) < minAPPasswordLength {
			return fmt.Errorf("%w: access point password needs at least %d characters", ErrInvalid, minAPPasswordLength)
		}
	case "station":
		if w.SSID == "" {
			return fmt.Errorf("%w: WIFI_SSID is required in station mode", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown WIFI_MODE %q", ErrInvalid, w.Mode)
	}
	if w.ConnectTimeout <= 0 {
		return fmt.Errorf("%w: WIFI_CONNECT_TIMEOUT must be positive", ErrInvalid)
	}
	return nil
}
