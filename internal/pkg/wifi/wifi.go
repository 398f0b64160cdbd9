package wifi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/anicoll/esp32-status/internal/pkg/config"
)

var (
	ErrTimeout       = errors.New("wifi association timed out")
	ErrUnknownMode   = errors.New("unknown wifi mode")
	ErrNotAssociated = errors.New("not associated")
)

type Mode string

func (m Mode) String() string {
	return string(m)
}

const (
	ModeAP      Mode = "ap"
	ModeStation Mode = "station"
)

// IPConfig is a static address assignment.
type IPConfig struct {
	Address string
	Netmask string
	Gateway string
	DNS     string
}

type radio interface {
	Activate(mode Mode) error
	ConfigureAP(ssid, password string) error
	ConfigureIP(ip IPConfig) error
	Connect(ssid, password string) error
	IsConnected() bool
	Address() string
}

type Link struct {
	radio  radio
	cfg    *config.WifiConfig
	logger *zap.Logger
}

func New(r radio, cfg *config.WifiConfig) *Link {
	return &Link{radio: r, cfg: cfg, logger: zap.L()}
}

// Up brings the link up in the configured mode and returns the device
// address.
func (l *Link) Up(ctx context.Context) (string, error) {
	switch Mode(l.cfg.Mode) {
	case ModeAP:
		return l.upAP()
	case ModeStation:
		return l.upStation(ctx)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, l.cfg.Mode)
}

func (l *Link) upAP() (string, error) {
	if err := l.radio.Activate(ModeAP); err != nil {
		return "", fmt.Errorf("activate access point: %w", err)
	}
	if err := l.radio.ConfigureAP(l.cfg.SSID, l.cfg.Password); err != nil {
		return "", fmt.Errorf("configure access point: %w", err)
	}
	addr := l.radio.Address()
	l.logger.Info("access point created", zap.String("ssid", l.cfg.SSID), zap.String("address", addr))
	return addr, nil
}

func (l *Link) upStation(ctx context.Context) (string, error) {
	if err := l.radio.Activate(ModeStation); err != nil {
		return "", fmt.Errorf("activate station: %w", err)
	}
	if l.cfg.StaticIP != "" {
		if err := l.radio.ConfigureIP(IPConfig{
			Address: l.cfg.StaticIP,
			Netmask: l.cfg.SubnetMask,
			Gateway: l.cfg.Gateway,
			DNS:     l.cfg.DNS,
		}); err != nil {
			return "", fmt.Errorf("configure static ip: %w", err)
		}
	}

	l.logger.Info("connecting to wifi network", zap.String("ssid", l.cfg.SSID))
	if err := l.radio.Connect(l.cfg.SSID, l.cfg.Password); err != nil {
		return "", fmt.Errorf("connect to %q: %w", l.cfg.SSID, err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = l.cfg.RetryInterval
	bo.MaxInterval = l.cfg.MaxRetryInterval
	bo.MaxElapsedTime = l.cfg.ConnectTimeout

	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		if !l.radio.IsConnected() {
			return ErrNotAssociated
		}
		return nil
	}, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		l.logger.Info("wifi connect retry", zap.Int("attempt", attempt), zap.Duration("next", next))
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w after %s (%d attempts)", ErrTimeout, l.cfg.ConnectTimeout, attempt)
	}

	addr := l.radio.Address()
	l.logger.Info("wifi connected", zap.String("ssid", l.cfg.SSID), zap.String("address", addr))
	return addr, nil
}
