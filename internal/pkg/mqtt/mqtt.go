package mqtt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	paho_mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anicoll/esp32-status/internal/pkg/config"
	"github.com/anicoll/esp32-status/internal/pkg/model"
)

var (
	ErrTimeout  = errors.New("mqtt operation timed out")
	ErrNoDevice = errors.New("no device registered")
)

type client interface {
	Connect() paho_mqtt.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) paho_mqtt.Token
	Disconnect(quiesce uint)
}

type service struct {
	client     client
	timeout    time.Duration
	mu         sync.Mutex
	device     *model.Device
	configured map[string]struct{}
	logger     *zap.Logger
}

func New(c client, timeout time.Duration) *service {
	return &service{
		client:     c,
		timeout:    timeout,
		configured: make(map[string]struct{}),
		logger:     zap.L(),
	}
}

// NewClient builds a paho client for the configured broker. A random client
// id is used when none is configured.
func NewClient(cfg *config.MqttConfig) paho_mqtt.Client {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "esp32-status-" + uuid.NewString()
	}
	opts := paho_mqtt.NewClientOptions().
		AddBroker(cfg.Host).
		SetClientID(clientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(cfg.Timeout).
		SetAutoReconnect(true)
	return paho_mqtt.NewClient(opts)
}

func (s *service) Connect() error {
	if err := s.wait(s.client.Connect()); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	s.logger.Info("connected to mqtt broker")
	return nil
}

func (s *service) Close() {
	s.client.Disconnect(250)
}

func (s *service) wait(token paho_mqtt.Token) error {
	if !token.WaitTimeout(s.timeout) {
		return ErrTimeout
	}
	return token.Error()
}
