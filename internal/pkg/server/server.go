package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anicoll/esp32-status/internal/pkg/display"
	"github.com/anicoll/esp32-status/internal/pkg/model"
	"github.com/anicoll/esp32-status/internal/pkg/parser"
	"github.com/anicoll/esp32-status/internal/pkg/responder"
)

// DefaultBufferSize is the most a single request read will return. Longer
// requests are truncated.
const DefaultBufferSize = 1024

type controller interface {
	Apply(q parser.Query)
	Drive(r model.Reading)
	Status(r model.Reading) model.Status
}

type sensor interface {
	Read(ctx context.Context) (model.Reading, error)
}

type screen interface {
	Render(lines []string) error
}

type Option func(*Server)

func WithBufferSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.bufferSize = n
		}
	}
}

// WithReadTimeout bounds the wait for a request. Zero waits forever.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = d
	}
}

// WithUpdates makes the server offer every handled status on ch. Offers
// never block; when ch is full the status is dropped.
func WithUpdates(ch chan<- model.Status) Option {
	return func(s *Server) {
		s.updates = ch
	}
}

// Server handles one connection at a time: receive, parse, update the
// controller, read the sensor, refresh the display, respond and close.
type Server struct {
	ctrl        controller
	sensor      sensor
	screen      screen
	bufferSize  int
	readTimeout time.Duration
	updates     chan<- model.Status
	logger      *zap.Logger
}

func New(ctrl controller, sensor sensor, screen screen, opts ...Option) *Server {
	s := &Server{
		ctrl:       ctrl,
		sensor:     sensor,
		screen:     screen,
		bufferSize: DefaultBufferSize,
		logger:     zap.L(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Serve accepts connections from ln until ctx is cancelled or ln fails.
// It closes ln before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})
	defer stop()
	defer ln.Close()

	s.logger.Info("status server listening", zap.Stringer("addr", ln.Addr()))
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("status server stopped")
				return ctx.Err()
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.logger.Warn("accept timed out", zap.Error(err))
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.handle(ctx, conn)
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	logger := s.logger.With(
		zap.String("connection_id", uuid.NewString()),
		zap.Stringer("remote_addr", conn.RemoteAddr()),
	)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("recovered from panic while handling connection", zap.Any("panic", r), zap.Stack("stack"))
		}
		if err := conn.Close(); err != nil {
			logger.Debug("failed to close connection", zap.Error(err))
		}
	}()
	logger.Info("client connected")

	raw, err := s.receive(conn)
	if err != nil {
		logger.Warn("failed to read request", zap.Error(err))
	}

	q := parser.Parse(raw)
	logger.Debug("request parsed", zap.Stringer("command", q.Status), zap.Any("params", q.Params))
	s.ctrl.Apply(q)

	reading := s.read(ctx, logger)
	s.ctrl.Drive(reading)
	st := s.ctrl.Status(reading)

	if err := s.screen.Render(display.Lines(st)); err != nil {
		logger.Warn("failed to update display", zap.Error(err))
	}
	if err := responder.Write(conn, st); err != nil {
		logger.Warn("failed to send response", zap.Error(err))
	}
	s.notify(st)
}

// receive does a single read of at most bufferSize bytes.
func (s *Server) receive(conn net.Conn) (string, error) {
	if s.readTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
			return "", err
		}
	}
	buf := make([]byte, s.bufferSize)
	n, err := conn.Read(buf)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return string(buf[:n]), err
}

func (s *Server) read(ctx context.Context, logger *zap.Logger) model.Reading {
	r, err := s.sensor.Read(ctx)
	if err != nil {
		logger.Warn("sensor read failed", zap.Error(err))
		return model.Unavailable
	}
	return r
}

func (s *Server) notify(st model.Status) {
	if s.updates == nil {
		return
	}
	select {
	case s.updates <- st:
	default:
		s.logger.Debug("status update dropped")
	}
}
