package server

import (
	"errors"
	"fmt"
	"log"

	"capture/internal/request"
)

var ErrInvalidConfig = errors.New("invalid server config")

type Config struct {
	// Port to listen on. 0 picks a free port; see Server.Addr.
	Port int
	// WebRoot is the directory files are served from.
	WebRoot string
	// ReadBufferSize bounds the single read of each request and sizes the
	// socket receive buffer. Defaults to request.DefaultReadSize.
	ReadBufferSize int
	// Logger defaults to log.Default().
	Logger *log.Logger
}

func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.WebRoot == "" {
		return fmt.Errorf("%w: empty webroot", ErrInvalidConfig)
	}
	if c.ReadBufferSize < 0 {
		return fmt.Errorf("%w: negative read buffer size", ErrInvalidConfig)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = request.DefaultReadSize
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return c
}
