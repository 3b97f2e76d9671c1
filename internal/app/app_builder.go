package app

import (
	"time"

	"github.com/Carmen-Shannon/nova-showcase/internal/config"
	"go.uber.org/zap"
)

type appConfig struct {
	logger *zap.Logger
	config config.Config
	now    func() time.Time
}

// AppBuilderOption is a functional option for configuring an App.
type AppBuilderOption func(*appConfig)

// WithLogger sets the logger.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithLogger(l *zap.Logger) AppBuilderOption {
	return func(c *appConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithConfig sets the pose, reveal and screen texture settings.
//
// Parameters:
//   - cfg: the resolved configuration
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithConfig(cfg config.Config) AppBuilderOption {
	return func(c *appConfig) {
		c.config = cfg
	}
}

func withClock(now func() time.Time) AppBuilderOption {
	return func(c *appConfig) {
		c.now = now
	}
}
