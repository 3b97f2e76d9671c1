package showcase

import (
	"github.com/Carmen-Shannon/nova-showcase/internal/pose"
	"github.com/Carmen-Shannon/nova-showcase/internal/typeset"
	"go.uber.org/zap"
)

type stageConfig struct {
	logger     *zap.Logger
	params     pose.Params
	screen     *Screen
	typesetter *typeset.Typesetter
}

// StageBuilderOption is a functional option for configuring a Stage.
type StageBuilderOption func(*stageConfig)

// WithLogger sets the stage logger.
func WithLogger(logger *zap.Logger) StageBuilderOption {
	return func(c *stageConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithParams sets the initial pose tuning of both phones.
func WithParams(p pose.Params) StageBuilderOption {
	return func(c *stageConfig) {
		c.params = p
	}
}

// WithScreen supplies the display rasterizer. The caller keeps ownership and closes it.
func WithScreen(s *Screen) StageBuilderOption {
	return func(c *stageConfig) {
		c.screen = s
	}
}

// WithTypesetter supplies the fonts used for the display mockup. The stage closes it.
func WithTypesetter(t *typeset.Typesetter) StageBuilderOption {
	return func(c *stageConfig) {
		c.typesetter = t
	}
}
