// Package logging adapts pkg/logger to the application's port.Logger.
package logging

import (
	"context"

	"github.com/vbpupil/measurement-converter/internal/application/port"
	"github.com/vbpupil/measurement-converter/pkg/logger"
)

// Adapter adapts *logger.Logger to the port.Logger interface.
type Adapter struct {
	*logger.Logger
}

var _ port.Logger = (*Adapter)(nil)

// NewAdapter wraps l.
func NewAdapter(l *logger.Logger) *Adapter {
	return &Adapter{l}
}

// With implements port.Logger.
func (a *Adapter) With(keysAndValues ...any) port.Logger {
	return &Adapter{a.Logger.With(keysAndValues...)}
}

// WithContext implements port.Logger.
func (a *Adapter) WithContext(ctx context.Context) port.Logger {
	return &Adapter{a.Logger.WithContext(ctx)}
}
