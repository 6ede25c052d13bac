package stockroom

import "go.uber.org/zap"

// Config holds global configuration for the store
var Config config = config{logger: zap.NewNop()}

type config struct {
	logger *zap.Logger
	events WorldEvents
}

// WorldEvents carries optional callbacks fired on world mutations.
type WorldEvents struct {
	OnEntityAdded   func(EntityID)
	OnEntityRemoved func(EntityID)
}

// SetLogger configures the logger used for debug tracing. Passing nil
// restores the no-op default.
func (c *config) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

// SetWorldEvents configures the world event callbacks
func (c *config) SetWorldEvents(events WorldEvents) {
	c.events = events
}
