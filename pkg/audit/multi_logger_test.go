package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiLoggerFansOut(t *testing.T) {
	first := &mockLogger{}
	second := &mockLogger{}
	event := Event{ID: "evt-1", Outcome: OutcomeRejected}

	first.On("Log", event).Once()
	second.On("Log", event).Once()

	NewMultiLogger(first, nil, second).Log(event)

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestMultiLoggerEmpty(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMultiLogger().Log(Event{})
		NewMultiLogger(nil, NoopLogger{}).Log(Event{})
	})
}
