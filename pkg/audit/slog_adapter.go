package audit

import (
	"context"
	"encoding/hex"
	"log/slog"
)

// SlogAdapter writes audit events to an slog.Logger.
// Accepted decisions log at Info, rejected ones at Warn with one
// "violation" group per failed check.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("event_id", event.ID),
		slog.String("source", string(event.Source)),
		slog.String("outcome", event.Outcome.String()),
		slog.String("digest", hex.EncodeToString(event.Digest)),
		slog.String("candidate", event.Candidate.String()),
	}

	if event.DeviceSerial != "" {
		attrs = append(attrs, slog.String("device_serial", event.DeviceSerial))
	}
	if event.Calibration != "" {
		attrs = append(attrs, slog.String("calibration", event.Calibration))
	}
	if event.DigestError != "" {
		attrs = append(attrs, slog.String("digest_error", event.DigestError))
	}

	level := slog.LevelInfo
	if event.Outcome == OutcomeRejected {
		level = slog.LevelWarn
		for _, v := range event.Violations {
			group := []any{
				slog.String("tag", v.Tag),
				slog.String("kind", v.Kind),
				slog.String("field", v.Field),
				slog.Float64("value", v.Value),
			}
			if v.Related != "" {
				group = append(group, slog.String("related", v.Related))
			}
			attrs = append(attrs, slog.Group("violation", group...))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "parameter validation", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
