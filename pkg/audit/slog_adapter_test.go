package audit

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/mhatzl/pacemaker/pkg/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogAdapterAccepted(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewJSONHandler(&buf, nil)))

	adapter.Log(Event{
		ID:          "id-1",
		Source:      SourceProgrammer,
		Outcome:     OutcomeAccepted,
		Calibration: "default",
		Digest:      []byte{0xab, 0xcd},
		Candidate:   param.Default(),
	})

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "parameter validation", rec["msg"])
	assert.Equal(t, "ACCEPTED", rec["outcome"])
	assert.Equal(t, "abcd", rec["digest"])
	assert.Equal(t, "default", rec["calibration"])
	assert.NotContains(t, rec, "device_serial")
	assert.NotContains(t, rec, "violation")
	assert.NotContains(t, rec, "digest_error")
}

func TestSlogAdapterDigestError(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))

	adapter.Log(Event{ID: "id-3", Outcome: OutcomeAccepted, DigestError: "encoding failed"})

	assert.Contains(t, buf.String(), `digest_error="encoding failed"`)
}

func TestSlogAdapterRejected(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))

	adapter.Log(Event{
		ID:           "id-2",
		Source:       SourceTelemetry,
		DeviceSerial: "123456",
		Outcome:      OutcomeRejected,
		Violations: []ViolationRecord{
			{Tag: "param.vrp.lrl_interval", Kind: "cross_field_inconsistency", Field: "vrp", Related: "lrl", Value: 500},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "device_serial=123456")
	assert.Contains(t, out, "violation.tag=param.vrp.lrl_interval")
	assert.Contains(t, out, "violation.related=lrl")
}
