package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mhatzl/pacemaker/pkg/audit"
	"github.com/mhatzl/pacemaker/pkg/paramfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdata = "../../../testdata"

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := Execute(args, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func TestValidateValidFile(t *testing.T) {
	code, out, errOut := run(t, "validate", testdata+"/params/default.yaml")

	assert.Equal(t, exitSuccess, code, errOut)
	assert.Contains(t, out, "default.yaml: OK")
}

func TestValidateReportsEveryViolation(t *testing.T) {
	code, out, _ := run(t, "validate", testdata+"/params/zero-rate.yaml")

	assert.Equal(t, exitValidation, code)
	assert.Contains(t, out, "FAILED (3 violations)")

	amp := strings.Index(out, "param.pulse_amplitude.atrial")
	lrl := strings.Index(out, "[param.lrl]")
	div := strings.Index(out, "param.lrl.nonzero")
	require.True(t, amp >= 0 && lrl >= 0 && div >= 0, out)
	assert.Less(t, amp, lrl)
	assert.Less(t, lrl, div)
	assert.NotContains(t, out, "cross_field_inconsistency")
}

func TestValidateJSONOutput(t *testing.T) {
	code, out, _ := run(t, "validate", "--json",
		testdata+"/params/default.yaml",
		testdata+"/params/refractory-too-long.yaml",
	)
	assert.Equal(t, exitValidation, code)

	var results []ValidationOutput
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	assert.True(t, results[0].Valid)
	assert.False(t, results[1].Valid)
	require.Len(t, results[1].Violations, 1)
	assert.Equal(t, "cross_field_inconsistency", results[1].Violations[0].Kind)
	assert.Equal(t, []string{"vrp", "lrl"}, results[1].Violations[0].Fields)
	assert.Equal(t, "param.vrp.lrl_interval", results[1].Violations[0].Tag)
}

func TestValidateIncompleteFile(t *testing.T) {
	code, out, _ := run(t, "validate", testdata+"/params/incomplete.yaml")

	assert.Equal(t, exitValidation, code)
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "ventricular.amplitude")
}

func TestValidateWithCalibration(t *testing.T) {
	code, out, _ := run(t, "--calibration", testdata+"/calibration/narrow.yaml",
		"validate", testdata+"/params/default.yaml")

	assert.Equal(t, exitValidation, code)
	assert.Contains(t, out, "vrp 320 ms outside [200, 300] ms")
}

func TestValidateCalibrationFromEnv(t *testing.T) {
	t.Setenv(envCalibration, filepath.Join(testdata, "calibration", "narrow.yaml"))

	code, _, _ := run(t, "validate", testdata+"/params/default.yaml")
	assert.Equal(t, exitValidation, code)
}

func TestValidateBadCalibration(t *testing.T) {
	code, _, errOut := run(t, "--calibration", "missing.yaml", "validate", testdata+"/params/default.yaml")

	assert.Equal(t, exitCommandError, code)
	assert.Contains(t, errOut, "reading calibration")
}

func TestValidateNoFiles(t *testing.T) {
	code, _, errOut := run(t, "validate")

	assert.Equal(t, exitCommandError, code)
	assert.Contains(t, errOut, "requires at least 1 arg")
}

func TestValidateWritesAuditLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "decisions.plog")

	code, _, _ := run(t, "validate", "--audit-log", logPath, "--source", "telemetry",
		testdata+"/params/default.yaml",
		testdata+"/params/refractory-too-long.yaml",
		testdata+"/params/incomplete.yaml",
	)
	assert.Equal(t, exitValidation, code)

	r, err := audit.NewReader(logPath)
	require.NoError(t, err)
	defer r.Close()

	events, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 2, "unparseable files are not decisions")
	assert.Equal(t, audit.OutcomeAccepted, events[0].Outcome)
	assert.Equal(t, "123456", events[0].DeviceSerial)
	assert.Equal(t, audit.SourceTelemetry, events[0].Source)
	assert.Equal(t, audit.OutcomeRejected, events[1].Outcome)

	code, out, _ := run(t, "audit", "--rejected", logPath)
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "REJECTED")
	assert.Contains(t, out, "[param.vrp.lrl_interval]")
	assert.Contains(t, out, "1 events")

	code, out, _ = run(t, "audit", "--serial", "123456", logPath)
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "ACCEPTED")
	assert.Contains(t, out, "1 events")
}

func TestValidateRejectsUnknownSource(t *testing.T) {
	code, out, errOut := run(t, "validate", "--source", "bluetooth", testdata+"/params/default.yaml")

	assert.Equal(t, exitCommandError, code)
	assert.Contains(t, errOut, "invalid --source")
	assert.Contains(t, errOut, `"bluetooth"`)
	assert.Empty(t, out)
}

func TestValidateVerboseLogsDecisions(t *testing.T) {
	code, _, errOut := run(t, "-v", "validate", testdata+"/params/refractory-too-long.yaml")

	assert.Equal(t, exitValidation, code)
	assert.Contains(t, errOut, "level=WARN")
	assert.Contains(t, errOut, "outcome=REJECTED")
}

func TestInvalidLogLevel(t *testing.T) {
	code, _, errOut := run(t, "--log-level", "loud", "trace")

	assert.Equal(t, exitCommandError, code)
	assert.Contains(t, errOut, "invalid --log-level")
}

func TestTrace(t *testing.T) {
	code, out, _ := run(t, "trace")

	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "param:")
	assert.Contains(t, out, "store:")
	assert.Contains(t, out, "complete: 6 fields")
	assert.Contains(t, out, "complete: 4 fields")
	assert.Contains(t, out, "XFD-vrp-lrl")
	assert.NotContains(t, out, "INCOMPLETE")
}

func TestTraceJSON(t *testing.T) {
	code, out, _ := run(t, "trace", "--json")
	require.Equal(t, exitSuccess, code)

	var traces []TraceOutput
	require.NoError(t, json.Unmarshal([]byte(out), &traces))
	require.Len(t, traces, 2)

	assert.Equal(t, "param", traces[0].Registry)
	assert.True(t, traces[0].Complete)
	assert.Len(t, traces[0].Fields, 6)
	assert.Equal(t, "param.vrp", traces[0].Fields["vrp"])
	assert.Equal(t, "param.lrl.nonzero", traces[0].Rules["DIV-lrl"])
	assert.Len(t, traces[0].Rules, 8)
	assert.Equal(t, "store", traces[1].Registry)
}

func TestShow(t *testing.T) {
	code, out, _ := run(t, "show", testdata+"/params/default.yaml")

	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "3500 mV / 400 µs")
	assert.Contains(t, out, "60 ppm (interval 1000.0 ms)")
	assert.Contains(t, out, "mantra-pacemaker #123456")

	code, out, _ = run(t, "show", testdata+"/params/zero-rate.yaml")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "0 ppm (no interval)")
}

func TestShowFlagsNonFinite(t *testing.T) {
	code, out, errOut := run(t, "show", testdata+"/params/nan-amplitude.yaml")

	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "not finite:   atrial.amplitude")
	assert.Contains(t, errOut, "level=WARN")

	code, out, _ = run(t, "show", "--json", testdata+"/params/nan-amplitude.yaml")
	require.Equal(t, exitSuccess, code)
	var got ShowOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.View.NonFinite, 1)
}

func TestShowJSON(t *testing.T) {
	code, out, _ := run(t, "show", "--json", testdata+"/params/refractory-too-long.yaml")
	require.Equal(t, exitSuccess, code)

	var got ShowOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 500.0, got.View.IntervalMs)
	assert.Nil(t, got.Device)
}

func TestDefaultRoundTrips(t *testing.T) {
	code, out, _ := run(t, "default", "--device")
	require.Equal(t, exitSuccess, code)

	path := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	f, err := paramfile.Load(path)
	require.NoError(t, err)
	require.NotNil(t, f.Device)

	code, _, _ = run(t, "validate", path)
	assert.Equal(t, exitSuccess, code)
}

func TestDebugLogging(t *testing.T) {
	code, _, errOut := run(t, "--log-level", "debug", "default")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, errOut, "writing factory parameters")

	logPath := filepath.Join(t.TempDir(), "decisions.plog")
	code, _, _ = run(t, "validate", "--audit-log", logPath, testdata+"/params/default.yaml")
	require.Equal(t, exitSuccess, code)

	code, _, errOut = run(t, "--log-level", "debug", "audit", logPath)
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, errOut, "audit log read")
	assert.Contains(t, errOut, "events=1")
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, "version")

	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "paramctl version")
}
