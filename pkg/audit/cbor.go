package audit

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/mhatzl/pacemaker/pkg/param"
	"golang.org/x/crypto/blake2b"
)

// logEncMode is the CBOR encoder mode for audit events.
var logEncMode cbor.EncMode

// logDecMode is the CBOR decoder mode for audit events.
var logDecMode cbor.DecMode

// digestEncMode is the Core Deterministic Encoding mode used for digests.
var digestEncMode cbor.EncMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	logEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create audit CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	logDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create audit CBOR decoder mode: %v", err))
	}

	digestEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create digest CBOR encoder mode: %v", err))
	}
}

// EncodeEvent encodes an Event to CBOR bytes.
func EncodeEvent(event Event) ([]byte, error) {
	return logEncMode.Marshal(event)
}

// DecodeEvent decodes CBOR bytes into an Event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := logDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewEncoder creates a CBOR encoder for audit events that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return logEncMode.NewEncoder(w)
}

// NewDecoder creates a CBOR decoder for audit events that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return logDecMode.NewDecoder(r)
}

// Digest returns the BLAKE2b-256 digest of the deterministic CBOR encoding
// of p. Equal parameter sets have equal digests.
func Digest(p param.Param) ([]byte, error) {
	data, err := digestEncMode.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding parameter digest: %w", err)
	}
	sum := blake2b.Sum256(data)
	return sum[:], nil
}
