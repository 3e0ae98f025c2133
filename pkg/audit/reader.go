package audit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects audit events. Zero fields match everything.
type Filter struct {
	Outcome      *Outcome
	Source       Source
	DeviceSerial string

	// Tag keeps only events with a violation tracing to this requirement.
	Tag string

	// TimeStart is inclusive, TimeEnd exclusive.
	TimeStart *time.Time
	TimeEnd   *time.Time
}

func (f Filter) matches(e *Event) bool {
	switch {
	case f.Outcome != nil && e.Outcome != *f.Outcome:
		return false
	case f.Source != "" && e.Source != f.Source:
		return false
	case f.DeviceSerial != "" && e.DeviceSerial != f.DeviceSerial:
		return false
	case f.Tag != "" && !e.HasTag(f.Tag):
		return false
	case f.TimeStart != nil && e.Timestamp.Before(*f.TimeStart):
		return false
	case f.TimeEnd != nil && !e.Timestamp.Before(*f.TimeEnd):
		return false
	}
	return true
}

// Reader iterates over the events of an audit log written by FileLogger.
type Reader struct {
	f      *os.File
	dec    *cbor.Decoder
	filter Filter
	index  int
}

// NewReader opens the audit log at path.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens the audit log at path, yielding only events
// that match filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	return &Reader{f: f, dec: NewDecoder(f), filter: filter}, nil
}

// Next returns the next matching event, or io.EOF at the end of the log.
// A truncated trailing event is reported as an error, not as io.EOF.
func (r *Reader) Next() (Event, error) {
	for {
		var e Event
		if err := r.dec.Decode(&e); err != nil {
			if err == io.EOF {
				return Event{}, io.EOF
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return Event{}, fmt.Errorf("audit event %d truncated: %w", r.index, err)
			}
			return Event{}, fmt.Errorf("decoding audit event %d: %w", r.index, err)
		}
		r.index++
		if r.filter.matches(&e) {
			return e, nil
		}
	}
}

// ReadAll returns the remaining matching events.
func (r *Reader) ReadAll() ([]Event, error) {
	var events []Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, e)
	}
}

// Close closes the log file.
func (r *Reader) Close() error {
	return r.f.Close()
}
