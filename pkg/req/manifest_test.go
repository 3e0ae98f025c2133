package req

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []byte(`
requirement: store
fields:
  - path: device_model
    tag: store.manufacturer.model
  - path: serial_number
    tag: store.manufacturer.serial
constraints:
  - id: serial_format
    tag: store.manufacturer.serial_format
`)

	r, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "store", r.Name())
	assert.Equal(t, []FieldPath{"device_model", "serial_number"}, r.AllFieldPaths())
	assert.Equal(t, []ConstraintEntry{{ID: "serial_format", Tag: "store.manufacturer.serial_format"}}, r.Constraints())
	assert.Equal(t, []FieldEntry{
		{Path: "device_model", Tag: "store.manufacturer.model"},
		{Path: "serial_number", Tag: "store.manufacturer.serial"},
	}, r.Fields())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("fields: [\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("fields:\n  - path: lrl\n    tag: param.lrl\n"))
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = Parse([]byte("requirement: p\nfields:\n  - path: lrl\n    tag: a\n  - path: lrl\n    tag: b\n"))
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse([]byte("fields: {}")) })
}
