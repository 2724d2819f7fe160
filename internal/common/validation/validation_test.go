package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Kind   string  `validate:"required,oneof=a b"`
	Radius float64 `validate:"gt=0"`
}

type request struct {
	Items []item `validate:"required,min=1,dive"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(request{Items: []item{{Kind: "a", Radius: 1}}}))

	err := Struct(request{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "items is required")

	err = Struct(request{Items: []item{{Kind: "c", Radius: 0}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[0].kind must be one of: a b")
	assert.Contains(t, err.Error(), "items[0].radius must be greater than 0")
}
