package oerror

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	err := New("bad value %d", 3)
	assert.EqualError(t, err, "bad value 3")
	assert.Nil(t, err.Unwrap())

	wrapped := Wrap(io.ErrUnexpectedEOF, "reading %s", "scenario.yaml")
	assert.EqualError(t, wrapped, "reading scenario.yaml: unexpected EOF")
	assert.True(t, errors.Is(wrapped, io.ErrUnexpectedEOF))
}
