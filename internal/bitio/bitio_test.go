package bitio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReaderMSBFirst(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xB0})) // 1011 0000
	want := []bool{true, false, true, true, false, false, false, false}
	for i, w := range want {
		bit, ok := r.Get()
		assert.True(t, ok, "bit %d", i)
		assert.Equal(t, w, bit, "bit %d", i)
	}
	_, ok := r.Get()
	assert.False(t, ok)
	assert.True(t, r.EOF())
}

func TestWriterEmitsWholeBytesOnly(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, bit := range []bool{true, false, true, true, false, false, false, false} {
		assert.NoError(t, w.Put(bit))
	}
	assert.NoError(t, w.Close())
	assert.Equal(t, []byte{0xB0}, buf.Bytes())
}

func TestWriterDiscardsPartialTrailingByte(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	assert.NoError(t, w.Put(true)) // a single bit, never completed into a byte
	assert.NoError(t, w.Close())
	assert.Empty(t, buf.Bytes())
}

func TestRoundTripCopiesByteExactly(t *testing.T) {
	var buf bytes.Buffer
	r := NewReader(bytes.NewReader([]byte{0x5A}))
	w := NewWriter(&buf)
	for {
		bit, ok := r.Get()
		if !ok {
			break
		}
		assert.NoError(t, w.Put(bit))
	}
	assert.NoError(t, w.Close())
	assert.Equal(t, []byte{0x5A}, buf.Bytes())
}
