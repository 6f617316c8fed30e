package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPool_DropsOversizedBuffers(t *testing.T) {
	p := newBufferPool(16, 64)

	small := p.get()
	small.WriteString("spin")
	assert.True(t, p.put(small))
	assert.Zero(t, small.Len(), "kept buffers are reset")

	large := bytes.NewBuffer(make([]byte, 0, 128))
	assert.False(t, p.put(large))
}

func TestEncodeResponse(t *testing.T) {
	buf, err := encodeResponse(ErrorResponse{Error: "nope"})
	require.NoError(t, err)
	defer responseBuffers.put(buf)
	assert.JSONEq(t, `{"error":"nope"}`, buf.String())

	_, err = encodeResponse(map[string]any{"bad": make(chan int)})
	assert.Error(t, err)
}

func TestRespondJSON_UnencodablePayloadIsServerError(t *testing.T) {
	rec := httptest.NewRecorder()

	respondJSON(rec, http.StatusOK, map[string]any{"bad": func() {}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"`+ErrMsgGenericServerError+`"}`, rec.Body.String())
}
