package httpserver

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type headerCounter struct {
	*httptest.ResponseRecorder
	writes int
}

func (h *headerCounter) WriteHeader(code int) {
	h.writes++
	h.ResponseRecorder.WriteHeader(code)
}

func TestReply_EncodeFailureKeepsSingleHeader(t *testing.T) {
	var logs bytes.Buffer
	r := &Router{logger: slog.New(slog.NewTextHandler(&logs, nil))}
	rec := &headerCounter{ResponseRecorder: httptest.NewRecorder()}

	handler := r.wrap(func(w http.ResponseWriter, _ *http.Request) error {
		return r.reply(w, http.StatusOK, map[string]float64{"score": math.Inf(1)})
	})
	handler(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))

	assert.Equal(t, 1, rec.writes)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, logs.String(), "response encode failed")
}

func TestReply_WritesBody(t *testing.T) {
	r := &Router{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	rec := httptest.NewRecorder()

	assert.NoError(t, r.reply(rec, http.StatusCreated, map[string]string{"status": "ok"}))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
