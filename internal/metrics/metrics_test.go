package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderHandlerExposesSeries(t *testing.T) {
	r := NewRecorder()
	r.RecordAttempt()
	r.RecordAttempt()
	r.RecordRejection("difficulty")
	r.RecordAccepted(0.7, 0.3)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	r.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "qgminer_nonce_attempts_total")
	assert.Contains(t, body, "qgminer_gate_rejected_total")
	assert.Contains(t, body, "qgminer_blocks_accepted_total")
	assert.Contains(t, body, "qgminer_last_phi_total 0.7")
	assert.Contains(t, body, "qgminer_last_qg_score 0.3")
}

func TestNewRecorderIsolatedPerInstance(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	a.RecordAttempt()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	b.Handler().ServeHTTP(rec, req)
	assert.NotContains(t, rec.Body.String(), "qgminer_nonce_attempts_total 1")
}
