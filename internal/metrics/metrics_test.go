package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	r := New()
	r.Command("CreatePage", ResultOK)
	r.Command("CreatePage", ResultOK)
	r.Command("AddKanbanCard", ResultForbidden)
	r.XP(15)
	r.XP(-5)
	r.Toast("xp")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Commands.WithLabelValues("CreatePage", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Commands.WithLabelValues("AddKanbanCard", ResultForbidden)))
	assert.Equal(t, 15.0, testutil.ToFloat64(r.XPAwarded))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Toasts.WithLabelValues("xp")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Command("x", ResultOK)
		r.XP(1)
		r.Toast("info")
	})
}

func TestHandler_ServesMetrics(t *testing.T) {
	r := New()
	r.Command("Search", ResultOK)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `flowstate_commands_total{op="Search",result="ok"} 1`)
}
