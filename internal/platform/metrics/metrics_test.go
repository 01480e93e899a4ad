package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCare_Counters(t *testing.T) {
	c := NewCare()

	c.Tick()
	c.Tick()
	c.Action("feed")
	c.Save(SaveDebounced, nil)
	c.Save(SaveFlush, errors.New("down"))
	c.Load("missing")
	c.Activated()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ticks))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.actions.WithLabelValues("feed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.saves.WithLabelValues(SaveDebounced, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.saves.WithLabelValues(SaveFlush, "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.activePets))
}

func TestCare_NilIsNoop(t *testing.T) {
	var c *Care
	c.Tick()
	c.Action("play")
	c.Save(SaveFlush, nil)
	c.Activated()
	c.Deactivated()
}

func TestCare_Handler(t *testing.T) {
	c := NewCare()
	c.Action("rest")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), `petcare_actions_total{action="rest"} 1`))
}
