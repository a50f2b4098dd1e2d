package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/playcall/game"
	"github.com/padraicbc/playcall/metrics"
	"github.com/padraicbc/playcall/models"
	"github.com/padraicbc/playcall/notify"
	"github.com/padraicbc/playcall/store"
	"github.com/padraicbc/playcall/web"
)

type downStore struct{}

func (downStore) Load(context.Context) []models.Prediction { return nil }

func (downStore) Append(context.Context, models.Prediction) error {
	return errors.Join(store.ErrUnavailable, errors.New("storage disabled"))
}

type testServer struct {
	e       *echo.Echo
	store   store.Store
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, st store.Store) *testServer {
	t.Helper()
	if st == nil {
		st = store.New(store.NewMemorySlot(), "predictions", nil)
	}
	hub := notify.NewHub(nil, nil)
	shell := game.NewShell(context.Background(), st, game.Options{
		Now:      func() time.Time { return time.Date(2024, 9, 7, 19, 0, 0, 0, time.UTC) },
		Notifier: hub,
	})
	m := metrics.New()

	renderer, err := web.NewRenderer()
	require.NoError(t, err)
	validate, err := NewValidator()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.Validator = validate
	New(shell, hub, m, nil).Register(e)
	return &testServer{e: e, store: st, metrics: m}
}

func (s *testServer) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) postJSON(path, body string) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, path, echo.MIMEApplicationJSON, body)
}

func (s *testServer) postForm(path string, v url.Values) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, path, echo.MIMEApplicationForm, v.Encode())
}

func (s *testServer) state(t *testing.T) game.State {
	t.Helper()
	rec := s.do(http.MethodGet, "/api/state", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var st game.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestIndexEntryScreen(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Q1 🏈")
	assert.Contains(t, rec.Body.String(), "Potential Points")
}

func TestQuarterAndView(t *testing.T) {
	s := newTestServer(t, nil)

	for i := 0; i < 4; i++ {
		rec := s.postForm("/quarter", nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	}
	assert.Equal(t, 1, s.state(t).Quarter)

	require.Equal(t, http.StatusSeeOther, s.postForm("/view", nil).Code)
	rec := s.do(http.MethodGet, "/", "", "")
	assert.Contains(t, rec.Body.String(), "No Predictions Yet!")

	require.Equal(t, http.StatusSeeOther, s.postForm("/view", nil).Code)
	assert.Equal(t, game.ViewEntry, s.state(t).View)
}

func TestAPISelection(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.postJSON("/api/selection", `{"playType":"Pass","result":"Touchdown"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var st game.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 6, st.PotentialPoints)
	assert.Equal(t, "both_chosen", st.FormState)

	rec = s.postJSON("/api/selection", `{"playType":"Pass","result":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, s.state(t).PotentialPoints)

	rec = s.postJSON("/api/selection", `{"playType":"Punt"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPISubmit(t *testing.T) {
	s := newTestServer(t, nil)
	s.postForm("/quarter", nil)

	rec := s.postJSON("/api/predictions", `{"playType":"Run","result":"Success"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp submitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Persisted)
	assert.Equal(t, 3, resp.Prediction.Points)
	assert.Equal(t, 2, resp.Prediction.Quarter)
	assert.Equal(t, "2-2024-09-07T19:00:00.000Z", resp.Prediction.ID)

	assert.Len(t, s.store.Load(context.Background()), 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Predictions.WithLabelValues("Run", "Success")))
	assert.Equal(t, "empty", s.state(t).FormState)
}

func TestAPISubmitIncomplete(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.postJSON("/api/predictions", `{"playType":"Pass"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, s.store.Load(context.Background()))
}

func TestAPISubmitIncompleteKeepsSelection(t *testing.T) {
	s := newTestServer(t, nil)
	require.Equal(t, http.StatusOK, s.postJSON("/api/selection", `{"playType":"Run","result":"Touchdown"}`).Code)

	rec := s.postJSON("/api/predictions", `{"playType":"Pass"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	st := s.state(t)
	assert.Equal(t, models.Run, st.Selection.PlayType)
	assert.Equal(t, models.Touchdown, st.Selection.Result)
	assert.Equal(t, "both_chosen", st.FormState)
}

func TestAPISubmitConcurrentWithSelection(t *testing.T) {
	s := newTestServer(t, nil)

	const workers, posts = 8, 50
	var wg sync.WaitGroup
	codes := make(chan int, workers*posts)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < posts; j++ {
				codes <- s.postJSON("/api/predictions", `{"playType":"Pass","result":"Touchdown"}`).Code
			}
		}()
	}

	stop := make(chan struct{})
	selecting := make(chan struct{})
	go func() {
		defer close(selecting)
		for {
			select {
			case <-stop:
				return
			default:
				s.postJSON("/api/selection", `{"playType":"Run","result":"Fail"}`)
			}
		}
	}()

	wg.Wait()
	close(stop)
	<-selecting
	close(codes)

	for code := range codes {
		require.Equal(t, http.StatusCreated, code)
	}
	records := s.store.Load(context.Background())
	require.Len(t, records, workers*posts)
	for _, p := range records {
		assert.Equal(t, models.Pass, p.PlayType)
		assert.Equal(t, models.Touchdown, p.Result)
		assert.Equal(t, 6, p.Points)
	}
	assert.Equal(t, 6*workers*posts, s.state(t).TotalPoints)
}

func TestAPISubmitStoreDown(t *testing.T) {
	s := newTestServer(t, downStore{})

	rec := s.postJSON("/api/predictions", `{"playType":"Field Goal","result":"Touchdown"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp submitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Persisted)
	assert.Equal(t, 8, resp.Prediction.Points)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.StoreFailures))
	assert.Equal(t, 8, s.state(t).TotalPoints)
}

func TestFormSubmit(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.postForm("/predictions", url.Values{"playType": {"Pass"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Choose a play type and an outcome first.")
	assert.Contains(t, rec.Body.String(), `value="Pass" selected`)

	rec = s.postForm("/predictions", url.Values{"playType": {"Pass"}, "result": {"Touchdown"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	rec = s.do(http.MethodGet, "/api/history", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hist struct {
		Predictions []models.Prediction `json:"predictions"`
		TotalPoints int                 `json:"totalPoints"`
		Count       int                 `json:"count"`
		Empty       bool                `json:"empty"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	assert.Equal(t, 1, hist.Count)
	assert.Equal(t, 6, hist.TotalPoints)
	assert.False(t, hist.Empty)
}

func TestSelectForm(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.postForm("/select", url.Values{"playType": {"Field Goal"}, "result": {"Fail"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 3, s.state(t).PotentialPoints)

	rec = s.postForm("/select", url.Values{"result": {"Win"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryEmpty(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(http.MethodGet, "/api/history", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"predictions":[],"totalPoints":0,"count":0,"empty":true}`, rec.Body.String())
}

func TestOptionsAndMetricsEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(http.MethodGet, "/api/options", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Field Goal"`)

	s.postJSON("/api/predictions", `{"playType":"Pass","result":"Fail"}`)
	rec = s.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "playcall_predictions_total")

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/static/app.css", "", "").Code)
}
