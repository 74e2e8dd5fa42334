package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/gamerec/core"
	"github.com/poiesic/gamerec/present"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRecommender struct {
	calls     atomic.Int32
	lastQuery string
	lastTone  string
	mu        sync.Mutex
	recs      []present.Recommendation
	err       error
	block     chan struct{}
	panicMsg  string
}

func (f *fakeRecommender) Recommend(ctx context.Context, query, tone string) ([]present.Recommendation, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.lastQuery, f.lastTone = query, tone
	f.mu.Unlock()
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.block != nil {
		<-f.block
	}
	return f.recs, f.err
}

func (f *fakeRecommender) GameCount() int  { return 3 }
func (f *fakeRecommender) ChunkCount() int { return 7 }
func (f *fakeRecommender) Manifest() core.Manifest {
	return core.Manifest{ChunkCount: 7, Dimensions: 4, EmbeddingModel: "embedding-001", BuiltAt: 1700000000}
}

func newTestServer(t *testing.T, rec Recommender, opts ...Option) *Server {
	t.Helper()
	s, err := New(rec, opts...)
	require.NoError(t, err)
	return s
}

func doJSON(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestRecommend_Success(t *testing.T) {
	rec := &fakeRecommender{recs: []present.Recommendation{{AppID: 1, Title: "Alpha", Screenshots: []string{}}}}
	s := newTestServer(t, rec)

	w := doJSON(s, http.MethodPost, "/recommend", `{"query":"  cozy farming  ","tone":" Happy "}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body["recommendations"], 1)
	assert.Equal(t, "Alpha", body["recommendations"][0]["title"])

	assert.Equal(t, "cozy farming", rec.lastQuery)
	assert.Equal(t, "happy", rec.lastTone)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecommend_DefaultToneAndEmptyResults(t *testing.T) {
	rec := &fakeRecommender{}
	s := newTestServer(t, rec)

	w := doJSON(s, http.MethodPost, "/recommend", `{"query":"anything"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recommendations":[]}`, w.Body.String())
	assert.Equal(t, "all", rec.lastTone)
}

func TestRecommend_BadRequests(t *testing.T) {
	rec := &fakeRecommender{}
	s := newTestServer(t, rec)

	for name, body := range map[string]string{
		"missing query": `{"tone":"sad"}`,
		"blank query":   `{"query":"   "}`,
		"malformed":     `{"query":`,
		"empty body":    ``,
		"wrong type":    `{"query": 5}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(s, http.MethodPost, "/recommend", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Missing query"}`, w.Body.String())
		})
	}
	assert.Zero(t, rec.calls.Load())
}

func TestRecommend_CoreError(t *testing.T) {
	rec := &fakeRecommender{err: errors.New("embedding service unavailable")}
	s := newTestServer(t, rec)

	w := doJSON(s, http.MethodPost, "/recommend", `{"query":"space"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"embedding service unavailable"}`, w.Body.String())
}

func TestRecommend_CoreErrorLogContext(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rec := &fakeRecommender{err: fmt.Errorf("embedding query: %w", errors.New("quota exceeded"))}
	s := newTestServer(t, rec, WithLogger(logger))

	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(`{"query":"cozy farming","tone":"happy"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, "req-42")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var line string
	for _, l := range strings.Split(logs.String(), "\n") {
		if strings.Contains(l, "error generating recommendations") {
			line = l
		}
	}
	require.NotEmpty(t, line)
	assert.Contains(t, line, `err="embedding query: quota exceeded"`)
	assert.Contains(t, line, "errType=*fmt.wrapError")
	assert.Contains(t, line, "requestID=req-42")
	assert.Contains(t, line, "method=POST")
	assert.Contains(t, line, "path=/recommend")
	assert.Contains(t, line, "tone=happy")
	assert.Contains(t, line, "queryLen=12")
}

func TestRecommend_Panic(t *testing.T) {
	rec := &fakeRecommender{panicMsg: "boom"}
	s := newTestServer(t, rec)

	w := doJSON(s, http.MethodPost, "/recommend", `{"query":"space"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestRecommend_Cache(t *testing.T) {
	rec := &fakeRecommender{recs: []present.Recommendation{{AppID: 1, Title: "Alpha", Screenshots: []string{}}}}

	t.Run("enabled", func(t *testing.T) {
		rec.calls.Store(0)
		s := newTestServer(t, rec, WithCache(8, time.Minute))
		for i := 0; i < 3; i++ {
			w := doJSON(s, http.MethodPost, "/recommend", `{"query":"space","tone":"sad"}`)
			require.Equal(t, http.StatusOK, w.Code)
		}
		assert.Equal(t, int32(1), rec.calls.Load())

		doJSON(s, http.MethodPost, "/recommend", `{"query":"space","tone":"happy"}`)
		assert.Equal(t, int32(2), rec.calls.Load(), "tone is part of the key")
	})

	t.Run("disabled", func(t *testing.T) {
		rec.calls.Store(0)
		s := newTestServer(t, rec, WithCache(0, time.Minute))
		for i := 0; i < 3; i++ {
			doJSON(s, http.MethodPost, "/recommend", `{"query":"space"}`)
		}
		assert.Equal(t, int32(3), rec.calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		failing := &fakeRecommender{err: errors.New("down")}
		s := newTestServer(t, failing, WithCache(8, time.Minute))
		doJSON(s, http.MethodPost, "/recommend", `{"query":"space"}`)
		doJSON(s, http.MethodPost, "/recommend", `{"query":"space"}`)
		assert.Equal(t, int32(2), failing.calls.Load())
	})
}

func TestRecommend_CollapsesConcurrentRequests(t *testing.T) {
	rec := &fakeRecommender{block: make(chan struct{})}
	s := newTestServer(t, rec)

	const n = 5
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = doJSON(s, http.MethodPost, "/recommend", `{"query":"space"}`).Code
		}(i)
	}

	require.Eventually(t, func() bool { return rec.calls.Load() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(rec.block)
	wg.Wait()

	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
	assert.Less(t, rec.calls.Load(), int32(n))
}

func TestTestAndHealth(t *testing.T) {
	s := newTestServer(t, &fakeRecommender{})

	w := doJSON(s, http.MethodGet, "/test", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Server is running. POST to /recommend with JSON data.", w.Body.String())

	w = doJSON(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","games":3,"chunks":7,"embedding_model":"embedding-001",
		"built_at":"2023-11-14T22:13:20Z","cached_results":0}`, w.Body.String())
}

func TestHealthReportsCachedResults(t *testing.T) {
	s := newTestServer(t, &fakeRecommender{}, WithCache(8, time.Minute))

	doJSON(s, http.MethodPost, "/recommend", `{"query":"space"}`)
	doJSON(s, http.MethodPost, "/recommend", `{"query":"farming","tone":"happy"}`)

	w := doJSON(s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.CachedResults)
}

func TestCORSWithoutOrigin(t *testing.T) {
	s := newTestServer(t, &fakeRecommender{})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &fakeRecommender{})

	req := httptest.NewRequest(http.MethodOptions, "/recommend", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(t, &fakeRecommender{})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestGzip(t *testing.T) {
	rec := &fakeRecommender{recs: []present.Recommendation{{Title: strings.Repeat("x", 2000), Screenshots: []string{}}}}
	s := newTestServer(t, rec)

	req := httptest.NewRequest(http.MethodPost, "/recommend", bytes.NewBufferString(`{"query":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

func TestRun_GracefulShutdown(t *testing.T) {
	s := newTestServer(t, &fakeRecommender{}, WithShutdownTimeout(time.Second))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/test")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestResultCache_Expiry(t *testing.T) {
	cache, err := newResultCache[int](2, time.Minute)
	require.NoError(t, err)

	now := time.Now()
	cache.now = func() time.Time { return now }
	cache.set("a", 1)

	v, ok := cache.get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	_, ok = cache.get("a")
	assert.False(t, ok)
	assert.Zero(t, cache.len())

	disabled, err := newResultCache[int](0, time.Minute)
	require.NoError(t, err)
	disabled.set("a", 1)
	_, ok = disabled.get("a")
	assert.False(t, ok)
}
