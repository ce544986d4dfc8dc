package main

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"portfolioadvisor/internal/advisor"
	"portfolioadvisor/internal/allocation"
	"portfolioadvisor/internal/history"
	"portfolioadvisor/internal/logger"
	"portfolioadvisor/internal/pricing"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store := history.NewMemoryStore(
		history.Record{Asset: "gold", Date: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Price: 6050, Unit: "g", Source: "seed"},
	)
	historical := pricing.NewHistoricalResolver(store)
	svc := advisor.NewService(pricing.NewResolver(nil), historical, allocation.NewEngine(historical), nil)
	s := &server{svc: svc, log: zap.NewNop().Sugar(), requestTimeout: 5 * time.Second}
	return s.routes()
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var out map[string]any
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	}
	return rr, out
}

func TestHealthz(t *testing.T) {
	rr, body := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMarket(t *testing.T) {
	h := newTestServer(t)

	rr, body := do(t, h, http.MethodGet, "/api/market?asset=silver&country=usa", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "silver", body["asset"])
	require.Equal(t, 74.25, body["price"])
	require.Equal(t, "usa", body["location"])
	require.Equal(t, "error-fallback", body["source"])

	rr, _ = do(t, h, http.MethodPost, "/api/market", "")
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestMarketHistory(t *testing.T) {
	h := newTestServer(t)

	rr, body := do(t, h, http.MethodGet, "/api/market/history?asset=gold&date=2025-05-03", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "nearest-match", body["source"])
	require.Equal(t, 6050.0, body["price"])

	rr, body = do(t, h, http.MethodGet, "/api/market/history?asset=gold&date=May-3", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "error", body["status"])
}

func TestRecommendation_Flow(t *testing.T) {
	h := newTestServer(t)

	rr, body := do(t, h, http.MethodPost, "/api/recommendation", `{
		"user_id": "42",
		"risk_preference": "medium",
		"selected_instruments": ["FD", "sip"],
		"investable_amount": 100000,
		"rates": {"FD": 6.5, "SIP": 12},
		"country": "india"
	}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, "ok", body["status"])

	portfolio := body["portfolio"].(map[string]any)
	require.Equal(t, 29.4, portfolio["FD"])
	require.Equal(t, 0.0, portfolio["Bank"])
	returns := body["expected_returns"].(map[string]any)
	require.Contains(t, returns, "total_expected_roi_percent")
	require.NotContains(t, returns, "Bank")
	require.Contains(t, body["source_prices"], "gold")

	rr, body = do(t, h, http.MethodGet, "/api/recommendation/latest?user_id=42", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "42", body["user_id"])

	rr, body = do(t, h, http.MethodGet, "/api/recommendation/history?user_id=42", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, body["history"], 1)

	rr, body = do(t, h, http.MethodGet, "/api/recommendation/history?user_id=nobody", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, body["history"])

	rr, _ = do(t, h, http.MethodGet, "/api/recommendation/latest?user_id=nobody", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRecommendation_BadRequests(t *testing.T) {
	h := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"malformed", `{"user_id":`},
		{"unknown field", `{"user_id":"1","risk_preference":"low","investable_amount":1,"extra":true}`},
		{"unknown instrument", `{"user_id":"1","risk_preference":"low","selected_instruments":["crypto"],"investable_amount":1}`},
		{"unknown risk", `{"user_id":"1","risk_preference":"yolo","investable_amount":1000}`},
		{"zero amount", `{"user_id":"1","risk_preference":"low"}`},
		{"negative rate", `{"user_id":"1","risk_preference":"low","selected_instruments":["FD"],"investable_amount":1000,"rates":{"FD":-2}}`},
		{"missing user", `{"risk_preference":"low","investable_amount":1000}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, body := do(t, h, http.MethodPost, "/api/recommendation", tc.body)
			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			require.Equal(t, "error", body["status"])
			require.NotEmpty(t, body["message"])
		})
	}

	rr, _ := do(t, h, http.MethodGet, "/api/recommendation/history", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	rr, _ = do(t, h, http.MethodGet, "/api/recommendation/history?user_id=1&limit=-1", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMiddleware_GzipAndPanic(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rr, req)

	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"ok"}`, string(plain))

	boom := recoverPanic(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr = httptest.NewRecorder()
	boom.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestMiddleware_RequestLoggerInContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := withRequestLog(zap.New(core).Sugar(), recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Infow("handling")
		if r.URL.Path == "/boom" {
			panic("boom")
		}
	})))

	req := httptest.NewRequest(http.MethodGet, "/ok", http.NoBody)
	req.Header.Set("X-Request-ID", "req-1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, "req-1", rr.Header().Get("X-Request-ID"))

	handling := logs.FilterMessage("handling").All()
	require.Len(t, handling, 1)
	require.Equal(t, "req-1", handling[0].ContextMap()["request_id"])

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	generated := rr.Header().Get("X-Request-ID")
	require.NotEmpty(t, generated)

	panics := logs.FilterMessage("handler panic").All()
	require.Len(t, panics, 1)
	require.Equal(t, generated, panics[0].ContextMap()["request_id"])
}

func TestUserProfileRoutes(t *testing.T) {
	h := newTestServer(t)

	rr, body := do(t, h, http.MethodPost, "/api/user", `{
		"name": "Asha",
		"age": 31,
		"risk_preference": "medium",
		"selected_instruments": ["FD", "SIP"],
		"rates": {"FD": 6.5, "SIP": 12},
		"investable_amount": 100000
	}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	id := body["user_id"].(string)
	require.NotEmpty(t, id)
	profile := body["profile"].(map[string]any)
	require.Equal(t, "medium", profile["risk_preference"])
	require.Equal(t, []any{"FD", "SIP"}, profile["selected_instruments"])

	rr, body = do(t, h, http.MethodGet, "/api/user/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Asha", body["profile"].(map[string]any)["name"])

	rr, body = do(t, h, http.MethodGet, "/api/user/"+id+"/recommendation?country=india", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, id, body["user_id"])
	require.Equal(t, 29.4, body["portfolio"].(map[string]any)["FD"])

	rr, body = do(t, h, http.MethodPut, "/api/user/"+id, `{"investable_amount": 5000, "risk_preference": "high"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	profile = body["profile"].(map[string]any)
	require.Equal(t, 5000.0, profile["investable_amount"])
	require.Equal(t, "high", profile["risk_preference"])
	require.Equal(t, 31.0, profile["age"])

	rr, body = do(t, h, http.MethodPost, "/api/portfolio/operation", `{"user_id": "`+id+`", "operation": "invest", "instrument": "SIP", "amount": 2500}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	op := body["operation"].(map[string]any)
	require.Equal(t, "invest", op["type"])
	require.Equal(t, "SIP", op["instrument"])
	require.Equal(t, 2500.0, op["amount"])
	require.Equal(t, 29.4, body["updated_portfolio"].(map[string]any)["FD"])

	rr, body = do(t, h, http.MethodGet, "/api/user/"+id+"/history", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, body["history"], 2)
}

func TestUserProfileRoutes_Errors(t *testing.T) {
	h := newTestServer(t)

	cases := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"missing name", http.MethodPost, "/api/user", `{"risk_preference":"low"}`, http.StatusBadRequest},
		{"bad instrument", http.MethodPost, "/api/user", `{"name":"a","selected_instruments":["crypto"]}`, http.StatusBadRequest},
		{"unknown user", http.MethodGet, "/api/user/nope", "", http.StatusNotFound},
		{"update unknown user", http.MethodPut, "/api/user/nope", `{"name":"b"}`, http.StatusNotFound},
		{"recommend unknown user", http.MethodGet, "/api/user/nope/recommendation", "", http.StatusNotFound},
		{"delete not allowed", http.MethodDelete, "/api/user/nope", "", http.StatusMethodNotAllowed},
		{"operation without recommendation", http.MethodPost, "/api/portfolio/operation", `{"user_id":"nope","operation":"invest","instrument":"FD","amount":1}`, http.StatusNotFound},
		{"operation bad amount", http.MethodPost, "/api/portfolio/operation", `{"user_id":"nope","operation":"invest","instrument":"FD","amount":0}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr, body := do(t, h, tc.method, tc.target, tc.body)
			require.Equal(t, tc.want, rr.Code, rr.Body.String())
			require.Equal(t, "error", body["status"])
		})
	}
}
