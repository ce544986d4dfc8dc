package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolioadvisor/internal/advisor"
	"portfolioadvisor/internal/allocation"
	"portfolioadvisor/internal/logger"
	"portfolioadvisor/internal/pricing"
	"portfolioadvisor/internal/provider"
)

type server struct {
	svc            *advisor.Service
	log            *zap.SugaredLogger
	requestTimeout time.Duration
	maxBody        int64
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/api/market", only(http.MethodGet, s.handleMarket))
	mux.HandleFunc("/api/market/history", only(http.MethodGet, s.handleMarketHistory))
	mux.HandleFunc("/api/recommendation", only(http.MethodPost, s.handleRecommend))
	mux.HandleFunc("/api/recommendation/latest", only(http.MethodGet, s.handleLatest))
	mux.HandleFunc("/api/recommendation/history", only(http.MethodGet, s.handleHistory))
	mux.HandleFunc("/api/user", only(http.MethodPost, s.handleCreateUser))
	mux.HandleFunc("/api/user/{id}", s.handleUser)
	mux.HandleFunc("/api/user/{id}/recommendation", only(http.MethodGet, s.handleUserRecommendation))
	mux.HandleFunc("/api/user/{id}/history", only(http.MethodGet, s.handleUserHistory))
	mux.HandleFunc("/api/portfolio/operation", only(http.MethodPost, s.handleOperation))

	return withJSONHeaders(withGzip(withRequestLog(s.log, recoverPanic(limitBody(s.maxBody, mux)))))
}

func only(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h(w, r)
	}
}

func (s *server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.requestTimeout)
}

type marketResponse struct {
	Status string `json:"status"`
	provider.Quote
}

func (s *server) handleMarket(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	asset := strings.TrimSpace(q.Get("asset"))
	if asset == "" {
		asset = "gold"
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	quote := s.svc.Price(ctx, asset, q.Get("country"))
	writeJSON(w, http.StatusOK, marketResponse{Status: "ok", Quote: quote})
}

type historyPriceResponse struct {
	Status string `json:"status"`
	pricing.HistoricalQuote
}

func (s *server) handleMarketHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	asset := strings.TrimSpace(q.Get("asset"))
	if asset == "" {
		asset = "gold"
	}
	date, err := time.Parse(time.DateOnly, q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	hq := s.svc.HistoricalPrice(ctx, asset, date)
	writeJSON(w, http.StatusOK, historyPriceResponse{Status: "ok", HistoricalQuote: hq})
}

type recommendationBody struct {
	UserID              string                    `json:"user_id"`
	RiskPreference      allocation.RiskPreference `json:"risk_preference"`
	SelectedInstruments []allocation.Instrument   `json:"selected_instruments"`
	InvestableAmount    float64                   `json:"investable_amount"`
	Rates               allocation.Rates          `json:"rates"`
	Country             string                    `json:"country"`
}

type recommendationResponse struct {
	Status string `json:"status"`
	*advisor.Record
}

func (s *server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var b recommendationBody
	if !decodeBody(w, r, &b) {
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	rec, err := s.svc.Recommend(ctx, advisor.Request{
		UserID: b.UserID,
		Profile: allocation.Profile{
			Risk:             b.RiskPreference,
			Instruments:      b.SelectedInstruments,
			InvestableAmount: b.InvestableAmount,
		},
		Rates:    b.Rates,
		Location: b.Country,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationResponse{Status: "ok", Record: rec})
}

func (s *server) handleLatest(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user_id query param")
		return
	}
	rec, err := s.svc.Latest(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationResponse{Status: "ok", Record: rec})
}

type historyResponse struct {
	Status  string           `json:"status"`
	History []advisor.Record `json:"history"`
}

func (s *server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user_id query param")
		return
	}
	s.writeHistory(w, r, userID)
}

func (s *server) handleUserHistory(w http.ResponseWriter, r *http.Request) {
	s.writeHistory(w, r, r.PathValue("id"))
}

func (s *server) writeHistory(w http.ResponseWriter, r *http.Request, userID string) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	recs, err := s.svc.History(r.Context(), userID, limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if recs == nil {
		recs = []advisor.Record{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Status: "ok", History: recs})
}

func (s *server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, allocation.ErrInvalidProfile), errors.Is(err, allocation.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, advisor.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		logger.FromContext(r.Context()).Errorw("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

type userResponse struct {
	Status  string        `json:"status"`
	UserID  string        `json:"user_id,omitempty"`
	Profile *advisor.User `json:"profile"`
}

func (s *server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var u advisor.User
	if !decodeBody(w, r, &u) {
		return
	}
	created, err := s.svc.CreateUser(r.Context(), u)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Status: "ok", UserID: created.ID, Profile: created})
}

func (s *server) handleUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var (
		u   *advisor.User
		err error
	)
	switch r.Method {
	case http.MethodGet:
		u, err = s.svc.User(r.Context(), id)
	case http.MethodPut:
		var patch advisor.UserPatch
		if !decodeBody(w, r, &patch) {
			return
		}
		u, err = s.svc.UpdateUser(r.Context(), id, patch)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Status: "ok", Profile: u})
}

func (s *server) handleUserRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	rec, err := s.svc.RecommendForUser(ctx, r.PathValue("id"), r.URL.Query().Get("country"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationResponse{Status: "ok", Record: rec})
}

type operationBody struct {
	UserID     string                `json:"user_id"`
	Operation  string                `json:"operation"`
	Instrument allocation.Instrument `json:"instrument"`
	Amount     float64               `json:"amount"`
}

type operationResponse struct {
	Status           string                `json:"status"`
	RecommendationID string                `json:"recommendation_id"`
	Operation        *advisor.Operation    `json:"operation"`
	UpdatedPortfolio allocation.Allocation `json:"updated_portfolio"`
}

func (s *server) handleOperation(w http.ResponseWriter, r *http.Request) {
	var b operationBody
	if !decodeBody(w, r, &b) {
		return
	}
	rec, err := s.svc.RecordOperation(r.Context(), b.UserID, advisor.Operation{
		Type:       b.Operation,
		Instrument: b.Instrument,
		Amount:     b.Amount,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, operationResponse{
		Status:           "ok",
		RecommendationID: rec.ID.String(),
		Operation:        rec.Operation,
		UpdatedPortfolio: rec.Portfolio,
	})
}

// decodeBody reads a strict JSON body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Status: "error", Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
