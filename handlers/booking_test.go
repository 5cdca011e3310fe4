package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaphod-black/BookingSearchMCP/models"
)

// stubPipeline returns canned envelopes and records the arguments it saw.
type stubPipeline struct {
	searchResp   *models.SearchResponse
	validateResp *models.ValidationResponse
	handoffResp  *models.HandoffResponse

	gotQuery    models.AvailabilityQuery
	gotSession  string
	gotOption   string
	gotCustomer models.CustomerInfo
	gotPref     string
}

func (s *stubPipeline) SearchAvailability(ctx context.Context, query models.AvailabilityQuery) *models.SearchResponse {
	s.gotQuery = query
	return s.searchResp
}

func (s *stubPipeline) ValidateSelection(ctx context.Context, sessionID, selectedOptionID string, customer models.CustomerInfo) *models.ValidationResponse {
	s.gotSession, s.gotOption, s.gotCustomer = sessionID, selectedOptionID, customer
	return s.validateResp
}

func (s *stubPipeline) PrepareHandoff(ctx context.Context, sessionID, contactPreference string) *models.HandoffResponse {
	s.gotSession, s.gotPref = sessionID, contactPreference
	return s.handoffResp
}

func newTestRouter(stub *stubPipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewBookingHandler(stub)
	r.POST("/api/tools/search-availability", h.SearchAvailability)
	r.POST("/api/tools/validate-booking", h.ValidateBooking)
	r.POST("/api/tools/prepare-handoff", h.PrepareHandoff)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchAvailabilityEndpoint(t *testing.T) {
	stub := &stubPipeline{searchResp: &models.SearchResponse{
		SpokenText: "Perfect! I found 2 available times.",
		Meta:       &models.SearchMetadata{SessionID: "voice-123-abcd", TotalOptions: 2},
	}}
	r := newTestRouter(stub)

	w := doJSON(t, r, "/api/tools/search-availability",
		`{"startDate":"2026-09-14","endDate":"2026-09-16","partySize":4,"activityType":"whale watching"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-09-14", stub.gotQuery.StartDate)
	assert.Equal(t, 4, stub.gotQuery.PartySize)
	assert.Equal(t, "whale watching", stub.gotQuery.ActivityType)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Perfect! I found 2 available times.", resp.SpokenText)
	assert.Equal(t, "voice-123-abcd", resp.Meta.SessionID)
}

func TestSearchAvailabilityEndpointMalformedBody(t *testing.T) {
	stub := &stubPipeline{searchResp: &models.SearchResponse{}}
	r := newTestRouter(stub)

	w := doJSON(t, r, "/api/tools/search-availability", `{"partySize":"four"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchAvailabilitySemanticFailureStays200(t *testing.T) {
	// The envelope carries the failure so the voice agent can speak it.
	stub := &stubPipeline{searchResp: &models.SearchResponse{
		SpokenText: "I'm sorry, I couldn't understand that search.",
		Error:      true,
	}}
	r := newTestRouter(stub)

	w := doJSON(t, r, "/api/tools/search-availability",
		`{"startDate":"2026-09-14","endDate":"2026-09-16","partySize":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Error)
}

func TestValidateBookingEndpoint(t *testing.T) {
	stub := &stubPipeline{validateResp: &models.ValidationResponse{
		SpokenText: "Perfect! I've reserved Whale Watching Adventure for Jordan Reyes.",
		Meta:       &models.ValidationMetadata{BookingValidated: true, TotalAmount: 180},
	}}
	r := newTestRouter(stub)

	w := doJSON(t, r, "/api/tools/validate-booking",
		`{"sessionId":"voice-123-abcd","selectedOptionId":"mock-aaa","customerInfo":{"name":"Jordan Reyes","phone":"+1-555-0142"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "voice-123-abcd", stub.gotSession)
	assert.Equal(t, "mock-aaa", stub.gotOption)
	assert.Equal(t, "Jordan Reyes", stub.gotCustomer.Name)
}

func TestValidateBookingEndpointRequiresIDs(t *testing.T) {
	stub := &stubPipeline{validateResp: &models.ValidationResponse{}}
	r := newTestRouter(stub)

	w := doJSON(t, r, "/api/tools/validate-booking", `{"selectedOptionId":"mock-aaa"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrepareHandoffEndpoint(t *testing.T) {
	stub := &stubPipeline{handoffResp: &models.HandoffResponse{
		SpokenText: "Thank you Jordan Reyes!",
		Meta:       &models.HandoffMetadata{HandoffCompleted: true},
	}}
	r := newTestRouter(stub)

	w := doJSON(t, r, "/api/tools/prepare-handoff",
		`{"sessionId":"voice-123-abcd","customerContactPreference":"sms"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "voice-123-abcd", stub.gotSession)
	assert.Equal(t, "sms", stub.gotPref)
}

func TestPrepareHandoffEndpointRequiresSession(t *testing.T) {
	stub := &stubPipeline{handoffResp: &models.HandoffResponse{}}
	r := newTestRouter(stub)

	w := doJSON(t, r, "/api/tools/prepare-handoff", `{"customerContactPreference":"email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
