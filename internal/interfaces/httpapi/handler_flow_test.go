package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/cnfl/fantasy-cricket/internal/platform/cache"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
	"github.com/cnfl/fantasy-cricket/internal/usecase"
)

type flowIDGen struct {
	n atomic.Int64
}

func (g *flowIDGen) NewID() (string, error) {
	return fmt.Sprintf("id-%d", g.n.Add(1)), nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	st := store.New(store.Seed())
	idGen := &flowIDGen{}
	logger := logging.NewNop()

	authService := usecase.NewAuthService(st, idGen, logger)
	handler := NewHandler(
		authService,
		usecase.NewEventService(st, idGen, logger),
		usecase.NewTeamService(st, idGen, logger),
		usecase.NewPlayerService(st, idGen, logger),
		usecase.NewRosterService(st, idGen, logger),
		usecase.NewScoringService(st, cache.NewStore(0)),
		usecase.NewReplacementService(st, idGen, logger, usecase.NopNotifier()),
		usecase.NewDashboardService(st),
		usecase.NewCommunicationService(st, idGen, logger),
		usecase.NewHistoryService(st, nil, nil, idGen, logger, usecase.NopNotifier()),
		usecase.NewSettingsService(st, logger),
		logger,
	)

	return NewRouter(handler, authService, logger, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := sonic.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func dataFromEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return envelope.Data
}

func loginAs(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}

	token, _ := dataFromEnvelope(t, rec)["token"].(string)
	if token == "" {
		t.Fatalf("expected session token in login response")
	}
	return token
}

func TestRouter_AdminCreatesEventAndTeam(t *testing.T) {
	router := newTestRouter(t)
	adminToken := loginAs(t, router, "admin@cnfl.local", "admin123")

	rec := doJSON(t, router, http.MethodPost, "/v1/events", adminToken, map[string]any{
		"name":                     "Premier League 2026",
		"registrationDeadline":     "2026-03-10T12:00:00Z",
		"tournamentEndTime":        "2026-04-10T12:00:00Z",
		"leagueType":               "domestic",
		"maxForeignPlayers":        4,
		"totalMatches":             10,
		"maxMatchesPerTeam":        2,
		"maxPlayersFromSingleTeam": 5,
		"maxVipPlayers":            2,
		"maxReplacements":          3,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event failed with status %d: %s", rec.Code, rec.Body.String())
	}

	data := dataFromEnvelope(t, rec)
	eventID, _ := data["id"].(string)
	if eventID == "" {
		t.Fatalf("expected event id in response")
	}
	if got, _ := data["status"].(string); got == "" {
		t.Fatalf("expected derived status in event response")
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/events/"+eventID+"/teams", adminToken, map[string]string{
		"name": "Dhaka Dynamos",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add team failed with status %d: %s", rec.Code, rec.Body.String())
	}
	if got, _ := dataFromEnvelope(t, rec)["name"].(string); got != "Dhaka Dynamos" {
		t.Fatalf("expected team name in response, got %q", got)
	}
}

func TestRouter_ParticipantCannotReachAdminRoutes(t *testing.T) {
	router := newTestRouter(t)
	adminToken := loginAs(t, router, "admin@cnfl.local", "admin123")

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"fullName": "Tamim Iqbal",
		"email":    "tamim@example.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed with status %d: %s", rec.Code, rec.Body.String())
	}

	participantToken := loginAs(t, router, "tamim@example.com", "secret1")

	rec = doJSON(t, router, http.MethodGet, "/v1/users", participantToken, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for participant on admin route, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/users", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_RejectsUnknownJSONFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "admin@cnfl.local",
		"password": "admin123",
		"surprise": "field",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestRouter_HealthzIsPublic(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from healthz, got %d", rec.Code)
	}
}
