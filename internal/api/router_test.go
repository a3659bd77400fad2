package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
	"github.com/consultorio-juridico/portal-session/internal/infrastructure/http/handlers"
)

type stubController struct {
	session domain.Session
	listed  bool
}

func (s *stubController) Snapshot() domain.Session { return s.session }
func (s *stubController) RecordActivity(context.Context, domain.ActivitySignal) bool {
	return true
}
func (s *stubController) Login(context.Context, string, string) ports.Result {
	return ports.Fail(domain.MsgInvalidCredentials)
}
func (s *stubController) Logout(context.Context) {}
func (s *stubController) Register(context.Context, domain.RegisterInput) ports.Result {
	return ports.Ok(nil)
}
func (s *stubController) RegisterStudent(context.Context, domain.StudentRegistration) ports.Result {
	return ports.Ok(nil)
}
func (s *stubController) UpdateProfile(context.Context, domain.ProfileUpdate) ports.Result {
	return ports.Ok(nil)
}
func (s *stubController) ForgotPassword(context.Context, string) ports.Result { return ports.Ok(nil) }
func (s *stubController) ResetPassword(context.Context, string, string, string) ports.Result {
	return ports.Ok(nil)
}
func (s *stubController) ClearError() {}
func (s *stubController) ValidateStudentCode(context.Context, string) ports.Result {
	return ports.Ok(nil)
}
func (s *stubController) ValidatePersonalData(context.Context, string) ports.Result {
	return ports.Ok(nil)
}
func (s *stubController) ListStudents(context.Context) ports.Result {
	s.listed = true
	return ports.Ok([]domain.Student{})
}
func (s *stubController) CreateStudent(context.Context, domain.StudentInput) ports.Result {
	return ports.Ok(nil)
}
func (s *stubController) UpdateStudent(context.Context, int, domain.StudentInput) ports.Result {
	return ports.Ok(nil)
}
func (s *stubController) DeleteStudent(context.Context, int) ports.Result { return ports.Ok(nil) }
func (s *stubController) ListCaseRecords(context.Context) ports.Result { return ports.Ok(nil) }
func (s *stubController) GetCaseRecord(context.Context, int) ports.Result {
	return ports.Ok(nil)
}
func (s *stubController) CreateCaseRecord(context.Context, json.RawMessage) ports.Result {
	return ports.Ok(nil)
}
func (s *stubController) UpdateCaseRecord(context.Context, int, json.RawMessage) ports.Result {
	return ports.Ok(nil)
}
func (s *stubController) DeleteCaseRecord(context.Context, int) ports.Result { return ports.Ok(nil) }
func (s *stubController) ReactivateCaseRecord(context.Context, int) ports.Result {
	return ports.Ok(nil)
}
func (s *stubController) DownloadCaseRecordPDF(context.Context, int) ports.Result {
	return ports.Ok(nil)
}

type stubQueue struct{}

func (stubQueue) Enqueue(domain.ActivitySignal) bool { return true }

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

const bridgeToken = "shell-secret"

func newTestRouter(ctrl *stubController) http.Handler {
	return NewRouter(Deps{
		Controller:  ctrl,
		Activity:    stubQueue{},
		BridgeToken: bridgeToken,
		Probes:      map[string]handlers.Pinger{"session_store": okPinger{}},
		Logger:      zerolog.Nop(),
		Swagger:     true,
		Registerer:  prometheus.NewRegistry(),
	})
}

func serve(h http.Handler, method, target, body string, authorized bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+bridgeToken)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) ports.Result {
	t.Helper()
	var res ports.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return res
}

func TestRouter_ProbesSkipBridgeToken(t *testing.T) {
	h := newTestRouter(&stubController{})

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := serve(h, http.MethodGet, path, "", false); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_SwaggerServed(t *testing.T) {
	h := newTestRouter(&stubController{})

	if rec := serve(h, http.MethodGet, "/swagger/index.html", "", false); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_RequiresBridgeToken(t *testing.T) {
	h := newTestRouter(&stubController{})

	rec := serve(h, http.MethodGet, "/session", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if res := decode(t, rec); res.Success || res.Error == "" {
		t.Fatalf("expected error envelope, got %+v", res)
	}
}

func TestRouter_LoginFailureEnvelope(t *testing.T) {
	h := newTestRouter(&stubController{})

	rec := serve(h, http.MethodPost, "/session/login", `{"email":"user@x.edu","password":"bad"}`, true)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if got := decode(t, rec).Error; got != domain.MsgInvalidCredentials {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestRouter_InvalidInputIs400(t *testing.T) {
	h := newTestRouter(&stubController{})

	rec := serve(h, http.MethodPost, "/session/activity", `{"signal":"focus"}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_CoordinatorRoutes(t *testing.T) {
	cases := []struct {
		name    string
		session domain.Session
		want    int
	}{
		{"no session", domain.Session{}, http.StatusUnauthorized},
		{"student", domain.Session{IsAuthenticated: true, User: &domain.User{ID: 2, Role: domain.RoleStudent}}, http.StatusForbidden},
		{"coordinator", domain.Session{IsAuthenticated: true, User: &domain.User{ID: 1, Role: domain.RoleCoordinator}}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := &stubController{session: tc.session}
			h := newTestRouter(ctrl)

			rec := serve(h, http.MethodGet, "/coordinator/students", "", true)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if ctrl.listed != (tc.want == http.StatusOK) {
				t.Fatalf("listed=%v for status %d", ctrl.listed, rec.Code)
			}
		})
	}
}

func TestRouter_UnknownRouteIs404(t *testing.T) {
	h := newTestRouter(&stubController{})

	if rec := serve(h, http.MethodGet, "/nope", "", true); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
