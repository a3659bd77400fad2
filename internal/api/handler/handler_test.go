package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubController struct {
	session domain.Session
	result  ports.Result

	gotEmail    string
	gotPassword string
	gotID       int
	gotBody     json.RawMessage
	gotStudent  domain.StudentInput
	loggedOut   bool
	cleared     bool
}

func (s *stubController) Snapshot() domain.Session { return s.session }
func (s *stubController) RecordActivity(context.Context, domain.ActivitySignal) bool {
	return true
}
func (s *stubController) Login(_ context.Context, email, password string) ports.Result {
	s.gotEmail, s.gotPassword = email, password
	return s.result
}
func (s *stubController) Logout(context.Context) { s.loggedOut = true }
func (s *stubController) Register(context.Context, domain.RegisterInput) ports.Result {
	return s.result
}
func (s *stubController) RegisterStudent(context.Context, domain.StudentRegistration) ports.Result {
	return s.result
}
func (s *stubController) UpdateProfile(context.Context, domain.ProfileUpdate) ports.Result {
	return s.result
}
func (s *stubController) ForgotPassword(_ context.Context, email string) ports.Result {
	s.gotEmail = email
	return s.result
}
func (s *stubController) ResetPassword(_ context.Context, email, _, password string) ports.Result {
	s.gotEmail, s.gotPassword = email, password
	return s.result
}
func (s *stubController) ClearError() { s.cleared = true }
func (s *stubController) ValidateStudentCode(context.Context, string) ports.Result {
	return s.result
}
func (s *stubController) ValidatePersonalData(context.Context, string) ports.Result {
	return s.result
}
func (s *stubController) ListStudents(context.Context) ports.Result { return s.result }
func (s *stubController) CreateStudent(_ context.Context, in domain.StudentInput) ports.Result {
	s.gotStudent = in
	return s.result
}
func (s *stubController) UpdateStudent(_ context.Context, id int, in domain.StudentInput) ports.Result {
	s.gotID, s.gotStudent = id, in
	return s.result
}
func (s *stubController) DeleteStudent(_ context.Context, id int) ports.Result {
	s.gotID = id
	return s.result
}
func (s *stubController) ListCaseRecords(context.Context) ports.Result { return s.result }
func (s *stubController) GetCaseRecord(_ context.Context, id int) ports.Result {
	s.gotID = id
	return s.result
}
func (s *stubController) CreateCaseRecord(_ context.Context, body json.RawMessage) ports.Result {
	s.gotBody = body
	return s.result
}
func (s *stubController) UpdateCaseRecord(_ context.Context, id int, body json.RawMessage) ports.Result {
	s.gotID, s.gotBody = id, body
	return s.result
}
func (s *stubController) DeleteCaseRecord(_ context.Context, id int) ports.Result {
	s.gotID = id
	return s.result
}
func (s *stubController) ReactivateCaseRecord(_ context.Context, id int) ports.Result {
	s.gotID = id
	return s.result
}
func (s *stubController) DownloadCaseRecordPDF(_ context.Context, id int) ports.Result {
	s.gotID = id
	return s.result
}

type stubQueue struct {
	signals []domain.ActivitySignal
	full    bool
}

func (q *stubQueue) Enqueue(signal domain.ActivitySignal) bool {
	if q.full {
		return false
	}
	q.signals = append(q.signals, signal)
	return true
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) ports.Result {
	t.Helper()
	var res ports.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return res
}

// ── Session handler ───────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	ctrl := &stubController{result: ports.Ok(nil)}
	h := NewSessionHandler(ctrl, &stubQueue{})
	c, rec := newContext(http.MethodPost, "/session/login", `{"email":"user@x.edu","password":"goodpass"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ctrl.gotEmail != "user@x.edu" || ctrl.gotPassword != "goodpass" {
		t.Fatalf("credentials not forwarded: %q %q", ctrl.gotEmail, ctrl.gotPassword)
	}
	if !decodeResult(t, rec).Success {
		t.Fatalf("expected success envelope")
	}
}

func TestLogin_FailureIs422(t *testing.T) {
	ctrl := &stubController{result: ports.Fail(domain.MsgInvalidCredentials)}
	h := NewSessionHandler(ctrl, &stubQueue{})
	c, rec := newContext(http.MethodPost, "/session/login", `{"email":"user@x.edu","password":"bad"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if got := decodeResult(t, rec).Error; got != domain.MsgInvalidCredentials {
		t.Fatalf("unexpected error message %q", got)
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	h := NewSessionHandler(&stubController{}, &stubQueue{})
	c, _ := newContext(http.MethodPost, "/session/login", `{"email":`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetSession_HidesTokens(t *testing.T) {
	ctrl := &stubController{session: domain.Session{
		ID:              "s1",
		AccessToken:     "T1",
		RefreshToken:    "R1",
		IsAuthenticated: true,
		User:            &domain.User{ID: 1, Nombre: "Ana", Apellidos: "Ruiz", Role: domain.RoleStudent},
	}}
	h := NewSessionHandler(ctrl, &stubQueue{})
	c, rec := newContext(http.MethodGet, "/session", "")

	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	body := rec.Body.String()
	if strings.Contains(body, "T1") || strings.Contains(body, "R1") {
		t.Fatalf("tokens leaked: %s", body)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["status"] != string(domain.StatusAuthenticated) {
		t.Fatalf("unexpected status %v", got["status"])
	}
	if got["full_name"] != "Ana Ruiz" {
		t.Fatalf("unexpected full name %v", got["full_name"])
	}
}

func TestLogoutAndClearError(t *testing.T) {
	ctrl := &stubController{}
	h := NewSessionHandler(ctrl, &stubQueue{})

	c, rec := newContext(http.MethodPost, "/session/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent || !ctrl.loggedOut {
		t.Fatalf("logout not forwarded (code %d)", rec.Code)
	}

	c, rec = newContext(http.MethodPost, "/session/clear-error", "")
	if err := h.ClearError(c); err != nil {
		t.Fatalf("clear error: %v", err)
	}
	if rec.Code != http.StatusNoContent || !ctrl.cleared {
		t.Fatalf("clear error not forwarded (code %d)", rec.Code)
	}
}

func TestActivity_Accepted(t *testing.T) {
	q := &stubQueue{}
	h := NewSessionHandler(&stubController{}, q)
	c, rec := newContext(http.MethodPost, "/session/activity", `{"signal":"click"}`)

	if err := h.Activity(c); err != nil {
		t.Fatalf("activity: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(q.signals) != 1 || q.signals[0] != domain.SignalClick {
		t.Fatalf("signal not enqueued: %v", q.signals)
	}
}

func TestActivity_QueueFull(t *testing.T) {
	h := NewSessionHandler(&stubController{}, &stubQueue{full: true})
	c, rec := newContext(http.MethodPost, "/session/activity", `{"signal":"scroll"}`)

	if err := h.Activity(c); err != nil {
		t.Fatalf("activity: %v", err)
	}
	var got activityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Accepted {
		t.Fatalf("dropped signal reported as accepted")
	}
}

func TestActivity_UnknownSignal(t *testing.T) {
	q := &stubQueue{}
	h := NewSessionHandler(&stubController{}, q)
	c, _ := newContext(http.MethodPost, "/session/activity", `{"signal":"focus"}`)

	if err := h.Activity(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(q.signals) != 0 {
		t.Fatalf("unknown signal enqueued")
	}
}

func TestResetPassword_ForwardsFields(t *testing.T) {
	ctrl := &stubController{result: ports.Ok(nil)}
	h := NewSessionHandler(ctrl, &stubQueue{})
	c, rec := newContext(http.MethodPost, "/session/reset-password",
		`{"email":"user@x.edu","token":"123456","new_password":"Nueva#2024"}`)

	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ctrl.gotEmail != "user@x.edu" || ctrl.gotPassword != "Nueva#2024" {
		t.Fatalf("fields not forwarded: %q %q", ctrl.gotEmail, ctrl.gotPassword)
	}
}

// ── Student handler ───────────────────────────────────────────────────────────

func TestUpdateStudent_ParsesID(t *testing.T) {
	ctrl := &stubController{result: ports.Ok(nil)}
	h := NewStudentHandler(ctrl)
	c, rec := newContext(http.MethodPut, "/coordinator/students/12",
		`{"nombre":"Luis","apellidos":"Mora","email_institucional":"lmora@x.edu","documento_numero":"1001","semestre":6}`)
	c.SetParamNames("id")
	c.SetParamValues("12")

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ctrl.gotID != 12 || ctrl.gotStudent.Semestre != 6 {
		t.Fatalf("request not forwarded: id=%d student=%+v", ctrl.gotID, ctrl.gotStudent)
	}
}

func TestDeleteStudent_BadID(t *testing.T) {
	h := NewStudentHandler(&stubController{})
	c, _ := newContext(http.MethodDelete, "/coordinator/students/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Delete(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// ── Case record handler ───────────────────────────────────────────────────────

func TestCreateCaseRecord_ForwardsRawBody(t *testing.T) {
	ctrl := &stubController{result: ports.Ok(nil)}
	h := NewCaseRecordHandler(ctrl)
	body := `{"nombre_consultante":"Maria","area_consulta":"civil"}`
	c, rec := newContext(http.MethodPost, "/case-records", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if string(ctrl.gotBody) != body {
		t.Fatalf("body altered: %s", ctrl.gotBody)
	}
}

func TestCreateCaseRecord_RejectsInvalidJSON(t *testing.T) {
	h := NewCaseRecordHandler(&stubController{})
	c, _ := newContext(http.MethodPost, "/case-records", `{"nombre":`)

	if err := h.Create(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCaseRecordPDF_StreamsDocument(t *testing.T) {
	doc := &domain.Document{Filename: "control_operativo_5.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.4")}
	ctrl := &stubController{result: ports.Ok(doc)}
	h := NewCaseRecordHandler(ctrl)
	c, rec := newContext(http.MethodGet, "/case-records/5/pdf", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.PDF(c); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "control_operativo_5.pdf") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if rec.Body.String() != "%PDF-1.4" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestCaseRecordPDF_Failure(t *testing.T) {
	ctrl := &stubController{result: ports.Fail(domain.MsgCaseRecordFailed)}
	h := NewCaseRecordHandler(ctrl)
	c, rec := newContext(http.MethodGet, "/case-records/5/pdf", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.PDF(c); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
