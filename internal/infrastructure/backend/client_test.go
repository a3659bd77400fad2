package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

const testSecret = "test-secret"

// fakeBackend mimics the clinic backend routes used by the client.
type fakeBackend struct {
	passwordHash []byte
	lastAuth     string
	lastReqID    string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("goodpass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	fb := &fakeBackend{passwordHash: hash}

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	api := e.Group("/api")
	api.POST("/auth/login", fb.login)
	api.POST("/auth/refresh", fb.refresh)
	api.GET("/auth/me", fb.me)
	api.POST("/auth/register", func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"detail": map[string]any{
				"message":      "Password does not meet security requirements",
				"requirements": []string{"Al menos 8 caracteres"},
			},
		})
	})
	api.PUT("/auth/profile", func(c echo.Context) error {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "telefono"}, "msg": "field required"}},
		})
	})
	api.DELETE("/auth/coordinador/estudiante/:id", func(c echo.Context) error {
		fb.lastAuth = c.Request().Header.Get("Authorization")
		return c.JSON(http.StatusOK, map[string]string{"message": "ok"})
	})
	api.GET("/control-operativo/:id", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, []byte(`{"id":5,"ciudad":"Pasto","nombre_consultante":"Rosa"}`))
	})
	api.GET("/control-operativo/:id/pdf", func(c echo.Context) error {
		c.Response().Header().Set("Content-Disposition", "attachment; filename=control_operativo_5_20240301.pdf")
		return c.Blob(http.StatusOK, "application/pdf", []byte("%PDF-1.4"))
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) token(sub string, ttl time.Duration, kind string) string {
	claims := jwt.MapClaims{"sub": sub, "type": kind, "exp": time.Now().Add(ttl).Unix()}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	return signed
}

func (fb *fakeBackend) login(c echo.Context) error {
	fb.lastReqID = c.Request().Header.Get(requestIDHeader)
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "bad body"})
	}
	if body.Email != "user@x.edu" || bcrypt.CompareHashAndPassword(fb.passwordHash, []byte(body.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user":          map[string]any{"id": 1, "email": body.Email, "role": "estudiante", "nombre": "Ana"},
		"access_token":  fb.token("1", 30*time.Minute, "access"),
		"refresh_token": fb.token("1", 7*24*time.Hour, "refresh"),
	})
}

func (fb *fakeBackend) refresh(c echo.Context) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.Bind(&body)
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(body.RefreshToken, claims, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	if err != nil || claims["type"] != "refresh" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Token de renovación inválido"})
	}
	return c.JSON(http.StatusOK, map[string]string{"access_token": fb.token("1", 30*time.Minute, "access"), "token_type": "bearer"})
}

func (fb *fakeBackend) me(c echo.Context) error {
	fb.lastAuth = c.Request().Header.Get("Authorization")
	if fb.lastAuth == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
	}
	return c.JSON(http.StatusOK, map[string]any{"id": 1, "email": "user@x.edu", "role": "estudiante", "created_at": "2024-03-01T10:00:00"})
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: srv.URL + "/api/", Timeout: 2 * time.Second}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNewClient_RejectsInvalidURL(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "localhost"}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for url without scheme")
	}
}

func TestLogin_Success(t *testing.T) {
	fb, srv := newFakeBackend(t)
	c := newTestClient(t, srv)

	tokens, err := c.Login(context.Background(), "user@x.edu", "goodpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.User == nil || tokens.User.ID != 1 || tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
	if fb.lastReqID == "" {
		t.Errorf("expected a request id header")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := newTestClient(t, srv)

	_, err := c.Login(context.Background(), "user@x.edu", "wrong")

	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Detail != "Invalid credentials" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if got := domain.Classify(domain.OpLogin, err); got != domain.MsgInvalidCredentials {
		t.Errorf("classified as %q", got)
	}
}

func TestMe_SendsBearerToken(t *testing.T) {
	fb, srv := newFakeBackend(t)
	c := newTestClient(t, srv)

	user, err := c.Me(context.Background(), "T1")
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if fb.lastAuth != "Bearer T1" {
		t.Errorf("authorization header = %q", fb.lastAuth)
	}
	if user.CreatedAt != "2024-03-01T10:00:00" {
		t.Errorf("created_at = %q", user.CreatedAt)
	}

	if _, err := c.Me(context.Background(), ""); !domain.IsUnauthorized(err) {
		t.Fatalf("expected 401 without token, got %v", err)
	}
}

func TestRefresh_KeepsRefreshTokenEmptyWhenNotRotated(t *testing.T) {
	fb, srv := newFakeBackend(t)
	c := newTestClient(t, srv)

	out, err := c.Refresh(context.Background(), fb.token("1", time.Hour, "refresh"))
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if out.AccessToken == "" || out.RefreshToken != "" {
		t.Fatalf("unexpected tokens: %+v", out)
	}

	if _, err := c.Refresh(context.Background(), fb.token("1", time.Hour, "access")); !domain.IsUnauthorized(err) {
		t.Fatalf("an access token must not refresh, got %v", err)
	}
}

func TestDecodeAPIError_ObjectAndListDetails(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := newTestClient(t, srv)

	_, err := c.Register(context.Background(), domain.RegisterInput{Email: "a@x.edu"})
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.DetailMessage == "" || len(apiErr.Requirements) != 1 {
		t.Fatalf("unexpected object detail: %+v", apiErr)
	}
	if got := domain.Classify(domain.OpRegister, err); got != domain.MsgWeakPassword {
		t.Errorf("classified as %q", got)
	}

	phone := "x"
	_, err = c.UpdateProfile(context.Background(), "T1", domain.ProfileUpdate{Telefono: &phone})
	apiErr, ok = domain.AsAPIError(err)
	if !ok || apiErr.Status != http.StatusUnprocessableEntity || apiErr.DetailMessage != "field required" {
		t.Fatalf("unexpected list detail: %+v", apiErr)
	}
}

func TestDeleteStudent(t *testing.T) {
	fb, srv := newFakeBackend(t)
	c := newTestClient(t, srv)

	if err := c.DeleteStudent(context.Background(), "T1", 4); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if fb.lastAuth != "Bearer T1" {
		t.Errorf("authorization header = %q", fb.lastAuth)
	}
}

func TestGetCaseRecord_KeepsFullBody(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := newTestClient(t, srv)

	rec, err := c.GetCaseRecord(context.Background(), "T1", 5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.ID != 5 || len(rec.Body) == 0 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestCaseRecordPDF(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := newTestClient(t, srv)

	doc, err := c.CaseRecordPDF(context.Background(), "T1", 5)
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if doc.Filename != "control_operativo_5_20240301.pdf" || doc.ContentType != "application/pdf" || string(doc.Content) != "%PDF-1.4" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestNoResponse(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := newTestClient(t, srv)
	srv.Close()

	_, err := c.Login(context.Background(), "user@x.edu", "goodpass")
	if !errors.Is(err, domain.ErrNoResponse) {
		t.Fatalf("expected ErrNoResponse, got %v", err)
	}
	if got := domain.Classify(domain.OpLogin, err); got != domain.MsgLoginNoResponse {
		t.Errorf("classified as %q", got)
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Errorf("ping should fail when the backend is down")
	}
}

func TestPing(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := newTestClient(t, srv)

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
