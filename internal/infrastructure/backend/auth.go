package backend

import (
	"context"
	"net/http"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
)

func (c *Client) Login(ctx context.Context, email, password string) (*ports.AuthTokens, error) {
	var out ports.AuthTokens
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, request{method: http.MethodPost, route: "/auth/login", path: "/auth/login", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, in domain.RegisterInput) (*ports.AuthTokens, error) {
	var out ports.AuthTokens
	if err := c.do(ctx, request{method: http.MethodPost, route: "/auth/register", path: "/auth/register", body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RegisterStudent(ctx context.Context, in domain.StudentRegistration) (*ports.AuthTokens, error) {
	var out ports.AuthTokens
	r := request{method: http.MethodPost, route: "/auth/registro-estudiante", path: "/auth/registro-estudiante", body: in}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*ports.RefreshedTokens, error) {
	var out ports.RefreshedTokens
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, request{method: http.MethodPost, route: "/auth/refresh", path: "/auth/refresh", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context, accessToken string) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, request{method: http.MethodGet, route: "/auth/me", path: "/auth/me", token: accessToken}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, accessToken string, in domain.ProfileUpdate) (*domain.User, error) {
	var out domain.User
	r := request{method: http.MethodPut, route: "/auth/profile", path: "/auth/profile", token: accessToken, body: in}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (*ports.PasswordRecovery, error) {
	var out ports.PasswordRecovery
	body := map[string]string{"email": email}
	if err := c.do(ctx, request{method: http.MethodPost, route: "/auth/forgot-password", path: "/auth/forgot-password", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	body := map[string]string{"email": email, "token": token, "new_password": newPassword}
	return c.do(ctx, request{method: http.MethodPost, route: "/auth/reset-password", path: "/auth/reset-password", body: body}, nil)
}

func (c *Client) ValidateStudentCode(ctx context.Context, code string) (*domain.CodeValidation, error) {
	var out domain.CodeValidation
	body := map[string]string{"codigo_estudiante": code}
	if err := c.do(ctx, request{method: http.MethodPost, route: "/auth/validar-codigo", path: "/auth/validar-codigo", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ValidatePersonalData(ctx context.Context, documentNumber string) (*domain.CodeValidation, error) {
	var out domain.CodeValidation
	body := map[string]string{"documento_numero": documentNumber}
	r := request{method: http.MethodPost, route: "/auth/validar-datos-personales", path: "/auth/validar-datos-personales", body: body}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
