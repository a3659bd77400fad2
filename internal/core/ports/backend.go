package ports

import (
	"context"
	"encoding/json"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

// AuthTokens is what the backend returns after a successful login or
// registration: a ready-to-use session.
type AuthTokens struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// RefreshedTokens is the answer of /auth/refresh. RefreshToken is empty
// when the backend does not rotate it.
type RefreshedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// PasswordRecovery is the answer of /auth/forgot-password. ResetToken is
// only filled by development backends.
type PasswordRecovery struct {
	Message    string `json:"message,omitempty"`
	ResetToken string `json:"reset_token,omitempty"`
}

// AuthAPI covers the credential endpoints of the backend. Calls that need
// a bearer credential receive it explicitly.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthTokens, error)
	Register(ctx context.Context, in domain.RegisterInput) (*AuthTokens, error)
	RegisterStudent(ctx context.Context, in domain.StudentRegistration) (*AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshedTokens, error)
	Me(ctx context.Context, accessToken string) (*domain.User, error)
	UpdateProfile(ctx context.Context, accessToken string, in domain.ProfileUpdate) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) (*PasswordRecovery, error)
	ResetPassword(ctx context.Context, email, token, newPassword string) error
	ValidateStudentCode(ctx context.Context, code string) (*domain.CodeValidation, error)
	ValidatePersonalData(ctx context.Context, documentNumber string) (*domain.CodeValidation, error)
}

// RosterAPI is the coordinator-only student roster passthrough.
type RosterAPI interface {
	ListStudents(ctx context.Context, accessToken string) ([]domain.Student, error)
	CreateStudent(ctx context.Context, accessToken string, in domain.StudentInput) (*domain.Student, error)
	UpdateStudent(ctx context.Context, accessToken string, id int, in domain.StudentInput) (*domain.Student, error)
	DeleteStudent(ctx context.Context, accessToken string, id int) error
}

// CaseRecordAPI is the "Control Operativo" passthrough.
type CaseRecordAPI interface {
	ListCaseRecords(ctx context.Context, accessToken string) ([]domain.CaseRecord, error)
	GetCaseRecord(ctx context.Context, accessToken string, id int) (*domain.CaseRecord, error)
	CreateCaseRecord(ctx context.Context, accessToken string, body json.RawMessage) (*domain.CaseRecord, error)
	UpdateCaseRecord(ctx context.Context, accessToken string, id int, body json.RawMessage) (*domain.CaseRecord, error)
	DeleteCaseRecord(ctx context.Context, accessToken string, id int) error
	ReactivateCaseRecord(ctx context.Context, accessToken string, id int) (*domain.CaseRecord, error)
	CaseRecordPDF(ctx context.Context, accessToken string, id int) (*domain.Document, error)
}

// BackendAPI is the full surface of the clinic backend used by the agent.
type BackendAPI interface {
	AuthAPI
	RosterAPI
	CaseRecordAPI
	// Ping reports whether the backend answers at all.
	Ping(ctx context.Context) error
}
