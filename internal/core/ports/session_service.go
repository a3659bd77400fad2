package ports

import (
	"context"
	"encoding/json"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

// Result is the outcome envelope of every session command.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Ok builds a successful Result.
func Ok(data any) Result {
	return Result{Success: true, Data: data}
}

// Fail builds a failed Result carrying a user-facing message.
func Fail(msg string) Result {
	return Result{Error: msg}
}

// ActivityRecorder accepts user interaction signals.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, signal domain.ActivitySignal) bool
}

// SessionService is the read/command interface the UI shell consumes.
type SessionService interface {
	ActivityRecorder

	Snapshot() domain.Session
	Login(ctx context.Context, email, password string) Result
	Logout(ctx context.Context)
	Register(ctx context.Context, in domain.RegisterInput) Result
	RegisterStudent(ctx context.Context, in domain.StudentRegistration) Result
	UpdateProfile(ctx context.Context, in domain.ProfileUpdate) Result
	ForgotPassword(ctx context.Context, email string) Result
	ResetPassword(ctx context.Context, email, token, newPassword string) Result
	ClearError()
	ValidateStudentCode(ctx context.Context, code string) Result
	ValidatePersonalData(ctx context.Context, documentNumber string) Result
}

// RosterService manages the student roster on behalf of a coordinator.
type RosterService interface {
	ListStudents(ctx context.Context) Result
	CreateStudent(ctx context.Context, in domain.StudentInput) Result
	UpdateStudent(ctx context.Context, id int, in domain.StudentInput) Result
	DeleteStudent(ctx context.Context, id int) Result
}

// CaseRecordService exposes the "Control Operativo" records of the session
// user. DownloadCaseRecordPDF carries a *domain.Document in Result.Data.
type CaseRecordService interface {
	ListCaseRecords(ctx context.Context) Result
	GetCaseRecord(ctx context.Context, id int) Result
	CreateCaseRecord(ctx context.Context, body json.RawMessage) Result
	UpdateCaseRecord(ctx context.Context, id int, body json.RawMessage) Result
	DeleteCaseRecord(ctx context.Context, id int) Result
	ReactivateCaseRecord(ctx context.Context, id int) Result
	DownloadCaseRecordPDF(ctx context.Context, id int) Result
}
