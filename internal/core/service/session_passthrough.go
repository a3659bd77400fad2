package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/consultorio-juridico/portal-session/internal/api/metrics"
	"github.com/consultorio-juridico/portal-session/internal/core/domain"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
)

// Plain REST calls made on behalf of the session. None of them touches the
// session error; failures are returned to the caller only.

// ValidateStudentCode checks a student code before registration.
func (c *SessionController) ValidateStudentCode(ctx context.Context, code string) ports.Result {
	const command = "validate_student_code"
	if err := c.validate.Var(code, "required"); err != nil {
		return c.fail(command, domain.ErrInvalidInput, domain.MsgValidateCodeFailed)
	}
	res, err := c.api.ValidateStudentCode(ctx, code)
	return c.respond(command, res, err, domain.MsgValidateCodeFailed)
}

// ValidatePersonalData looks up a pre-registered student by document number.
func (c *SessionController) ValidatePersonalData(ctx context.Context, documentNumber string) ports.Result {
	const command = "validate_personal_data"
	if err := c.validate.Var(documentNumber, "required"); err != nil {
		return c.fail(command, domain.ErrInvalidInput, domain.MsgPersonalDataNotFound)
	}
	res, err := c.api.ValidatePersonalData(ctx, documentNumber)
	return c.respond(command, res, err, domain.MsgPersonalDataNotFound)
}

// ── Coordinator roster ────────────────────────────────────────────────────────

func (c *SessionController) ListStudents(ctx context.Context) ports.Result {
	students, _, err := authorized(ctx, c, func(ctx context.Context, token string) ([]domain.Student, error) {
		return c.api.ListStudents(ctx, token)
	})
	return c.respond("list_students", students, err, domain.MsgListStudentsFailed)
}

func (c *SessionController) CreateStudent(ctx context.Context, in domain.StudentInput) ports.Result {
	const command = "create_student"
	if err := c.validate.Struct(in); err != nil {
		return c.fail(command, domain.ErrInvalidInput, domain.MsgCreateStudentFailed)
	}
	student, _, err := authorized(ctx, c, func(ctx context.Context, token string) (*domain.Student, error) {
		return c.api.CreateStudent(ctx, token, in)
	})
	return c.respond(command, student, err, domain.MsgCreateStudentFailed)
}

func (c *SessionController) UpdateStudent(ctx context.Context, id int, in domain.StudentInput) ports.Result {
	const command = "update_student"
	if err := c.validate.Struct(in); err != nil {
		return c.fail(command, domain.ErrInvalidInput, domain.MsgUpdateStudentFailed)
	}
	student, _, err := authorized(ctx, c, func(ctx context.Context, token string) (*domain.Student, error) {
		return c.api.UpdateStudent(ctx, token, id, in)
	})
	return c.respond(command, student, err, domain.MsgUpdateStudentFailed)
}

func (c *SessionController) DeleteStudent(ctx context.Context, id int) ports.Result {
	_, _, err := authorized(ctx, c, func(ctx context.Context, token string) (struct{}, error) {
		return struct{}{}, c.api.DeleteStudent(ctx, token, id)
	})
	return c.respond("delete_student", nil, err, domain.MsgDeleteStudentFailed)
}

// ── Case records ──────────────────────────────────────────────────────────────

func (c *SessionController) ListCaseRecords(ctx context.Context) ports.Result {
	records, _, err := authorized(ctx, c, func(ctx context.Context, token string) ([]domain.CaseRecord, error) {
		return c.api.ListCaseRecords(ctx, token)
	})
	return c.respond("list_case_records", records, err, domain.MsgCaseRecordFailed)
}

func (c *SessionController) GetCaseRecord(ctx context.Context, id int) ports.Result {
	record, _, err := authorized(ctx, c, func(ctx context.Context, token string) (*domain.CaseRecord, error) {
		return c.api.GetCaseRecord(ctx, token, id)
	})
	return c.respond("get_case_record", record, err, domain.MsgCaseRecordFailed)
}

func (c *SessionController) CreateCaseRecord(ctx context.Context, body json.RawMessage) ports.Result {
	const command = "create_case_record"
	if !json.Valid(body) {
		return c.fail(command, domain.ErrInvalidInput, domain.MsgCaseRecordFailed)
	}
	record, _, err := authorized(ctx, c, func(ctx context.Context, token string) (*domain.CaseRecord, error) {
		return c.api.CreateCaseRecord(ctx, token, body)
	})
	return c.respond(command, record, err, domain.MsgCaseRecordFailed)
}

func (c *SessionController) UpdateCaseRecord(ctx context.Context, id int, body json.RawMessage) ports.Result {
	const command = "update_case_record"
	if !json.Valid(body) {
		return c.fail(command, domain.ErrInvalidInput, domain.MsgCaseRecordFailed)
	}
	record, _, err := authorized(ctx, c, func(ctx context.Context, token string) (*domain.CaseRecord, error) {
		return c.api.UpdateCaseRecord(ctx, token, id, body)
	})
	return c.respond(command, record, err, domain.MsgCaseRecordFailed)
}

func (c *SessionController) DeleteCaseRecord(ctx context.Context, id int) ports.Result {
	_, _, err := authorized(ctx, c, func(ctx context.Context, token string) (struct{}, error) {
		return struct{}{}, c.api.DeleteCaseRecord(ctx, token, id)
	})
	return c.respond("delete_case_record", nil, err, domain.MsgCaseRecordFailed)
}

func (c *SessionController) ReactivateCaseRecord(ctx context.Context, id int) ports.Result {
	record, _, err := authorized(ctx, c, func(ctx context.Context, token string) (*domain.CaseRecord, error) {
		return c.api.ReactivateCaseRecord(ctx, token, id)
	})
	return c.respond("reactivate_case_record", record, err, domain.MsgCaseRecordFailed)
}

func (c *SessionController) DownloadCaseRecordPDF(ctx context.Context, id int) ports.Result {
	doc, _, err := authorized(ctx, c, func(ctx context.Context, token string) (*domain.Document, error) {
		return c.api.CaseRecordPDF(ctx, token, id)
	})
	return c.respond("case_record_pdf", doc, err, domain.MsgCaseRecordFailed)
}

// respond turns a passthrough outcome into a Result.
func (c *SessionController) respond(command string, data any, err error, fallback string) ports.Result {
	if err != nil {
		return c.fail(command, err, fallback)
	}
	metrics.CommandsTotal.WithLabelValues(command, metrics.Outcome(true)).Inc()
	return ports.Ok(data)
}

func (c *SessionController) fail(command string, err error, fallback string) ports.Result {
	metrics.CommandsTotal.WithLabelValues(command, metrics.Outcome(false)).Inc()
	ev := c.logger.Warn()
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotAuthenticated) {
		ev = c.logger.Debug()
	}
	ev.Err(err).Str("command", command).Msg("command failed")
	return ports.Fail(domain.Passthrough(err, fallback))
}
