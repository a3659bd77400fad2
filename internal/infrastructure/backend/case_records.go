package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

const (
	caseRecordsRoute = "/control-operativo/"
	caseRecordRoute  = "/control-operativo/{id}"
)

func caseRecordPath(id int) string {
	return "/control-operativo/" + strconv.Itoa(id)
}

func (c *Client) ListCaseRecords(ctx context.Context, accessToken string) ([]domain.CaseRecord, error) {
	var out []domain.CaseRecord
	r := request{method: http.MethodGet, route: caseRecordsRoute, path: caseRecordsRoute, token: accessToken}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCaseRecord(ctx context.Context, accessToken string, id int) (*domain.CaseRecord, error) {
	var out domain.CaseRecord
	r := request{method: http.MethodGet, route: caseRecordRoute, path: caseRecordPath(id), token: accessToken}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCaseRecord(ctx context.Context, accessToken string, body json.RawMessage) (*domain.CaseRecord, error) {
	var out domain.CaseRecord
	r := request{method: http.MethodPost, route: caseRecordsRoute, path: caseRecordsRoute, token: accessToken, body: body}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCaseRecord(ctx context.Context, accessToken string, id int, body json.RawMessage) (*domain.CaseRecord, error) {
	var out domain.CaseRecord
	r := request{method: http.MethodPut, route: caseRecordRoute, path: caseRecordPath(id), token: accessToken, body: body}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCaseRecord(ctx context.Context, accessToken string, id int) error {
	return c.do(ctx, request{method: http.MethodDelete, route: caseRecordRoute, path: caseRecordPath(id), token: accessToken}, nil)
}

func (c *Client) ReactivateCaseRecord(ctx context.Context, accessToken string, id int) (*domain.CaseRecord, error) {
	var out domain.CaseRecord
	r := request{
		method: http.MethodPost,
		route:  caseRecordRoute + "/reactivar",
		path:   caseRecordPath(id) + "/reactivar",
		token:  accessToken,
	}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CaseRecordPDF downloads the PDF rendered by the backend.
func (c *Client) CaseRecordPDF(ctx context.Context, accessToken string, id int) (*domain.Document, error) {
	r := request{method: http.MethodGet, route: caseRecordRoute + "/pdf", path: caseRecordPath(id) + "/pdf", token: accessToken}
	resp, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.route, err)
	}

	name := filename(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = fmt.Sprintf("control_operativo_%d.pdf", id)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &domain.Document{Filename: name, ContentType: contentType, Content: content}, nil
}
