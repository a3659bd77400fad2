package backend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

const studentRoute = "/auth/coordinador/estudiante/{id}"

func studentPath(id int) string {
	return "/auth/coordinador/estudiante/" + strconv.Itoa(id)
}

func (c *Client) ListStudents(ctx context.Context, accessToken string) ([]domain.Student, error) {
	var out []domain.Student
	r := request{method: http.MethodGet, route: "/auth/coordinador/estudiantes", path: "/auth/coordinador/estudiantes", token: accessToken}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateStudent(ctx context.Context, accessToken string, in domain.StudentInput) (*domain.Student, error) {
	var out domain.Student
	r := request{
		method: http.MethodPost,
		route:  "/auth/coordinador/registrar-estudiante",
		path:   "/auth/coordinador/registrar-estudiante",
		token:  accessToken,
		body:   in,
	}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateStudent(ctx context.Context, accessToken string, id int, in domain.StudentInput) (*domain.Student, error) {
	var out domain.Student
	r := request{method: http.MethodPut, route: studentRoute, path: studentPath(id), token: accessToken, body: in}
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteStudent(ctx context.Context, accessToken string, id int) error {
	return c.do(ctx, request{method: http.MethodDelete, route: studentRoute, path: studentPath(id), token: accessToken}, nil)
}
