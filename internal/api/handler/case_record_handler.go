package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
	"github.com/consultorio-juridico/portal-session/internal/core/ports"
)

const maxCaseRecordBody = 1 << 20

// CaseRecordHandler serves the "Control Operativo" records. Bodies are
// forwarded to the backend untouched.
type CaseRecordHandler struct {
	records ports.CaseRecordService
}

func NewCaseRecordHandler(records ports.CaseRecordService) *CaseRecordHandler {
	return &CaseRecordHandler{records: records}
}

func readBody(c echo.Context) (json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxCaseRecordBody))
	if err != nil || !json.Valid(body) {
		return nil, fmt.Errorf("%w: body must be a JSON document", domain.ErrInvalidInput)
	}
	return body, nil
}

// List handles GET /case-records.
//
// @Summary      List case records visible to the session user
// @Tags         case-records
// @Produce      json
// @Success      200  {object}  ports.Result
// @Failure      401  {object}  ports.Result
// @Router       /case-records [get]
func (h *CaseRecordHandler) List(c echo.Context) error {
	return writeResult(c, h.records.ListCaseRecords(c.Request().Context()))
}

// Get handles GET /case-records/:id.
//
// @Summary      Get a case record
// @Tags         case-records
// @Produce      json
// @Param        id   path      int  true  "Record id"
// @Success      200  {object}  ports.Result
// @Failure      422  {object}  ports.Result
// @Router       /case-records/{id} [get]
func (h *CaseRecordHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return writeResult(c, h.records.GetCaseRecord(c.Request().Context(), id))
}

// Create handles POST /case-records.
//
// @Summary      Create a case record
// @Tags         case-records
// @Accept       json
// @Produce      json
// @Success      200  {object}  ports.Result
// @Failure      400  {object}  ports.Result
// @Failure      422  {object}  ports.Result
// @Router       /case-records [post]
func (h *CaseRecordHandler) Create(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}
	return writeResult(c, h.records.CreateCaseRecord(c.Request().Context(), body))
}

// Update handles PUT /case-records/:id.
//
// @Summary      Update a case record
// @Tags         case-records
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Record id"
// @Success      200  {object}  ports.Result
// @Failure      422  {object}  ports.Result
// @Router       /case-records/{id} [put]
func (h *CaseRecordHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	body, err := readBody(c)
	if err != nil {
		return err
	}
	return writeResult(c, h.records.UpdateCaseRecord(c.Request().Context(), id, body))
}

// Delete handles DELETE /case-records/:id. The backend deactivates the
// record rather than removing it.
//
// @Summary      Deactivate a case record
// @Tags         case-records
// @Param        id   path      int  true  "Record id"
// @Success      200  {object}  ports.Result
// @Failure      422  {object}  ports.Result
// @Router       /case-records/{id} [delete]
func (h *CaseRecordHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return writeResult(c, h.records.DeleteCaseRecord(c.Request().Context(), id))
}

// Reactivate handles POST /case-records/:id/reactivate.
//
// @Summary      Reactivate a case record
// @Tags         case-records
// @Param        id   path      int  true  "Record id"
// @Success      200  {object}  ports.Result
// @Failure      422  {object}  ports.Result
// @Router       /case-records/{id}/reactivate [post]
func (h *CaseRecordHandler) Reactivate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return writeResult(c, h.records.ReactivateCaseRecord(c.Request().Context(), id))
}

// PDF handles GET /case-records/:id/pdf and streams the backend's PDF.
//
// @Summary      Download a case record as PDF
// @Tags         case-records
// @Produce      application/pdf
// @Param        id   path      int  true  "Record id"
// @Success      200  {file}    binary
// @Failure      422  {object}  ports.Result
// @Router       /case-records/{id}/pdf [get]
func (h *CaseRecordHandler) PDF(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	res := h.records.DownloadCaseRecordPDF(c.Request().Context(), id)
	doc, ok := res.Data.(*domain.Document)
	if !res.Success || !ok || doc == nil {
		if res.Success {
			res = ports.Fail(domain.MsgCaseRecordFailed)
		}
		return writeResult(c, res)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Content)
}
