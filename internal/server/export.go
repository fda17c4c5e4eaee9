package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jiwoo-han/testcase-gen/constants"
	"github.com/jiwoo-han/testcase-gen/internal/entity"
)

// exportRequest is the JSON body of the export route. FileName is optional;
// when present the suggested download name becomes <basename>_testcases.xlsx.
type exportRequest struct {
	TestItems []entity.TestItem `json:"testItems"`
	FileName  string            `json:"fileName"`
}

// handleGenerate turns a testItems payload into a downloadable workbook.
func (s *Server) handleGenerate(c echo.Context) error {
	var req exportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "request body must be JSON"})
	}
	if req.TestItems == nil {
		return c.JSON(http.StatusBadRequest, errorBody{
			Error: "invalid test case payload: a testItems array is required",
		})
	}

	artifact, err := s.proc.ExportDocument(c.Request().Context(),
		entity.TestDocument{TestItems: req.TestItems})
	if err != nil {
		return s.respondError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, exportFilename(req.FileName)))
	return c.Blob(http.StatusOK, constants.XLSXContentType, artifact)
}

// exportFilename derives the suggested download name from the original
// upload's basename; without one it falls back to a plain default.
func exportFilename(original string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" || base == "." {
		return "testcases.xlsx"
	}
	return base + "_testcases.xlsx"
}
