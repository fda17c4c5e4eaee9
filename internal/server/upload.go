package server

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/jiwoo-han/testcase-gen/constants"
	"github.com/jiwoo-han/testcase-gen/internal/entity"
)

// uploadResponse carries the generated items back to the caller along with
// the upload's name, which the export request echoes for filename suggestion.
type uploadResponse struct {
	TestItems []entity.TestItem `json:"testItems"`
	FileName  string            `json:"fileName"`
	ItemCount int               `json:"itemCount"`
}

// handleUpload accepts a multipart planning document, extracts its text and
// generates test cases. Format and size violations are rejected here, before
// any parsing or model work.
func (s *Server) handleUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "no file provided"})
	}

	if !constants.AllowedExt(filepath.Ext(fh.Filename)) {
		return c.JSON(http.StatusBadRequest, errorBody{
			Error: "unsupported file format; only PDF, DOCX and DOC files are accepted",
		})
	}
	if fh.Size > s.proc.MaxBytes {
		return c.JSON(http.StatusBadRequest, errorBody{
			Error: "file is too large (max 10 MiB)",
		})
	}

	src, err := fh.Open()
	if err != nil {
		return s.respondError(c, err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			s.logger.Warn("http.upload.close_error", "error", cerr)
		}
	}()

	// The declared size passed the gate; cap the read anyway so a lying
	// Content-Length cannot buffer more than the limit.
	b, err := io.ReadAll(io.LimitReader(src, s.proc.MaxBytes+1))
	if err != nil {
		return s.respondError(c, err)
	}
	if int64(len(b)) > s.proc.MaxBytes {
		return c.JSON(http.StatusBadRequest, errorBody{
			Error: "file is too large (max 10 MiB)",
		})
	}

	res, err := s.proc.ProcessUpload(c.Request().Context(), entity.Upload{
		Bytes:    b,
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, uploadResponse{
		TestItems: res.Document.TestItems,
		FileName:  fh.Filename,
		ItemCount: res.ItemCount,
	})
}
