package ui

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"respcheck/adapters/questionnaire"
	"respcheck/adapters/spss"
	"respcheck/adapters/tabular"
	"respcheck/app"
	"respcheck/internal/config"
	"respcheck/internal/detect"
)

const handlerTestCSV = `ExternalId,duration,Q10
101,10,nevím
102,300,Je to velmi dobrý produkt
103,320,Líbí se mi rychlé dodání zboží
104,340,Kvalita je dobrá ale cena vysoká
105,360,Chtěl bych lepší zákaznickou podporu
`

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()
	uploadDir := t.TempDir()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Paths:  config.PathConfig{UploadDir: uploadDir},
	}
	service := app.NewAnalysisService(
		tabular.NewReader(nil),
		questionnaire.NewParser(nil),
		detect.NewEngine(detect.DefaultConfig(), nil),
		spss.NewGenerator(),
		nil,
	)
	return NewApp(service, cfg, nil), uploadDir
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for field, content := range map[string]struct{ name, data string }{
		"data":          {"export.csv", files["data"]},
		"questionnaire": {"dotaznik.txt", files["questionnaire"]},
	} {
		if content.data == "" {
			continue
		}
		part, err := writer.CreateFormFile(field, content.name)
		require.NoError(t, err)
		_, err = io.WriteString(part, content.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHandleHealth(t *testing.T) {
	a, _ := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestHandleAnalyze(t *testing.T) {
	a, uploadDir := newTestApp(t)

	body, contentType := multipartBody(t, map[string]string{"data": handlerTestCSV})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 5, resp.Results.TotalRespondents)
	assert.Equal(t, "ExternalId", resp.Results.IDColumn)
	assert.Equal(t, 1, resp.Results.Speeders.Count)
	assert.NotEmpty(t, resp.ReportHTML)
	assert.NotEmpty(t, resp.SyntaxFile)

	// The syntax file is kept for download; the upload itself is cleaned up.
	_, err := os.Stat(filepath.Join(uploadDir, resp.SyntaxFile))
	assert.NoError(t, err)
}

func TestHandleAnalyzeMissingDataFile(t *testing.T) {
	a, _ := newTestApp(t)

	body, contentType := multipartBody(t, map[string]string{"questionnaire": "Q1. x\n"})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing upload field")
}

func TestHandleDownload(t *testing.T) {
	a, uploadDir := newTestApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(uploadDir, "delete_bad_x.sps"), []byte("* syntax."), 0o644))

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/download/delete_bad_x.sps", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "* syntax.", rec.Body.String())
}

func TestHandleDownloadRejectsBadNames(t *testing.T) {
	a, _ := newTestApp(t)

	for _, name := range []string{"nope.txt", "..%2Fescape.sps"} {
		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/download/"+name, nil))
		assert.NotEqual(t, http.StatusOK, rec.Code, "name %q", name)
	}
}

func TestHandleDownloadMissingFile(t *testing.T) {
	a, _ := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/download/missing.sps", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
