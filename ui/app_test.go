package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"giftedlens/app"
	"giftedlens/internal/config"
	"giftedlens/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const auditCSV = `school_year,grade,gender,race_ethnicity,referred,tested,qualified,placed
2023-24,3,F,Group A,1,1,1,1
2023-24,3,F,Group A,1,1,1,0
2023-24,3,F,Group A,1,1,1,0
2023-24,3,F,Group A,1,1,0,0
2023-24,3,F,Group A,1,0,0,0
2023-24,3,F,Group A,1,0,0,0
2023-24,3,M,Group B,1,1,1,1
2023-24,3,M,Group B,1,1,0,0
2023-24,3,M,Group B,1,0,0,0
2023-24,3,M,Group B,1,0,0,0
`

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "0", APIPort: "0"},
		Upload:   config.UploadConfig{MaxUploadMB: 8},
		Analysis: config.AnalysisConfig{DefaultMinGroupSize: 1},
	}
	return NewApp(cfg, app.NewAuditService())
}

func auditRequest(t *testing.T, csv string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("dataset", "upload.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/audit", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleAudit_ReturnsReport(t *testing.T) {
	a := testApp(t)
	rec := httptest.NewRecorder()

	a.Handler().ServeHTTP(rec, auditRequest(t, auditCSV, map[string]string{
		"group_by":       "gender",
		"outcome":        "qualified",
		"min_group_size": "1",
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var report app.AuditReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	assert.Equal(t, 10, report.RowCount)
	require.Len(t, report.Disparity, 2)
	assert.Equal(t, "F", report.Disparity[0].Group)
	assert.Equal(t, 6, report.Disparity[0].N)

	v, ok := report.Overview.QualificationRate.Value()
	require.True(t, ok)
	assert.InDelta(t, 0.4, v, 1e-12)
}

func TestHandleAudit_MissingColumns(t *testing.T) {
	a := testApp(t)
	rec := httptest.NewRecorder()

	a.Handler().ServeHTTP(rec, auditRequest(t, "gender\nF\n", map[string]string{
		"group_by": "gender",
		"outcome":  "qualified",
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.CodeMissingColumns, resp["code"])
	assert.Contains(t, resp["error"], "race_ethnicity")
}

func TestHandleAudit_UnknownGroupAttribute(t *testing.T) {
	a := testApp(t)
	rec := httptest.NewRecorder()

	a.Handler().ServeHTTP(rec, auditRequest(t, auditCSV, map[string]string{
		"group_by": "zipcode",
		"outcome":  "qualified",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRecommendations(t *testing.T) {
	a := testApp(t)
	rec := httptest.NewRecorder()

	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["markdown"], "universal screening")
}
