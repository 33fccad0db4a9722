package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docwriter/internal/enhance"
	"github.com/jonathan/docwriter/internal/export"
	"github.com/jonathan/docwriter/internal/report"
	"github.com/jonathan/docwriter/internal/session"
	"github.com/jonathan/docwriter/internal/template"
)

const testTemplate = `{
  "id": "application_profile",
  "name": "Application Profile",
  "description": "Standard application profile report",
  "avgPages": 4,
  "sections": [
    {"title": "Executive Summary", "content": "{application_description}"},
    {"title": "Footprint", "content": "TCO: {tco}\nVendor: {vendor}\nLicenses: {license_utilization}"}
  ]
}`

const testCSV = `application_name,organization_name,application_id,application_tco,application_vendor,application_status
AgroFuture Connect,AgroFuture,F1001,40000,TwigaTech,Active
Billing Hub,AgroFuture,F1002,15000,LedgerWorks,Active
`

type stubCapability struct {
	response string
	err      error
}

func (s *stubCapability) Complete(context.Context, string, int32, float32) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubCapability) Close() error { return nil }

func newTestServer(t *testing.T, cap enhance.Capability) *Server {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "application_profile.json"), []byte(testTemplate), 0o644))

	templates, err := template.NewStore(dir)
	require.NoError(t, err)

	var enhancer *enhance.Enhancer
	if cap != nil {
		enhancer = enhance.NewEnhancer(cap, time.Second, nil)
	}

	return New(Config{Port: 0}, Deps{
		Templates: templates,
		Assembler: report.NewAssembler(nil, nil),
		Exporter:  export.NewExporter(time.Second, "", nil),
		Enhancer:  enhancer,
		Sessions:  session.NewMemoryStore(),
	})
}

func multipartCSV(t *testing.T, templateID, csv string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("templateId", templateID))
	require.NoError(t, mw.WriteField("stakeholderAudience", `["CIO","Security"]`))
	fw, err := mw.CreateFormFile("csvFile", "apps.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func generateSession(t *testing.T, srv *Server) (string, []string) {
	t.Helper()
	body, contentType := multipartCSV(t, "application_profile", testCSV)
	req := httptest.NewRequest(http.MethodPost, "/api/generate-reports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		SessionID string `json:"sessionId"`
		Reports   []struct {
			ID string `json:"id"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	ids := make([]string, 0, len(resp.Reports))
	for _, r := range resp.Reports {
		ids = append(ids, r.ID)
	}
	return resp.SessionID, ids
}

func TestListTemplates(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Templates []template.Summary `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Templates, 1)
	assert.Equal(t, "application_profile", resp.Templates[0].ID)
}

func TestGetTemplate(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates/application_profile", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var tmpl template.Template
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tmpl))
	assert.Len(t, tmpl.Sections, 2)
}

func TestGetTemplateNotFound(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateReports(t *testing.T) {
	srv := newTestServer(t, nil)

	body, contentType := multipartCSV(t, "application_profile", testCSV)
	req := httptest.NewRequest(http.MethodPost, "/api/generate-reports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
		Reports   []struct {
			ApplicationName string `json:"applicationName"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Generated 2 of 2 reports", resp.Message)
	assert.True(t, strings.HasPrefix(resp.SessionID, "session_"))
	require.Len(t, resp.Reports, 2)
	assert.Equal(t, "AgroFuture Connect", resp.Reports[0].ApplicationName)
}

func TestGenerateReportsMissingTemplateID(t *testing.T) {
	srv := newTestServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("csvFile", "apps.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte(testCSV))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/generate-reports", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateReportsEmptyCSV(t *testing.T) {
	srv := newTestServer(t, nil)

	body, contentType := multipartCSV(t, "application_profile", "application_name,application_id\n")
	req := httptest.NewRequest(http.MethodPost, "/api/generate-reports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListReports(t *testing.T) {
	srv := newTestServer(t, nil)
	sessionID, ids := generateSession(t, srv)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+sessionID, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Reports []struct {
			ID       string           `json:"id"`
			Sections []report.Section `json:"sections"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Reports, 2)
	assert.Equal(t, ids[0], resp.Reports[0].ID)
	assert.NotEmpty(t, resp.Reports[0].Sections)
}

func TestListReportsUnknownSession(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/session_missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetReport(t *testing.T) {
	srv := newTestServer(t, nil)
	sessionID, ids := generateSession(t, srv)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+sessionID+"/"+ids[0], nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var rep report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "AgroFuture Connect", rep.ApplicationName)
	assert.Contains(t, rep.HTMLContent, "{organization_name}")
}

func TestPreviewResolvesPlaceholders(t *testing.T) {
	srv := newTestServer(t, nil)
	sessionID, ids := generateSession(t, srv)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports/"+sessionID+"/"+ids[0]+"/preview", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	html := rec.Body.String()
	assert.NotContains(t, html, "{application_name}")
	assert.NotContains(t, html, "{organization_name}")
	assert.Contains(t, html, "AgroFuture Connect")
}

func TestUpdateReportReRendersHTML(t *testing.T) {
	srv := newTestServer(t, nil)
	sessionID, ids := generateSession(t, srv)

	update := map[string]any{
		"title": "Edited Title",
		"sections": []report.Section{
			{Title: "Executive Summary", Content: "Edited content for {application_name}."},
		},
	}
	body, err := json.Marshal(update)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/reports/"+sessionID+"/"+ids[0], bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// the stored report reflects the edit
	getRec := httptest.NewRecorder()
	srv.Router().ServeHTTP(getRec, httptest.NewRequest(http.MethodGet, "/api/reports/"+sessionID+"/"+ids[0], nil))
	var rep report.Report
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &rep))
	assert.Equal(t, "Edited Title", rep.Title)
	require.Len(t, rep.Sections, 1)
	assert.Contains(t, rep.HTMLContent, "Edited Title")
	assert.Contains(t, rep.HTMLContent, "{organization_name}")
	assert.Contains(t, rep.HTMLContent, "Stakeholder Audience: CIO, Security")
}

func TestUpdateReportUnknownReport(t *testing.T) {
	srv := newTestServer(t, nil)
	sessionID, _ := generateSession(t, srv)

	req := httptest.NewRequest(http.MethodPut, "/api/reports/"+sessionID+"/nope", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportDocx(t *testing.T) {
	srv := newTestServer(t, nil)
	sessionID, ids := generateSession(t, srv)

	req := httptest.NewRequest(http.MethodPost, "/api/reports/"+sessionID+"/"+ids[0]+"/export",
		strings.NewReader(`{"format":"docx","stakeholderAudience":["CIO","CTO"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "wordprocessingml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "AgroFuture_Connect_Report.docx")
	assert.Equal(t, "PK", rec.Body.String()[:2])
}

func TestExportInvalidFormat(t *testing.T) {
	srv := newTestServer(t, nil)
	sessionID, ids := generateSession(t, srv)

	req := httptest.NewRequest(http.MethodPost, "/api/reports/"+sessionID+"/"+ids[0]+"/export",
		strings.NewReader(`{"format":"odt"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAIEnhance(t *testing.T) {
	srv := newTestServer(t, &stubCapability{response: "Enhanced prose for {application_name}."})
	sessionID, ids := generateSession(t, srv)

	body := `{"sectionTitle":"Executive Summary","originalContent":"Prose for {application_name}.","userRequest":"improve writing quality and clarity"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reports/"+sessionID+"/"+ids[0]+"/ai-enhance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		EnhancedContent string `json:"enhancedContent"`
		Warning         string `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Enhanced prose for {application_name}.", resp.EnhancedContent)
	assert.Empty(t, resp.Warning)
}

func TestAIEnhanceDroppedPlaceholderWarns(t *testing.T) {
	srv := newTestServer(t, &stubCapability{response: "Enhanced prose without tokens."})
	sessionID, ids := generateSession(t, srv)

	body := `{"sectionTitle":"Executive Summary","originalContent":"Prose for {application_name}.","userRequest":"make the content shorter and more concise"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reports/"+sessionID+"/"+ids[0]+"/ai-enhance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Warning string `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Warning, "{application_name}")
}

func TestAIEnhanceWithoutCapability(t *testing.T) {
	srv := newTestServer(t, nil)
	sessionID, ids := generateSession(t, srv)

	body := `{"sectionTitle":"Executive Summary","originalContent":"x","userRequest":"improve writing quality and clarity"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reports/"+sessionID+"/"+ids[0]+"/ai-enhance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAIEnhanceBackendFailure(t *testing.T) {
	srv := newTestServer(t, &stubCapability{err: errors.New("backend down")})
	sessionID, ids := generateSession(t, srv)

	body := `{"sectionTitle":"Executive Summary","originalContent":"x","userRequest":"fix spelling and grammar errors"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reports/"+sessionID+"/"+ids[0]+"/ai-enhance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Status    string   `json:"status"`
		Templates []string `json:"templates"`
		AIEnabled bool     `json:"aiEnabled"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, []string{"application_profile"}, resp.Templates)
	assert.False(t, resp.AIEnabled)
}

func TestParseStakeholders(t *testing.T) {
	assert.Equal(t, defaultStakeholders, parseStakeholders(""))
	assert.Equal(t, []string{"CIO"}, parseStakeholders(`["CIO"]`))
	assert.Equal(t, []string{"CIO", "CTO"}, parseStakeholders("CIO, CTO"))
	assert.Equal(t, defaultStakeholders, parseStakeholders("[]"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "AgroFuture_Connect", sanitizeFilename("AgroFuture Connect"))
	assert.Equal(t, "report", sanitizeFilename(""))
}
