package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jonathan/docwriter/internal/enhance"
	"github.com/jonathan/docwriter/internal/export"
	"github.com/jonathan/docwriter/internal/record"
	"github.com/jonathan/docwriter/internal/report"
	"github.com/jonathan/docwriter/internal/session"
)

const maxUploadBytes = 16 << 20

var defaultStakeholders = []string{"Technical", "Business"}

type reportSummary struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	ApplicationName  string    `json:"applicationName"`
	OrganizationName string    `json:"organizationName"`
	ApplicationID    string    `json:"applicationId"`
	GeneratedAt      time.Time `json:"generatedAt"`
}

func summarize(rep *report.Report) reportSummary {
	return reportSummary{
		ID:               rep.ID,
		Title:            rep.Title,
		ApplicationName:  rep.ApplicationName,
		OrganizationName: rep.OrganizationName,
		ApplicationID:    rep.Metadata.ApplicationID,
		GeneratedAt:      rep.Metadata.GeneratedAt,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.List()
	available := make([]string, 0, len(templates))
	if err == nil {
		for _, t := range templates {
			available = append(available, t.ID)
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"templates":  available,
		"aiEnabled":  s.enhancer != nil,
	})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.List()
	if err != nil {
		s.writeError(w, "Failed to load templates", err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := s.templates.Load(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "Failed to load template", err)
		return
	}
	s.writeJSON(w, http.StatusOK, tmpl)
}

func (s *Server) handleGenerateReports(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, "Invalid multipart request", &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	templateID := r.FormValue("templateId")
	if templateID == "" {
		s.writeError(w, "Template ID is required", &ErrValidation{Field: "templateId", Message: "required"})
		return
	}

	file, _, err := r.FormFile("csvFile")
	if err != nil {
		s.writeError(w, "CSV file is required", &ErrValidation{Field: "csvFile", Message: "required"})
		return
	}
	defer file.Close()

	stakeholders := parseStakeholders(r.FormValue("stakeholderAudience"))

	records, err := record.ParseCSV(file)
	if err != nil {
		s.writeError(w, "CSV parsing failed", err)
		return
	}
	if len(records) == 0 {
		s.writeError(w, "No valid application data found in CSV file",
			&ErrValidation{Field: "csvFile", Message: "no valid records"})
		return
	}

	tmpl, err := s.templates.Load(templateID)
	if err != nil {
		s.writeError(w, "Failed to load template", err)
		return
	}

	result := s.assembler.AssembleBatch(r.Context(), tmpl, records, report.AssembleOptions{
		Stakeholders:       stakeholders,
		CustomInstructions: r.FormValue("customInstructions"),
	})

	sessionID := session.NewSessionID()
	if err := s.sessions.Put(r.Context(), sessionID, result.Reports); err != nil {
		s.writeError(w, "Failed to store reports", err)
		return
	}

	summaries := make([]reportSummary, 0, len(result.Reports))
	for _, rep := range result.Reports {
		summaries = append(summaries, summarize(rep))
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":     fmt.Sprintf("Generated %d of %d reports", len(result.Reports), len(records)),
		"sessionId":   sessionID,
		"reports":     summaries,
		"templateId":  templateID,
		"failed":      result.Failed,
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	reports, err := s.sessions.Get(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, "Reports not found for this session", err)
		return
	}

	type listEntry struct {
		reportSummary
		Sections []report.Section `json:"sections"`
	}
	entries := make([]listEntry, 0, len(reports))
	for _, rep := range reports {
		entries = append(entries, listEntry{reportSummary: summarize(rep), Sections: rep.Sections})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"sessionId": sessionID,
		"reports":   entries,
	})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, _, err := s.findReport(r)
	if err != nil {
		s.writeError(w, "Failed to fetch report", err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	rep, _, err := s.findReport(r)
	if err != nil {
		s.writeError(w, "Failed to get report preview", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, report.Resolve(rep.HTMLContent, rep.Identity()))
}

func (s *Server) handleUpdateReport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Sections []report.Section `json:"sections"`
		Title    string           `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, "Invalid request body", &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	reports, err := s.sessions.Get(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, "Session not found", err)
		return
	}

	rep := findByID(reports, chi.URLParam(r, "reportID"))
	if rep == nil {
		s.writeError(w, "Report not found", &ErrReportNotFound{ReportID: chi.URLParam(r, "reportID")})
		return
	}

	rep.UpdateSections(body.Sections, body.Title)

	if err := s.sessions.Put(r.Context(), sessionID, reports); err != nil {
		s.writeError(w, "Failed to store report", err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Report updated successfully",
		"report":  rep,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	rep, _, err := s.findReport(r)
	if err != nil {
		s.writeError(w, "Failed to export document", err)
		return
	}

	opts, cleanup, err := s.parseExportOptions(r)
	if err != nil {
		s.writeError(w, "Invalid export options", err)
		return
	}
	defer cleanup()

	data, err := s.exporter.Export(r.Context(), rep, opts)
	if err != nil {
		s.writeError(w, "Failed to export document", err)
		return
	}

	ext := opts.Format
	mimeType := "application/pdf"
	if opts.Format == export.FormatDOCX {
		mimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	filename := sanitizeFilename(rep.ApplicationName) + "_Report." + ext

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	_, _ = w.Write(data)
}

func (s *Server) handleAIEnhance(w http.ResponseWriter, r *http.Request) {
	if s.enhancer == nil {
		s.writeError(w, "AI enhancement not configured",
			&ErrValidation{Field: "enhancer", Message: "no text generation capability configured"})
		return
	}

	rep, _, err := s.findReport(r)
	if err != nil {
		s.writeError(w, "Failed to enhance content", err)
		return
	}

	var body struct {
		SectionTitle    string `json:"sectionTitle"`
		OriginalContent string `json:"originalContent"`
		UserRequest     string `json:"userRequest"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, "Invalid request body", &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	if body.UserRequest == "" {
		s.writeError(w, "Enhancement request is required",
			&ErrValidation{Field: "userRequest", Message: "required"})
		return
	}

	result, err := s.enhancer.EnhanceWithStyle(r.Context(), enhance.StyleRequest{
		SectionTitle:     body.SectionTitle,
		Content:          body.OriginalContent,
		Request:          body.UserRequest,
		ApplicationName:  rep.ApplicationName,
		OrganizationName: rep.OrganizationName,
		ApplicationID:    rep.Metadata.ApplicationID,
	})
	if err != nil {
		s.writeError(w, "Failed to enhance content with AI", err)
		return
	}

	resp := map[string]any{
		"enhancedContent": result.Content,
		"message":         "Content enhanced successfully",
	}
	if result.Warning != "" {
		resp["warning"] = result.Warning
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// parseExportOptions reads either a JSON body or a multipart form with an
// optional customLogo upload. The returned cleanup removes any temp file.
func (s *Server) parseExportOptions(r *http.Request) (export.Options, func(), error) {
	noop := func() {}
	opts := export.Options{Format: export.FormatPDF}

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
				return opts, noop, &ErrValidation{Field: "body", Message: err.Error()}
			}
		}
		return opts, noop, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return opts, noop, &ErrValidation{Field: "body", Message: err.Error()}
	}

	if format := r.FormValue("format"); format != "" {
		opts.Format = format
	}
	opts.UseDefaultLogo = r.FormValue("useDefaultLogo") == "true"
	opts.Stakeholders = parseStakeholders(r.FormValue("stakeholderAudience"))
	opts.CustomInstructions = r.FormValue("customInstructions")

	file, _, err := r.FormFile("customLogo")
	if err != nil {
		return opts, noop, nil
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "docwriter-upload-*.png")
	if err != nil {
		return opts, noop, nil
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return opts, noop, nil
	}
	tmp.Close()

	opts.LogoPath = tmp.Name()
	return opts, func() { os.Remove(tmp.Name()) }, nil
}

func (s *Server) findReport(r *http.Request) (*report.Report, string, error) {
	sessionID := chi.URLParam(r, "sessionID")
	reports, err := s.sessions.Get(r.Context(), sessionID)
	if err != nil {
		return nil, sessionID, err
	}

	reportID := chi.URLParam(r, "reportID")
	rep := findByID(reports, reportID)
	if rep == nil {
		return nil, sessionID, &ErrReportNotFound{ReportID: reportID}
	}
	return rep, sessionID, nil
}

func findByID(reports []*report.Report, id string) *report.Report {
	for _, rep := range reports {
		if rep.ID == id {
			return rep
		}
	}
	return nil
}

// parseStakeholders accepts a JSON array or a comma separated list, falling
// back to the default audience.
func parseStakeholders(raw string) []string {
	if raw == "" {
		return defaultStakeholders
	}

	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		if len(parsed) == 0 {
			return defaultStakeholders
		}
		return parsed
	}

	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parsed = append(parsed, trimmed)
		}
	}
	if len(parsed) == 0 {
		return defaultStakeholders
	}
	return parsed
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "report"
	}
	return b.String()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(message, zap.Error(err))
	} else {
		s.logger.Warn(message, zap.Error(err))
	}
	s.writeJSON(w, status, map[string]string{
		"error":   message,
		"details": err.Error(),
	})
}
