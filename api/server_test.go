package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestNew(t *testing.T) {
	cfg := DefaultConfig()
	server := New(cfg)

	if server == nil {
		t.Fatal("Expected server to be created")
	}
	if server.mux == nil {
		t.Fatal("Expected mux to be initialized")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Port != ":8080" {
		t.Errorf("Expected port ':8080', got '%s'", cfg.Port)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := New(DefaultConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response["status"] != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response["status"])
	}
}

func TestAnalyzeEndpoint_MethodNotAllowed(t *testing.T) {
	server := New(DefaultConfig())

	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestAnalyzeEndpoint_NoFile(t *testing.T) {
	server := New(DefaultConfig())

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.Header.Set("Content-Type", "multipart/form-data")
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestAnalyzeEndpoint_InvalidFile(t *testing.T) {
	server := New(DefaultConfig())

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "test.xlsx")
	part.Write([]byte("not a valid workbook"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

// buildReportWorkbook builds a minimal share awaiting report upload.
func buildReportWorkbook(t *testing.T, withHeaderRow bool) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"SHARE AWAITING REPORT"},
	}
	if withHeaderRow {
		rows = append(rows,
			[]interface{}{"Settlement Date", "Contract Date", "Security"},
			[]interface{}{"1234567/JOHN TAN*V"},
			[]interface{}{"24/05/10", "", "ABC", "", "", "", 100, "SGD", 1500, 2, "", "", "NO"},
		)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return buf.Bytes()
}

func uploadRequest(t *testing.T, workbook []byte, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "share_awaiting.xlsx")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	part.Write(workbook)
	for key, value := range fields {
		writer.WriteField(key, value)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAnalyzeEndpoint_FullRun(t *testing.T) {
	server := New(DefaultConfig())

	req := uploadRequest(t, buildReportWorkbook(t, true), nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response["source"] != "share_awaiting.xlsx" {
		t.Errorf("Expected source 'share_awaiting.xlsx', got '%v'", response["source"])
	}
	if response["total_transactions"] != float64(1) {
		t.Errorf("Expected 1 transaction, got '%v'", response["total_transactions"])
	}
	if response["force_selling"] != float64(1) {
		t.Errorf("Expected 1 force selling action, got '%v'", response["force_selling"])
	}
	if _, exists := response["transactions"]; !exists {
		t.Error("Expected transactions in full output")
	}
}

func TestAnalyzeEndpoint_SummaryOnly(t *testing.T) {
	server := New(DefaultConfig())

	req := uploadRequest(t, buildReportWorkbook(t, true), map[string]string{"summary_only": "true"})
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if _, exists := response["transactions"]; exists {
		t.Error("Expected no transactions in summary-only output")
	}
	if response["action_required"] != float64(1) {
		t.Errorf("Expected 1 action required, got '%v'", response["action_required"])
	}
}

func TestAnalyzeEndpoint_WorkbookFormat(t *testing.T) {
	server := New(DefaultConfig())

	req := uploadRequest(t, buildReportWorkbook(t, true), map[string]string{"format": "xlsx"})
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if contentType := w.Header().Get("Content-Type"); contentType != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Unexpected content type '%s'", contentType)
	}
	if disposition := w.Header().Get("Content-Disposition"); !strings.Contains(disposition, "Share_Awaiting_Messages_") {
		t.Errorf("Unexpected content disposition '%s'", disposition)
	}

	report, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("Response is not a readable workbook: %v", err)
	}
	defer report.Close()

	rows, err := report.GetRows("Force Selling Messages")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Expected header plus one force selling row, got %d rows", len(rows))
	}
}

func TestAnalyzeEndpoint_MalformedReport(t *testing.T) {
	server := New(DefaultConfig())

	req := uploadRequest(t, buildReportWorkbook(t, false), nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", w.Code)
	}
}

func TestParseAnalyzeOptions_FormValues(t *testing.T) {
	server := New(DefaultConfig())

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("summary_only", "true")
	writer.WriteField("format", "xlsx")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ParseMultipartForm(32 << 20)

	opts := server.parseAnalyzeOptions(req)

	if !opts.SummaryOnly {
		t.Error("Expected SummaryOnly to be true")
	}
	if opts.Format != "xlsx" {
		t.Errorf("Expected format 'xlsx', got '%s'", opts.Format)
	}
}

func TestParseAnalyzeOptions_QueryParams(t *testing.T) {
	server := New(DefaultConfig())

	req := httptest.NewRequest(http.MethodPost, "/analyze?summary_only=true&format=xlsx", nil)

	opts := server.parseAnalyzeOptions(req)

	if !opts.SummaryOnly {
		t.Error("Expected SummaryOnly to be true")
	}
	if opts.Format != "xlsx" {
		t.Errorf("Expected format 'xlsx', got '%s'", opts.Format)
	}
}
