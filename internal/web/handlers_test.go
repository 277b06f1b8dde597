package web

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/azriel91/tears/internal/config"
	"github.com/azriel91/tears/internal/db"
	"github.com/azriel91/tears/internal/ops"
)

func intPtr(n int) *int { return &n }

func setupTest(t *testing.T) *Handlers {
	t.Helper()
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()

	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		t.Fatalf("template sub-FS: %v", err)
	}
	renderer := NewRenderer(templateSub, "test")

	return &Handlers{
		db:       database,
		cfg:      cfg,
		renderer: renderer,
	}
}

// seedItem adds a custom item and returns its ID.
func seedItem(t *testing.T, h *Handlers, id, polarity, text string, tags []string) string {
	t.Helper()
	out, err := ops.Add(context.Background(), h.db, h.cfg, ops.AddInput{
		ID:       id,
		Polarity: polarity,
		Text:     text,
		Tags:     tags,
		Priority: intPtr(5),
	})
	if err != nil {
		t.Fatalf("seed item %q: %v", id, err)
	}
	return out.Item.ID
}

// --- HandleSuggest ---

func TestHandleSuggest_Default(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/suggest", nil)
	rec := httptest.NewRecorder()
	h.HandleSuggest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "What should I do?") {
		t.Error("expected suggest form heading in response")
	}
	if !strings.Contains(body, "Give them room to settle") {
		t.Error("expected a universal suggestion in response")
	}
}

func TestHandleSuggest_WithContext(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/suggest?trust=absent&mood=cautious", nil)
	rec := httptest.NewRecorder()
	h.HandleSuggest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "trust-absent") {
		t.Error("expected trust-absent context tag in response")
	}
	if !strings.Contains(body, "Find someone they already trust") {
		t.Error("expected trust-absent suggestion in response")
	}
}

func TestHandleSuggest_CustomTags(t *testing.T) {
	h := setupTest(t)
	seedItem(t, h, "bring-tea", "do", "Bring them tea", []string{"evening"})

	req := httptest.NewRequest("GET", "/suggest?tags=evening", nil)
	rec := httptest.NewRecorder()
	h.HandleSuggest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Bring them tea") {
		t.Error("expected tagged custom item in response")
	}
}

func TestHandleSuggest_InvalidMood(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/suggest?mood=ecstatic", nil)
	rec := httptest.NewRecorder()
	h.HandleSuggest(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleSuggest_HtmxReturnsContentOnly(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/suggest", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleSuggest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Error("htmx response should not contain the layout shell")
	}
	if !strings.Contains(body, "What should I do?") {
		t.Error("htmx response should contain the page content")
	}
}

// --- HandleMoods ---

func TestHandleMoods(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/moods", nil)
	rec := httptest.NewRecorder()
	h.HandleMoods(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"Anguished", "Closed", "Cautious", "Unsettled", "Calm", "Hopeful"} {
		if !strings.Contains(body, name) {
			t.Errorf("expected mood %q in response", name)
		}
	}
	if !strings.Contains(body, "trust-present") {
		t.Error("expected trust levels in response")
	}
}

// --- HandleList ---

func TestHandleList_Default(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/items", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Catalog") {
		t.Error("expected page title 'Catalog' in response")
	}
	if !strings.Contains(body, "Be fully present with them") {
		t.Error("expected a seeded item in response")
	}
}

func TestHandleList_PolarityFilter(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/items?polarity=do", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Be fully present with them") {
		t.Error("expected a do item in filtered results")
	}
	if strings.Contains(body, "dont-crowd-them") {
		t.Error("did not expect a dont item in filtered results")
	}
}

func TestHandleList_InvalidPolarity(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/items?polarity=maybe", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleList_ErrorAsJSON(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/items?polarity=maybe", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if body["error"]["code"] != "INVALID_REQUEST" {
		t.Errorf("error code = %v, want INVALID_REQUEST", body["error"]["code"])
	}
}

// --- HandleSearch ---

func TestHandleSearch_NoQuery(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/items/search", nil)
	rec := httptest.NewRecorder()
	h.HandleSearch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "No items match") {
		t.Error("empty query should show the bare form, not an empty result")
	}
}

func TestHandleSearch_WithQuery(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/items/search?q=gift", nil)
	rec := httptest.NewRecorder()
	h.HandleSearch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Leave a gift") {
		t.Error("expected matching item in search results")
	}
}

func TestHandleSearch_NoResults(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/items/search?q=zzzzzz", nil)
	rec := httptest.NewRecorder()
	h.HandleSearch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No items match") {
		t.Error("expected empty state message")
	}
}

// --- HandleDetail ---

func TestHandleDetail(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/items/leave-a-gift", nil)
	req.SetPathValue("id", "leave-a-gift")
	rec := httptest.NewRecorder()
	h.HandleDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Leave a gift") {
		t.Error("expected item text in response")
	}
	if !strings.Contains(body, "builtin") {
		t.Error("expected builtin marker in response")
	}
}

func TestHandleDetail_RendersMarkdown(t *testing.T) {
	h := setupTest(t)
	out, err := ops.Add(context.Background(), h.db, h.cfg, ops.AddInput{
		Polarity: "do",
		Text:     "Read together",
		Detail:   "Pick something **light**.",
	})
	if err != nil {
		t.Fatalf("ops.Add: %v", err)
	}

	req := httptest.NewRequest("GET", "/items/"+out.Item.ID, nil)
	req.SetPathValue("id", out.Item.ID)
	rec := httptest.NewRecorder()
	h.HandleDetail(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<strong>light</strong>") {
		t.Error("expected markdown rendered to HTML")
	}
}

func TestHandleDetail_NotFound(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("GET", "/items/nope", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.HandleDetail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

// --- HandleDelete ---

func TestHandleDelete_Custom(t *testing.T) {
	h := setupTest(t)
	id := seedItem(t, h, "temp-item", "do", "Temporary", nil)

	req := httptest.NewRequest("DELETE", "/items/"+id, nil)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out ops.DeleteOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("expected JSON body: %v", err)
	}
	if !out.Deleted {
		t.Error("expected deleted = true")
	}
}

func TestHandleDelete_HtmxRedirects(t *testing.T) {
	h := setupTest(t)
	id := seedItem(t, h, "temp-htmx", "do", "Temporary", nil)

	req := httptest.NewRequest("DELETE", "/items/"+id, nil)
	req.SetPathValue("id", id)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("HX-Redirect") != "/items" {
		t.Errorf("HX-Redirect = %q, want /items", rec.Header().Get("HX-Redirect"))
	}
}

func TestHandleDelete_BuiltinRefused(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("DELETE", "/items/sit-with-them", nil)
	req.SetPathValue("id", "sit-with-them")
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// --- HandleReset ---

func TestHandleReset_Confirmed(t *testing.T) {
	h := setupTest(t)
	seedItem(t, h, "goes-away", "do", "Ephemeral", nil)

	req := httptest.NewRequest("POST", "/items/reset", strings.NewReader("confirm=true"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleReset(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out ops.ResetOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("expected JSON body: %v", err)
	}
	if out.Seeded == 0 {
		t.Error("expected reseeded item count")
	}
}

func TestHandleReset_Unconfirmed(t *testing.T) {
	h := setupTest(t)

	req := httptest.NewRequest("POST", "/items/reset", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HandleReset(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// --- Server wiring ---

func TestServerRoutesAndHeaders(t *testing.T) {
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	srv := NewServer(database, config.DefaultConfig(), "test", "127.0.0.1", 0)

	tests := []struct {
		path string
		want int
	}{
		{"/", http.StatusFound},
		{"/suggest", http.StatusOK},
		{"/items", http.StatusOK},
		{"/items/search", http.StatusOK},
		{"/moods", http.StatusOK},
		{"/items/sit-with-them", http.StatusOK},
		{"/items/no-such-item", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", tt.path, nil)
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, req)

		if rec.Code != tt.want {
			t.Errorf("GET %s: status = %d, want %d", tt.path, rec.Code, tt.want)
		}
		if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
			t.Errorf("GET %s: missing nosniff header", tt.path)
		}
		if rec.Header().Get("X-Frame-Options") != "DENY" {
			t.Errorf("GET %s: missing frame options header", tt.path)
		}
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"", 20, 20},
		{"5", 20, 5},
		{"junk", 20, 20},
		{"-1", 20, -1},
	}
	for _, tt := range tests {
		if got := parseIntParam(tt.in, tt.def); got != tt.want {
			t.Errorf("parseIntParam(%q, %d) = %d, want %d", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"one,two", 2},
		{"one, two  three", 3},
	}
	for _, tt := range tests {
		if got := splitTags(tt.in); len(got) != tt.want {
			t.Errorf("splitTags(%q) = %v, want %d tags", tt.in, got, tt.want)
		}
	}
}
