package web

import (
	"database/sql"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/azriel91/tears/internal/catalog"
	"github.com/azriel91/tears/internal/config"
	"github.com/azriel91/tears/internal/ops"
)

// Handlers holds dependencies for web request handlers.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// HandleSuggest renders the suggestion page. Trust, mood, and tags come in
// as query parameters so a filled-in form is shareable as a URL.
func (h *Handlers) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	trust := strings.TrimSpace(q.Get("trust"))
	mood := strings.TrimSpace(q.Get("mood"))
	tagsRaw := strings.TrimSpace(q.Get("tags"))

	result, err := ops.Suggest(r.Context(), h.db, ops.SuggestInput{
		Trust: trust,
		Mood:  mood,
		Tags:  splitTags(tagsRaw),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	reference := ops.Moods()

	data := SuggestPageData{
		PageData: PageData{
			Title:   "Suggestions",
			Version: h.renderer.version,
			Nav:     "suggest",
		},
		Trust:   trust,
		Mood:    mood,
		Tags:    tagsRaw,
		Context: result.Context,
		Do:      toItemViews(result.Do),
		Dont:    toItemViews(result.Dont),
		Moods:   reference.Moods,
		Trusts:  reference.Trusts,
	}

	h.renderer.renderPage(w, r, "suggest", data)
}

// HandleMoods renders the mood scale and trust level reference page.
func (h *Handlers) HandleMoods(w http.ResponseWriter, r *http.Request) {
	reference := ops.Moods()

	data := MoodsPageData{
		PageData: PageData{
			Title:   "Mood Scale",
			Version: h.renderer.version,
			Nav:     "moods",
		},
		Moods:  reference.Moods,
		Trusts: reference.Trusts,
	}

	h.renderer.renderPage(w, r, "moods", data)
}

// HandleList renders the catalog list page with optional filters.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := ops.ListInput{
		Polarity: ptrString(q.Get("polarity")),
		Tag:      ptrString(q.Get("tag")),
		Limit:    parseIntParam(q.Get("limit"), ops.DefaultListLimit),
		Offset:   parseIntParam(q.Get("offset"), 0),
	}

	result, err := ops.List(r.Context(), h.db, input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data := ItemsPageData{
		PageData: PageData{
			Title:   "Catalog",
			Version: h.renderer.version,
			Nav:     "items",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
		Polarity:   q.Get("polarity"),
		Tag:        q.Get("tag"),
	}

	h.renderer.renderPage(w, r, "items", data)
}

// HandleSearch renders the search page. Without a query it shows the empty
// search form; with one it runs the search.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))

	data := SearchPageData{
		PageData: PageData{
			Title:   "Search",
			Version: h.renderer.version,
			Nav:     "search",
		},
		Query:    query,
		Polarity: q.Get("polarity"),
		HasQuery: query != "",
	}

	if query != "" {
		result, err := ops.Search(r.Context(), h.db, ops.SearchInput{
			Query:    query,
			Polarity: ptrString(q.Get("polarity")),
			Limit:    parseIntParam(q.Get("limit"), ops.DefaultSearchLimit),
			Offset:   parseIntParam(q.Get("offset"), 0),
		})
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		data.Items = result.Items
		data.Pagination = result.Pagination
	}

	h.renderer.renderPage(w, r, "search", data)
}

// HandleDetail renders a single item with its detail text as HTML.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	result, err := ops.Get(r.Context(), h.db, ops.GetInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	var rendered template.HTML
	if result.Item.Detail != "" {
		rendered = renderMarkdown(result.Item.Detail)
	}

	data := DetailPageData{
		PageData: PageData{
			Title:   result.Item.Text,
			Version: h.renderer.version,
			Nav:     "items",
		},
		Item:         result,
		RenderedHTML: rendered,
	}

	h.renderer.renderPage(w, r, "detail", data)
}

// HandleDelete deletes a custom item. HTMX callers get an HX-Redirect back
// to the catalog; others get JSON.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	result, err := ops.Delete(r.Context(), h.db, ops.DeleteInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/items")
		w.WriteHeader(http.StatusOK)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleReset deletes all items and reseeds the default catalog.
func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	confirm := parseBoolParam(r.FormValue("confirm"))

	result, err := ops.Reset(r.Context(), h.db, ops.ResetInput{Confirm: confirm})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/items")
		w.WriteHeader(http.StatusOK)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// toItemViews converts suggestion items into their template form, rendering
// each detail as markdown up front.
func toItemViews(items []catalog.Item) []SuggestItemView {
	views := make([]SuggestItemView, 0, len(items))
	for _, item := range items {
		v := SuggestItemView{
			ID:       item.ID,
			Text:     item.Text,
			Tags:     item.Tags,
			Priority: item.Priority,
			Builtin:  item.Builtin,
		}
		if item.Detail != "" {
			v.Detail = renderMarkdown(item.Detail)
		}
		views = append(views, v)
	}
	return views
}

// splitTags splits a comma or whitespace separated tag string.
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tags = append(tags, f)
		}
	}
	return tags
}

// parseIntParam parses an integer query parameter, returning a default on
// absence or garbage.
func parseIntParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// parseBoolParam parses a boolean form parameter. Only "true", "1", and
// "on" (checkbox value) count as true.
func parseBoolParam(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "on":
		return true
	}
	return false
}

// ptrString returns a pointer to s, or nil if s is empty.
func ptrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
