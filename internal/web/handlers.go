package web

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"hourzero/internal/config"
	"hourzero/internal/engine"
	"hourzero/internal/errors"
	"hourzero/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	renderer *Renderer
}

// HandleIndex handles GET /, the generate form. When the form fields are
// present in the query string the schedule is computed and shown inline;
// validation errors render back into the form instead of an error page.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	data := IndexPageData{
		PageData: PageData{
			Title:   "Generate",
			Version: h.renderer.version,
			Nav:     "generate",
		},
		Start:      q.Get("start"),
		End:        q.Get("end"),
		Days:       q.Get("days"),
		FinishMode: q.Get("finish_mode"),
		Rounding:   q.Get("rounding"),
		Curve:      q.Get("curve"),
		Curves:     curveNames(),
		Roundings:  roundingNames(),
		Modes:      modeNames(),
	}

	if data.Start == "" && data.End == "" && data.Days == "" {
		h.renderer.renderPage(w, r, "index", data)
		return
	}

	days, err := strconv.Atoi(data.Days)
	if err != nil {
		data.Error = fmt.Sprintf("days must be an integer, got %q", data.Days)
		h.renderer.renderPageStatus(w, r, http.StatusBadRequest, "index", data)
		return
	}

	result, err := ops.Generate(h.db, h.cfg, ops.GenerateInput{
		Start:      data.Start,
		End:        data.End,
		Days:       days,
		FinishMode: data.FinishMode,
		Rounding:   data.Rounding,
		Curve:      data.Curve,
	})
	if err != nil {
		status := http.StatusBadRequest
		if sErr, ok := err.(*errors.ScheduleError); ok {
			data.Error = sErr.Message
			status = sErr.Status
		} else {
			data.Error = err.Error()
		}
		h.renderer.renderPageStatus(w, r, status, "index", data)
		return
	}

	data.Result = result
	h.renderer.renderPage(w, r, "index", data)
}

// HandleSave handles POST /runs: generate and save a run from the form.
func (h *Handlers) HandleSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	days, err := strconv.Atoi(r.FormValue("days"))
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("days must be an integer"))
		return
	}

	result, err := ops.Generate(h.db, h.cfg, ops.GenerateInput{
		Start:      r.FormValue("start"),
		End:        r.FormValue("end"),
		Days:       days,
		FinishMode: r.FormValue("finish_mode"),
		Rounding:   r.FormValue("rounding"),
		Curve:      r.FormValue("curve"),
		Save:       true,
		Name:       ptrString(r.FormValue("name")),
		Note:       ptrString(r.FormValue("note")),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusCreated, result)
		return
	}

	http.Redirect(w, r, "/runs/"+*result.RunID, http.StatusFound)
}

// HandleRuns handles GET /runs, the saved-run list.
func (h *Handlers) HandleRuns(w http.ResponseWriter, r *http.Request) {
	result, err := ops.List(h.db, ops.ListInput{
		Limit:  parseIntParam(r, "limit", 20),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "runs", RunsPageData{
		PageData: PageData{
			Title:   "Saved runs",
			Version: h.renderer.version,
			Nav:     "runs",
		},
		Runs:       result.Runs,
		Pagination: result.Pagination,
	})
}

// HandleDetail handles GET /runs/{id}, a single run with its schedule.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("run ID is required"))
		return
	}

	run, err := ops.Fetch(h.db, id)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data := DetailPageData{
		PageData: PageData{
			Title:   displayName(run.Run.Name, run.Run.ID),
			Version: h.renderer.version,
			Nav:     "runs",
		},
		Run:         run,
		DisplayName: displayName(run.Run.Name, run.Run.ID),
	}
	if run.Run.Note != nil && *run.Run.Note != "" {
		data.NoteHTML = renderMarkdown(*run.Run.Note)
	}

	h.renderer.renderPage(w, r, "detail", data)
}

// HandleCSV handles GET /runs/{id}/csv, the schedule download.
func (h *Handlers) HandleCSV(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("run ID is required"))
		return
	}

	run, err := ops.Fetch(h.db, id)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	out := &ops.GenerateOutput{
		Input:   run.Run.Input,
		Rows:    run.Rows,
		Summary: run.Run.Summary,
	}

	filename := displayName(run.Run.Name, run.Run.ID) + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	// Headers are already written; a failure here can only be logged.
	if err := ops.WriteCSV(w, out); err != nil {
		log.Printf("csv write failed: %v", err)
	}
}

// HandleDelete handles DELETE /runs/{id}.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("run ID is required"))
		return
	}

	result, err := ops.Delete(h.db, id)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, map[string]any{
			"deleted": result.Deleted,
			"id":      result.ID,
		})
		return
	}

	http.Redirect(w, r, "/runs", http.StatusFound)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// ptrString returns a pointer to s if non-empty, nil otherwise.
func ptrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// displayName returns the run name if present, or a truncated ID.
func displayName(name *string, id string) string {
	if name != nil && *name != "" {
		return *name
	}
	if len(id) > 10 {
		return id[:10] + "..."
	}
	return id
}

func curveNames() []string {
	names := make([]string, len(engine.Curves))
	for i, c := range engine.Curves {
		names[i] = string(c)
	}
	return names
}

func roundingNames() []string {
	names := make([]string, len(engine.Roundings))
	for i, r := range engine.Roundings {
		names[i] = string(r)
	}
	return names
}

func modeNames() []string {
	names := make([]string, len(engine.FinishModes))
	for i, m := range engine.FinishModes {
		names[i] = string(m)
	}
	return names
}
