package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kakasaku_backend/internal/domain"
	"kakasaku_backend/internal/i18nfmt"
	"kakasaku_backend/internal/realtime"
)

type programRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Target      int64  `json:"target" validate:"required,gt=0"`
}

func (a *App) ProgramsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.Programs.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	rows := make([]map[string]any, 0, len(items))
	for _, p := range items {
		rows = append(rows, programToRow(p))
	}
	a.json(w, http.StatusOK, map[string]any{"items": rows})
}

func (a *App) ProgramsGet(w http.ResponseWriter, r *http.Request) {
	program, err := a.Programs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, programToRow(*program))
}

// ProgramProgress serves the live tracker snapshot for one program, lazily
// starting the tracker on first request.
func (a *App) ProgramProgress(w http.ResponseWriter, r *http.Request) {
	snap, err := a.Stats.Program(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, snapshotDTO(snap))
}

func (a *App) ProgramsCreate(w http.ResponseWriter, r *http.Request) {
	m := a.msgs(r)

	req, ok := a.decodeProgram(w, r)
	if !ok {
		return
	}

	program := &domain.Program{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.ProgramCategory(req.Category),
		Target:      req.Target,
	}
	if err := a.Programs.Create(r.Context(), program); err != nil {
		a.fail(w, r, err)
		return
	}

	payload, _ := json.Marshal(programToRow(*program))
	a.publish(r.Context(), realtime.Change{
		Collection: realtime.CollectionPrograms,
		Op:         realtime.OpInsert,
		RecordID:   program.ID,
		NewRow:     payload,
	})

	a.json(w, http.StatusCreated, map[string]any{
		"program": programToRow(*program),
		"message": m.ProgramCreated,
	})
}

func (a *App) ProgramsUpdate(w http.ResponseWriter, r *http.Request) {
	m := a.msgs(r)
	id := chi.URLParam(r, "id")

	req, ok := a.decodeProgram(w, r)
	if !ok {
		return
	}

	program := &domain.Program{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.ProgramCategory(req.Category),
		Target:      req.Target,
	}
	if err := a.Programs.Update(r.Context(), program); err != nil {
		a.fail(w, r, err)
		return
	}

	// NewRow carries the full row so program trackers can patch their
	// snapshot without a re-read.
	payload, _ := json.Marshal(programToRow(*program))
	a.publish(r.Context(), realtime.Change{
		Collection: realtime.CollectionPrograms,
		Op:         realtime.OpUpdate,
		RecordID:   program.ID,
		NewRow:     payload,
	})

	a.json(w, http.StatusOK, map[string]any{
		"program": programToRow(*program),
		"message": m.ProgramUpdated,
	})
}

// ProgramsDelete removes one program by id. The confirm query flag is
// required so a bare DELETE fired by mistake does nothing.
func (a *App) ProgramsDelete(w http.ResponseWriter, r *http.Request) {
	m := a.msgs(r)
	id := chi.URLParam(r, "id")

	if r.URL.Query().Get("confirm") != "true" {
		a.error(w, http.StatusBadRequest, "confirm_required", m.FormIncomplete)
		return
	}

	if err := a.Programs.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err)
		return
	}

	a.Stats.Forget(id)
	a.publish(r.Context(), realtime.Change{
		Collection: realtime.CollectionPrograms,
		Op:         realtime.OpDelete,
		RecordID:   id,
	})

	// Echo the id so clients drop exactly one row from their local list.
	a.json(w, http.StatusOK, map[string]any{"id": id, "message": m.ProgramDeleted})
}

func (a *App) decodeProgram(w http.ResponseWriter, r *http.Request) (programRequest, bool) {
	m := a.msgs(r)

	var req programRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return req, false
	}
	if err := a.Validate.Struct(req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return req, false
	}
	if !domain.ProgramCategory(req.Category).Valid() {
		a.error(w, http.StatusBadRequest, "invalid_payload", m.FormIncomplete)
		return req, false
	}
	return req, true
}

func programToRow(p domain.Program) map[string]any {
	return map[string]any{
		"id":               p.ID,
		"title":            p.Title,
		"description":      p.Description,
		"category":         string(p.Category),
		"target":           p.Target,
		"target_formatted": i18nfmt.Rupiah(p.Target),
		"raised":           p.Raised,
		"raised_formatted": i18nfmt.Rupiah(p.Raised),
		"donors":           p.Donors,
		"progress":         p.Progress(),
		"created_at":       p.CreatedAt,
	}
}
