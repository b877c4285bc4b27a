package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vmunix/vidio/internal/changelog"
	"github.com/vmunix/vidio/internal/metrics"
)

const defaultChangelogLimit = 50

// writeChangelogError maps store errors to HTTP responses.
func writeChangelogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, changelog.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "Changelog entry not found")
	case errors.Is(err, changelog.ErrDuplicate):
		writeError(w, http.StatusConflict, codeConflict, "An entry with this version already exists")
	case errors.Is(err, changelog.ErrInvalid):
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, err.Error())
	}
}

func (s *Server) listChangelog(w http.ResponseWriter, r *http.Request) {
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		matches, err := s.deps.Changelog.Search(q, queryInt(r, "limit", 0))
		if err != nil {
			writeChangelogError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SearchChangelogResponse{Query: q, Items: matches})
		return
	}

	filter := changelog.Filter{
		Limit:  queryInt(r, "limit", defaultChangelogLimit),
		Offset: queryInt(r, "offset", 0),
	}
	items, total, err := s.deps.Changelog.List(filter)
	if err != nil {
		writeChangelogError(w, err)
		return
	}
	if items == nil {
		items = []*changelog.Entry{}
	}

	writeJSON(w, http.StatusOK, ListChangelogResponse{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

func (s *Server) getChangelog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	e, err := s.deps.Changelog.Get(id)
	if err != nil {
		writeChangelogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) addChangelog(w http.ResponseWriter, r *http.Request) {
	var req ChangelogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	e := &changelog.Entry{Version: req.Version, Title: req.Title, Body: req.Body}
	if req.PublishedAt != nil {
		e.PublishedAt = *req.PublishedAt
	}
	if err := s.deps.Changelog.Add(e); err != nil {
		writeChangelogError(w, err)
		return
	}

	metrics.ChangelogMutations.WithLabelValues("create").Inc()
	s.log.Info("changelog entry added", "id", e.ID, "version", e.Version)
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) updateChangelog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	var req UpdateChangelogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	e, err := s.deps.Changelog.Get(id)
	if err != nil {
		writeChangelogError(w, err)
		return
	}

	// Apply updates
	if req.Version != nil {
		e.Version = *req.Version
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Body != nil {
		e.Body = *req.Body
	}
	if req.PublishedAt != nil {
		e.PublishedAt = *req.PublishedAt
	}

	if err := s.deps.Changelog.Update(e); err != nil {
		writeChangelogError(w, err)
		return
	}

	metrics.ChangelogMutations.WithLabelValues("update").Inc()
	s.log.Info("changelog entry updated", "id", e.ID, "version", e.Version)
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) deleteChangelog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	if err := s.deps.Changelog.Delete(id); err != nil {
		writeChangelogError(w, err)
		return
	}

	metrics.ChangelogMutations.WithLabelValues("delete").Inc()
	s.log.Info("changelog entry deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) importChangelog(w http.ResponseWriter, r *http.Request) {
	var req ImportChangelogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entries := make([]*changelog.Entry, 0, len(req.Entries))
	for _, in := range req.Entries {
		e := &changelog.Entry{Version: in.Version, Title: in.Title, Body: in.Body}
		if in.PublishedAt != nil {
			e.PublishedAt = *in.PublishedAt
		}
		entries = append(entries, e)
	}

	if err := s.deps.Changelog.ReplaceAll(entries); err != nil {
		writeChangelogError(w, err)
		return
	}

	metrics.ChangelogMutations.WithLabelValues("import").Inc()
	s.log.Info("changelog imported", "entries", len(entries))
	writeJSON(w, http.StatusOK, ImportChangelogResponse{Imported: len(entries)})
}
