package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/daschober/planesketch/pkg/errors"
	"github.com/daschober/planesketch/pkg/observability"
	"github.com/daschober/planesketch/pkg/render/depgraph"
	"github.com/daschober/planesketch/pkg/scene"
	"github.com/daschober/planesketch/pkg/scenefile"
	"github.com/daschober/planesketch/pkg/session"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sessionResponse is returned on session creation.
type sessionResponse struct {
	ID        string         `json:"id"`
	ExpiresAt time.Time      `json:"expires_at"`
	Scene     scenefile.File `json:"scene"`
}

// handleCreateSession opens a fresh editing session. An optional JSON
// body seeds the session with an initial scene.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sc := scene.New()

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if len(body) > 0 {
		sc, err = scenefile.UnmarshalScene(body)
		if err != nil {
			s.writeError(w, err)
			return
		}
	}

	sess := session.New(sc, s.cfg.SessionTTL)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store session"))
		return
	}

	s.writeJSON(w, http.StatusCreated, sessionResponse{
		ID:        sess.ID,
		ExpiresAt: sess.ExpiresAt,
		Scene:     scenefile.FromScene(sess.Scene),
	})
}

// loadSession fetches the addressed session or writes a 404.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "load session"))
		return nil, false
	}
	if sess == nil {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id))
		return nil, false
	}
	return sess, true
}

// saveScene stores the updated scene back into the session and responds
// with the full relaxed scene.
func (s *Server) saveScene(w http.ResponseWriter, r *http.Request, sess *session.Session, sc scene.Scene, status int) {
	sess.Scene = sc
	sess.Touch(s.cfg.SessionTTL)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store session"))
		return
	}
	s.writeJSON(w, status, scenefile.FromScene(sc))
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, scenefile.FromScene(sess.Scene))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "delete session"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCreateEntity inserts a single entity record into the session's
// scene and returns the relaxed result.
func (s *Server) handleCreateEntity(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var rec scenefile.Entity
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode entity"))
		return
	}
	if rec.Name != "" {
		if err := errors.ValidateEntityName(rec.Name); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if rec.Color != "" {
		if err := errors.ValidateColor(rec.Color); err != nil {
			s.writeError(w, err)
			return
		}
	}

	sc, err := scenefile.ToScene(scenefile.File{Entities: append(
		scenefile.FromScene(sess.Scene).Entities, rec,
	)})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.saveScene(w, r, sess, sc, http.StatusCreated)
}

// handlePatchEntity applies a partial update. Numeric fields accept
// expression strings; an invalid expression rejects the patch and the
// entity keeps its prior values.
func (s *Server) handlePatchEntity(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode patch"))
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		s.writeError(w, err)
		return
	}

	entityID := chi.URLParam(r, "entityID")
	start := time.Now()
	observability.Resolver().OnResolveStart(r.Context(), sess.Scene.Len(), scene.DefaultPasses)
	sc, err := sess.Scene.Update(entityID, patch)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeEntityNotFound, err, "entity %s", entityID))
		return
	}
	observability.Resolver().OnResolveComplete(r.Context(), sc.Len(), time.Since(start))

	s.saveScene(w, r, sess, sc, http.StatusOK)
}

// handleDeleteEntity removes an entity and everything transitively
// depending on it.
func (s *Server) handleDeleteEntity(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	entityID := chi.URLParam(r, "entityID")
	sc := sess.Scene.Delete(entityID)
	observability.Resolver().OnCascadeDelete(r.Context(), entityID, sess.Scene.Len()-sc.Len())
	s.saveScene(w, r, sess, sc, http.StatusOK)
}

// handleGraphSVG renders the session's dependency graph.
func (s *Server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	detailed := r.URL.Query().Get("detailed") == "true"
	dot := depgraph.ToDOT(sess.Scene, depgraph.Options{Detailed: detailed})
	svg, err := depgraph.RenderSVG(r.Context(), dot)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render graph"))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}
