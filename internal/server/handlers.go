package server

import (
	"net/http"
	"net/url"

	"github.com/conduit-lang/metamodel/internal/cli/ui"
	"github.com/conduit-lang/metamodel/internal/introspect"
	mmerrors "github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"github.com/go-chi/chi/v5"
)

func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// notFound answers a failed lookup with the engine error code and the
// closest existing names
func notFound(w http.ResponseWriter, err error, name string, candidates []string) {
	resp := errorResponse{
		Error:       err.Error(),
		Suggestions: ui.FindSimilar(name, candidates),
	}
	if me, ok := mmerrors.As(err); ok {
		resp.Code = string(me.Code)
	}
	writeJSON(w, http.StatusNotFound, resp)
}

func names[T interface{ Name() string }](list []T) []string {
	result := make([]string, len(list))
	for i, el := range list {
		result[i] = el.Name()
	}
	return result
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"model":   s.Model().Name(),
		"clients": s.hub.ClientCount(),
	})
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, introspect.DescribeModel(s.Model()))
}

func (s *Server) handleClassifiers(w http.ResponseWriter, r *http.Request) {
	report := introspect.DescribeModel(s.Model())
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		writeJSON(w, http.StatusOK, report.Classifiers)
		return
	}

	list := []introspect.ClassifierSummary{}
	for _, c := range report.Classifiers {
		if c.Kind == kind {
			list = append(list, c)
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleClassifier(w http.ResponseWriter, r *http.Request) {
	m, name := s.Model(), nameParam(r)
	c, err := m.Classifier(name)
	if err != nil {
		notFound(w, err, name, names(m.Classifiers()))
		return
	}
	writeJSON(w, http.StatusOK, introspect.DescribeClassifier(c))
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	m, name := s.Model(), nameParam(r)
	path, err := introspect.Path(m, name)
	if err != nil {
		notFound(w, err, name, names(m.Classifiers()))
		return
	}
	writeJSON(w, http.StatusOK, path)
}

func (s *Server) handleObjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, introspect.DescribeModel(s.Model()).Objects)
}

func (s *Server) handleObject(w http.ResponseWriter, r *http.Request) {
	m, name := s.Model(), nameParam(r)
	o, err := m.Object(name)
	if err != nil {
		notFound(w, err, name, names(m.Objects()))
		return
	}
	writeJSON(w, http.StatusOK, introspect.DescribeObject(o))
}

func (s *Server) handleAssociations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, introspect.DescribeModel(s.Model()).Associations)
}

func (s *Server) handleAssociation(w http.ResponseWriter, r *http.Request) {
	m, name := s.Model(), nameParam(r)
	a, err := m.Association(name)
	if err != nil {
		notFound(w, err, name, names(m.Associations()))
		return
	}
	writeJSON(w, http.StatusOK, introspect.DescribeAssociation(a))
}

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	m, name := s.Model(), nameParam(r)
	report, err := introspect.Find(m, name)
	if err != nil {
		notFound(w, err, name, introspect.Candidates(m))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.config.File == "" {
		writeError(w, http.StatusConflict, "server has no definition file to reload", nil)
		return
	}
	if err := s.Reload(r.Context()); err != nil {
		resp := errorResponse{Error: err.Error()}
		if me, ok := mmerrors.As(err); ok {
			resp.Code = string(me.Code)
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	m := s.Model()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "reloaded",
		"model":  m.Name(),
	})
}
