package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mofa-org/devpage/internal/pipeline"
)

const (
	contentTypeHTML = "text/html; charset=UTF-8"
	contentTypeSVG  = "image/svg+xml"

	cacheProfile = "public, max-age=300"
	cacheDefault = "public, max-age=60"
	cacheIcon    = "public, max-age=86400"
	cacheNone    = "no-store"
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleFavicon(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.settings.LogoURL, http.StatusMovedPermanently)
}

// handleIcon proxies an icon. The placeholder is served with 200 when the
// icon cannot be fetched so link cards never show a broken image.
func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	body, _ := s.icons.SVG(r.Context(), chi.URLParam(r, "name"))

	w.Header().Set("Content-Type", contentTypeSVG)
	w.Header().Set("Cache-Control", cacheIcon)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// handlePage runs the resolution pipeline for the request host.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.errorPage(w, r, &PanicError{Value: rec})
		}
	}()

	result, err := s.resolver.Resolve(r.Context(), r.Host)
	if err != nil {
		switch status := HTTPStatus(err); status {
		case http.StatusNotFound, http.StatusBadRequest:
			s.logger.Debug("page rejected", zap.String("host", r.Host), zap.Int("status", status), zap.Error(err))
			http.Error(w, http.StatusText(status), status)
		default:
			s.errorPage(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	switch result.Kind {
	case pipeline.KindProfile:
		w.Header().Set("Cache-Control", cacheProfile)
		err = s.renderer.Profile(w, result.Model)
	default:
		w.Header().Set("Cache-Control", cacheDefault)
		err = s.renderer.Default(w, result.Model)
	}
	if err != nil {
		s.errorPage(w, r, err)
	}
}

// errorPage logs err under a fresh incident id and renders the generic
// failure page. The error text is never shown to the client.
func (s *Server) errorPage(w http.ResponseWriter, r *http.Request, err error) {
	incident := s.incidentID()
	s.logger.Error("page failed",
		zap.String("incident", incident),
		zap.String("host", r.Host),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", contentTypeHTML)
	w.Header().Set("Cache-Control", cacheNone)
	w.WriteHeader(http.StatusInternalServerError)
	if renderErr := s.renderer.Error(w, incident); renderErr != nil {
		s.logger.Error("error page failed", zap.String("incident", incident), zap.Error(renderErr))
	}
}
