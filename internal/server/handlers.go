package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/textsvg/pkg/buildinfo"
	"github.com/matzehuels/textsvg/pkg/errors"
	textio "github.com/matzehuels/textsvg/pkg/io"
	"github.com/matzehuels/textsvg/pkg/pipeline"
	"github.com/matzehuels/textsvg/pkg/svgtext"
)

// renderRequest is a render request after decoding, before presets apply.
type renderRequest struct {
	Text     string
	Style    svgtext.Options
	Preset   string
	Format   string
	Scale    float64
	Download bool
}

// errorBody is the JSON error payload.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	Field     string      `json:"field,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleRenderQuery(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, req)
}

func (s *Server) handleRenderJSON(w http.ResponseWriter, r *http.Request) {
	body, err := textio.ReadRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(body.Formats) > 1 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "one format per request, got %d", len(body.Formats)))
		return
	}

	q := r.URL.Query()
	req := renderRequest{
		Text:     body.Text,
		Style:    body.Options,
		Preset:   body.Preset,
		Download: isTrue(q.Get("download")),
	}
	if len(body.Formats) == 1 {
		req.Format = body.Formats[0]
	}
	if req.Scale, err = parseFloat(q, "scale"); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, req)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, req renderRequest) {
	if err := errors.ValidateText(req.Text, s.cfg.MaxTextLength); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}

	style := req.Style
	if req.Preset != "" {
		base, err := s.presets.Get(req.Preset)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		style = svgtext.Merge(base, style)
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Text:    req.Text,
		Style:   style,
		Formats: []string{req.Format},
		Scale:   req.Scale,
		Logger:  s.loggerFromContext(r.Context()),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", textio.ContentType(req.Format))
	h.Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	if req.Download {
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", textio.DownloadName(req.Text, req.Format)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[req.Format])
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.presets)
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	opts, err := s.presets.Get(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, opts)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.loggerFromContext(r.Context()).Warn("encode response", "error", err)
	}
}

// writeError maps err to a status through its code. Errors without a code
// are reported as internal and their message is not exposed.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	status := errors.HTTPStatus(code)
	l := s.loggerFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		l.Error("request failed", "code", code, "error", err)
	} else {
		l.Debug("rejected request", "code", code, "error", err)
	}
	s.writeJSON(w, r, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   msg,
		Field:     errors.FieldOf(err),
		RequestID: RequestIDFromContext(r.Context()),
	}})
}

// parseQuery reads a render request from GET /render query parameters.
func parseQuery(q url.Values) (renderRequest, error) {
	req := renderRequest{
		Text:     q.Get("text"),
		Preset:   q.Get("preset"),
		Format:   q.Get("format"),
		Download: isTrue(q.Get("download")),
		Style: svgtext.Options{
			FontFamily:    q.Get("fontFamily"),
			Fill:          q.Get("fill"),
			Stroke:        q.Get("stroke"),
			TextAlign:     svgtext.Align(q.Get("textAlign")),
			VerticalAlign: svgtext.VerticalAlign(q.Get("verticalAlign")),
		},
	}

	numbers := []struct {
		name string
		dst  *float64
	}{
		{"width", &req.Style.Width},
		{"height", &req.Style.Height},
		{"fontSize", &req.Style.FontSize},
		{"strokeWidth", &req.Style.StrokeWidth},
		{"scale", &req.Scale},
	}
	for _, n := range numbers {
		v, err := parseFloat(q, n.name)
		if err != nil {
			return renderRequest{}, err
		}
		*n.dst = v
	}
	return req, nil
}

// parseFloat returns 0 for a missing parameter.
func parseFloat(q url.Values, name string) (float64, error) {
	s := q.Get(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q is not a finite number", name, s).WithField(name)
	}
	return v, nil
}

func isTrue(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
