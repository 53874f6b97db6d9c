package server

import (
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/techradar/pkg/buildinfo"
	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
	"github.com/matzehuels/techradar/pkg/errors"
	radario "github.com/matzehuels/techradar/pkg/io"
	"github.com/matzehuels/techradar/pkg/pipeline"
	"github.com/matzehuels/techradar/pkg/store"
)

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Current(),
	})
}

// handleIndex renders the HTML radar of ?dataset=, falling back to the
// configured default and then to the first stored dataset.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	summaries, err := s.cfg.Store.List(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	names := make([]string, len(summaries))
	for i, sum := range summaries {
		names[i] = sum.Name
	}

	name := r.URL.Query().Get("dataset")
	if name == "" {
		name = s.cfg.DefaultDataset
	}
	if name == "" && len(names) > 0 {
		name = names[0]
	}
	if name == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeDatasetNotFound, "no datasets stored"))
		return
	}

	cfg, err := s.loadDataset(r, name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{pipeline.FormatHTML}
	opts.Datasets = names
	opts.Dataset = name
	opts.BaseURL = s.cfg.BaseURL

	res, err := s.cfg.Runner.ExecuteConfig(ctx, cfg, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeBytes(w, pipeline.ContentTypes[pipeline.FormatHTML], res.Artifacts[pipeline.FormatHTML])
}

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.cfg.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"datasets": summaries})
}

func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	ds, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// handlePutDataset stores the request body. The body is native JSON unless
// ?format= names another import format (yaml, toml, zalando).
func (s *Server) handlePutDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateDatasetName(name); err != nil {
		s.writeError(w, r, err)
		return
	}

	var format radario.Format
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := radario.ParseFormat(f)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = parsed
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	res, err := radario.ReadBytes(data, format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ds, err := s.cfg.Store.Put(r.Context(), name, res.Config)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("stored dataset", "name", name, "entries", len(ds.Config.Entries), "skipped", res.Skipped)
	writeJSON(w, http.StatusOK, ds)
}

func (s *Server) handleDeleteDataset(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.loadDataset(r, chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.cfg.Runner.GenerateLayout(r.Context(), cfg, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := layout.Marshal(l)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode layout"))
		return
	}
	writeBytes(w, "application/json", data)
}

func (s *Server) handleRadar(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	name := chi.URLParam(r, "name")
	cfg, err := s.loadDataset(r, name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	if format == pipeline.FormatHTML {
		if summaries, err := s.cfg.Store.List(r.Context()); err == nil {
			for _, sum := range summaries {
				opts.Datasets = append(opts.Datasets, sum.Name)
			}
			opts.Dataset = name
			opts.BaseURL = s.cfg.BaseURL
		}
	}

	res, err := s.cfg.Runner.ExecuteConfig(r.Context(), cfg, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeBytes(w, pipeline.ContentTypes[format], res.Artifacts[format])
}

func (s *Server) loadDataset(r *http.Request, name string) (radar.Config, error) {
	ds, err := s.cfg.Store.Get(r.Context(), name)
	if err != nil {
		return radar.Config{}, err
	}
	return ds.Config, nil
}

// requestOptions overlays query parameters on the server defaults:
// width, height, style, radial, extra_rings, key, placement, legend,
// popups and scale.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.cfg.Defaults
	opts.Formats = slices.Clone(opts.Formats)
	opts.Datasets = nil
	q := r.URL.Query()

	floatParam := func(key string, dst *float64) error {
		v := q.Get(key)
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be a number", key)
		}
		if err := errors.ValidateDimension(key, f); err != nil {
			return err
		}
		*dst = f
		return nil
	}
	boolParam := func(key string, dst *bool) error {
		v := q.Get(key)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be true or false", key)
		}
		*dst = b
		return nil
	}

	for _, p := range []struct {
		key string
		dst *float64
	}{{"width", &opts.Width}, {"height", &opts.Height}, {"scale", &opts.Scale}} {
		if err := floatParam(p.key, p.dst); err != nil {
			return opts, err
		}
	}
	for _, p := range []struct {
		key string
		dst *bool
	}{{"legend", &opts.Legend}, {"popups", &opts.Popups}} {
		if err := boolParam(p.key, p.dst); err != nil {
			return opts, err
		}
	}
	if v := q.Get("extra_rings"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "extra_rings must be an integer")
		}
		opts.ExtraRings = n
	}
	for key, dst := range map[string]*string{
		"radial":    &opts.Radial,
		"style":     &opts.Style,
		"key":       &opts.Key,
		"placement": &opts.Placement,
	} {
		if v := q.Get(key); v != "" {
			*dst = v
		}
	}
	return opts, nil
}
