package api

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ladybug-tools/dragonfly-display/pkg/blob"
	"github.com/ladybug-tools/dragonfly-display/pkg/dragonfly"
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/output"
	"github.com/ladybug-tools/dragonfly-display/pkg/pipeline"
)

func (s *Server) handleModelToVis(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, pipeline.KindModel)
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, pipeline.KindComparison)
}

func (s *Server) handleEnvelope(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, pipeline.KindEnvelope)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, kind string) {
	q := r.URL.Query()
	format := q.Get("output_format")
	if format == "" {
		format = s.DefaultFormat
	}
	if format == "" {
		format = string(output.FormatVSF)
	}
	if _, err := output.ParseFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}

	opts, err := s.options(q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	req := pipeline.Request{Kind: kind, Options: opts, Refresh: queryBool(q, "refresh", false)}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload())
	if kind == pipeline.KindComparison {
		req.Model, req.Incoming, err = s.readPair(r)
	} else {
		req.Model, err = readModel(r.Body)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.Runner.Execute(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := s.Runner.Output(r.Context(), res, strings.ToLower(format), func() ([]byte, error) {
		return s.Formatter.Render(res.VisSet, format)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", blob.ContentType(format))
	w.Header().Set("X-Cache", cacheHeader(res.CacheHit))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger().Debug("write response", "error", err)
	}
}

func (s *Server) maxUpload() int64 {
	if s.MaxUpload > 0 {
		return s.MaxUpload
	}
	return DefaultMaxUpload
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func readModel(r io.Reader) (*dragonfly.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body holds no model")
	}
	return dragonfly.Parse(data)
}

func (s *Server) readPair(r *http.Request) (base, incoming *dragonfly.Model, err error) {
	if err := r.ParseMultipartForm(s.maxUpload()); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "comparison needs a multipart form with base and incoming")
	}
	part := func(name string) (*dragonfly.Model, error) {
		f, _, err := r.FormFile(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "missing form file %q", name)
		}
		defer f.Close()
		return readModel(f)
	}
	if base, err = part("base"); err != nil {
		return nil, nil, err
	}
	if incoming, err = part("incoming"); err != nil {
		return nil, nil, err
	}
	return base, incoming, nil
}

// options applies query parameters over the server defaults.
func (s *Server) options(q url.Values) (pipeline.Options, error) {
	o := s.Defaults
	o.Logger = s.logger()

	o.UseMultiplier = queryBool(q, "multiplier", o.UseMultiplier)
	o.SolveCeilingAdjacencies = queryBool(q, "ceil_adjacency", o.SolveCeilingAdjacencies)
	o.ExcludePlenums = queryBool(q, "exclude_plenums", o.ExcludePlenums)
	o.AddPlenum = queryBool(q, "add_plenum", o.AddPlenum)
	o.ResetCoordinates = queryBool(q, "reset_coordinates", o.ResetCoordinates)
	o.MergeMethod = queryString(q, "merge_method", o.MergeMethod)

	o.ColorBy = queryString(q, "color_by", o.ColorBy)
	o.IncludeWireframe = queryBool(q, "wireframe", o.IncludeWireframe)
	o.UseMesh = queryBool(q, "mesh", o.UseMesh)
	o.HideColorBy = queryBool(q, "hide_color_by", o.HideColorBy)
	o.GridDisplayMode = queryString(q, "grid_display_mode", o.GridDisplayMode)
	o.HideGrid = !queryBool(q, "show_grid", !o.HideGrid)

	o.BaseColor = queryString(q, "base_color", o.BaseColor)
	o.IncomingColor = queryString(q, "incoming_color", o.IncomingColor)

	if v := q.Get("exclude_coplanar"); v != "" {
		mode, err := pipeline.ParseExcludeCoplanar(v)
		if err != nil {
			return o, err
		}
		o.ExcludeCoplanar = mode
	}
	if v := q.Get("line_width"); v != "" {
		width, err := strconv.ParseFloat(v, 64)
		if err != nil || width <= 0 {
			return o, errors.New(errors.ErrCodeInvalidInput, "invalid line_width %q", v)
		}
		o.LineWidth = width
	}

	if q.Has("room_attr") || q.Has("face_attr") {
		if err := o.SetAttributes(q["room_attr"], q["face_attr"], queryBool(q, "color_attr", true)); err != nil {
			return o, err
		}
	}
	return o, nil
}

func queryString(q url.Values, key, def string) string {
	if v := q.Get(key); v != "" {
		return v
	}
	return def
}

func queryBool(q url.Values, key string, def bool) bool {
	if v, err := strconv.ParseBool(q.Get(key)); err == nil {
		return v
	}
	return def
}
