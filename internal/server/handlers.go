package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/encoderdisk/pkg/buildinfo"
	"github.com/matzehuels/encoderdisk/pkg/errors"
	"github.com/matzehuels/encoderdisk/pkg/gray"
	"github.com/matzehuels/encoderdisk/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleDisk(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := parseOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.checkBits(opts.Disk.Bits); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.checkSegments(opts.Disk.Segments); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(result.CacheHit))
	for _, warning := range result.Warnings {
		w.Header().Add("X-Disk-Warning", warning)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

type grayResponse struct {
	Bits         int      `json:"bits"`
	Positions    int      `json:"positions"`
	PositionSize float64  `json:"position_size"`
	ZeroOffset   int      `json:"zero_offset,omitempty"`
	Codes        []string `json:"codes"`
}

func (s *Server) handleGray(w http.ResponseWriter, r *http.Request) {
	bits, err := strconv.Atoi(chi.URLParam(r, "bits"))
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidArgument, "bits must be an integer"))
		return
	}
	if err := s.checkBits(bits); err != nil {
		s.writeError(w, r, err)
		return
	}
	offset := 0
	if v := r.URL.Query().Get("zero_offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidArgument, "zero_offset must be an integer"))
			return
		}
	}

	tbl, err := gray.Generate(bits)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tbl = tbl.Rotate(offset)

	codes := make([]string, tbl.Len())
	for i := range codes {
		codes[i] = fmt.Sprintf("%0*b", bits, tbl.Word(i))
	}
	writeJSON(w, http.StatusOK, grayResponse{
		Bits:         bits,
		Positions:    tbl.Len(),
		PositionSize: 360 / float64(tbl.Len()),
		ZeroOffset:   offset,
		Codes:        codes,
	})
}

// checkBits enforces the server's bit limit; the lower bound and the
// library maximum are left to the core's own validation.
func (s *Server) checkBits(bits int) error {
	if bits > s.maxBits {
		return errors.New(errors.ErrCodeInvalidArgument, "bits must be <= %d on this server, got %d", s.maxBits, bits)
	}
	return nil
}

func (s *Server) checkSegments(n int) error {
	if n > s.maxSegs {
		return errors.New(errors.ErrCodeInvalidArgument, "segments must be <= %d on this server, got %d", s.maxSegs, n)
	}
	return nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
