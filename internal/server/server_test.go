package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/encoderdisk/pkg/cache"
	"github.com/matzehuels/encoderdisk/pkg/errors"
	"github.com/matzehuels/encoderdisk/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(fc, nil, logger)
	srv := httptest.NewServer(New(runner, logger).Handler())
	t.Cleanup(func() {
		srv.Close()
		runner.Close()
	})
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/healthz")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if _, err := uuid.Parse(resp.Header.Get(HeaderRequestID)); err != nil {
		t.Errorf("X-Request-ID = %q, not a UUID", resp.Header.Get(HeaderRequestID))
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := newTestServer(t)
	id := uuid.NewString()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(HeaderRequestID); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}

	req.Header.Set(HeaderRequestID, "not-a-uuid")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get(HeaderRequestID); got == "not-a-uuid" {
		t.Error("invalid client request ID was echoed")
	}
}

func TestDiskSVG(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv, "/disk.svg?bits=3&encoder_diameter=60")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if xc := resp.Header.Get("X-Cache"); xc != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", xc)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(body), "<svg") || !strings.Contains(string(body), `id="track-2"`) {
		t.Errorf("unexpected svg body: %.80s", body)
	}

	again := get(t, srv, "/disk.svg?bits=3&encoder_diameter=60")
	if xc := again.Header.Get("X-Cache"); xc != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", xc)
	}
}

func TestDiskSVGCanvas(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/disk.svg?bits=2&canvas_width=300&canvas_height=200&label=front")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `viewBox="0 0 300.000 200.000"`) || !strings.Contains(string(body), `<g id="front"`) {
		t.Errorf("canvas or label not applied: %.200s", body)
	}
}

func TestDiskJSON(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/disk.json?bits=2&include_table=true")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Bits  int      `json:"bits"`
		Table []string `json:"table"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Bits != 2 || len(body.Table) != 4 {
		t.Errorf("body = %+v", body)
	}
}

func TestDiskErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path   string
		status int
		code   errors.Code
	}{
		{"/disk.gif", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"/disk.svg?bits=0", http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"/disk.svg?bits=abc", http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"/disk.svg?bits=17", http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"/disk.svg?colour=red", http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"/disk.svg?track_width=0", http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"/disk.svg?fill=%22red", http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"/disk.svg?fill=a%26b", http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"/disk.svg?segments=1025&outer_encoder_diameter=160&outer_encoder_width=5", http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"/disk.svg?segments=1125899906842624&outer_encoder_diameter=160&outer_encoder_width=5", http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"/nope", http.StatusNotFound, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := get(t, srv, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			detail := decodeError(t, resp)
			if detail.Code != string(tt.code) {
				t.Errorf("code = %q, want %q", detail.Code, tt.code)
			}
			if detail.RequestID == "" {
				t.Error("error body has no request_id")
			}
		})
	}
}

func TestGray(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path string
		want []string
	}{
		{"/gray/2", []string{"00", "01", "11", "10"}},
		{"/gray/2?zero_offset=1", []string{"01", "11", "10", "00"}},
		{"/gray/1", []string{"0", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := get(t, srv, tt.path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			var body grayResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(body.Codes, tt.want) {
				t.Errorf("codes = %v, want %v", body.Codes, tt.want)
			}
		})
	}

	if resp := get(t, srv, "/gray/x"); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("/gray/x status = %d, want 400", resp.StatusCode)
	}
	if resp := get(t, srv, "/gray/0"); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("/gray/0 status = %d, want 400", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidArgument, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidConfig, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeDegenerateGeometry, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{http.ErrHandlerTimeout, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWithMaxBits(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, log.New(io.Discard)), log.New(io.Discard), WithMaxBits(4))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gray/5", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWithMaxSegments(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, log.New(io.Discard)), log.New(io.Discard), WithMaxSegments(8))

	tests := []struct {
		segments string
		want     int
	}{
		{"8", http.StatusOK},
		{"9", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		path := "/disk.json?bits=2&outer_encoder_diameter=160&outer_encoder_width=5&segments=" + tt.segments
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != tt.want {
			t.Errorf("segments=%s status = %d, want %d", tt.segments, rec.Code, tt.want)
		}
	}
}

func TestRecoverWritesErrorBody(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, log.New(io.Discard)), log.New(io.Discard))
	h := requestID(s.recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/disk.svg", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body errorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != string(errors.ErrCodeInternal) || body.Error.RequestID == "" {
		t.Errorf("error body = %+v", body.Error)
	}
}
