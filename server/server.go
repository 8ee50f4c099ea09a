package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/ipni/cidgen"
	"github.com/ipni/cidgen/metrics"
	"github.com/multiformats/go-multihash"
)

var log = logging.Logger("server/http")

type Server struct {
	s        *http.Server
	metrics  *metrics.Metrics
	hashType cidgen.HashAlgorithm
}

// responseWriterWithStatus is required to capture status code from
// ResponseWriter so that it can be reported to metrics in a unified way.
type responseWriterWithStatus struct {
	http.ResponseWriter
	status int
}

func newResponseWriterWithStatus(w http.ResponseWriter) *responseWriterWithStatus {
	return &responseWriterWithStatus{
		ResponseWriter: w,
		// 200 status should be assumed by default if WriteHeader hasn't been
		// called explicitly.
		status: 200,
	}
}

func (rec *responseWriterWithStatus) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func New(addr string, options ...Option) (*Server, error) {
	opts, err := getOpts(options)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	s := &Server{
		metrics:  opts.metrics,
		hashType: opts.hashType,
		s: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}

	mux.HandleFunc("/cid", s.handleCid)
	mux.HandleFunc("/cid/record", s.handleCidRecord)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/", s.handleCatchAll)

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.s.Handler
}

func (s *Server) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.s.Addr)
	if err != nil {
		return err
	}
	go func() { _ = s.s.Serve(ln) }()

	log.Infow("Server started", "addr", ln.Addr())
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.s.Shutdown(ctx)
}

func (s *Server) handleCid(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		ws := newResponseWriterWithStatus(w)
		w = ws
		start := time.Now()
		defer func() {
			s.metrics.RecordHttpLatency(context.Background(), time.Since(start), r.Method, "cid", ws.status)
		}()
	}

	switch r.Method {
	case http.MethodPost:
		s.handleComputeCid(w, r)
	default:
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCidRecord(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		ws := newResponseWriterWithStatus(w)
		w = ws
		start := time.Now()
		defer func() {
			s.metrics.RecordHttpLatency(context.Background(), time.Since(start), r.Method, "cid/record", ws.status)
		}()
	}

	switch r.Method {
	case http.MethodPost:
		s.handleComputeRecordCid(w, r)
	default:
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "", http.StatusMethodNotAllowed)
	}
}

// handleComputeCid computes the CID of the raw request body.
func (s *Server) handleComputeCid(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "", http.StatusBadRequest)
		return
	}
	s.computeAndWrite(w, r, cidgen.Bytes(body))
}

// handleComputeRecordCid computes the CID of a JSON object body. Go's JSON
// decoding does not preserve document order, so fields are canonicalized in
// ascending key order.
func (s *Server) handleComputeRecordCid(w http.ResponseWriter, r *http.Request) {
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil || record == nil {
		http.Error(w, "", http.StatusBadRequest)
		return
	}
	v, err := cidgen.ValueOf(record)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.computeAndWrite(w, r, v)
}

func (s *Server) computeAndWrite(w http.ResponseWriter, r *http.Request, v cidgen.Value) {
	options, err := s.sumOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c, err := cidgen.Sum(v, options...)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if err = json.NewEncoder(w).Encode(CidResponse{Cid: c}); err != nil {
		log.Errorw("Failed to write CID response", "err", err)
	}
}

// sumOptions translates the `hash` and `base` query parameters into Sum
// options. The hash name must be a known multihash name; the base is passed
// through unchecked so that cidgen rejects it after hashing, same as a bad
// process-wide default would be.
func (s *Server) sumOptions(r *http.Request) ([]cidgen.Option, error) {
	q := r.URL.Query()
	options := []cidgen.Option{cidgen.WithHashType(s.hashType)}
	if name := q.Get("hash"); name != "" {
		code, ok := multihash.Names[name]
		if !ok {
			return nil, fmt.Errorf("unknown hash type: %s", name)
		}
		options = append(options, cidgen.WithHashType(cidgen.HashAlgorithm(code)))
	}
	if base := q.Get("base"); base != "" {
		options = append(options, cidgen.WithBase(cidgen.Base(base)))
	}
	return options, nil
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	var status int
	switch err.(type) {
	case cidgen.ErrInvalidDataType, cidgen.ErrEncodingFailure, cidgen.ErrUnknownHashType, cidgen.ErrInvalidBase:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleCatchAll(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "", http.StatusNotFound)
}
