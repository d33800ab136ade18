// Package convapi exposes the mask converter over a small JSON API,
// with an optional SQLite-backed conversion history.
package convapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"git.autistici.org/ai3/tools/masktr/history"
	"git.autistici.org/ai3/tools/masktr/httptransport"
	"git.autistici.org/ai3/tools/masktr/mask"
)

const (
	apiURLConvert     = "/api/v1/convert"
	apiURLHistoryFind = "/api/v1/history/find"

	defaultFindLimit = 20
	maxFindLimit     = 1000
)

func init() {
	httptransport.RegisterError("bad-format", mask.ErrFormat)
	httptransport.RegisterError("out-of-range", mask.ErrRange)
}

type ConvertRequest struct {
	Input string `json:"input"`
}

type ConvertResponse struct {
	Format string `json:"format"`
	Ones   int    `json:"ones"`
	Zeros  int    `json:"zeros"`
	CIDR   string `json:"cidr"`
	Octet  string `json:"octet"`
	Binary string `json:"binary"`
}

// Server answers conversion requests, recording successful ones in
// the history store when one is attached.
type Server struct {
	hist *history.Store
}

// NewServer creates a conversion API server. hist may be nil to run
// without history.
func NewServer(hist *history.Store) *Server {
	return &Server{hist: hist}
}

// Convert parses a mask expression and returns all its renderings.
func (s *Server) Convert(ctx context.Context, input string) (*ConvertResponse, error) {
	m, err := mask.Parse(input)
	if err != nil {
		conversionErrors.WithLabelValues(errorReason(err)).Inc()
		return nil, err
	}
	conversionsTotal.WithLabelValues(m.Format().String()).Inc()

	if s.hist != nil {
		// History is best-effort, a write failure must not fail
		// the conversion itself.
		if err := s.hist.Add(ctx, history.Record(input, m)); err != nil {
			log.Printf("history write error: %v", err)
		}
	}

	return &ConvertResponse{
		Format: m.Format().String(),
		Ones:   m.Ones(),
		Zeros:  m.Zeros(),
		CIDR:   m.CIDR(),
		Octet:  m.Octet(),
		Binary: m.Binary(),
	}, nil
}

func (s *Server) handleConvert(w http.ResponseWriter, req *http.Request) {
	var creq ConvertRequest
	httptransport.ServeJSON(w, req, &creq, func() (interface{}, error) {
		return s.Convert(req.Context(), creq.Input)
	})
}

func (s *Server) handleHistoryFind(w http.ResponseWriter, req *http.Request) {
	httptransport.ServeJSON(w, req, nil, func() (interface{}, error) {
		limit := defaultFindLimit
		if v := req.FormValue("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, errors.New("invalid 'limit' argument")
			}
			limit = n
		}
		if limit > maxFindLimit {
			limit = maxFindLimit
		}

		if format := req.FormValue("format"); format != "" {
			return s.hist.FindByFormat(req.Context(), format, limit)
		}
		return s.hist.Recent(req.Context(), limit)
	})
}

// BuildAPI registers the server's handlers on a mux.
func (s *Server) BuildAPI(mux *http.ServeMux) {
	mux.HandleFunc(apiURLConvert, s.handleConvert)
	if s.hist != nil {
		mux.HandleFunc(apiURLHistoryFind, s.handleHistoryFind)
	}
}
