package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/queryserve/internal/logger"
	"github.com/bastiangx/queryserve/pkg/autocomplete"
	"github.com/bastiangx/queryserve/pkg/config"
	"github.com/bastiangx/queryserve/pkg/fields"
	"github.com/bastiangx/queryserve/pkg/suggest"
)

var log = logger.New("ipc")

// Server handles the IPC for query completions.
type Server struct {
	aggregator *autocomplete.Aggregator
	mappings   *fields.MappingStore
	queries    *fields.QueryStore
	index      *suggest.ValueIndex
	cfg        *config.Config

	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
}

// NewServer creates a completion server using stdin/stdout for IPC.
func NewServer(aggregator *autocomplete.Aggregator, mappings *fields.MappingStore, queries *fields.QueryStore, index *suggest.ValueIndex, cfg *config.Config) *Server {
	return &Server{
		aggregator: aggregator,
		mappings:   mappings,
		queries:    queries,
		index:      index,
		cfg:        cfg,
		decoder:    msgpack.NewDecoder(os.Stdin),
		encoder:    msgpack.NewEncoder(os.Stdout),
	}
}

// Start signals readiness and processes requests until stdin closes.
func (s *Server) Start() error {
	log.Debug("Starting IPC server.")
	s.send(map[string]string{"status": "ready"})

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			continue
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch {
	case req.Action != "":
		s.handleCatalog(req)
	case req.Cmd == "health":
		s.send(HealthResponse{ID: req.ID, Status: "ok"})
	default:
		s.handleComplete(req)
	}
}

func (s *Server) handleComplete(req Request) {
	if len(req.Query) > s.cfg.Server.MaxQueryLen {
		s.sendError(req.ID, fmt.Sprintf("Query exceeds maximum length of %d", s.cfg.Server.MaxQueryLen), 400)
		return
	}
	cursor := req.Cursor
	if cursor < 0 || cursor > len(req.Query) {
		cursor = len(req.Query)
	}
	limit := req.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	creq := autocomplete.NewRequest(req.Query, cursor, limit)
	results := s.aggregator.CompleteRequest(context.Background(), creq)
	elapsed := time.Since(start)
	if len(results) > limit {
		results = results[:limit]
	}

	suggestions := make([]Suggestion, len(results))
	for i, r := range results {
		suggestions[i] = Suggestion{
			Name:    r.Name,
			Value:   r.Value,
			Caption: r.Caption,
			Score:   r.Score,
			Meta:    r.Meta,
		}
	}

	s.send(CompleteResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
		ShowPopup:   s.aggregator.ShouldShow(creq.Tokens, cursor),
	})
}

func (s *Server) handleCatalog(req Request) {
	switch req.Action {
	case "set_fields":
		s.mappings.Replace(snapshotFromFields(req.Fields))
		s.sendCatalogInfo(req.ID)
	case "set_active_query":
		s.queries.SetActive(req.ActiveQuery)
		s.sendCatalogInfo(req.ID)
	case "add_values":
		for field, values := range req.Values {
			for value, occ := range values {
				s.index.Add(field, value, occ)
			}
		}
		s.sendCatalogInfo(req.ID)
	case "get_info":
		s.sendCatalogInfo(req.ID)
	default:
		s.send(CatalogResponse{
			ID:     req.ID,
			Status: "error",
			Error:  fmt.Sprintf("Unknown action: %s", req.Action),
		})
	}
}

func (s *Server) sendCatalogInfo(id string) {
	s.send(CatalogResponse{
		ID:          id,
		Status:      "ok",
		FieldCount:  len(s.mappings.InitialState().All),
		ValueFields: s.index.FieldCount(),
		ActiveQuery: s.queries.InitialState(),
	})
}

// send marshals the response to msgpack and writes it to stdout.
func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}

func snapshotFromFields(entries []CatalogField) fields.Snapshot {
	snapshot := fields.Snapshot{ByQuery: make(map[string][]fields.Mapping)}
	for _, entry := range entries {
		m := fields.Mapping{
			Name: entry.Name,
			Type: fields.FieldType{Type: entry.Type, Properties: entry.Properties},
		}
		snapshot.All = append(snapshot.All, m)
		for _, q := range entry.Queries {
			snapshot.ByQuery[q] = append(snapshot.ByQuery[q], m)
		}
	}
	return snapshot
}
