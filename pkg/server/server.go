package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/pgalyzer/internal/logger"
	"github.com/bastiangx/pgalyzer/internal/utils"
	"github.com/bastiangx/pgalyzer/pkg/analyzer"
	"github.com/bastiangx/pgalyzer/pkg/concordance"
	"github.com/bastiangx/pgalyzer/pkg/config"
	"github.com/bastiangx/pgalyzer/pkg/freq"
	"github.com/bastiangx/pgalyzer/pkg/metrics"
	"github.com/bastiangx/pgalyzer/pkg/predict"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const maxWordLen = 60

var actions = map[string]bool{
	"ngrams": true, "words": true, "complete": true, "next": true, "previous": true,
	"concordance": true, "display": true, "stats": true, "health": true,
}

// Server handles the IPC for one analyzed document
type Server struct {
	engine   analyzer.Engine
	config   *config.Config
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	logger   *log.Logger
	metrics  *metrics.Metrics
	requests int
}

// requestError carries the code sent back to the client
type requestError struct {
	msg  string
	code int
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...), code: 400}
}

// NewServer creates a server reading requests from r and writing
// responses to w, usually stdin and stdout.
func NewServer(engine analyzer.Engine, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		engine:  engine,
		config:  cfg,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		logger:  logger.New("server"),
	}
}

// SetMetrics makes the server record every request in m.
func (s *Server) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// Start writes the ready message and serves requests until the input ends.
func (s *Server) Start() error {
	s.logger.Debug("Starting Server.")

	if err := s.encoder.Encode(Status{Status: "ready"}); err != nil {
		return fmt.Errorf("failed to write ready message: %w", err)
	}

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			return err
		}
		s.requests++

		if err := s.handleRequest(raw); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
}

// handleRequest answers a single encoded request. Only write failures are
// returned; everything else goes back to the client as an ErrorResponse.
func (s *Server) handleRequest(raw []byte) error {
	var request Request
	if err := msgpack.Unmarshal(raw, &request); err != nil {
		s.logger.Debugf("Unmarshaling request: %v", err)
		return s.sendError("", "Invalid msgpack request", 400)
	}

	label := request.Action
	if !actions[label] {
		label = "unknown"
	}

	start := time.Now()
	if request.Action == "health" {
		s.metrics.Observe(label, 200, 0, time.Since(start))
		return s.encoder.Encode(Status{Status: "ok"})
	}

	response, err := s.dispatch(request)
	if err != nil {
		code := errorCode(err)
		if code == 500 {
			s.logger.Errorf("Request %s (%s): %v", request.ID, request.Action, err)
		} else {
			s.logger.Debugf("Request %s (%s): %v", request.ID, request.Action, err)
		}
		s.metrics.Observe(label, code, 0, time.Since(start))
		return s.sendError(request.ID, err.Error(), code)
	}
	response.ID = request.ID
	response.TimeTaken = time.Since(start).Microseconds()
	s.metrics.Observe(label, 200, response.Count, time.Since(start))
	return s.encoder.Encode(response)
}

func (s *Server) dispatch(request Request) (*Response, error) {
	switch request.Action {
	case "ngrams":
		n, err := s.intOr(request.N, s.config.Analysis.NGramSize)
		if err != nil {
			return nil, err
		}
		entries, err := s.engine.NGrams(n, s.limit(request.Limit))
		if err != nil {
			return nil, err
		}
		return entriesResponse(entries), nil

	case "words":
		return entriesResponse(s.engine.Words(s.limit(request.Limit))), nil

	case "complete":
		if request.Prefix == "" {
			return nil, badRequest("Missing 'p' parameter")
		}
		if len(request.Prefix) > maxWordLen {
			return nil, badRequest("Prefix exceeds maximum length of %d characters", maxWordLen)
		}
		return entriesResponse(s.engine.Complete(request.Prefix, s.limit(request.Limit))), nil

	case "next", "previous":
		if err := validateWord(request.Word); err != nil {
			return nil, err
		}
		n, err := s.intOr(request.N, s.config.Analysis.LikelyLimit)
		if err != nil {
			return nil, err
		}
		n = min(n, s.config.Server.MaxLimit)
		var neighbors []predict.Neighbor
		if request.Action == "next" {
			neighbors, err = s.engine.LikelyNext(request.Word, n)
		} else {
			neighbors, err = s.engine.LikelyPrevious(request.Word, n)
		}
		if err != nil {
			return nil, err
		}
		return neighborsResponse(neighbors), nil

	case "concordance", "display":
		if err := validateWord(request.Word); err != nil {
			return nil, err
		}
		size, err := s.intOr(request.Size, s.config.Analysis.NeighborhoodSize)
		if err != nil {
			return nil, err
		}
		size = min(size, s.config.Server.MaxNeighborhood)
		windows, err := s.engine.Concordance(request.Word, size)
		if err != nil {
			return nil, err
		}
		response := windowsResponse(windows)
		if request.Action == "display" {
			response.Windows = nil
			response.Display = concordance.Display(windows, request.Word, concordance.Plain)
		}
		return response, nil

	case "stats":
		stats := s.engine.Stats()
		return &Response{Stats: stats, Count: len(stats)}, nil

	case "":
		return nil, badRequest("Missing 'action' parameter")
	default:
		return nil, badRequest("Unknown action: %s", request.Action)
	}
}

func validateWord(word string) error {
	if word == "" {
		return badRequest("Missing 'w' parameter")
	}
	if len(word) > maxWordLen {
		return badRequest("Word exceeds maximum length of %d characters", maxWordLen)
	}
	return nil
}

// intOr returns *v, or fallback when the field was not sent.
func (s *Server) intOr(v *int, fallback int) (int, error) {
	if v == nil {
		return fallback, nil
	}
	if *v < 0 {
		return 0, badRequest("Negative value %d", *v)
	}
	return *v, nil
}

// limit caps a ranking limit at max_limit. Zero asks for the cap.
func (s *Server) limit(requested int) int {
	maxLimit := s.config.Server.MaxLimit
	if requested < 1 || requested > maxLimit {
		return maxLimit
	}
	return requested
}

func errorCode(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.code
	case errors.Is(err, predict.ErrNotFound):
		return 404
	case errors.Is(err, freq.ErrInvalidSize),
		errors.Is(err, concordance.ErrInvalidSize),
		errors.Is(err, predict.ErrInvalidLimit):
		return 400
	default:
		return 500
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) error {
	return s.encoder.Encode(ErrorResponse{ID: id, Error: message, Code: code})
}

func entriesResponse(entries []freq.Entry) *Response {
	ranks := utils.CreateRankList(len(entries))
	results := make([]Result, len(entries))
	for i, e := range entries {
		results[i] = Result{Text: e.Text, Count: e.Count, Rank: ranks[i]}
	}
	return &Response{Results: results, Count: len(results)}
}

func neighborsResponse(neighbors []predict.Neighbor) *Response {
	ranks := utils.CreateRankList(len(neighbors))
	results := make([]Result, len(neighbors))
	for i, n := range neighbors {
		results[i] = Result{Text: n.Word, Count: n.Count, Rank: ranks[i]}
	}
	return &Response{Results: results, Count: len(results)}
}

func windowsResponse(windows []concordance.Window) *Response {
	results := make([]WindowResult, len(windows))
	for i, w := range windows {
		results[i] = WindowResult{Before: w.Before, After: w.After}
	}
	return &Response{Windows: results, Count: len(results)}
}
