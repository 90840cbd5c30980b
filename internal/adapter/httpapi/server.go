// Package httpapi exposes the analyzer over a local HTTP API, the
// counterpart of the browser-extension messaging surface.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/adapter/cache"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/domain"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/port"
	"github.com/SelfStudyHebrew/SelfStudyHebrew/internal/usecase"
)

const maxRequestBody = 4 << 20

// Server holds the loaded vocabulary and answers classification and
// analysis requests against it. The vocabulary is swapped atomically by
// Reload; requests in flight keep the set they started with.
type Server struct {
	analyze   *usecase.AnalyzeUseCase
	analyzer  cache.Analyzer
	vocab     *usecase.VocabularyUseCase
	segmenter port.Segmenter
	provider  port.VocabularyProvider
	cache     *cache.AnalysisCache
	logger    *slog.Logger
	mux       *http.ServeMux

	mu          sync.RWMutex
	vocabSet    domain.VocabularySet
	vocabSource string
}

func NewServer(
	analyze *usecase.AnalyzeUseCase,
	vocab *usecase.VocabularyUseCase,
	segmenter port.Segmenter,
	provider port.VocabularyProvider,
	analysisCache *cache.AnalysisCache,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		analyze:     analyze,
		analyzer:    cache.NewCachedAnalyzer(analyze, analysisCache),
		vocab:       vocab,
		segmenter:   segmenter,
		provider:    provider,
		cache:       analysisCache,
		logger:      logger,
		vocabSource: "none",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/vocabulary", s.handleVocabulary)
	mux.HandleFunc("POST /api/classify", s.handleClassify)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/sync", s.handleSync)
	s.mux = mux
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

	s.mux.ServeHTTP(sw, r)

	level := slog.LevelInfo
	if sw.status >= 500 {
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, "http.request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", sw.status,
		"duration", time.Since(start))
}

// Reload swaps in the current vocabulary: the provider when reachable,
// the stored snapshot otherwise. A missing vocabulary degrades to an
// empty set so classification still answers, marking everything unknown.
func (s *Server) Reload(ctx context.Context) error {
	vocabSet, source, err := s.vocab.Load(ctx, s.provider)
	if err != nil {
		if !errors.Is(err, domain.ErrNoVocabulary) {
			return err
		}
		s.logger.Warn("no vocabulary available, serving empty set")
		vocabSet, source = domain.VocabularySet{}, "none"
	}

	s.mu.Lock()
	s.vocabSet = vocabSet
	s.vocabSource = source
	s.mu.Unlock()
	s.cache.Invalidate()

	s.logger.Info("vocabulary loaded",
		"source", source,
		"mature", vocabSet.MatureCount(),
		"learning", vocabSet.LearningCount())
	return nil
}

func (s *Server) vocabulary() (domain.VocabularySet, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vocabSet, s.vocabSource
}

type classifyRequest struct {
	Words []string `json:"words"`
}

type classifyResponse struct {
	Words []domain.WordClassification `json:"words"`
}

type analyzeRequest struct {
	Units            []string `json:"units,omitempty"`
	Text             string   `json:"text,omitempty"`
	NewlineSensitive bool     `json:"newline_sensitive,omitempty"`
}

type vocabularyResponse struct {
	Source   string `json:"source"`
	Mature   int    `json:"mature"`
	Learning int    `json:"learning"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	vocab, source := s.vocabulary()
	writeJSON(w, http.StatusOK, vocabularyResponse{
		Source:   source,
		Mature:   vocab.MatureCount(),
		Learning: vocab.LearningCount(),
	})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if len(req.Words) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "words is required"})
		return
	}

	vocab, _ := s.vocabulary()
	writeJSON(w, http.StatusOK, classifyResponse{
		Words: s.analyze.ClassifyWords(req.Words, vocab),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := readJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	units := req.Units
	if len(units) == 0 && req.Text != "" {
		for _, seg := range s.segmenter.Segment(req.Text, req.NewlineSensitive) {
			units = append(units, seg.Text)
		}
	}
	if len(units) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "units or text is required"})
		return
	}

	vocab, _ := s.vocabulary()
	writeJSON(w, http.StatusOK, s.analyzer.Report(units, vocab))
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if s.provider == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no vocabulary provider configured"})
		return
	}

	result, err := s.vocab.Sync(r.Context(), s.provider, "")
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	if err := s.Reload(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, vocabularyResponse{
		Source:   result.Source,
		Mature:   result.Mature,
		Learning: result.Learning,
	})
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// statusWriter captures the response status for request logging.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
