package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
	"github.com/tadeyemo32/career26-vanguard/internal/core/engine"
	"github.com/tadeyemo32/career26-vanguard/internal/core/namesearch"
	apperrors "github.com/tadeyemo32/career26-vanguard/internal/errors"
	"github.com/tadeyemo32/career26-vanguard/internal/observability"
)

const (
	// DefaultMaxBatch caps records per batch request.
	DefaultMaxBatch = 1000

	maxBodyBytes = 8 << 20
	metricSource = "api"
)

// CompanyStore is the persistence the company endpoint needs.
type CompanyStore interface {
	engine.VariantSource
	Company(ctx context.Context, companyNumber string) (*core.Company, error)
}

// NameSearchHandler serves the name-to-search endpoints.
type NameSearchHandler struct {
	Pipeline *namesearch.Pipeline
	Defaults namesearch.Options
	MaxBatch int
	Workers  int
	// Companies backs the company endpoint; nil makes it unavailable.
	Companies CompanyStore
}

// NameSearchRequest is the body of POST /v1/name-to-search.
type NameSearchRequest struct {
	CompanyNumber           string `json:"company_number"`
	CompanyName             string `json:"company_name"`
	PostTown                string `json:"post_town,omitempty"`
	Country                 string `json:"country,omitempty"`
	MaxQueries              *int   `json:"max_queries,omitempty"`
	IncludeLocationVariants *bool  `json:"include_location_variants,omitempty"`
}

// BatchRequest is the body of POST /v1/name-to-search/batch.
type BatchRequest struct {
	Records                 []namesearch.Record `json:"records"`
	MaxQueries              *int                `json:"max_queries,omitempty"`
	IncludeLocationVariants *bool               `json:"include_location_variants,omitempty"`
}

// NameSearchResponse is a result map with an optional stage trace.
type NameSearchResponse struct {
	namesearch.ResultMap
	Trace *namesearch.Trace `json:"trace,omitempty"`
}

// BatchResponse is the body returned by the batch endpoint.
type BatchResponse struct {
	Results []*core.BatchResult `json:"results"`
	Summary core.BatchSummary   `json:"summary"`
}

// Search handles POST /v1/name-to-search.
func (h *NameSearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req NameSearchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	explain, ok := explainParam(w, r)
	if !ok {
		return
	}

	opts := h.options(req.MaxQueries, req.IncludeLocationVariants)
	res := h.runner(opts, explain).Process(core.Company{
		Number:   req.CompanyNumber,
		Name:     req.CompanyName,
		PostTown: req.PostTown,
		Country:  req.Country,
	})
	respondJSON(w, http.StatusOK, NameSearchResponse{ResultMap: res.ResultMap, Trace: res.Trace})
}

// SearchRecord handles POST /v1/name-to-search/record.
func (h *NameSearchHandler) SearchRecord(w http.ResponseWriter, r *http.Request) {
	var rec namesearch.Record
	if !decodeBody(w, r, &rec) {
		return
	}

	explain, ok := explainParam(w, r)
	if !ok {
		return
	}

	res := h.runner(h.Defaults, explain).Process(companyFromRecord(rec))
	respondJSON(w, http.StatusOK, NameSearchResponse{ResultMap: res.ResultMap, Trace: res.Trace})
}

// Batch handles POST /v1/name-to-search/batch.
func (h *NameSearchHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	limit := h.maxBatch()
	if len(req.Records) > limit {
		envelope := apperrors.NewValidationError(fmt.Sprintf("batch accepts at most %d records", limit))
		envelope = apperrors.WithDetails(envelope, map[string]interface{}{
			"max_batch": limit,
			"received":  len(req.Records),
		})
		respondWithError(w, r, envelope)
		return
	}

	explain, ok := explainParam(w, r)
	if !ok {
		return
	}

	companies := make([]core.Company, len(req.Records))
	for i, rec := range req.Records {
		companies[i] = companyFromRecord(rec)
	}

	started := time.Now()
	runner := h.runner(h.options(req.MaxQueries, req.IncludeLocationVariants), explain)
	results, err := runner.Run(r.Context(), companies)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			respondWithError(w, r, apperrors.WrapTimeout(r.Context(), err, "batch cancelled before completion"))
			return
		}
		respondWithError(w, r, apperrors.WrapInternal(r.Context(), err, "batch failed"))
		return
	}

	respondJSON(w, http.StatusOK, BatchResponse{
		Results: results,
		Summary: engine.Summarize(results, time.Since(started)),
	})
}

// CompanyQueries handles GET /v1/companies/{companyNumber}/search-queries.
// Query parameters: name (overrides the stored name), max_queries,
// include_location.
func (h *NameSearchHandler) CompanyQueries(w http.ResponseWriter, r *http.Request) {
	if h.Companies == nil {
		respondWithError(w, r, apperrors.NewServiceUnavailableError("company lookups need a configured store"))
		return
	}

	number := strings.TrimSpace(chi.URLParam(r, "companyNumber"))
	if number == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("company number is required"))
		return
	}

	query := r.URL.Query()
	maxQueries := h.Defaults.MaxQueries
	if raw := query.Get("max_queries"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondWithError(w, r, apperrors.NewValidationError("max_queries must be a positive integer"))
			return
		}
		maxQueries = n
	}
	includeLocation := false
	if raw := query.Get("include_location"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(w, r, apperrors.NewValidationError("include_location must be a boolean"))
			return
		}
		includeLocation = v
	}

	company, err := h.Companies.Company(r.Context(), number)
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "company lookup failed"))
		return
	}
	if name := strings.TrimSpace(query.Get("name")); name != "" {
		if company == nil {
			company = &core.Company{Number: number}
		}
		company.Name = name
	}
	if company == nil {
		respondWithError(w, r, apperrors.NewNotFoundError(fmt.Sprintf("company %s is not known", number)))
		return
	}

	resolver := engine.Resolver{
		Pipeline:        h.Pipeline,
		Variants:        h.Companies,
		MaxQueries:      maxQueries,
		IncludeLocation: includeLocation,
	}
	resolution, err := resolver.Resolve(r.Context(), *company)
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "resolve search queries"))
		return
	}

	if logger := observability.ServerLogger; logger != nil && resolution.Source == engine.SourceFallback {
		logger.Debug("Resolver fell back to stored names",
			zap.String("company_number", number),
			zap.Int("queries", len(resolution.Queries)))
	}
	respondJSON(w, http.StatusOK, resolution)
}

func (h *NameSearchHandler) options(maxQueries *int, includeLocation *bool) namesearch.Options {
	opts := h.Defaults
	if maxQueries != nil {
		opts.MaxQueries = *maxQueries
	}
	if includeLocation != nil {
		opts.IncludeLocationVariants = *includeLocation
	}
	return opts
}

func (h *NameSearchHandler) runner(opts namesearch.Options, explain bool) *engine.Runner {
	return &engine.Runner{
		Pipeline:    h.Pipeline,
		Options:     opts,
		Concurrency: h.Workers,
		Explain:     explain,
		Source:      metricSource,
		Logger:      observability.ServerLogger,
	}
}

func (h *NameSearchHandler) maxBatch() int {
	if h.MaxBatch < 1 {
		return DefaultMaxBatch
	}
	return h.MaxBatch
}

func companyFromRecord(rec namesearch.Record) core.Company {
	company := core.Company{Number: rec.CompanyNumber, Name: rec.CompanyName}
	if rec.Address != nil {
		company.PostTown = rec.Address.PostTown
		company.Country = rec.Address.Country
	}
	return company
}

// decodeBody decodes a JSON body, answering 400 INVALID_INPUT on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		message := "request body must be valid JSON"
		if errors.Is(err, io.EOF) {
			message = "request body is empty"
		}
		respondWithError(w, r, apperrors.WrapInvalidInput(r.Context(), err, message))
		return false
	}
	return true
}

func explainParam(w http.ResponseWriter, r *http.Request) (bool, bool) {
	raw := r.URL.Query().Get("explain")
	if raw == "" {
		return false, true
	}
	explain, err := strconv.ParseBool(raw)
	if err != nil {
		respondWithError(w, r, apperrors.NewValidationError("explain must be a boolean"))
		return false, false
	}
	return explain, true
}

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	apperrors.RespondWithError(w, r, err)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && observability.ServerLogger != nil {
		observability.ServerLogger.Warn("Failed to write response", zap.Error(err))
	}
}
