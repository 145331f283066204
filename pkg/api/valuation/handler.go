// Package valuation exposes the valuation engine over HTTP.
package valuation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"business_valuation/pkg/core/commentary"
	"business_valuation/pkg/core/ingest"
	"business_valuation/pkg/core/pipeline"
	"business_valuation/pkg/core/report"
	"business_valuation/pkg/core/store"
	"business_valuation/pkg/core/utils"
	"business_valuation/pkg/core/valuation"
)

const maxBodyBytes = 2 << 20

// Store is the persistence the handler needs. *store.ValuationStore satisfies it.
type Store interface {
	Save(ctx context.Context, rec *store.ValuationRecord) error
	Get(ctx context.Context, id string) (*store.ValuationRecord, error)
	ListRecent(ctx context.Context, limit int) ([]store.ValuationRecord, error)
}

// Commentator produces optional LLM commentary. *commentary.Generator satisfies it.
type Commentator interface {
	Generate(ctx context.Context, out valuation.ValuationOutput) (*commentary.Commentary, error)
}

// Options configures a Handler. Engine is required; everything else is optional.
type Options struct {
	Engine            *valuation.Engine
	Store             Store
	Listings          pipeline.ListingSource
	Commentary        Commentator
	CommentaryTimeout time.Duration
	BatchConcurrency  int
	MaxBatchInputs    int
	Logger            *zap.Logger
}

// Handler serves the /api/valuation endpoints.
type Handler struct {
	engine            *valuation.Engine
	store             Store
	listings          pipeline.ListingSource
	pipeline          *pipeline.Orchestrator
	commentary        Commentator
	commentaryTimeout time.Duration
	concurrency       int
	maxBatch          int
	validate          *validator.Validate
	logger            *zap.Logger
}

func NewHandler(opts Options) *Handler {
	if opts.Engine == nil {
		opts.Engine = valuation.DefaultEngine()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.BatchConcurrency < 1 {
		opts.BatchConcurrency = 4
	}
	if opts.MaxBatchInputs < 1 {
		opts.MaxBatchInputs = 500
	}
	if opts.CommentaryTimeout <= 0 {
		opts.CommentaryTimeout = 30 * time.Second
	}

	return &Handler{
		engine:            opts.Engine,
		store:             opts.Store,
		listings:          opts.Listings,
		pipeline:          pipeline.NewOrchestrator(opts.Listings, opts.Engine, opts.Store, opts.Logger),
		commentary:        opts.Commentary,
		commentaryTimeout: opts.CommentaryTimeout,
		concurrency:       opts.BatchConcurrency,
		maxBatch:          opts.MaxBatchInputs,
		validate:          newValidator(),
		logger:            opts.Logger.Named("api"),
	}
}

// Register mounts every endpoint on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/valuation/calculate", cors("POST", h.HandleCalculate))
	mux.HandleFunc("/api/valuation/quick", cors("POST", h.HandleQuick))
	mux.HandleFunc("/api/valuation/industries", cors("GET", h.HandleIndustries))
	mux.HandleFunc("/api/valuation/batch", cors("POST", h.HandleBatch))
	mux.HandleFunc("/api/valuation/listing", cors("POST", h.HandleListing))
	mux.HandleFunc("/api/valuation/history", cors("GET", h.HandleHistory))
	mux.HandleFunc("/api/valuation/{id}", cors("GET", h.HandleReport))
}

// cors sets the CORS headers, answers preflight requests and rejects other
// methods.
func cors(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", method+", OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != method {
			w.Header().Set("Allow", method+", OPTIONS")
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
			return
		}
		next(w, r)
	}
}

// CalculateResponse is a valuation output plus the optional record id and
// commentary.
type CalculateResponse struct {
	ID string `json:"id,omitempty"`
	valuation.ValuationOutput
	Commentary *commentary.Commentary `json:"commentary,omitempty"`
}

// HandleCalculate values one business.
// Query: save=true persists the run; commentary=true attaches LLM commentary.
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var in valuation.ValuationInput
	if !h.decodeAndValidate(w, r, &in) {
		return
	}

	resp := CalculateResponse{ValuationOutput: h.engine.Calculate(in)}

	if queryBool(r, "save") {
		if h.store == nil {
			writeError(w, http.StatusServiceUnavailable, "storage is not configured", nil)
			return
		}
		rec := &store.ValuationRecord{Input: in, Output: resp.ValuationOutput}
		if err := h.store.Save(r.Context(), rec); err != nil {
			h.logger.Error("failed to save valuation", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save valuation", nil)
			return
		}
		resp.ID = rec.ID
	}

	if queryBool(r, "commentary") {
		resp.Commentary = h.generateCommentary(r.Context(), resp.ValuationOutput)
	}

	writeJSON(w, http.StatusOK, resp)
}

// generateCommentary never fails the request; problems are logged.
func (h *Handler) generateCommentary(ctx context.Context, out valuation.ValuationOutput) *commentary.Commentary {
	if h.commentary == nil {
		h.logger.Debug("commentary requested but not configured")
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, h.commentaryTimeout)
	defer cancel()

	c, err := h.commentary.Generate(ctx, out)
	if err != nil {
		h.logger.Warn("commentary failed", zap.Error(err))
		return nil
	}
	return c
}

type QuickRequest struct {
	Revenue  *float64 `json:"revenue" validate:"required,gte=0"`
	Industry string   `json:"industry" validate:"required"`
}

type QuickResponse struct {
	Industry       string                   `json:"industry"`
	ValuationRange valuation.ValuationRange `json:"valuationRange"`
}

// HandleQuick returns a revenue-only preview range.
func (h *Handler) HandleQuick(w http.ResponseWriter, r *http.Request) {
	var req QuickRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, QuickResponse{
		Industry:       h.engine.Catalog().Lookup(req.Industry).IndustryKey,
		ValuationRange: h.engine.QuickEstimate(*req.Revenue, req.Industry),
	})
}

// HandleIndustries lists the catalog for industry pickers.
func (h *Handler) HandleIndustries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Catalog().Options())
}

type BatchRequest struct {
	Inputs []valuation.ValuationInput `json:"inputs" validate:"required,min=1,dive"`
}

type BatchResponse struct {
	Outputs []valuation.ValuationOutput `json:"outputs"`
}

// HandleBatch values many businesses concurrently. Outputs keep input order.
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	if len(req.Inputs) > h.maxBatch {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("batch of %d inputs exceeds the limit of %d", len(req.Inputs), h.maxBatch), nil)
		return
	}

	outputs, err := h.pipeline.RunBatch(r.Context(), req.Inputs, h.concurrency)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, BatchResponse{Outputs: outputs})
}

// ListingRequest names a listing page by URL or carries its HTML.
type ListingRequest struct {
	URL      string `json:"url" validate:"omitempty,url"`
	HTML     string `json:"html" validate:"required_without=URL"`
	Industry string `json:"industry"`
}

// HandleListing imports a listing and values it. The run is saved when
// storage is configured.
func (h *Handler) HandleListing(w http.ResponseWriter, r *http.Request) {
	var req ListingRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	var (
		res *pipeline.Result
		err error
	)
	if req.URL != "" {
		if h.listings == nil {
			writeError(w, http.StatusServiceUnavailable, "listing import is not configured", nil)
			return
		}
		res, err = h.pipeline.RunListing(r.Context(), req.URL, req.Industry)
	} else {
		var imp *ingest.ListingImport
		imp, err = ingest.ParseListingHTML(req.HTML, req.Industry)
		if err == nil {
			res, err = h.pipeline.ValueAndSave(r.Context(), imp.Input)
			if res != nil {
				res.Listing = imp
			}
		}
	}

	switch {
	case errors.Is(err, ingest.ErrBlockedHost):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ingest.ErrNoFinancials):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case err != nil:
		h.logger.Warn("listing valuation failed", zap.String("url", req.URL), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error(), nil)
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

// HandleHistory lists recent saved valuations.
// Query: limit (default 20, at most 200).
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "storage is not configured", nil)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	switch {
	case limit <= 0:
		limit = store.DefaultListLimit
	case limit > store.MaxListLimit:
		limit = store.MaxListLimit
	}
	records, err := h.store.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list valuations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list valuations", nil)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// HandleReport renders a saved valuation. Query: format=json|md|text|html.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "storage is not configured", nil)
		return
	}
	rec, err := h.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error(), nil)
		return
	}
	if err != nil {
		h.logger.Error("failed to load valuation", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load valuation", nil)
		return
	}

	format := r.URL.Query().Get("format")
	body, err := report.Render(report.Report{ID: rec.ID, Input: rec.Input, Output: rec.Output}, format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	w.Header().Set("Content-Type", report.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// decodeAndValidate reads a JSON body into v, repairing near-JSON when the
// strict decode fails, and validates it. It writes the error response and
// returns false on failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body", nil)
		return false
	}
	if err := utils.DecodeLenient(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeError(w, http.StatusBadRequest, "validation failed", describe(verrs))
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return false
	}
	return true
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describe(errs validator.ValidationErrors) []string {
	details := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required", "required_without":
			details = append(details, field+" is required")
		case "gte":
			details = append(details, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "lte":
			details = append(details, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "oneof":
			details = append(details, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			details = append(details, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return details
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, details []string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func queryBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}
