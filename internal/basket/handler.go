// internal/basket/handler.go
package basket

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/blake2b"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Register mounts the basket routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Post("/baskets", h.HandleCreateBasket)
	r.Get("/baskets/{basketId}", h.HandleGetBasket)
	r.Post("/baskets/{basketId}/item", h.HandleAddItem)
	r.Post("/baskets/{basketId}/items", h.HandleAddItems)
	r.Delete("/baskets/{basketId}/items/{itemId}", h.HandleRemoveItem)
}

func (h *Handler) HandleCreateBasket(w http.ResponseWriter, r *http.Request) {
	// The request body carries no fields yet; anything sent must still be JSON.
	var req struct{}
	if err := decodeBody(r, &req, true); err != nil {
		writeValidationProblem(w, fieldErrors{"body": {err.Error()}})
		return
	}

	result, err := h.service.CreateBasket(r.Context(), CreateBasketCommand{})
	if err != nil {
		h.writeInternalError(w, r, err)
		return
	}

	switch result.Outcome {
	case OutcomeOK:
		w.Header().Set("Location", "/baskets/"+result.Basket.ID().String())
		writeJSON(w, http.StatusCreated, BasketResponse{Basket: ToDTO(result.Basket)})
	default:
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: result.Message})
	}
}

func (h *Handler) HandleGetBasket(w http.ResponseWriter, r *http.Request) {
	id, ok := basketIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetBasket(r.Context(), id)
	if err != nil {
		h.writeInternalError(w, r, err)
		return
	}
	if result.Outcome != OutcomeOK {
		h.writeResult(w, r, result)
		return
	}

	body, err := json.Marshal(BasketResponse{Basket: ToDTO(result.Basket)})
	if err != nil {
		h.writeInternalError(w, r, err)
		return
	}
	etag := etagFor(body)
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(append(body, '\n'))
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := basketIDParam(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeValidationProblem(w, fieldErrors{"body": {err.Error()}})
		return
	}
	errs, err := validateRequest(req)
	if err != nil {
		h.writeInternalError(w, r, err)
		return
	}
	if !errs.empty() {
		writeValidationProblem(w, errs)
		return
	}

	result, err := h.service.AddItem(r.Context(), id, req.command())
	if err != nil {
		h.writeInternalError(w, r, err)
		return
	}
	h.writeResult(w, r, result)
}

func (h *Handler) HandleAddItems(w http.ResponseWriter, r *http.Request) {
	id, ok := basketIDParam(w, r)
	if !ok {
		return
	}

	var req BatchAddItemRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeValidationProblem(w, fieldErrors{"body": {err.Error()}})
		return
	}
	errs, err := validateRequest(req)
	if err != nil {
		h.writeInternalError(w, r, err)
		return
	}
	if !errs.empty() {
		writeValidationProblem(w, errs)
		return
	}

	result, err := h.service.AddItems(r.Context(), id, req.command())
	if err != nil {
		h.writeInternalError(w, r, err)
		return
	}
	h.writeResult(w, r, result)
}

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := basketIDParam(w, r)
	if !ok {
		return
	}
	itemID, err := ParseItemID(chi.URLParam(r, "itemId"))
	if err != nil {
		writeValidationProblem(w, fieldErrors{"itemId": {Message(err)}})
		return
	}

	result, err := h.service.RemoveItem(r.Context(), id, itemID)
	if err != nil {
		h.writeInternalError(w, r, err)
		return
	}
	h.writeResult(w, r, result)
}

func (h *Handler) writeResult(w http.ResponseWriter, r *http.Request, result Result) {
	switch result.Outcome {
	case OutcomeOK:
		writeJSON(w, http.StatusOK, BasketResponse{Basket: ToDTO(result.Basket)})
	case OutcomeNotFound:
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: result.Message})
	case OutcomeViolation:
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: result.Message})
	default:
		h.writeInternalError(w, r, errors.New("unknown result outcome"))
	}
}

func (h *Handler) writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "unhandled error processing request",
		"method", r.Method, "path", r.URL.Path, "error", err)
	WriteInternalError(w)
}

// WriteInternalError writes the generic 500 body.
func WriteInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: "An unexpected error occurred.",
		Code:  "INTERNAL_SERVER_ERROR",
	})
}

func basketIDParam(w http.ResponseWriter, r *http.Request) (BasketID, bool) {
	id, err := ParseBasketID(chi.URLParam(r, "basketId"))
	if err != nil {
		writeValidationProblem(w, fieldErrors{"basketId": {Message(err)}})
		return BasketID{}, false
	}
	return id, true
}

func decodeBody(r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			if allowEmpty {
				return nil
			}
			return errors.New("A request body is required.")
		}
		return errors.New("The request body is not valid JSON.")
	}
	return nil
}

func writeValidationProblem(w http.ResponseWriter, errs fieldErrors) {
	writeJSON(w, http.StatusBadRequest, ValidationProblem{
		Title:  validationTitle,
		Status: http.StatusBadRequest,
		Errors: errs,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// etagMatches applies the weak comparison If-None-Match uses: "*" matches
// anything and W/ prefixes are ignored.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}

func etagFor(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
