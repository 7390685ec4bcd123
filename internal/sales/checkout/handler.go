package checkout

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aleamz/salespoint/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// respondError translates checkout sentinels before falling back to the
// shared mapping.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBillNotFound), errors.Is(err, ErrLineNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicateSerial):
		httpx.Problem(w, http.StatusConflict, "Duplicate Serial", err.Error())
	case errors.Is(err, ErrSerialLine),
		errors.Is(err, ErrQuantity),
		errors.Is(err, ErrDiscountKind),
		errors.Is(err, ErrDiscountRange),
		errors.Is(err, ErrVariantRequired),
		errors.Is(err, ErrSerialsRequired),
		errors.Is(err, ErrVariantMismatch),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrNoCustomer):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unprocessable", err.Error())
	default:
		httpx.RespondError(w, err)
	}
}

func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	bill, err := h.service.OpenBill(r.Context())
	if err != nil {
		h.logger.Error("open bill failed", "error", err)
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, newBillResponse(bill))
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	bill, err := h.service.GetBill(r.Context(), chi.URLParam(r, "billID"))
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newBillResponse(bill))
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CloseBill(r.Context(), chi.URLParam(r, "billID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddLine(w http.ResponseWriter, r *http.Request) {
	var sel Selection
	if err := httpx.DecodeJSON(r, &sel); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	bill, err := h.service.AddLine(r.Context(), chi.URLParam(r, "billID"), sel)
	if err != nil {
		h.logger.Error("add line failed", "error", err, "product_id", sel.ProductID)
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newBillResponse(bill))
}

func (h *Handler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	bill, err := h.service.UpdateQuantity(r.Context(), chi.URLParam(r, "billID"), chi.URLParam(r, "lineID"), req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newBillResponse(bill))
}

func (h *Handler) UpdateLineDiscount(w http.ResponseWriter, r *http.Request) {
	var req UpdateDiscountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	bill, err := h.service.UpdateDiscount(r.Context(), chi.URLParam(r, "billID"), chi.URLParam(r, "lineID"),
		Discount{Kind: req.Kind, Value: req.Value})
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newBillResponse(bill))
}

func (h *Handler) ReplaceSerials(w http.ResponseWriter, r *http.Request) {
	var req ReplaceSerialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	bill, err := h.service.ReplaceSerials(r.Context(), chi.URLParam(r, "billID"), chi.URLParam(r, "lineID"), req.Serials)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newBillResponse(bill))
}

func (h *Handler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	bill, err := h.service.RemoveLine(r.Context(), chi.URLParam(r, "billID"), chi.URLParam(r, "lineID"))
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newBillResponse(bill))
}

func (h *Handler) Discount(w http.ResponseWriter, r *http.Request) {
	var req BillDiscountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	bill, err := h.service.UpdateBillDiscount(r.Context(), chi.URLParam(r, "billID"), req.Discount)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newBillResponse(bill))
}

func (h *Handler) AttachCustomer(w http.ResponseWriter, r *http.Request) {
	var req AttachCustomerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	bill, err := h.service.AttachCustomer(r.Context(), chi.URLParam(r, "billID"), req.CustomerID)
	if err != nil {
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newBillResponse(bill))
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return
	}

	order, err := h.service.Submit(r.Context(), chi.URLParam(r, "billID"), PaymentInput{
		StaffID:      req.StaffID,
		CustomerPaid: req.CustomerPaid,
		SaleDate:     req.SaleDate,
	})
	if err != nil {
		h.logger.Error("submit bill failed", "error", err, "bill_id", chi.URLParam(r, "billID"))
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}
