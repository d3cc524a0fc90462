package transaction

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/nicdiaze/Finances/internal/transport"
	"github.com/nicdiaze/Finances/pkg/logger"
	"github.com/shopspring/decimal"
)

type ServiceAPI interface {
	CreateTransaction(ctx context.Context, dto CreateTransactionDTO) (*Transaction, error)
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	UpdateTransaction(ctx context.Context, id string, dto UpdateTransactionDTO) (*Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, criteria Criteria, page, pageSize int) (Page, error)
	Stats(ctx context.Context, year, month int) (Report, DateRange, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// ListResponse carries the page items plus pagination metadata computed
// before slicing.
type ListResponse struct {
	Items      []*Transaction `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

type Pagination struct {
	Current           int `json:"current"`
	Total             int `json:"total"`
	Count             int `json:"count"`
	TotalTransactions int `json:"totalTransactions"`
}

type StatsSummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
	TotalCount   int             `json:"totalCount"`
}

type StatsResponse struct {
	Period             string          `json:"period"`
	Summary            StatsSummary    `json:"summary"`
	ByCategory         []CategoryTotal `json:"byCategory"`
	RecentTransactions []*Transaction  `json:"recentTransactions"`
}

type CategoriesResponse struct {
	Income  []Category `json:"income"`
	Expense []Category `json:"expense"`
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	criteria := Criteria{
		Type:     Type(query.Get("type")),
		Category: Category(query.Get("category")),
		Search:   query.Get("search"),
	}

	var err error
	if criteria.Month, err = intParam(query.Get("month")); err != nil {
		h.WriteError(w, http.StatusBadRequest, "month must be a number")
		return
	}
	if criteria.Year, err = intParam(query.Get("year")); err != nil {
		h.WriteError(w, http.StatusBadRequest, "year must be a number")
		return
	}

	page, err := intParam(query.Get("page"))
	if err != nil || page < 0 {
		h.WriteError(w, http.StatusBadRequest, "page must not be negative")
		return
	}
	limit, err := intParam(query.Get("limit"))
	if err != nil || limit < 0 {
		h.WriteError(w, http.StatusBadRequest, "limit must not be negative")
		return
	}

	result, err := h.Service.ListTransactions(r.Context(), criteria, page, limit)
	if err != nil {
		h.Logger.Error("ListTransactions: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{
		Items: result.Items,
		Pagination: Pagination{
			Current:           result.CurrentPage,
			Total:             result.TotalPages,
			Count:             len(result.Items),
			TotalTransactions: result.TotalCount,
		},
	})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	year, err := intParam(query.Get("year"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "year must be a number")
		return
	}
	month, err := intParam(query.Get("month"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "month must be a number")
		return
	}

	report, period, err := h.Service.Stats(r.Context(), year, month)
	if err != nil {
		h.Logger.Error("GetStats: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	periodLabel := strconv.Itoa(period.From.Year())
	if month != 0 {
		periodLabel = strconv.Itoa(month) + "/" + periodLabel
	}

	h.WriteJSON(w, http.StatusOK, StatsResponse{
		Period: periodLabel,
		Summary: StatsSummary{
			TotalIncome:  report.Income.Total,
			TotalExpense: report.Expense.Total,
			Balance:      report.Balance,
			TotalCount:   report.Income.Count + report.Expense.Count,
		},
		ByCategory:         report.ByCategory,
		RecentTransactions: report.Recent,
	})
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var dto CreateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateTransaction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateTransaction(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateTransaction: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateTransaction: transaction created",
		"transaction_id", created.ID,
		"type", created.Type,
		"amount", created.Amount)

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tx, err := h.Service.GetTransaction(r.Context(), id)
	if err != nil {
		h.Logger.Error("GetTransaction: service error", "error", err, "transaction_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tx)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateTransaction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateTransaction(r.Context(), id, dto)
	if err != nil {
		h.Logger.Error("UpdateTransaction: service error", "error", err, "transaction_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.DeleteTransaction(r.Context(), id); err != nil {
		h.Logger.Error("DeleteTransaction: service error", "error", err, "transaction_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetCategories serves the fixed category sets so clients do not hardcode
// them.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, CategoriesResponse{
		Income:  CategoriesForType(TypeIncome),
		Expense: CategoriesForType(TypeExpense),
	})
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
