package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/modules/sales/presentation/mappers"
	"github.com/kraftedge/oms/modules/sales/services"
	"github.com/kraftedge/oms/pkg/composables"
	"github.com/kraftedge/oms/pkg/httpapi"
	"github.com/kraftedge/oms/pkg/serrors"
)

type OrderController struct {
	basePath string
	orders   *services.OrderService
	splits   *services.SplitService
	validate *validator.Validate
}

func NewOrderController(orders *services.OrderService, splits *services.SplitService) *OrderController {
	return &OrderController{
		basePath: "/sales/orders",
		orders:   orders,
		splits:   splits,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (c *OrderController) Key() string {
	return c.basePath
}

func (c *OrderController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/refresh", c.refresh).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.get).Methods(http.MethodGet)
	router.HandleFunc("/{id}/split", c.split).Methods(http.MethodPost)
}

func (c *OrderController) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "SALES_BAD_ORDER_ID", "invalid order id", nil)
		return
	}

	view, err := c.orders.GetByID(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteResult(w, http.StatusOK, true, nil, mappers.OrderToViewModel(view))
}

func (c *OrderController) split(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "SALES_BAD_ORDER_ID", "invalid order id", nil)
		return
	}

	var dto SplitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "SALES_BAD_PAYLOAD", "invalid request body", nil)
		return
	}
	if err := c.validate.Struct(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "SALES_VALIDATION", err.Error(), nil)
		return
	}

	result, err := c.splits.Split(r.Context(), id, dto.ItemNo, dto.ToTargets())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	view, err := c.orders.GetByID(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	messages := make([]any, 0, len(result.Messages))
	for _, m := range result.Messages {
		messages = append(messages, m)
	}
	_ = httpapi.WriteResult(w, http.StatusOK, true, messages, mappers.OrderToViewModel(view))
}

func (c *OrderController) refresh(w http.ResponseWriter, r *http.Request) {
	var dto RefreshRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "SALES_BAD_PAYLOAD", "invalid request body", nil)
		return
	}
	if err := c.validate.Struct(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "SALES_VALIDATION", err.Error(), nil)
		return
	}

	synced, err := c.orders.RefreshFromRemote(r.Context(), dto.OrderNo)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	view, err := c.orders.GetByID(r.Context(), synced.ID())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	_ = httpapi.WriteResult(w, http.StatusOK, true, nil, mappers.OrderToViewModel(view))
}

func (c *OrderController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, order.ErrNotFound) || errors.Is(err, order.ErrLineNotFound) {
		var base *serrors.BaseError
		if errors.As(err, &base) {
			_ = httpapi.WriteError(w, http.StatusNotFound, base.Code, base.Message, base.TemplateData)
			return
		}
		_ = httpapi.WriteError(w, http.StatusNotFound, "SALES_NOT_FOUND", "not found", nil)
		return
	}

	var base *serrors.BaseError
	if errors.As(err, &base) {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, base.Code, base.Message, base.TemplateData)
		return
	}

	composables.UseLogger(r.Context()).WithError(err).Error("sales request failed")
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
