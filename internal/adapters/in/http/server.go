package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server implements the HTTP API for handling order requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	updateStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getOrderHandler queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		updateStatusHandler: updateStatusHandler,
		getOrderHandler:     getOrderHandler,
	}
}

// RegisterRoutes mounts the API on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders", s.CreateOrder)
	e.PATCH("/api/v1/orders/:id/status", s.UpdateOrderStatus)
	e.GET("/api/v1/orders/:id", s.GetOrder)
}

// errorResponse is the envelope for every failed request.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func fail(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, errorResponse{Success: false, Message: message})
}

// mapError translates an application error into an HTTP status. Unrecognized
// errors stay 500 so internal details never leak as client faults.
func mapError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, account.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, services.ErrPriceChanged),
		errors.Is(err, product.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, commands.ErrCartIsEmpty),
		errors.Is(err, services.ErrProductInactive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type guestInfoPayload struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type guestItemPayload struct {
	ProductID     string          `json:"productId"`
	Quantity      int             `json:"quantity"`
	DeclaredPrice decimal.Decimal `json:"declaredPrice"`
	Name          string          `json:"name"`
}

type createOrderPayload struct {
	CustomerID     *string            `json:"customerId"`
	GuestInfo      *guestInfoPayload  `json:"guestInfo"`
	GuestCartItems []guestItemPayload `json:"guestCartItems"`

	ShippingAddress string `json:"shippingAddress"`
	Note            string `json:"note"`
	PaymentMethod   string `json:"paymentMethod"`
	RequireInvoice  bool   `json:"requireInvoice"`
}

// CreateOrder handles POST /api/v1/orders - runs the checkout transaction.
// A payload with customerId checks out that customer's persisted cart; a
// payload with guestInfo and guestCartItems checks out as a guest.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var payload createOrderPayload
	if err := ctx.Bind(&payload); err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := buildCreateOrderCommand(orderID, payload)
	if err != nil {
		return fail(ctx, mapError(err), err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return fail(ctx, mapError(handleErr), handleErr.Error())
	}

	return s.respondWithOrder(ctx, http.StatusCreated, orderID)
}

func buildCreateOrderCommand(orderID kernel.UUID, payload createOrderPayload) (commands.CreateOrderCommand, error) {
	if payload.CustomerID != nil {
		customerID, err := kernel.UUIDFromString(*payload.CustomerID)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}
		return commands.NewCreateOrderCommand(
			orderID, customerID,
			payload.ShippingAddress, payload.Note, payload.PaymentMethod, payload.RequireInvoice)
	}

	if payload.GuestInfo == nil {
		return commands.CreateOrderCommand{}, errs.NewValueIsRequiredError("customerId or guestInfo")
	}

	guestInfo, err := cart.NewGuestInfo(payload.GuestInfo.FullName, payload.GuestInfo.Phone, payload.GuestInfo.Email)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	guestItems := make([]cart.GuestItem, 0, len(payload.GuestCartItems))
	for _, itemPayload := range payload.GuestCartItems {
		item, itemErr := buildGuestItem(itemPayload)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, itemErr
		}
		guestItems = append(guestItems, item)
	}

	return commands.NewCreateGuestOrderCommand(
		orderID, guestInfo, guestItems,
		payload.ShippingAddress, payload.Note, payload.PaymentMethod, payload.RequireInvoice)
}

func buildGuestItem(payload guestItemPayload) (cart.GuestItem, error) {
	productID, err := kernel.UUIDFromString(payload.ProductID)
	if err != nil {
		return cart.GuestItem{}, err
	}
	declaredPrice, err := kernel.NewMoney(payload.DeclaredPrice)
	if err != nil {
		return cart.GuestItem{}, err
	}
	return cart.NewGuestItem(productID, payload.Quantity, declaredPrice, payload.Name)
}

type updateStatusPayload struct {
	ActorID      string `json:"actorId"`
	Status       string `json:"status"`
	CancelReason string `json:"cancelReason"`
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - requests a
// lifecycle transition on behalf of the acting account.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid order id")
	}

	var payload updateStatusPayload
	if err := ctx.Bind(&payload); err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(payload.ActorID)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid actor id")
	}

	targetStatus, err := order.StatusFromString(payload.Status)
	if err != nil {
		return fail(ctx, mapError(err), err.Error())
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actorID, targetStatus, payload.CancelReason)
	if err != nil {
		return fail(ctx, mapError(err), err.Error())
	}

	if handleErr := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return fail(ctx, mapError(handleErr), handleErr.Error())
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with its
// line items and invoices.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid order id")
	}

	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

func (s *Server) respondWithOrder(ctx echo.Context, status int, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return fail(ctx, mapError(err), err.Error())
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, mapError(err), err.Error())
	}

	return ctx.JSON(status, response)
}
