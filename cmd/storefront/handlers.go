package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gookit/slog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/storefront-ecom/docs"
	"github.com/MikeMC777/storefront-ecom/internal/customer"
	"github.com/MikeMC777/storefront-ecom/internal/httpx"
	"github.com/MikeMC777/storefront-ecom/internal/invoice"
	"github.com/MikeMC777/storefront-ecom/internal/order"
	"github.com/MikeMC777/storefront-ecom/internal/payment"
	"github.com/MikeMC777/storefront-ecom/internal/product"
)

type orderCreator interface {
	Create(ctx context.Context, req order.CreateOrderRequest) (*order.CreateOrderResult, error)
}

type orderTracker interface {
	Track(ctx context.Context, key string) (*order.Tracking, error)
}

type statusUpdater interface {
	UpdateStatus(ctx context.Context, orderID int64, to order.Status, by, notes string) (*order.Order, error)
}

type invoiceDispatcher interface {
	Dispatch(ctx context.Context, orderNumber string) (*invoice.Result, error)
	DispatchOrder(ctx context.Context, orderID int64, orderNumber string) (*invoice.Result, error)
}

type notificationIngestor interface {
	Ingest(ctx context.Context, key, text string) (*payment.Notification, error)
}

type paymentVerifier interface {
	Verify(ctx context.Context, req payment.VerifyRequest) (payment.VerifyResult, error)
}

type deps struct {
	Orders       orderCreator
	Tracker      orderTracker
	Status       statusUpdater
	Invoices     invoiceDispatcher
	Ingestor     notificationIngestor
	Verifier     paymentVerifier
	Products     product.Repository
	Customers    customer.Repository
	AdminKeyHash string
}

func newRouter(d deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/products", listProductsHandler(d.Products))
	r.GET("/products/:id", getProductHandler(d.Products))

	r.POST("/orders", createOrderHandler(d.Orders, d.Invoices))
	r.GET("/orders/track", trackOrderHandler(d.Tracker))
	r.POST("/orders/:number/invoice", dispatchInvoiceHandler(d.Invoices))

	r.POST("/payments/verify", verifyPaymentHandler(d.Verifier))
	r.Any("/payments/notify", ingestNotificationHandler(d.Ingestor))

	admin := r.Group("/admin", httpx.AdminKey(d.AdminKeyHash))
	admin.PUT("/orders/:id/status", updateOrderStatusHandler(d.Status))
	admin.GET("/customers", listCustomersHandler(d.Customers))
	admin.GET("/customers/:id", getCustomerHandler(d.Customers))
	return r
}

type createOrderResponse struct {
	Success        bool   `json:"success"`
	OrderNumber    string `json:"orderNumber"`
	TrackingNumber string `json:"trackingNumber"`
	PaymentStatus  string `json:"paymentStatus"`
	InvoiceStatus  string `json:"invoiceStatus"`
	Warning        string `json:"warning,omitempty"`
}

// orderErrorStatus maps writer errors to an HTTP status and a caller safe message.
func orderErrorStatus(err error) (int, string) {
	switch {
	case order.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, payment.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, payment.ErrAlreadyUsed):
		return http.StatusConflict, err.Error()
	case errors.Is(err, order.ErrDuplicateEmail):
		return http.StatusConflict, order.ErrDuplicateEmail.Error()
	case errors.Is(err, order.ErrOrderNumberTaken):
		return http.StatusConflict, "order number collision, please retry"
	}
	return http.StatusInternalServerError, "failed to create order"
}

// createOrderHandler godoc
// @Summary  Place an order
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    body body     order.CreateOrderRequest true "checkout payload"
// @Success  201  {object} createOrderResponse
// @Failure  400  {object} httpx.ErrorResponse
// @Failure  404  {object} httpx.ErrorResponse
// @Failure  409  {object} httpx.ErrorResponse
// @Failure  500  {object} httpx.ErrorResponse
// @Router   /orders [post]
func createOrderHandler(orders orderCreator, invoices invoiceDispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in order.CreateOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json: "+err.Error())
			return
		}

		res, err := orders.Create(c.Request.Context(), in)
		if err != nil {
			code, msg := orderErrorStatus(err)
			if code == http.StatusInternalServerError {
				slog.Errorf("[http] rid=%s create order: %v", httpx.RequestIDFrom(c), err)
			}
			httpx.Fail(c, code, msg)
			return
		}

		out := createOrderResponse{
			Success:        true,
			OrderNumber:    res.OrderNumber,
			TrackingNumber: res.TrackingNumber,
			PaymentStatus:  res.PaymentStatus,
			InvoiceStatus:  order.InvoiceSent,
		}
		// The order is committed; the invoice call must not depend on the
		// client staying connected.
		inv, err := invoices.DispatchOrder(context.WithoutCancel(c.Request.Context()), res.OrderID, res.OrderNumber)
		if err != nil {
			out.InvoiceStatus = order.InvoiceFailed
			out.Warning = "order placed, confirmation email delayed"
		} else if inv != nil {
			out.InvoiceStatus = inv.Status
		}
		c.JSON(http.StatusCreated, out)
	}
}

// trackOrderHandler godoc
// @Summary  Track an order
// @Tags     orders
// @Produce  json
// @Param    tracking_number query    string false "tracking number"
// @Param    order_number    query    string false "order number"
// @Success  200             {object} order.Tracking
// @Failure  400             {object} httpx.ErrorResponse
// @Failure  404             {object} httpx.ErrorResponse
// @Router   /orders/track [get]
func trackOrderHandler(tracker orderTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Query("tracking_number")
		if key == "" {
			key = c.Query("order_number")
		}
		if key == "" {
			httpx.Fail(c, http.StatusBadRequest, "tracking_number or order_number is required")
			return
		}
		t, err := tracker.Track(c.Request.Context(), key)
		if errors.Is(err, order.ErrNotFound) {
			httpx.Fail(c, http.StatusNotFound, "order not found")
			return
		}
		if err != nil {
			slog.Errorf("[http] rid=%s track %s: %v", httpx.RequestIDFrom(c), key, err)
			httpx.Fail(c, http.StatusInternalServerError, "failed to load order")
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// dispatchInvoiceHandler godoc
// @Summary  Send the invoice for an order again
// @Tags     orders
// @Produce  json
// @Param    number path     string true "order number"
// @Success  200    {object} invoice.Result
// @Failure  404    {object} httpx.ErrorResponse
// @Failure  502    {object} invoice.Result
// @Router   /orders/{number}/invoice [post]
func dispatchInvoiceHandler(invoices invoiceDispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := invoices.Dispatch(c.Request.Context(), c.Param("number"))
		switch {
		case errors.Is(err, order.ErrNotFound):
			httpx.Fail(c, http.StatusNotFound, "order not found")
		case err != nil && res != nil:
			c.JSON(http.StatusBadGateway, res)
		case err != nil:
			httpx.Fail(c, http.StatusInternalServerError, "failed to dispatch invoice")
		default:
			c.JSON(http.StatusOK, res)
		}
	}
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// verifyPaymentHandler godoc
// @Summary  Check a mobile payment TrxID before checkout
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    body body     payment.VerifyRequest true "transaction to verify"
// @Success  200  {object} verifyResponse
// @Failure  422  {object} verifyResponse
// @Router   /payments/verify [post]
func verifyPaymentHandler(v paymentVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in payment.VerifyRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json: "+err.Error())
			return
		}
		res, err := v.Verify(c.Request.Context(), in)
		if err != nil {
			slog.Errorf("[http] rid=%s verify %s: %v", httpx.RequestIDFrom(c), in.TrxID, err)
			httpx.Fail(c, http.StatusInternalServerError, "failed to verify payment")
			return
		}
		if !res.Verified {
			c.JSON(http.StatusUnprocessableEntity, verifyResponse{Success: false, Message: res.Reason})
			return
		}
		c.JSON(http.StatusOK, verifyResponse{Success: true, Message: "payment verified"})
	}
}

// ingestNotificationHandler godoc
// @Summary  Receive a forwarded payment SMS
// @Tags     payments
// @Accept   x-www-form-urlencoded
// @Produce  plain
// @Param    key     formData string true  "shared secret"
// @Param    message formData string false "SMS text"
// @Param    text    formData string false "SMS text (fallback field)"
// @Success  200     {string} string
// @Failure  400     {string} string
// @Failure  401     {string} string
// @Failure  405     {string} string
// @Failure  500     {string} string
// @Router   /payments/notify [post]
func ingestNotificationHandler(ing notificationIngestor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.String(http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		text := c.PostForm("message")
		if text == "" {
			text = c.PostForm("text")
		}

		_, err := ing.Ingest(c.Request.Context(), c.PostForm("key"), text)
		switch {
		case err == nil:
			c.String(http.StatusOK, "Message stored successfully")
		case errors.Is(err, payment.ErrUnauthorized):
			c.String(http.StatusUnauthorized, "Unauthorized")
		case errors.Is(err, payment.ErrEmptyMessage):
			c.String(http.StatusBadRequest, "Message is required")
		case errors.Is(err, payment.ErrNotStored):
			c.String(http.StatusInternalServerError, "Failed to store message")
		default:
			slog.Errorf("[http] rid=%s ingest: %v", httpx.RequestIDFrom(c), err)
			c.String(http.StatusInternalServerError, "Internal server error")
		}
	}
}

// updateOrderStatusHandler godoc
// @Summary  Move an order to a new status
// @Tags     admin
// @Accept   json
// @Produce  json
// @Param    X-Admin-Key header   string                    true "back office key"
// @Param    id          path     int                       true "order id"
// @Param    body        body     order.UpdateStatusRequest true "new status"
// @Success  200         {object} order.Order
// @Failure  400         {object} httpx.ErrorResponse
// @Failure  404         {object} httpx.ErrorResponse
// @Failure  409         {object} httpx.ErrorResponse
// @Router   /admin/orders/{id}/status [put]
func updateOrderStatusHandler(u statusUpdater) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid order id")
			return
		}
		var in order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		to, ok := order.ParseStatus(in.Status)
		if !ok {
			httpx.Fail(c, http.StatusBadRequest, "invalid status")
			return
		}

		o, err := u.UpdateStatus(c.Request.Context(), id, to, "admin", in.Notes)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, o)
		case errors.Is(err, order.ErrNotFound):
			httpx.Fail(c, http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrInvalidTransition):
			httpx.Fail(c, http.StatusConflict, err.Error())
		default:
			slog.Errorf("[http] rid=%s update status %d: %v", httpx.RequestIDFrom(c), id, err)
			httpx.Fail(c, http.StatusInternalServerError, "failed to update status")
		}
	}
}

func pageParams(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// listProductsHandler godoc
// @Summary  List catalog products
// @Tags     products
// @Produce  json
// @Param    q      query    string false "search"
// @Param    limit  query    int    false "page size"
// @Param    offset query    int    false "offset"
// @Success  200    {object} product.ListResponse
// @Router   /products [get]
func listProductsHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pageParams(c)
		q := product.Query{Q: c.Query("q"), Limit: limit, Offset: offset}.Normalize()
		items, err := repo.List(c.Request.Context(), q)
		if err != nil {
			slog.Errorf("[http] rid=%s list products: %v", httpx.RequestIDFrom(c), err)
			httpx.Fail(c, http.StatusInternalServerError, "failed to list products")
			return
		}
		if items == nil {
			items = []product.Product{}
		}
		c.JSON(http.StatusOK, product.ListResponse{Q: q.Q, Limit: q.Limit, Offset: q.Offset, Items: product.Priced(items)})
	}
}

// getProductHandler godoc
// @Summary  Get a product
// @Tags     products
// @Produce  json
// @Param    id  path     int true "product id"
// @Success  200 {object} product.Product
// @Failure  404 {object} httpx.ErrorResponse
// @Router   /products/{id} [get]
func getProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid product id")
			return
		}
		p, err := repo.GetByID(c.Request.Context(), id)
		if errors.Is(err, product.ErrNotFound) {
			httpx.Fail(c, http.StatusNotFound, "product not found")
			return
		}
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "failed to load product")
			return
		}
		c.JSON(http.StatusOK, product.Priced([]product.Product{*p})[0])
	}
}

// listCustomersHandler godoc
// @Summary  List customers, newest first
// @Tags     admin
// @Produce  json
// @Param    X-Admin-Key header   string true  "back office key"
// @Param    limit       query    int    false "page size"
// @Param    offset      query    int    false "offset"
// @Success  200         {array}  customer.Customer
// @Router   /admin/customers [get]
func listCustomersHandler(repo customer.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pageParams(c)
		out, err := repo.List(c.Request.Context(), limit, offset)
		if err != nil {
			slog.Errorf("[http] rid=%s list customers: %v", httpx.RequestIDFrom(c), err)
			httpx.Fail(c, http.StatusInternalServerError, "failed to list customers")
			return
		}
		if out == nil {
			out = []customer.Customer{}
		}
		c.JSON(http.StatusOK, gin.H{"items": out, "limit": limit, "offset": offset})
	}
}

// getCustomerHandler godoc
// @Summary  Get one customer
// @Tags     admin
// @Produce  json
// @Param    X-Admin-Key header   string true "back office key"
// @Param    id          path     int    true "customer id"
// @Success  200         {object} customer.Customer
// @Failure  404         {object} httpx.ErrorResponse
// @Router   /admin/customers/{id} [get]
func getCustomerHandler(repo customer.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid customer id")
			return
		}
		cu, err := repo.GetByID(c.Request.Context(), id)
		if errors.Is(err, customer.ErrNotFound) {
			httpx.Fail(c, http.StatusNotFound, "customer not found")
			return
		}
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "failed to load customer")
			return
		}
		c.JSON(http.StatusOK, cu)
	}
}
