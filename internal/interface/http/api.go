package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domadmin "example.com/aquapure-store/internal/domain/admin"
	domcart "example.com/aquapure-store/internal/domain/cart"
	domcategory "example.com/aquapure-store/internal/domain/category"
	domorder "example.com/aquapure-store/internal/domain/order"
	domproduct "example.com/aquapure-store/internal/domain/product"
	"example.com/aquapure-store/internal/infra/eventbus"
	"example.com/aquapure-store/internal/infra/kv"
	"example.com/aquapure-store/internal/infra/source"
	"example.com/aquapure-store/internal/platform/currency"
	authuc "example.com/aquapure-store/internal/usecase/auth"
	cartuc "example.com/aquapure-store/internal/usecase/cart"
	cataloguc "example.com/aquapure-store/internal/usecase/catalog"
	categoryuc "example.com/aquapure-store/internal/usecase/category"
	checkoutuc "example.com/aquapure-store/internal/usecase/checkout"
	settingsuc "example.com/aquapure-store/internal/usecase/settings"
)

type API struct {
	catalogSvc  *cataloguc.Service
	categorySvc *categoryuc.Service
	cartSvc     *cartuc.Service
	checkoutSvc *checkoutuc.Service
	authSvc     *authuc.Service
	settingsSvc *settingsuc.Service
	events      *eventbus.Bus
	money       *currency.Formatter
	logger      *zap.Logger
	validator   *validator.Validate
	limiter     *loginLimiter
}

type Dependencies struct {
	CatalogService  *cataloguc.Service
	CategoryService *categoryuc.Service
	CartService     *cartuc.Service
	CheckoutService *checkoutuc.Service
	AuthService     *authuc.Service
	SettingsService *settingsuc.Service
	Events          *eventbus.Bus
	Formatter       *currency.Formatter
	Logger          *zap.Logger
	// LoginRatePerMinute caps login attempts per client IP.
	LoginRatePerMinute int
}

func NewAPI(deps Dependencies) *API {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	money := deps.Formatter
	if money == nil {
		money = currency.NewFormatter("en-IN")
	}
	events := deps.Events
	if events == nil {
		events = eventbus.New()
	}
	return &API{
		catalogSvc:  deps.CatalogService,
		categorySvc: deps.CategoryService,
		cartSvc:     deps.CartService,
		checkoutSvc: deps.CheckoutService,
		authSvc:     deps.AuthService,
		settingsSvc: deps.SettingsService,
		events:      events,
		money:       money,
		logger:      logger.Named("http"),
		validator:   validator.New(),
		limiter:     newLoginLimiter(deps.LoginRatePerMinute),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(a.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", a.handleListProducts)
		r.Get("/products/{id}", a.handleGetProduct)
		r.Get("/categories", a.handleListCategories)

		r.Get("/cart", a.handleGetCart)
		r.Post("/cart/items", a.handleAddCartItem)
		r.Patch("/cart/items/{id}", a.handleChangeCartItem)
		r.Delete("/cart/items/{id}", a.handleRemoveCartItem)
		r.Post("/checkout", a.handleCheckout)

		r.Get("/events", a.handleEvents)

		r.Route("/admin", func(admin chi.Router) {
			admin.With(a.limiter.middleware).Post("/login", a.handleLogin)
			admin.Post("/password/strength", a.handlePasswordStrength)

			admin.Group(func(ar chi.Router) {
				ar.Use(a.adminMiddleware)

				ar.Get("/session", a.handleSession)
				ar.Post("/session/renew", a.handleRenewSession)
				ar.Post("/logout", a.handleLogout)
				ar.Put("/password", a.handleChangePassword)
				ar.Post("/password/reset", a.handleResetPassword)

				ar.Route("/products", func(rr chi.Router) {
					rr.Get("/", a.handleListProductsAdmin)
					rr.Post("/", a.handleCreateProduct)
					rr.Post("/reset", a.handleResetProducts)
					rr.Put("/{id}", a.handleUpdateProduct)
					rr.Delete("/{id}", a.handleDeleteProduct)
				})

				ar.Get("/stats", a.handleStats)
				ar.Get("/export", a.handleExport)
				ar.Post("/import", a.handleImport)
				ar.Delete("/data", a.handleClearData)
				ar.Get("/storage", a.handleStorage)
				ar.Get("/settings/recipient", a.handleGetRecipient)
				ar.Put("/settings/recipient", a.handleSetRecipient)
			})
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Message: userMessage(err)})
}

// respondDecodeError answers a failed decodeAndValidate: 422 with the failing
// fields for validation errors, 400 for anything else.
func respondDecodeError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation failed",
			Message: "Please fill all required fields!",
			Details: details,
		})
		return
	}
	respondError(w, http.StatusBadRequest, err)
}

// userMessage is the notification text shown for err, if any.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domcart.ErrOutOfStock):
		return "This product is out of stock!"
	case errors.Is(err, domcart.ErrStockExceeded):
		return "Not enough items available in stock!"
	case errors.Is(err, domorder.ErrEmptyCart):
		return "Your cart is empty!"
	case errors.Is(err, domproduct.ErrProductNotFound):
		return "Product not found!"
	case errors.Is(err, domproduct.ErrInvalidProduct):
		return "Please fill all required fields!"
	case errors.Is(err, domproduct.ErrInvalidCatalogFormat),
		errors.Is(err, domproduct.ErrCorruptCatalog):
		return "Error importing file. Please check the format."
	case errors.Is(err, domorder.ErrInvalidRecipient):
		return "Please enter a valid WhatsApp number!"
	case errors.Is(err, domadmin.ErrUnauthorized):
		return "Please login to continue."
	case errors.Is(err, domadmin.ErrSessionExpired):
		return "Session expired. Please login again."
	case errors.Is(err, kv.ErrQuotaExceeded),
		errors.Is(err, domproduct.ErrSaveFailed):
		return "Error saving data. Please try again."
	case errors.Is(err, domproduct.ErrNoProducts):
		return "Unable to load products from server."
	default:
		return ""
	}
}

func mapProduct(p *domproduct.Product, money *currency.Formatter) map[string]any {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return map[string]any{
		"id":            p.ID,
		"name":          p.Name,
		"price":         p.Price,
		"price_display": money.Amount(p.Price),
		"description":   p.Description,
		"image":         p.Image,
		"features":      features,
		"category":      p.Category,
		"category_name": domcategory.DisplayName(p.Category),
		"stock":         p.Stock,
		"in_stock":      p.InStock(),
	}
}

func mapProducts(products []*domproduct.Product, money *currency.Formatter) []map[string]any {
	resp := make([]map[string]any, 0, len(products))
	for _, p := range products {
		resp = append(resp, mapProduct(p, money))
	}
	return resp
}

func mapCart(c domcart.Cart, money *currency.Formatter) map[string]any {
	items := make([]map[string]any, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, map[string]any{
			"product_id":       item.ID,
			"name":             item.Name,
			"price":            item.Price,
			"image":            item.Image,
			"quantity":         item.Quantity,
			"subtotal":         item.Subtotal(),
			"subtotal_display": money.Amount(item.Subtotal()),
		})
	}
	return map[string]any{
		"items":         items,
		"count":         c.Count(),
		"total":         c.Total(),
		"total_display": money.Amount(c.Total()),
	}
}

func mapLink(l *domorder.Link) map[string]any {
	return map[string]any{
		"url":       l.URL,
		"recipient": l.Recipient,
		"message":   l.Message,
		"total":     l.Total,
		"items":     l.Items,
	}
}

func mapSession(s *authuc.SessionInfo) map[string]any {
	return map[string]any{
		"login_time":        s.LoginTime,
		"expires_at":        s.ExpiresAt,
		"remaining_seconds": int64(s.Remaining.Seconds()),
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domproduct.ErrInvalidProduct),
		errors.Is(err, domorder.ErrInvalidRecipient),
		errors.Is(err, domorder.ErrEmptyCart),
		errors.Is(err, domadmin.ErrInvalidCredential),
		errors.Is(err, domadmin.ErrPasswordFieldsRequired),
		errors.Is(err, domadmin.ErrPasswordMismatch),
		errors.Is(err, domadmin.ErrWeakPassword),
		errors.Is(err, domadmin.ErrPasswordUnchanged):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domproduct.ErrInvalidCatalogFormat),
		errors.Is(err, domproduct.ErrCorruptCatalog):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domproduct.ErrProductNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domcart.ErrOutOfStock),
		errors.Is(err, domcart.ErrStockExceeded):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, domadmin.ErrUnauthorized),
		errors.Is(err, domadmin.ErrSessionExpired):
		respondError(w, http.StatusUnauthorized, err)
	case errors.Is(err, kv.ErrQuotaExceeded),
		errors.Is(err, domproduct.ErrSaveFailed):
		respondError(w, http.StatusInsufficientStorage, err)
	case errors.Is(err, domproduct.ErrNoProducts),
		errors.Is(err, source.ErrFetch):
		respondError(w, http.StatusServiceUnavailable, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
