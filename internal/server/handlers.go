package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vanshika/worldsporta/backend/internal/domain"
	"github.com/vanshika/worldsporta/backend/internal/service"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger *slog.Logger
	site   *service.SiteService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, site *service.SiteService) *APIHandlers {
	return &APIHandlers{
		logger: logger,
		site:   site,
	}
}

func (h *APIHandlers) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.respondSession(w, http.StatusOK)
	case http.MethodPost:
		var payload loginRequest
		if err := decodeJSON(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := h.site.Login(r.Context(), payload.identifier(), payload.Password); err != nil {
			h.writeServiceError(w, err)
			return
		}
		h.respondSession(w, http.StatusOK)
	case http.MethodDelete:
		h.site.Logout(r.Context())
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (h *APIHandlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var payload registerRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	_, err := h.site.Register(r.Context(), service.RegisterInput{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.respondSession(w, http.StatusCreated)
}

func (h *APIHandlers) respondSession(w http.ResponseWriter, status int) {
	resp := sessionResponse{CartCount: h.site.CartCount()}
	if u, ok := h.site.CurrentUser(); ok {
		public := u.Public()
		resp.User = &public
	}
	respondJSON(w, status, resp)
}

func (h *APIHandlers) handleNews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	respondJSON(w, http.StatusOK, h.site.News())
}

func (h *APIHandlers) handleScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	status := domain.MatchStatus(r.URL.Query().Get("status"))
	respondJSON(w, http.StatusOK, h.site.Scores(status))
}

func (h *APIHandlers) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/products"), "/")
	if id == "" {
		respondJSON(w, http.StatusOK, h.site.Products(r.URL.Query().Get("category")))
		return
	}

	product, err := h.site.Product(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *APIHandlers) handleCart(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/cart"), "/")
	if id != "" {
		if r.Method != http.MethodDelete {
			methodNotAllowed(w, http.MethodDelete)
			return
		}
		h.site.RemoveFromCart(id)
		h.respondCart(w, http.StatusOK)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.respondCart(w, http.StatusOK)
	case http.MethodPost:
		var payload cartAddRequest
		if err := decodeJSON(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if payload.ProductID == "" {
			writeError(w, http.StatusBadRequest, "productId is required")
			return
		}
		if _, err := h.site.AddProductToCart(payload.ProductID); err != nil {
			h.writeServiceError(w, err)
			return
		}
		h.respondCart(w, http.StatusOK)
	case http.MethodDelete:
		h.site.ClearCart()
		h.respondCart(w, http.StatusOK)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (h *APIHandlers) respondCart(w http.ResponseWriter, status int) {
	items := h.site.Cart()
	if items == nil {
		items = []domain.CartItem{}
	}
	respondJSON(w, status, cartResponse{
		Items: items,
		Count: h.site.CartCount(),
		Total: h.site.CartTotal(),
	})
}

func (h *APIHandlers) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	order, err := h.site.Checkout(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *APIHandlers) handleOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	user, err := h.site.RequireUser()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.site.OrdersFor(user.ID))
}

// writeServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500 without detail.
func (h *APIHandlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserBlocked), errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// identifier accepts either field the sign-in form may send.
func (req loginRequest) identifier() string {
	switch {
	case req.Identifier != "":
		return req.Identifier
	case req.Username != "":
		return req.Username
	default:
		return req.Email
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User      *domain.User `json:"user"`
	CartCount int          `json:"cartCount"`
}

type cartAddRequest struct {
	ProductID string `json:"productId"`
}

type cartResponse struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
