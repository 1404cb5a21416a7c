package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/vanshika/worldsporta/backend/internal/domain"
	"github.com/vanshika/worldsporta/backend/internal/service"
)

// Admin collections addressable under /admin/.
const (
	collectionNews     = "news"
	collectionScores   = "scores"
	collectionProducts = "products"
	collectionOrders   = "orders"
	collectionUsers    = "users"
)

func (h *APIHandlers) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if !h.requireAdmin(w) {
		return
	}

	st := h.site.Stats()
	respondJSON(w, http.StatusOK, statsResponse{
		News:         st.News,
		Scores:       st.Scores,
		LiveMatches:  st.LiveMatches,
		Products:     st.Products,
		Orders:       st.Orders,
		Users:        st.Users,
		BlockedUsers: st.BlockedUsers,
		Revenue:      st.Revenue,
	})
}

// handleAdmin dispatches /admin/{collection} and /admin/{collection}/{id}.
func (h *APIHandlers) handleAdmin(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/admin/"), "/")
	collection, id, _ := strings.Cut(rest, "/")
	if strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if !h.requireAdmin(w) {
		return
	}

	if id != "" {
		h.handleAdminItem(w, r, collection, id)
		return
	}

	switch collection {
	case collectionNews:
		switch r.Method {
		case http.MethodGet:
			respondJSON(w, http.StatusOK, h.site.News())
		case http.MethodPut:
			items := []domain.NewsArticle{}
			if !h.decodeBody(w, r, &items) {
				return
			}
			h.site.ReplaceNews(r.Context(), items)
			respondJSON(w, http.StatusOK, h.site.News())
		case http.MethodPost:
			var article domain.NewsArticle
			if !h.decodeBody(w, r, &article) {
				return
			}
			published, err := h.site.PublishNews(r.Context(), article)
			if err != nil {
				h.writeServiceError(w, err)
				return
			}
			respondJSON(w, http.StatusCreated, published)
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPost)
		}
	case collectionScores:
		replaceCollection(h, w, r, h.site.Scores(""), h.site.ReplaceScores)
	case collectionProducts:
		replaceCollection(h, w, r, h.site.Products(""), h.site.ReplaceProducts)
	case collectionOrders:
		replaceCollection(h, w, r, h.site.Orders(), h.site.ReplaceOrders)
	case collectionUsers:
		switch r.Method {
		case http.MethodGet:
			respondJSON(w, http.StatusOK, publicUsers(h.site.Users()))
		case http.MethodPut:
			items := []domain.User{}
			if !h.decodeBody(w, r, &items) {
				return
			}
			h.site.ReplaceUsers(r.Context(), items)
			respondJSON(w, http.StatusOK, publicUsers(h.site.Users()))
		default:
			methodNotAllowed(w, http.MethodGet, http.MethodPut)
		}
	default:
		writeError(w, http.StatusNotFound, "unknown collection")
	}
}

// replaceCollection serves GET (list) and PUT (whole-collection replace) for
// collections without extra verbs.
func replaceCollection[T any](h *APIHandlers, w http.ResponseWriter, r *http.Request, current []T, replace func(context.Context, []T)) {
	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, current)
	case http.MethodPut:
		var items []T
		if !h.decodeBody(w, r, &items) {
			return
		}
		if items == nil {
			items = []T{}
		}
		replace(r.Context(), items)
		respondJSON(w, http.StatusOK, items)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

func (h *APIHandlers) handleAdminItem(w http.ResponseWriter, r *http.Request, collection, id string) {
	switch {
	case r.Method == http.MethodDelete:
		h.deleteItem(w, r, collection, id)
	case r.Method == http.MethodPut && collection == collectionScores:
		var score domain.MatchScore
		if !h.decodeBody(w, r, &score) {
			return
		}
		score.ID = id
		saved, err := h.site.SaveScore(r.Context(), score)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, saved)
	case r.Method == http.MethodPut && collection == collectionProducts:
		var product domain.Product
		if !h.decodeBody(w, r, &product) {
			return
		}
		product.ID = id
		saved, err := h.site.SaveProduct(r.Context(), product)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, saved)
	case r.Method == http.MethodPatch && collection == collectionOrders:
		var payload orderStatusRequest
		if !h.decodeBody(w, r, &payload) {
			return
		}
		order, err := h.site.UpdateOrderStatus(r.Context(), id, payload.Status)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, order)
	case r.Method == http.MethodPatch && collection == collectionUsers:
		var payload userPatchRequest
		if !h.decodeBody(w, r, &payload) {
			return
		}
		user, err := h.site.UpdateUser(r.Context(), id, service.UserPatch{
			Role:      payload.Role,
			IsBlocked: payload.IsBlocked,
		})
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, user.Public())
	default:
		methodNotAllowed(w, http.MethodDelete)
	}
}

func (h *APIHandlers) deleteItem(w http.ResponseWriter, r *http.Request, collection, id string) {
	var err error
	switch collection {
	case collectionNews:
		err = h.site.DeleteNews(r.Context(), id)
	case collectionScores:
		err = h.site.DeleteScore(r.Context(), id)
	case collectionProducts:
		err = h.site.DeleteProduct(r.Context(), id)
	case collectionOrders:
		err = h.site.DeleteOrder(r.Context(), id)
	case collectionUsers:
		err = h.site.DeleteUser(r.Context(), id)
	default:
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandlers) requireAdmin(w http.ResponseWriter) bool {
	if _, err := h.site.RequireAdmin(); err != nil {
		h.writeServiceError(w, err)
		return false
	}
	return true
}

func (h *APIHandlers) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func publicUsers(users []domain.User) []domain.User {
	out := make([]domain.User, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out
}

type orderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

type userPatchRequest struct {
	Role      *domain.Role `json:"role"`
	IsBlocked *bool        `json:"isBlocked"`
}

type statsResponse struct {
	News         int     `json:"news"`
	Scores       int     `json:"scores"`
	LiveMatches  int     `json:"liveMatches"`
	Products     int     `json:"products"`
	Orders       int     `json:"orders"`
	Users        int     `json:"users"`
	BlockedUsers int     `json:"blockedUsers"`
	Revenue      float64 `json:"revenue"`
}
