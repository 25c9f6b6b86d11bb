package middlewares

import (
	"context"
	"log"
	"net/http"

	"github.com/freshacres/go-farmstore/app/helpers"
	"github.com/freshacres/go-farmstore/app/repositories"
	"github.com/freshacres/go-farmstore/app/utils/sessions"
)

// UserContextMiddleware resolves the session's user ID and cart ID into the
// request context so handlers do not touch the cookie store directly.
func UserContextMiddleware(store sessions.SessionStore, userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userID := store.GetUserID(r); userID != "" {
				ctx = context.WithValue(ctx, helpers.ContextKeyUserID, userID)

				user, err := userRepo.FindByID(ctx, userID)
				if err != nil {
					log.Printf("UserContextMiddleware: failed to load user %s: %v", userID, err)
				} else if user != nil {
					ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
				}
			}

			if cartID := store.GetCartID(r); cartID != "" {
				ctx = context.WithValue(ctx, helpers.ContextKeyCartID, cartID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartCountMiddleware puts the session cart's item count into the context
// for handlers that display it.
func CartCountMiddleware(store sessions.SessionStore, cartRepo repositories.CartRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cartID := store.GetCartID(r)
			if cartID == "" {
				next.ServeHTTP(w, r)
				return
			}

			count, err := cartRepo.GetCartItemCount(r.Context(), cartID)
			if err != nil {
				log.Printf("CartCountMiddleware: error getting cart item count for cartID %s: %v", cartID, err)
				count = 0
			}

			ctx := context.WithValue(r.Context(), helpers.CartCountKey, count)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
