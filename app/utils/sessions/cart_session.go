package sessions

import (
	"net/http"

	"github.com/google/uuid"
)

// ResolveCartID returns the cart ID bound to the request's session, minting
// and saving a fresh one for first-time guests.
func ResolveCartID(store SessionStore, w http.ResponseWriter, r *http.Request) (string, error) {
	if cartID := store.GetCartID(r); cartID != "" {
		return cartID, nil
	}

	newCartID := uuid.New().String()
	if err := store.SetCartID(w, r, newCartID); err != nil {
		return "", err
	}

	return newCartID, nil
}
