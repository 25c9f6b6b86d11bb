package handlers

import (
	"net/http"

	"github.com/unrolled/render"
)

func Home(r *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		_ = r.JSON(w, http.StatusOK, map[string]string{
			"name":    "farmstore",
			"message": "Fresh produce, straight from the farm.",
		})
	}
}
