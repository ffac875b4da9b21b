package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SupplierResponse is the JSON projection of a supplier reference.
type SupplierResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetActiveSuppliers handles GET /api/v1/suppliers. Order entry uses the
// list to pick a supplier before creating a draft.
func (s *Server) GetActiveSuppliers(ctx echo.Context) error {
	found, err := s.suppliers.ListActive(ctx.Request().Context())
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]SupplierResponse, 0, len(found))
	for _, supplier := range found {
		response = append(response, SupplierResponse{
			ID:   supplier.ID.String(),
			Name: supplier.Name,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}
