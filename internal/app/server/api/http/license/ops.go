package license

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) lookupOp() huma.Operation {
	return huma.Operation{
		OperationID: "licenses-lookup",
		Method:      http.MethodGet,
		Path:        "/api/v1/licenses/{key}",
		Summary:     "Look up a license",
		Description: "Returns the license status together with the saved account preferences.",
		Tags:        []string{"licenses"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) upsertOp() huma.Operation {
	return huma.Operation{
		OperationID:   "licenses-upsert",
		Method:        http.MethodPut,
		Path:          "/api/v1/licenses/{key}",
		Summary:       "Push license status",
		Description:   "Creates or updates the mirrored license. A revoked license stays revoked.",
		Tags:          []string{"licenses"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.adminMiddleware,
	}
}

func (h *Handler) preferencesOp() huma.Operation {
	return huma.Operation{
		OperationID:   "licenses-preferences",
		Method:        http.MethodPut,
		Path:          "/api/v1/licenses/{key}/preferences",
		Summary:       "Save account preferences",
		Description:   "Replaces saved email, encrypted password and extensions for an existing license.",
		Tags:          []string{"licenses"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.middleware,
	}
}
