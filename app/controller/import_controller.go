package controller

import (
	"net/http"

	"vitrine-backoffice/models"
	"vitrine-backoffice/service"
)

// ImportController handles the one-shot import of a legacy JSON export
type ImportController struct {
	service *service.ImportService
}

// NewImportController creates a new ImportController
func NewImportController(svc *service.ImportService) *ImportController {
	return &ImportController{service: svc}
}

// Import handles POST /admin/import/legacy
// Accepts the legacy export document ({"produtos": [...], "kits": [...], "cotacoes": [...], "metasFinanceiras": {...}}).
// Records that cannot be imported are listed in "errors"; the rest are kept.
func (c *ImportController) Import(w http.ResponseWriter, r *http.Request) {
	logger.Infof("📥 Import: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, "Import", http.MethodPost) {
		return
	}

	var dump models.LegacyDump
	if !decodeBody(w, r, nil, "Import", &dump) {
		return
	}

	result, err := c.service.Import(r.Context(), &dump)
	if err != nil {
		writeError(w, "Import", err)
		return
	}

	logger.Infof("✅ Import: %d products, %d kits, %d quotes (%d with defects), %d errors",
		result.ProductsImported, result.KitsImported, result.QuotesImported, result.QuotesWithDefects, len(result.Errors))
	writeJSON(w, http.StatusOK, result)
}
