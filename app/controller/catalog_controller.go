package controller

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"vitrine-backoffice/models"
	"vitrine-backoffice/service"
)

// CatalogController handles HTTP requests for products, kits and suppliers
type CatalogController struct {
	service   *service.CatalogService
	validator *validator.Validate
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{
		service:   svc,
		validator: validator.New(),
	}
}

// Products handles POST and GET /admin/products
// Example POST request:
// {"name": "Coleira Couro", "sku": "COL-001", "supplier": "Pet Sul", "cost": "18.50", "picking": "1.50"}
func (c *CatalogController) Products(w http.ResponseWriter, r *http.Request) {
	logger.Infof("📥 Products: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, "Products", http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		products, err := c.service.ListProducts(r.Context())
		if err != nil {
			writeError(w, "ListProducts", err)
			return
		}
		writeJSON(w, http.StatusOK, products)
		return
	}

	var req models.CreateProductRequest
	if !decodeBody(w, r, c.validator, "CreateProduct", &req) {
		return
	}

	product, err := c.service.CreateProduct(r.Context(), &req)
	if err != nil {
		writeError(w, "CreateProduct", err)
		return
	}

	logger.Infof("✅ CreateProduct: product id=%d created", product.ID)
	writeJSON(w, http.StatusCreated, product)
}

// Product handles GET, PUT and DELETE /admin/products/{id}
func (c *CatalogController) Product(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "Product", http.MethodGet, http.MethodPut, http.MethodDelete) {
		return
	}

	id, err := pathID(r.URL.Path, "/admin/products/", "")
	if err != nil {
		writeError(w, "Product", err)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req models.CreateProductRequest
		if !decodeBody(w, r, c.validator, "UpdateProduct", &req) {
			return
		}
		product, err := c.service.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			writeError(w, "UpdateProduct", err)
			return
		}
		logger.Infof("✅ UpdateProduct: product id=%d updated", product.ID)
		writeJSON(w, http.StatusOK, product)
		return
	case http.MethodDelete:
		if err := c.service.DeleteProduct(r.Context(), id); err != nil {
			writeError(w, "DeleteProduct", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	product, err := c.service.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, "GetProduct", err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Kits handles POST and GET /admin/kits
// Example POST request:
// {"name": "Kit Passeio", "components": [{"productId": 1, "quantity": 1}, {"productId": 2, "quantity": 2}]}
func (c *CatalogController) Kits(w http.ResponseWriter, r *http.Request) {
	logger.Infof("📥 Kits: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, "Kits", http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		kits, err := c.service.ListKits(r.Context())
		if err != nil {
			writeError(w, "ListKits", err)
			return
		}
		writeJSON(w, http.StatusOK, kits)
		return
	}

	var req models.CreateKitRequest
	if !decodeBody(w, r, c.validator, "CreateKit", &req) {
		return
	}

	kit, err := c.service.CreateKit(r.Context(), &req)
	if err != nil {
		writeError(w, "CreateKit", err)
		return
	}
	writeJSON(w, http.StatusCreated, kit)
}

// Kit handles GET, PUT and DELETE /admin/kits/{id}
func (c *CatalogController) Kit(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "Kit", http.MethodGet, http.MethodPut, http.MethodDelete) {
		return
	}

	id, err := pathID(r.URL.Path, "/admin/kits/", "")
	if err != nil {
		writeError(w, "Kit", err)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req models.CreateKitRequest
		if !decodeBody(w, r, c.validator, "UpdateKit", &req) {
			return
		}
		kit, err := c.service.UpdateKit(r.Context(), id, &req)
		if err != nil {
			writeError(w, "UpdateKit", err)
			return
		}
		writeJSON(w, http.StatusOK, kit)
		return
	case http.MethodDelete:
		if err := c.service.DeleteKit(r.Context(), id); err != nil {
			writeError(w, "DeleteKit", err)
			return
		}
		logger.Infof("🗑️ DeleteKit: kit id=%d deleted", id)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	kit, err := c.service.GetKit(r.Context(), id)
	if err != nil {
		writeError(w, "GetKit", err)
		return
	}
	writeJSON(w, http.StatusOK, kit)
}

// Suppliers handles GET and POST /admin/suppliers
// Example POST request: {"name": "Pet Sul"}
func (c *CatalogController) Suppliers(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "Suppliers", http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodGet {
		suppliers, err := c.service.ListSuppliers(r.Context())
		if err != nil {
			writeError(w, "ListSuppliers", err)
			return
		}
		writeJSON(w, http.StatusOK, suppliers)
		return
	}

	var req models.CreateSupplierRequest
	if !decodeBody(w, r, c.validator, "AddSupplier", &req) {
		return
	}
	supplier, err := c.service.AddSupplier(r.Context(), &req)
	if err != nil {
		writeError(w, "AddSupplier", err)
		return
	}
	logger.Infof("🏭 AddSupplier: %s registered", supplier.Name)
	writeJSON(w, http.StatusCreated, supplier)
}

// Supplier handles DELETE /admin/suppliers/{name}
func (c *CatalogController) Supplier(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "Supplier", http.MethodDelete) {
		return
	}

	raw, ok := pathParam(r.URL.EscapedPath(), "/admin/suppliers/", "")
	if !ok {
		writeError(w, "Supplier", fmt.Errorf("%w: supplier name is required", models.ErrInvalidInput))
		return
	}
	name, err := url.PathUnescape(raw)
	if err != nil {
		writeError(w, "Supplier", fmt.Errorf("%w: invalid supplier name %q", models.ErrInvalidInput, raw))
		return
	}

	if err := c.service.RemoveSupplier(r.Context(), name); err != nil {
		writeError(w, "RemoveSupplier", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
