package models

// Supplier is an entry of the supplier registry products are assigned to
type Supplier struct {
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// CreateSupplierRequest represents the request body for registering a supplier
// Example: {"name": "Pet Sul"}
type CreateSupplierRequest struct {
	Name string `json:"name" validate:"required"`
}
