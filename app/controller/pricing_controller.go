package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"vitrine-backoffice/models"
	"vitrine-backoffice/service"
)

// PricingController handles HTTP requests for channel pricing
type PricingController struct {
	service   *service.PricingService
	validator *validator.Validate
}

// NewPricingController creates a new PricingController
func NewPricingController(svc *service.PricingService) *PricingController {
	return &PricingController{
		service:   svc,
		validator: validator.New(),
	}
}

// ListChannels handles GET /admin/channels
// Example response:
// [
//   {"key": "shopee", "displayName": "Shopee", "fixedFee": "5", "commissionRate": "0.2"},
//   {"key": "whatsapp", "displayName": "WhatsApp", "fixedFee": "0", "commissionRate": "0"}
// ]
func (c *PricingController) ListChannels(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "ListChannels", http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, c.service.Channels())
}

// ProductPricing handles GET and PUT /admin/pricing/products/{id}
// Example PUT request:
// {"desiredProfit": {"shopee": "10", "amazon": "12.50"}}
// Example response:
// {
//   "itemKind": "product",
//   "itemId": 1,
//   "name": "Coleira Couro",
//   "costBasis": "20",
//   "channels": [{"channel": {"key": "shopee", ...}, "configured": true, "desiredProfit": "10",
//                 "result": {"salePrice": "43.75", "commissionAmount": "8.75", "fixedFeeAmount": "5",
//                            "netRevenue": "30", "realizedProfit": "10", "realizedMarginPercent": "22.9"}}]
// }
func (c *PricingController) ProductPricing(w http.ResponseWriter, r *http.Request) {
	logger.Infof("📥 ProductPricing: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, "ProductPricing", http.MethodGet, http.MethodPut) {
		return
	}

	id, err := pathID(r.URL.Path, "/admin/pricing/products/", "")
	if err != nil {
		writeError(w, "ProductPricing", err)
		return
	}

	var sheet *models.PricingSheet
	if r.Method == http.MethodGet {
		sheet, err = c.service.ProductSheet(r.Context(), id)
	} else {
		var req models.SavePricingRequest
		if !decodeBody(w, r, c.validator, "ProductPricing", &req) {
			return
		}
		sheet, err = c.service.SaveProductPricing(r.Context(), id, req.DesiredProfit)
	}
	if err != nil {
		writeError(w, "ProductPricing", err)
		return
	}

	writeJSON(w, http.StatusOK, sheet.Rounded())
}

// KitPricing handles GET and PUT /admin/pricing/kits/{id}
func (c *PricingController) KitPricing(w http.ResponseWriter, r *http.Request) {
	logger.Infof("📥 KitPricing: Received %s request to %s", r.Method, r.URL.Path)
	if !allowMethod(w, r, "KitPricing", http.MethodGet, http.MethodPut) {
		return
	}

	id, err := pathID(r.URL.Path, "/admin/pricing/kits/", "")
	if err != nil {
		writeError(w, "KitPricing", err)
		return
	}

	var sheet *models.PricingSheet
	if r.Method == http.MethodGet {
		sheet, err = c.service.KitSheet(r.Context(), id)
	} else {
		var req models.SavePricingRequest
		if !decodeBody(w, r, c.validator, "KitPricing", &req) {
			return
		}
		sheet, err = c.service.SaveKitPricing(r.Context(), id, req.DesiredProfit)
	}
	if err != nil {
		writeError(w, "KitPricing", err)
		return
	}

	writeJSON(w, http.StatusOK, sheet.Rounded())
}

// Simulate handles POST /admin/pricing/simulate
// Example request:
// {"costBasis": "20", "salePrice": "49.90", "channel": "shopee"}
func (c *PricingController) Simulate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "Simulate", http.MethodPost) {
		return
	}

	var req models.SimulatePriceRequest
	if !decodeBody(w, r, c.validator, "Simulate", &req) {
		return
	}

	result, err := c.service.Simulate(req)
	if err != nil {
		writeError(w, "Simulate", err)
		return
	}

	writeJSON(w, http.StatusOK, result.Rounded())
}
