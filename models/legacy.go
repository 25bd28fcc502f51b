package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LegacyID is an identifier from the browser export: numbers (Date.now()) or strings
type LegacyID struct {
	raw any
}

// UnmarshalJSON keeps whatever scalar the export used
func (id *LegacyID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		id.raw = nil
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		id.raw = s[1 : len(s)-1]
		return nil
	}
	id.raw = s
	return nil
}

// String returns the identifier as text, empty when absent
func (id LegacyID) String() string {
	if id.raw == nil {
		return ""
	}
	return fmt.Sprint(id.raw)
}

// LegacyDump is the JSON export of the browser storage (fornecedores, produtos, kits,
// cotacoes, metasFinanceiras). Amounts of products and lines are JSON numbers; quote totals are
// display strings such as "R$ 1.234,56".
type LegacyDump struct {
	Produtos         []LegacyProduct `json:"produtos"`
	Kits             []LegacyKit     `json:"kits"`
	Cotacoes         []LegacyQuote   `json:"cotacoes"`
	MetasFinanceiras *LegacyGoal     `json:"metasFinanceiras"`
	Fornecedores     []string        `json:"fornecedores"`
}

// LegacyProduct is a product as exported by the browser app
type LegacyProduct struct {
	ID            LegacyID                   `json:"id"`
	SKU           string                     `json:"sku"`
	Nome          string                     `json:"nome"`
	Fornecedor    string                     `json:"fornecedor"`
	Custo         decimal.NullDecimal        `json:"custo"`
	Picking       decimal.NullDecimal        `json:"picking"`
	PricingConfig map[string]decimal.Decimal `json:"pricingConfig"`
}

// LegacyKit holds one product copy per unit in Produtos
type LegacyKit struct {
	ID            LegacyID                   `json:"id"`
	Nome          string                     `json:"nome"`
	Produtos      []LegacyProduct            `json:"produtos"`
	CustoTotal    decimal.NullDecimal        `json:"custoTotal"`
	PricingConfig map[string]decimal.Decimal `json:"pricingConfig"`
}

// LegacyQuoteLine is one exported cart line
type LegacyQuoteLine struct {
	ID         LegacyID            `json:"id"`
	Nome       string              `json:"nome"`
	SKU        string              `json:"sku"`
	Custo      decimal.NullDecimal `json:"custo"`
	PrecoVenda decimal.NullDecimal `json:"precoVenda"`
	Quantidade *int                `json:"quantidade"`
	CustoTotal decimal.NullDecimal `json:"custoTotal"` // present on kit lines
}

// LegacyQuote is an exported quote
type LegacyQuote struct {
	ID          string            `json:"id"`
	DataGeracao string            `json:"dataGeracao"`
	Status      string            `json:"status"`
	Cliente     string            `json:"cliente"`
	Telefone    string            `json:"telefone"`
	Local       string            `json:"local"`
	Itens       []LegacyQuoteLine `json:"itens"`
	Frete       string            `json:"frete"`
	Descontos   string            `json:"descontos"`
	TotalGeral  string            `json:"totalGeral"`
}

// LegacyGoal is the exported monthly goal
type LegacyGoal struct {
	Vendas decimal.Decimal `json:"vendas"`
	Lucro  decimal.Decimal `json:"lucro"`
}

// ImportResult reports what a legacy import stored
type ImportResult struct {
	SuppliersImported int      `json:"suppliersImported"`
	ProductsImported  int      `json:"productsImported"`
	KitsImported      int      `json:"kitsImported"`
	QuotesImported    int      `json:"quotesImported"`
	QuotesWithDefects int      `json:"quotesWithDefects"`
	GoalImported      bool     `json:"goalImported"`
	Errors            []string `json:"errors,omitempty"`
}
