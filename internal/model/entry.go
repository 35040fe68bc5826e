package model

import "strings"

// Origin records how a catalog entry came to exist
type Origin string

const (
	OriginSeed      Origin = "seed"      // Loaded at startup
	OriginSynthetic Origin = "synthetic" // Generated placeholder, not a verified fact
	OriginRegistry  Origin = "registry"  // Returned by a registry lookup
	OriginManual    Origin = "manual"    // Added by an operator with known attributes
)

// CatalogEntry is one organization known to the catalog.
// The name is the unique key; entries are never mutated after insertion.
type CatalogEntry struct {
	Name       string     `json:"name" yaml:"name"`
	Attributes Attributes `json:"attributes" yaml:"attributes,omitempty"`
	Origin     Origin     `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// Attributes is the fixed attribute set of a registered organization.
// Empty strings mean "unknown".
type Attributes struct {
	LegalRepresentative string `json:"legal_representative,omitempty" yaml:"legal_representative,omitempty"` // 法定代表人
	RegisteredCapital   string `json:"registered_capital,omitempty" yaml:"registered_capital,omitempty"`     // 注册资本, e.g. "5000万人民币"
	PaidCapital         string `json:"paid_capital,omitempty" yaml:"paid_capital,omitempty"`                 // 实缴资本
	EstablishmentDate   string `json:"establishment_date,omitempty" yaml:"establishment_date,omitempty"`     // YYYY-MM-DD
	BusinessStatus      string `json:"business_status,omitempty" yaml:"business_status,omitempty"`           // 存续, 注销 ...
	CompanyType         string `json:"company_type,omitempty" yaml:"company_type,omitempty"`
	Industry            string `json:"industry,omitempty" yaml:"industry,omitempty"`
	CreditCode          string `json:"credit_code,omitempty" yaml:"credit_code,omitempty"` // 统一社会信用代码
	Address             string `json:"address,omitempty" yaml:"address,omitempty"`
	BusinessScope       string `json:"business_scope,omitempty" yaml:"business_scope,omitempty"`
	EnterpriseNature    string `json:"enterprise_nature,omitempty" yaml:"enterprise_nature,omitempty"` // 国有企业, 民营企业 ...
	YearsEstablished    int    `json:"years_established,omitempty" yaml:"years_established,omitempty"`
}

// NewEntry creates an entry with no attributes
func NewEntry(name string, origin Origin) CatalogEntry {
	return CatalogEntry{Name: strings.TrimSpace(name), Origin: origin}
}

// IsPlaceholder reports whether the entry's attributes were fabricated
func (e CatalogEntry) IsPlaceholder() bool {
	return e.Origin == OriginSynthetic
}

// Usable reports whether the attribute set carries at least one of the
// fields a consumer needs to identify the organization.
func (a Attributes) Usable() bool {
	return a.LegalRepresentative != "" || a.RegisteredCapital != "" ||
		a.CreditCode != "" || a.EstablishmentDate != ""
}
