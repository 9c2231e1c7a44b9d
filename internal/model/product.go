package model

import "encoding/json"

// Default eligibility bounds applied when the catalogue omits them.
const (
	DefaultMinAge    = 18
	DefaultMaxAge    = 65
	DefaultMinIncome = 0
)

// Product is a single sellable plan variant from the product catalogue.
type Product struct {
	Metadata    ProductMetadata `json:"metadata"`
	Features    Features        `json:"features"`
	Eligibility Eligibility     `json:"eligibility"`
}

// ProductMetadata identifies and classifies a catalogue entry.
type ProductMetadata struct {
	InsurerName      string `json:"insurer_name"`
	ProductName      string `json:"product_name"`
	BrochureType     string `json:"brochure_type"`
	ProductCategory  string `json:"product_category"`
	MarketingTagline string `json:"marketing_tagline,omitempty"`
}

// Features maps feature names to either a boolean flag or a free-text
// description (the catalogue mixes both value kinds under one object).
type Features map[string]any

// Enabled reports whether the named feature is present and truthy.
func (f Features) Enabled(name string) bool {
	switch v := f[name].(type) {
	case bool:
		return v
	case string:
		return v != ""
	default:
		return false
	}
}

// Description returns the free-text "description" feature, if any.
func (f Features) Description() string {
	s, _ := f["description"].(string)
	return s
}

// Eligibility holds the hard bounds a catalogue entry imposes on applicants.
type Eligibility struct {
	MinAge    int     `json:"min_age"`
	MaxAge    int     `json:"max_age"`
	MinIncome float64 `json:"min_income"`
}

// UnmarshalJSON seeds the eligibility defaults before decoding so that an
// entry with no eligibility object at all stays fully permissive.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	a := alias{Eligibility: Eligibility{
		MinAge:    DefaultMinAge,
		MaxAge:    DefaultMaxAge,
		MinIncome: DefaultMinIncome,
	}}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Product(a)
	return nil
}

// UnmarshalJSON applies catalogue defaults for absent bounds. A missing
// max_age must not read as zero, which would disqualify every applicant.
func (e *Eligibility) UnmarshalJSON(data []byte) error {
	var raw struct {
		MinAge    *int     `json:"min_age"`
		MaxAge    *int     `json:"max_age"`
		MinIncome *float64 `json:"min_income"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.MinAge = DefaultMinAge
	e.MaxAge = DefaultMaxAge
	e.MinIncome = DefaultMinIncome
	if raw.MinAge != nil {
		e.MinAge = *raw.MinAge
	}
	if raw.MaxAge != nil {
		e.MaxAge = *raw.MaxAge
	}
	if raw.MinIncome != nil {
		e.MinIncome = *raw.MinIncome
	}
	return nil
}

// USP returns the strongest selling point available for the entry:
// features description, then marketing tagline, then a generic line.
func (p *Product) USP() string {
	if d := p.Features.Description(); d != "" {
		return d
	}
	if t := p.Metadata.MarketingTagline; t != "" {
		return t
	}
	return "Comprehensive Coverage"
}

// EligibilityRule is a reference-text row from the eligibility dataset.
// Rules are rendered for human-readable context only, never evaluated
// programmatically against a profile.
type EligibilityRule struct {
	Category  string `json:"category"`
	Condition string `json:"condition"`
	Impact    string `json:"impact"`
}
