package catalog

import (
	"strconv"
	"strings"

	"github.com/fordpartsdz/shop/internal/models"
)

// Filter describes a catalog query. Every field is optional; set fields are
// AND-composed. Keyword is a single OR-group over the part number, the three
// translated names and the compatible vehicle models (plus the model year when
// the keyword is numeric).
type Filter struct {
	Keyword  string
	Category string
	Year     int
	Model    string
	FuelType string
}

func (f Filter) IsZero() bool {
	return f.Keyword == "" && f.Category == "" && f.Year == 0 && f.Model == "" && f.FuelType == ""
}

// Matches reports whether p satisfies f.
func (f Filter) Matches(p *models.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.FuelType != "" && p.FuelType != f.FuelType {
		return false
	}
	if !f.matchesVehicle(p) {
		return false
	}
	return f.matchesKeyword(p)
}

// matchesVehicle applies the year/model rules. When both are given, one
// compatibility entry must carry both at once; a product that fits the year
// on one vehicle and the model on another does not qualify. When only one is
// given, any entry carrying it suffices.
func (f Filter) matchesVehicle(p *models.Product) bool {
	switch {
	case f.Year != 0 && f.Model != "":
		for _, entry := range p.Compatibility {
			if entry.Year == f.Year && entry.Model == f.Model {
				return true
			}
		}
		return false
	case f.Year != 0:
		for _, entry := range p.Compatibility {
			if entry.Year == f.Year {
				return true
			}
		}
		return false
	case f.Model != "":
		for _, entry := range p.Compatibility {
			if entry.Model == f.Model {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func (f Filter) matchesKeyword(p *models.Product) bool {
	if f.Keyword == "" {
		return true
	}
	kw := strings.ToLower(f.Keyword)

	if strings.Contains(strings.ToLower(p.OEMNumber), kw) {
		return true
	}
	for _, lang := range []string{"en", "fr", "ar"} {
		if name := p.Name[lang]; name != "" && strings.Contains(strings.ToLower(name), kw) {
			return true
		}
	}
	for _, entry := range p.Compatibility {
		if strings.Contains(strings.ToLower(entry.Model), kw) {
			return true
		}
	}

	// Numeric keywords also search model years. Non-numeric keywords skip
	// this clause rather than erroring.
	if year, err := strconv.Atoi(strings.TrimSpace(f.Keyword)); err == nil {
		for _, entry := range p.Compatibility {
			if entry.Year == year {
				return true
			}
		}
	}

	return false
}
