// Package shipping holds the static wilaya delivery price table. Prices are
// DZD per order, keyed by the wilaya name the checkout form submits.
package shipping

// PriceFunc resolves a wilaya name to a shipping price. The order
// materializer takes one of these instead of the table itself.
type PriceFunc func(wilaya string) int64

var wilayaPrices = map[string]int64{
	"Adrar":               1200,
	"Chlef":               600,
	"Laghouat":            900,
	"Oum El Bouaghi":      700,
	"Batna":               700,
	"Béjaïa":              600,
	"Biskra":              800,
	"Béchar":              1200,
	"Blida":               400,
	"Bouira":              500,
	"Tamanrasset":         1600,
	"Tébessa":             900,
	"Tlemcen":             800,
	"Tiaret":              700,
	"Tizi Ouzou":          500,
	"Alger":               400,
	"Djelfa":              800,
	"Jijel":               600,
	"Sétif":               600,
	"Saïda":               800,
	"Skikda":              700,
	"Sidi Bel Abbès":      800,
	"Annaba":              700,
	"Guelma":              700,
	"Constantine":         600,
	"Médéa":               500,
	"Mostaganem":          700,
	"M'Sila":              700,
	"Mascara":             700,
	"Ouargla":             1000,
	"Oran":                700,
	"El Bayadh":           1000,
	"Illizi":              1600,
	"Bordj Bou Arréridj":  600,
	"Boumerdès":           400,
	"El Tarf":             800,
	"Tindouf":             1600,
	"Tissemsilt":          700,
	"El Oued":             1000,
	"Khenchela":           800,
	"Souk Ahras":          800,
	"Tipaza":              400,
	"Mila":                600,
	"Aïn Defla":           500,
	"Naâma":               1000,
	"Aïn Témouchent":      800,
	"Ghardaïa":            1000,
	"Relizane":            700,
	"Timimoun":            1400,
	"Bordj Badji Mokhtar": 1600,
	"Ouled Djellal":       900,
	"Béni Abbès":          1400,
	"In Salah":            1600,
	"In Guezzam":          1600,
	"Touggourt":           1000,
	"Djanet":              1600,
	"El M'Ghair":          1000,
	"El Meniaa":           1200,
}

// Lookup returns the delivery price for wilaya, or 0 when the name is not in
// the table.
func Lookup(wilaya string) int64 {
	return wilayaPrices[wilaya]
}

// Wilayas lists every region the table knows about.
func Wilayas() []string {
	out := make([]string, 0, len(wilayaPrices))
	for name := range wilayaPrices {
		out = append(out, name)
	}
	return out
}
