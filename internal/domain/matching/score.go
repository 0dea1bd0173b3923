package matching

import (
	"github.com/xrash/smetrics"
)

// Parámetros Jaro-Winkler estándar: boost 0.7, prefijo 4.
const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// Candidate es un producto candidato para el matching difuso.
type Candidate struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Barcode   string `json:"barcode,omitempty"`
}

// Match es el resultado del mejor candidato con su puntaje [0, 1].
type Match struct {
	Candidate Candidate
	Score     float64
}

// Similarity compara dos nombres ya sin normalizar y devuelve un puntaje [0, 1].
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	return smetrics.JaroWinkler(na, nb, jwBoostThreshold, jwPrefixSize)
}

// score evalúa un candidato contra el nombre POS: coincidencia exacta de
// código de barras o SKU es evidencia máxima; si no, similitud sobre el nombre.
func score(posName string, c Candidate) float64 {
	normName := Normalize(posName)
	if c.Barcode != "" && Normalize(c.Barcode) == normName {
		return 1
	}
	if c.SKU != "" && Normalize(c.SKU) == normName {
		return 1
	}
	s := Similarity(posName, c.Name)
	if skuScore := Similarity(posName, c.SKU); skuScore > s {
		s = skuScore
	}
	return s
}

// BestMatch devuelve el candidato con mayor puntaje. ok=false si no hay candidatos.
func BestMatch(posName string, candidates []Candidate) (Match, bool) {
	var best Match
	found := false
	for _, c := range candidates {
		s := score(posName, c)
		if !found || s > best.Score {
			best = Match{Candidate: c, Score: s}
			found = true
		}
	}
	return best, found
}
