package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-ledger/internal/domain/matching"
)

// Caso 1: La normalización iguala mayúsculas, tildes y puntuación.
func TestNormalize_TildesYPuntuacion(t *testing.T) {
	cases := map[string]string{
		"COKE  330ML.":      "coke 330ml",
		"Café Águila 500g":  "cafe aguila 500g",
		"Coca-Cola 330ml":   "coca cola 330ml",
		"  pan   integral ": "pan integral",
		"ñoquis":            "noquis",
		"":                  "",
		"---":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, matching.Normalize(in), "entrada: %q", in)
	}
}

// Caso 2: Nombres idénticos tras normalizar puntúan 1; distintos, menos.
func TestSimilarity_ExactaYDifusa(t *testing.T) {
	assert.Equal(t, 1.0, matching.Similarity("Coca-Cola 330ml", "coca cola 330ml"))
	assert.Equal(t, 0.0, matching.Similarity("", "algo"))

	s := matching.Similarity("Coca Cola 330", "Coca Cola 330ml")
	assert.Greater(t, s, 0.9, "variante con sufijo debe puntuar alto")
	assert.Less(t, s, 1.0)

	lejos := matching.Similarity("Pollo Asado", "Detergente Ropa")
	assert.Less(t, lejos, 0.6)
}

// Caso 3: BestMatch elige el candidato de mayor puntaje.
func TestBestMatch_EligeElMejor(t *testing.T) {
	candidates := []matching.Candidate{
		{ProductID: "p1", Name: "Coca-Cola 330ml", SKU: "BEB-001"},
		{ProductID: "p2", Name: "Coca-Cola 1.5L", SKU: "BEB-002"},
		{ProductID: "p3", Name: "Agua Mineral 500ml", SKU: "BEB-003"},
	}

	best, ok := matching.BestMatch("coca cola 330ml", candidates)
	require.True(t, ok)
	assert.Equal(t, "p1", best.Candidate.ProductID)
	assert.Equal(t, 1.0, best.Score)
}

// Caso 4: Código de barras o SKU exacto es evidencia máxima aunque el nombre
// no se parezca en nada.
func TestBestMatch_BarcodeYSKUExactos(t *testing.T) {
	candidates := []matching.Candidate{
		{ProductID: "p1", Name: "Gaseosa Cola Familiar", SKU: "BEB-010", Barcode: "7791234567890"},
		{ProductID: "p2", Name: "Otra Cosa", SKU: "OTR-001"},
	}

	best, ok := matching.BestMatch("7791234567890", candidates)
	require.True(t, ok)
	assert.Equal(t, "p1", best.Candidate.ProductID)
	assert.Equal(t, 1.0, best.Score)

	best, ok = matching.BestMatch("beb-010", candidates)
	require.True(t, ok)
	assert.Equal(t, "p1", best.Candidate.ProductID)
	assert.Equal(t, 1.0, best.Score)
}

// Caso 5: Sin candidatos no hay match.
func TestBestMatch_SinCandidatos(t *testing.T) {
	_, ok := matching.BestMatch("lo que sea", nil)
	assert.False(t, ok)
}
