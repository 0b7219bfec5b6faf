package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 a $2 + 10 a $4 → $3
	got := inventory.CostCalculator(d("10"), d("2"), d("10"), d("4"))
	assert.True(t, d("3").Equal(got), "obtenido %s", got)
}

func TestCostCalculator_SinStockPrevioTomaCostoEntrada(t *testing.T) {
	assert.True(t, d("5").Equal(inventory.CostCalculator(d("0"), d("2"), d("4"), d("5"))))
	assert.True(t, d("5").Equal(inventory.CostCalculator(d("-3"), d("2"), d("4"), d("5"))))
}

func TestCostCalculator_EntradaNoPositivaConservaCosto(t *testing.T) {
	assert.True(t, d("2").Equal(inventory.CostCalculator(d("10"), d("2"), d("0"), d("9"))))
}
