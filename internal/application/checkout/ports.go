package checkout

import (
	"context"

	"github.com/EmprendoHub/inventory-app-sub003/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el
// ledger de stock atado a esa tx. El descuento de todas las líneas de una
// orden es una unidad: o se aplican todas o ninguna.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
	) error) error
}

// SupplierSelector elige la bodega proveedora entre las candidatas que reporta
// el resolver de disponibilidad. El criterio de ranking (cercanía, mayor stock,
// balanceo) quedó sin definir en el flujo original; por eso es una estrategia
// conectable y no una política fija.
type SupplierSelector interface {
	Select(branches []repository.BranchStock, shortfall int64) (repository.BranchStock, bool)
}

// FirstReportedSelector toma la primera bodega en el orden que reporta el
// resolver (cantidad descendente, luego id de bodega).
type FirstReportedSelector struct{}

// Select devuelve la primera candidata, o false si no hay ninguna.
func (FirstReportedSelector) Select(branches []repository.BranchStock, _ int64) (repository.BranchStock, bool) {
	if len(branches) == 0 {
		return repository.BranchStock{}, false
	}
	return branches[0], true
}
