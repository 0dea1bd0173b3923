package repository

import (
	"context"

	"github.com/tu-usuario/retail-ledger/internal/domain/entity"
)

// POSMappingRepository define el puerto de persistencia de mapeos POS → producto.
// No hay borrado: los mapeos de baja confianza quedan para auditoría y revisión.
type POSMappingRepository interface {
	// GetByTenantAndName busca el mapeo exacto (tenant, nombre POS). nil si no existe.
	GetByTenantAndName(ctx context.Context, tenantID, posItemName string) (*entity.POSItemMapping, error)
	Create(ctx context.Context, mapping *entity.POSItemMapping) error
	Update(ctx context.Context, mapping *entity.POSItemMapping) error
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.POSItemMapping, error)
}
