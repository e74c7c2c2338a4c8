package stock

import (
	"context"

	"github.com/dcastano/fogon-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad del libro de stock: o se escriben el
// movimiento y el nuevo stock juntos, o no se escribe nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.StockMovementRepository,
		proposalRepo repository.ProposalRepository,
	) error) error
}
