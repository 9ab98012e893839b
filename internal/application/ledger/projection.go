package ledger

import "github.com/jhoicas/stockledger/internal/domain/entity"

// syncProjection reconstruye la proyección de inventario del producto tras una
// mutación del ledger: superpone los saldos tocados sobre sus pares (bodega,
// ubicación), conservando intacto el reserved preexistente de cada item (es
// propiedad de la lógica de pedidos), deja los items no tocados como están y
// recalcula los totales del SKU desde la lista completa.
//
// Corre dentro del mismo lock que la mutación: es el único punto donde el
// estado del ledger y el estado de lectura de producto se reconcilian.
// Devuelve el producto refrescado, o nil si el SKU no está en el catálogo.
func (e *Engine) syncProjection(sku string, touched []entity.BalanceRecord) *entity.Product {
	product, err := e.products.GetBySKU(sku)
	if err != nil {
		e.log.Warn().Err(err).Str("sku", sku).Msg("leer producto para proyección")
		return nil
	}
	if product == nil {
		// SKU solo trackeado por el ledger; no hay proyección que mantener
		return nil
	}

	for _, bal := range touched {
		if i := product.ItemAt(bal.Key.Warehouse, bal.Key.Location); i >= 0 {
			product.Items[i].OnHand = bal.OnHand
			// Reserved se preserva tal cual
		} else {
			product.Items = append(product.Items, entity.InventoryItem{
				WarehouseCode: bal.Key.Warehouse,
				LocationCode:  bal.Key.Location,
				OnHand:        bal.OnHand,
				Reserved:      bal.Reserved,
			})
		}
	}
	product.RecomputeTotals()

	if err := e.products.Save(product); err != nil {
		e.log.Error().Err(err).Str("sku", sku).Msg("guardar proyección de inventario")
		return nil
	}
	return product
}
