package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// Validator convierte un request sin tipar en un MovementDraft bien formado,
// o en la lista completa de fallos de validación (acumula todos, no corta en
// el primero). Función pura sobre su input y el directorio de solo lectura.
type Validator struct {
	directory DirectoryLookup
	now       func() time.Time
}

// NewValidator construye el validador.
func NewValidator(directory DirectoryLookup) *Validator {
	return &Validator{directory: directory, now: time.Now}
}

// Validate chequea todas las reglas a la vez. Devuelve *domain.ValidationError
// con los mensajes acumulados si el request es inválido; cualquier otro error
// (directorio caído) es fatal para el request.
func (v *Validator) Validate(in dto.RegisterMovementRequest) (entity.MovementDraft, error) {
	var msgs []string

	if !entity.IsValidMovementType(in.Type) {
		msgs = append(msgs, fmt.Sprintf("type %q no es válido (RECEIPT, ISSUE, ADJUST, TRANSFER, RETURN)", in.Type))
	}

	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		msgs = append(msgs, "sku es obligatorio")
	}

	switch in.Type {
	case entity.MovementTypeADJUST:
		if in.Qty < 0 {
			msgs = append(msgs, "qty debe ser >= 0 para ADJUST")
		}
	default:
		// Para tipos desconocidos ya se acumuló el mensaje del enum
		if in.Qty <= 0 {
			msgs = append(msgs, "qty debe ser > 0")
		}
	}

	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		msgs = append(msgs, "userId es obligatorio")
	}

	// Requisitos de bodega por tipo
	switch in.Type {
	case entity.MovementTypeRECEIPT, entity.MovementTypeRETURN, entity.MovementTypeADJUST:
		if in.ToWarehouse == "" {
			msgs = append(msgs, fmt.Sprintf("toWarehouse es obligatorio para %s", in.Type))
		}
	case entity.MovementTypeISSUE:
		if in.FromWarehouse == "" {
			msgs = append(msgs, "fromWarehouse es obligatorio para ISSUE")
		}
	case entity.MovementTypeTRANSFER:
		if in.FromWarehouse == "" {
			msgs = append(msgs, "fromWarehouse es obligatorio para TRANSFER")
		}
		if in.ToWarehouse == "" {
			msgs = append(msgs, "toWarehouse es obligatorio para TRANSFER")
		}
		if in.FromWarehouse != "" && in.FromWarehouse == in.ToWarehouse && in.FromLocation == in.ToLocation {
			msgs = append(msgs, "origen y destino del TRANSFER no pueden ser la misma ubicación")
		}
	}

	// Resolución contra el directorio (bodegas presentes deben existir;
	// ubicaciones presentes deben existir y pertenecer a su bodega)
	if err := v.checkWarehouse(in.FromWarehouse, in.FromLocation, "fromWarehouse", "fromLocation", &msgs); err != nil {
		return entity.MovementDraft{}, err
	}
	if err := v.checkWarehouse(in.ToWarehouse, in.ToLocation, "toWarehouse", "toLocation", &msgs); err != nil {
		return entity.MovementDraft{}, err
	}

	occurredAt := v.now().UTC()
	if in.OccurredAt != "" {
		t, err := parseInstant(in.OccurredAt)
		if err != nil {
			msgs = append(msgs, fmt.Sprintf("occurredAt %q no es un instante válido", in.OccurredAt))
		} else {
			occurredAt = t
		}
	}

	if len(msgs) > 0 {
		return entity.MovementDraft{}, domain.NewValidationError(msgs)
	}

	return entity.MovementDraft{
		Type:          in.Type,
		SKU:           sku,
		Qty:           in.Qty,
		UserID:        userID,
		OccurredAt:    occurredAt,
		FromWarehouse: in.FromWarehouse,
		FromLocation:  in.FromLocation,
		ToWarehouse:   in.ToWarehouse,
		ToLocation:    in.ToLocation,
		PartnerID:     in.PartnerID,
		RefNo:         in.RefNo,
		Memo:          in.Memo,
	}, nil
}

func (v *Validator) checkWarehouse(whCode, locCode, whField, locField string, msgs *[]string) error {
	if whCode != "" {
		wh, err := v.directory.ResolveWarehouse(whCode)
		if err != nil {
			return fmt.Errorf("resolver bodega %s: %w", whCode, err)
		}
		if wh == nil {
			*msgs = append(*msgs, fmt.Sprintf("%s %q no existe", whField, whCode))
		}
	}
	if locCode != "" {
		if whCode == "" {
			*msgs = append(*msgs, fmt.Sprintf("%s requiere %s", locField, whField))
			return nil
		}
		loc, err := v.directory.ResolveLocation(whCode, locCode)
		if err != nil {
			return fmt.Errorf("resolver ubicación %s/%s: %w", whCode, locCode, err)
		}
		if loc == nil {
			*msgs = append(*msgs, fmt.Sprintf("%s %q no existe en la bodega %q", locField, locCode, whCode))
		}
	}
	return nil
}

// parseInstant acepta RFC3339 o fecha simple YYYY-MM-DD (se asume UTC).
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(entity.BucketDateLayout, s)
}
