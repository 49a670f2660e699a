package queries

import (
	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func toUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
