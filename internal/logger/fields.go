package logger

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoundID tags an entry with a dividend round
func RoundID(id uuid.UUID) zap.Field {
	return zap.String("round_id", id.String())
}

// StakeID tags an entry with a stake
func StakeID(id uuid.UUID) zap.Field {
	return zap.String("stake_id", id.String())
}

// TrancheID tags an entry with a funding tranche
func TrancheID(id int64) zap.Field {
	return zap.Int64("tranche_id", id)
}

// AllocationID tags an entry with an investor or equity allocation
func AllocationID(id int64) zap.Field {
	return zap.Int64("allocation_id", id)
}

// DeliveryID tags an entry with a webhook delivery
func DeliveryID(id string) zap.Field {
	return zap.String("delivery_id", id)
}
