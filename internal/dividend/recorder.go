package dividend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/money"
	"github.com/feral-file/ff-revshare-engine/internal/store"
	"github.com/feral-file/ff-revshare-engine/internal/store/schema"
)

// RecorderStore is the persistence a Recorder writes to
type RecorderStore interface {
	store.CapTableStore
	store.DistributionStore
}

// Recorder persists the cap table and the audit record of a round
type Recorder interface {
	// UpdateCapTable overwrites every stake's cap table entry. Row failures are logged and
	// counted; the next round recomputes everything.
	UpdateCapTable(ctx context.Context, roundID uuid.UUID, entries []domain.Ownership) int
	// RecordDistribution writes the immutable round record together with the dividend bookkeeping
	RecordDistribution(ctx context.Context, input DistributionInput) (*schema.DistributionRecord, error)
}

// DistributionInput is the outcome of a round to be recorded
type DistributionInput struct {
	RoundID     uuid.UUID
	Revenue     money.Satoshis
	Pool        money.Satoshis
	Remainder   money.Satoshis
	TotalStaked uint64
	Rate        money.Rate
	Payouts     []domain.HolderPayout
	At          time.Time
}

// manifest is the canonical audit document of a round. Amounts are decimal strings
// so canonicalization never rounds them.
type manifest struct {
	RoundID     string           `json:"roundId"`
	Revenue     string           `json:"revenue"`
	Pool        string           `json:"dividendPool"`
	Remainder   string           `json:"remainder"`
	TotalStaked string           `json:"totalStaked"`
	RatePPM     string           `json:"ratePpm"`
	Holders     []manifestHolder `json:"holders"`
}

type manifestHolder struct {
	StakeID    string `json:"stakeId"`
	UserID     string `json:"userId"`
	Amount     string `json:"amount"`
	SharePPM   string `json:"sharePpm"`
	Status     string `json:"status"`
	SkipReason string `json:"skipReason,omitempty"`
}

type recorder struct {
	store RecorderStore
	json  adapter.JSON
	jcs   adapter.JCS
}

// NewRecorder creates a new cap table and audit recorder
func NewRecorder(s RecorderStore, jsonAdapter adapter.JSON, jcsAdapter adapter.JCS) Recorder {
	return &recorder{
		store: s,
		json:  jsonAdapter,
		jcs:   jcsAdapter,
	}
}

func (r *recorder) UpdateCapTable(ctx context.Context, roundID uuid.UUID, entries []domain.Ownership) int {
	failures := 0
	for _, e := range entries {
		err := r.store.UpsertCapTableEntry(ctx, schema.CapTableEntry{
			StakeID:       e.StakeID,
			PercentagePPM: int64(e.Share.PPM()), //nolint:gosec,G115 // PPM is at most RateScale
			RoundID:       roundID,
		})
		if err != nil {
			failures++
			logger.ErrorCtx(ctx, fmt.Errorf("failed to update cap table entry: %w", err),
				logger.RoundID(roundID),
				logger.StakeID(e.StakeID))
		}
	}

	if failures > 0 {
		logger.WarnCtx(ctx, "Cap table partially updated",
			logger.RoundID(roundID),
			zap.Int("failed", failures),
			zap.Int("total", len(entries)))
	}

	return failures
}

func (r *recorder) RecordDistribution(ctx context.Context, input DistributionInput) (*schema.DistributionRecord, error) {
	canonical, digest, err := r.buildManifest(input)
	if err != nil {
		return nil, err
	}

	var paid, failed, skipped int
	credits := make([]store.StakeCredit, 0, len(input.Payouts))
	owedByUser := make(map[string]money.Satoshis)
	var owedOrder []string
	for _, p := range input.Payouts {
		switch p.Status {
		case domain.PayoutStatusPaid:
			paid++
		case domain.PayoutStatusFailed:
			failed++
		default:
			skipped++
		}

		if p.Amount == 0 {
			continue
		}
		credits = append(credits, store.StakeCredit{StakeID: p.StakeID, Amount: p.Amount})

		if p.Unpaid() {
			if _, ok := owedByUser[p.UserID]; !ok {
				owedOrder = append(owedOrder, p.UserID)
			}
			sum, err := money.Sum(owedByUser[p.UserID], p.Amount)
			if err != nil {
				return nil, fmt.Errorf("failed to sum owed dividends of user %s: %w", p.UserID, err)
			}
			owedByUser[p.UserID] = sum
		}
	}

	owed := make([]store.OwedCredit, 0, len(owedOrder))
	for _, userID := range owedOrder {
		owed = append(owed, store.OwedCredit{UserID: userID, Amount: owedByUser[userID]})
	}

	perUnit, err := money.MulDivFloor(uint64(input.Pool), money.RateScale, input.TotalStaked)
	if err != nil {
		return nil, fmt.Errorf("failed to compute pool per staked unit for round %s: %w", input.RoundID, err)
	}

	columns, err := toColumns(input.Revenue, input.Pool, input.Remainder, money.Satoshis(input.TotalStaked), money.Satoshis(perUnit))
	if err != nil {
		return nil, err
	}

	record, err := r.store.RecordDistribution(ctx, store.RecordDistributionInput{
		Record: schema.DistributionRecord{
			RoundID:        input.RoundID,
			TotalRevenue:   columns[0],
			DividendPool:   columns[1],
			Remainder:      columns[2],
			TotalStaked:    columns[3],
			RatePerUnitPPM: columns[4],
			HoldersPaid:    paid,
			HoldersFailed:  failed,
			HoldersSkipped: skipped,
			Manifest:       datatypes.JSON(canonical),
			ManifestDigest: digest,
		},
		Credits: credits,
		Owed:    owed,
		At:      input.At,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record distribution for round %s: %w", input.RoundID, err)
	}

	logger.InfoCtx(ctx, "Recorded distribution",
		logger.RoundID(input.RoundID),
		zap.Int64("sequence", record.ID),
		zap.String("manifestDigest", digest),
		zap.Int("owedUsers", len(owed)))

	return record, nil
}

// buildManifest returns the RFC 8785 canonical manifest and its hex SHA-256
func (r *recorder) buildManifest(input DistributionInput) ([]byte, string, error) {
	doc := manifest{
		RoundID:     input.RoundID.String(),
		Revenue:     input.Revenue.String(),
		Pool:        input.Pool.String(),
		Remainder:   input.Remainder.String(),
		TotalStaked: strconv.FormatUint(input.TotalStaked, 10),
		RatePPM:     strconv.FormatUint(input.Rate.PPM(), 10),
		Holders:     make([]manifestHolder, 0, len(input.Payouts)),
	}
	for _, p := range input.Payouts {
		doc.Holders = append(doc.Holders, manifestHolder{
			StakeID:    p.StakeID.String(),
			UserID:     p.UserID,
			Amount:     p.Amount.String(),
			SharePPM:   strconv.FormatUint(p.SharePPM, 10),
			Status:     string(p.Status),
			SkipReason: string(p.SkipReason),
		})
	}

	raw, err := r.json.Marshal(doc)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	canonical, err := r.jcs.Transform(raw)
	if err != nil {
		return nil, "", fmt.Errorf("failed to canonicalize manifest: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return canonical, hex.EncodeToString(sum[:]), nil
}

func toColumns(amounts ...money.Satoshis) ([]int64, error) {
	columns := make([]int64, len(amounts))
	for i, a := range amounts {
		if uint64(a) > math.MaxInt64 {
			return nil, fmt.Errorf("amount %s does not fit in a BIGINT column: %w", a, money.ErrOverflow)
		}
		columns[i] = int64(a)
	}
	return columns, nil
}
