package tranche_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/messaging"
	"github.com/feral-file/ff-revshare-engine/internal/mocks"
	"github.com/feral-file/ff-revshare-engine/internal/money"
	"github.com/feral-file/ff-revshare-engine/internal/store"
	"github.com/feral-file/ff-revshare-engine/internal/tranche"
)

func TestEscrowReleaser_Release(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()

	mockStore.EXPECT().ReleasePendingAllocations(gomock.Any(), int64(7), now).Return([]int64{11, 12}, nil)
	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event messaging.Event) error {
			assert.Equal(t, messaging.EventTypeEscrowReleased, event.Type)
			assert.Equal(t, "7:11", event.Key)
			return nil
		})

	ids, err := tranche.NewEscrowReleaser(mockStore, publisher, clock).Release(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12}, ids)
}

func TestEscrowReleaser_Release_NothingPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()

	mockStore.EXPECT().ReleasePendingAllocations(gomock.Any(), int64(7), now).Return([]int64{}, nil)

	ids, err := tranche.NewEscrowReleaser(mockStore, publisher, clock).Release(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEscrowReleaser_Release_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()

	mockStore.EXPECT().ReleasePendingAllocations(gomock.Any(), int64(7), now).Return(nil, errors.New("db down"))

	_, err := tranche.NewEscrowReleaser(mockStore, mocks.NewMockPublisher(ctrl), clock).Release(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to release escrow for tranche 7")
}

func equityConfig() tranche.EquityConfig {
	return tranche.EquityConfig{
		PlatformUserID: "platform",
		Increment:      money.OnePercent,
		Cap:            49 * money.OnePercent,
	}
}

func TestEquityAllocator_Allocate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()

	ref := milestone(domain.TrancheStatusCompleted)
	mockStore.EXPECT().
		GrantPlatformEquity(gomock.Any(), store.GrantPlatformEquityInput{
			ProjectSlug: "kintsugi",
			TrancheID:   7,
			RecipientID: "platform",
			Increment:   money.OnePercent,
			Cap:         49 * money.OnePercent,
			Policy:      domain.EquityCapPolicyReject,
			MemberRole:  domain.PLATFORM_MEMBER_ROLE,
		}).
		Return(&domain.EquityGrant{
			Outcome:      domain.EquityOutcomeGranted,
			AllocationID: 3,
			TrancheID:    7,
			Percent:      money.OnePercent,
			OwnerShare:   99 * money.OnePercent,
			PlatformHeld: money.OnePercent,
		}, nil)
	publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event messaging.Event) error {
			assert.Equal(t, messaging.EventTypeEquityAllocated, event.Type)
			assert.Equal(t, "7", event.Key)
			return nil
		})

	grant, err := tranche.NewEquityAllocator(equityConfig(), mockStore, publisher, clock).Allocate(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, domain.EquityOutcomeGranted, grant.Outcome)
	assert.Equal(t, 99*money.OnePercent, grant.OwnerShare)
}

func TestEquityAllocator_Allocate_NoOps(t *testing.T) {
	for _, outcome := range []domain.EquityOutcome{domain.EquityOutcomeNotEligible, domain.EquityOutcomeAlreadyGranted} {
		t.Run(string(outcome), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockStore := mocks.NewMockStore(ctrl)
			publisher := mocks.NewMockPublisher(ctrl)
			clock := mocks.NewMockClock(ctrl)

			mockStore.EXPECT().GrantPlatformEquity(gomock.Any(), gomock.Any()).Return(&domain.EquityGrant{Outcome: outcome}, nil)
			// no event for no-ops

			grant, err := tranche.NewEquityAllocator(equityConfig(), mockStore, publisher, clock).
				Allocate(context.Background(), milestone(domain.TrancheStatusCompleted))
			require.NoError(t, err)
			assert.Equal(t, outcome, grant.Outcome)
		})
	}
}

func TestEquityAllocator_Allocate_CapExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)

	mockStore.EXPECT().GrantPlatformEquity(gomock.Any(), gomock.Any()).Return(nil, domain.ErrEquityCapExceeded)

	cfg := equityConfig()
	cfg.Policy = domain.EquityCapPolicyClamp
	_, err := tranche.NewEquityAllocator(cfg, mockStore, mocks.NewMockPublisher(ctrl), clock).
		Allocate(context.Background(), milestone(domain.TrancheStatusCompleted))
	assert.ErrorIs(t, err, domain.ErrEquityCapExceeded)
}

func TestEquityConfig_Headroom(t *testing.T) {
	testCases := []struct {
		name     string
		policy   domain.EquityCapPolicy
		expected store.EquityHeadroom
	}{
		{
			name:     "reject needs a full increment",
			policy:   domain.EquityCapPolicyReject,
			expected: store.EquityHeadroom{Cap: 49 * money.OnePercent, MinGrant: money.OnePercent},
		},
		{
			name:     "clamp needs any room",
			policy:   domain.EquityCapPolicyClamp,
			expected: store.EquityHeadroom{Cap: 49 * money.OnePercent, MinGrant: 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tranche.EquityConfig{Increment: money.OnePercent, Cap: 49 * money.OnePercent, Policy: tc.policy}
			assert.Equal(t, tc.expected, cfg.Headroom())
		})
	}
}
