package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/money"
	"github.com/feral-file/ff-revshare-engine/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func seedRevenue(t *testing.T, db *gorm.DB, amount int64, status domain.RevenueStatus, createdAt time.Time) schema.RevenueRecord {
	t.Helper()
	r := schema.RevenueRecord{AmountSatoshis: amount, Status: status, Source: "marketplace", CreatedAt: createdAt}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func seedStake(t *testing.T, db *gorm.DB, userID string, amount int64, status domain.StakeStatus) schema.Stake {
	t.Helper()
	s := schema.Stake{ID: uuid.New(), UserID: userID, Amount: amount, Status: status}
	require.NoError(t, db.Create(&s).Error)
	return s
}

func seedProject(t *testing.T, db *gorm.DB, slug, owner, createdVia string) schema.Project {
	t.Helper()
	p := schema.Project{Slug: slug, OwnerUserID: owner, CreatedVia: createdVia, Metadata: datatypes.JSON(`{}`)}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedMember(t *testing.T, db *gorm.DB, projectID int64, userID string, share money.Percent) {
	t.Helper()
	require.NoError(t, db.Create(&schema.ProjectMember{
		ProjectID:   projectID,
		UserID:      userID,
		Role:        "owner",
		EquityShare: share,
	}).Error)
}

func seedTranche(t *testing.T, db *gorm.DB, slug string, number int) schema.FundingTranche {
	t.Helper()
	tr := schema.FundingTranche{ProjectSlug: slug, TrancheNumber: number, Name: "Milestone", Status: domain.TrancheStatusOpen}
	require.NoError(t, db.Create(&tr).Error)
	return tr
}

func seedIssue(t *testing.T, db *gorm.DB, repoID int64, number int, state domain.IssueState, trancheIDs ...int64) schema.GitHubIssue {
	t.Helper()
	issue := schema.GitHubIssue{RepoID: repoID, RepoFullName: "acme/app", IssueNumber: number, State: state}
	require.NoError(t, db.Create(&issue).Error)
	for _, id := range trancheIDs {
		require.NoError(t, db.Create(&schema.TrancheAssignment{IssueID: issue.ID, TrancheID: id}).Error)
	}
	return issue
}

func seedAllocation(t *testing.T, db *gorm.DB, trancheID int64, investor string, status domain.EscrowStatus) schema.InvestorAllocation {
	t.Helper()
	a := schema.InvestorAllocation{TrancheID: trancheID, InvestorID: investor, Amount: 1000, EscrowStatus: status}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func memberShare(t *testing.T, db *gorm.DB, projectID int64, userID string) money.Percent {
	t.Helper()
	var m schema.ProjectMember
	require.NoError(t, db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&m).Error)
	return m.EquityShare
}

func closeIssue(t *testing.T, store Store, repoID int64, number int) {
	t.Helper()
	require.NoError(t, store.UpsertIssueState(context.Background(), domain.IssueStateChange{
		RepoID:       repoID,
		RepoFullName: "acme/app",
		IssueNumber:  number,
		State:        domain.IssueStateClosed,
		At:           time.Now().UTC(),
	}))
}

// =============================================================================
// Dividends
// =============================================================================

func testClaimPendingRevenue(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	now := time.Now().UTC()
	since := now.Add(-24 * time.Hour)

	recent1 := seedRevenue(t, db, 600, domain.RevenueStatusPending, now.Add(-time.Hour))
	recent2 := seedRevenue(t, db, 400, domain.RevenueStatusPending, now.Add(-2*time.Hour))
	seedRevenue(t, db, 5000, domain.RevenueStatusPending, now.Add(-48*time.Hour))
	seedRevenue(t, db, 7000, domain.RevenueStatusDistributed, now.Add(-time.Hour))

	roundID := uuid.New()
	claimed, err := store.ClaimPendingRevenue(ctx, roundID, since, now)
	require.NoError(t, err)
	require.Len(t, claimed, 2)

	ids := []int64{claimed[0].ID, claimed[1].ID}
	assert.ElementsMatch(t, []int64{recent1.ID, recent2.ID}, ids)
	for _, r := range claimed {
		assert.Equal(t, domain.RevenueStatusDistributed, r.Status)
		require.NotNil(t, r.RoundID)
		assert.Equal(t, roundID, *r.RoundID)
	}

	t.Run("second claim finds nothing", func(t *testing.T) {
		again, err := store.ClaimPendingRevenue(ctx, uuid.New(), since, now)
		require.NoError(t, err)
		assert.Empty(t, again)
	})

	t.Run("released claim can be claimed again", func(t *testing.T) {
		released, err := store.ReleaseRevenueClaim(ctx, roundID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), released)

		reclaimed, err := store.ClaimPendingRevenue(ctx, uuid.New(), since, now)
		require.NoError(t, err)
		assert.Len(t, reclaimed, 2)
	})
}

func testGetConfirmedStakes(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	a := seedStake(t, db, "alice", 700, domain.StakeStatusConfirmed)
	b := seedStake(t, db, "bob", 300, domain.StakeStatusConfirmed)
	seedStake(t, db, "carol", 900, domain.StakeStatusPending)

	stakes, err := store.GetConfirmedStakes(ctx)
	require.NoError(t, err)
	require.Len(t, stakes, 2)

	got := map[uuid.UUID]int64{}
	for _, s := range stakes {
		got[s.ID] = s.Amount
	}
	assert.Equal(t, map[uuid.UUID]int64{a.ID: 700, b.ID: 300}, got)
}

func testUpsertCapTableEntry(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	stake := seedStake(t, db, "alice", 700, domain.StakeStatusConfirmed)

	first := uuid.New()
	require.NoError(t, store.UpsertCapTableEntry(ctx, schema.CapTableEntry{StakeID: stake.ID, PercentagePPM: 700000, RoundID: first}))

	second := uuid.New()
	require.NoError(t, store.UpsertCapTableEntry(ctx, schema.CapTableEntry{StakeID: stake.ID, PercentagePPM: 500000, RoundID: second}))

	var entry schema.CapTableEntry
	require.NoError(t, db.Where("stake_id = ?", stake.ID).First(&entry).Error)
	assert.Equal(t, int64(500000), entry.PercentagePPM)
	assert.Equal(t, second, entry.RoundID)
}

func testGetWithdrawalAddresses(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	require.NoError(t, db.Create(&schema.WithdrawalAddress{UserID: "alice", Address: "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2"}).Error)

	addresses, err := store.GetWithdrawalAddresses(ctx, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"alice": "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2"}, addresses)

	empty, err := store.GetWithdrawalAddresses(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testRecordDistribution(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	alice := seedStake(t, db, "alice", 700, domain.StakeStatusConfirmed)
	bob := seedStake(t, db, "bob", 300, domain.StakeStatusConfirmed)

	record := func(roundID uuid.UUID) RecordDistributionInput {
		return RecordDistributionInput{
			Record: schema.DistributionRecord{
				RoundID:        roundID,
				TotalRevenue:   1000,
				DividendPool:   750,
				TotalStaked:    1000,
				RatePerUnitPPM: 750000,
				HoldersPaid:    1,
				HoldersSkipped: 1,
				Manifest:       datatypes.JSON(`[]`),
				ManifestDigest: "4f53cda18c2baa0c0354bb5f9a3ecbe5ed12ab4d8e11ba873c2f11161202b945",
			},
			Credits: []StakeCredit{{StakeID: alice.ID, Amount: 525}, {StakeID: bob.ID, Amount: 225}},
			Owed:    []OwedCredit{{UserID: "bob", Amount: 225}},
			At:      time.Now().UTC(),
		}
	}

	roundID := uuid.New()
	saved, err := store.RecordDistribution(ctx, record(roundID))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	second, err := store.RecordDistribution(ctx, record(uuid.New()))
	require.NoError(t, err)
	assert.Greater(t, second.ID, saved.ID)

	var a, b schema.Stake
	require.NoError(t, db.First(&a, "id = ?", alice.ID).Error)
	require.NoError(t, db.First(&b, "id = ?", bob.ID).Error)
	assert.Equal(t, int64(1050), a.DividendsAccumulated)
	assert.Equal(t, int64(450), b.DividendsAccumulated)

	var owed schema.DividendsOwed
	require.NoError(t, db.First(&owed, "user_id = ?", "bob").Error)
	assert.Equal(t, int64(450), owed.DividendsPending)

	t.Run("duplicate round id applies nothing", func(t *testing.T) {
		_, err := store.RecordDistribution(ctx, record(roundID))
		require.Error(t, err)

		var b schema.Stake
		require.NoError(t, db.First(&b, "id = ?", bob.ID).Error)
		assert.Equal(t, int64(450), b.DividendsAccumulated)
	})

	t.Run("get by round id", func(t *testing.T) {
		got, err := store.GetDistributionByRoundID(ctx, roundID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(750), got.DividendPool)

		missing, err := store.GetDistributionByRoundID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

// =============================================================================
// Tranches
// =============================================================================

func testIssueState(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	seedProject(t, db, "issue-project", "owner", "")
	tranche := seedTranche(t, db, "issue-project", 1)
	seedIssue(t, db, 42, 7, domain.IssueStateOpen, tranche.ID)

	closeIssue(t, store, 42, 7)

	issue, err := store.GetIssueWithTranches(ctx, 42, 7)
	require.NoError(t, err)
	require.NotNil(t, issue)
	assert.Equal(t, domain.IssueStateClosed, issue.State)
	require.Len(t, issue.Tranches, 1)
	assert.Equal(t, tranche.ID, issue.Tranches[0].ID)
	assert.Equal(t, domain.TrancheStatusOpen, issue.Tranches[0].Status)

	var row schema.GitHubIssue
	require.NoError(t, db.Where("repo_id = ? AND issue_number = ?", 42, 7).First(&row).Error)
	assert.NotNil(t, row.ClosedAt)

	t.Run("reopen clears closed_at", func(t *testing.T) {
		require.NoError(t, store.UpsertIssueState(ctx, domain.IssueStateChange{
			RepoID: 42, IssueNumber: 7, State: domain.IssueStateOpen, At: time.Now().UTC(),
		}))
		var row schema.GitHubIssue
		require.NoError(t, db.Where("repo_id = ? AND issue_number = ?", 42, 7).First(&row).Error)
		assert.Equal(t, domain.IssueStateOpen, row.State)
		assert.Nil(t, row.ClosedAt)
	})

	t.Run("unknown issue is cached without tranches", func(t *testing.T) {
		closeIssue(t, store, 42, 99)
		issue, err := store.GetIssueWithTranches(ctx, 42, 99)
		require.NoError(t, err)
		require.NotNil(t, issue)
		assert.Empty(t, issue.Tranches)
	})

	t.Run("missing issue returns nil", func(t *testing.T) {
		issue, err := store.GetIssueWithTranches(ctx, 1, 1)
		require.NoError(t, err)
		assert.Nil(t, issue)
	})
}

func testCompleteTranche(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	seedProject(t, db, "tranche-project", "owner", "")
	tranche := seedTranche(t, db, "tranche-project", 1)
	for n := 1; n <= 3; n++ {
		seedIssue(t, db, 5, n, domain.IssueStateOpen, tranche.ID)
	}

	closeIssue(t, store, 5, 1)
	closeIssue(t, store, 5, 2)

	done, err := store.CompleteTrancheIfAllIssuesClosed(ctx, tranche.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, done, "one issue is still open")

	closeIssue(t, store, 5, 3)

	done, err = store.CompleteTrancheIfAllIssuesClosed(ctx, tranche.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, done)

	done, err = store.CompleteTrancheIfAllIssuesClosed(ctx, tranche.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, done, "completion happens once")

	var row schema.FundingTranche
	require.NoError(t, db.First(&row, tranche.ID).Error)
	assert.Equal(t, domain.TrancheStatusCompleted, row.Status)
	assert.Equal(t, int64(1), row.Version)
	assert.NotNil(t, row.CompletedAt)

	t.Run("tranche without issues stays open", func(t *testing.T) {
		empty := seedTranche(t, db, "tranche-project", 2)
		done, err := store.CompleteTrancheIfAllIssuesClosed(ctx, empty.ID, time.Now().UTC())
		require.NoError(t, err)
		assert.False(t, done)
	})

	t.Run("missing tranche", func(t *testing.T) {
		_, err := store.CompleteTrancheIfAllIssuesClosed(ctx, -1, time.Now().UTC())
		assert.ErrorIs(t, err, domain.ErrTrancheNotFound)
	})
}

func testListTranchesForReconciliation(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	seedProject(t, db, "kintsugi", "owner", domain.KINTSUGI_CREATED_VIA)

	ready := seedTranche(t, db, "kintsugi", 1)
	seedIssue(t, db, 9, 1, domain.IssueStateClosed, ready.ID)

	notReady := seedTranche(t, db, "kintsugi", 2)
	seedIssue(t, db, 9, 2, domain.IssueStateOpen, notReady.ID)

	seedTranche(t, db, "kintsugi", 3) // no issues

	open, err := store.ListOpenTranchesReadyForCompletion(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, ready.ID, open[0].ID)

	after, err := store.ListOpenTranchesReadyForCompletion(ctx, ready.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, after)

	done, err := store.CompleteTrancheIfAllIssuesClosed(ctx, ready.ID, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, done)
	seedAllocation(t, db, ready.ID, "investor", domain.EscrowStatusPending)

	headroom := EquityHeadroom{Cap: 49 * money.OnePercent, MinGrant: money.OnePercent}
	pending, err := store.ListCompletedTranchesPendingSettlement(ctx, headroom, 0, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ready.ID, pending[0].ID)

	_, err = store.ReleasePendingAllocations(ctx, ready.ID, time.Now().UTC())
	require.NoError(t, err)

	// Escrow settled but the platform grant is still missing
	pending, err = store.ListCompletedTranchesPendingSettlement(ctx, headroom, 0, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = store.GrantPlatformEquity(ctx, GrantPlatformEquityInput{
		ProjectSlug: "kintsugi",
		TrancheID:   ready.ID,
		RecipientID: "platform",
		Increment:   money.OnePercent,
		Cap:         49 * money.OnePercent,
		Policy:      domain.EquityCapPolicyReject,
	})
	require.NoError(t, err)

	pending, err = store.ListCompletedTranchesPendingSettlement(ctx, headroom, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func testListPendingSettlementSkipsCappedProjects(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	project := seedProject(t, db, "kintsugi-capped", "owner", domain.KINTSUGI_CREATED_VIA)

	granted := seedTranche(t, db, "kintsugi-capped", 1)
	require.NoError(t, db.Model(&schema.FundingTranche{}).Where("id = ?", granted.ID).
		Update("status", domain.TrancheStatusCompleted).Error)
	require.NoError(t, db.Create(&schema.EquityAllocation{
		ProjectID:      project.ID,
		RecipientID:    "platform",
		RecipientType:  domain.RecipientTypePlatform,
		EquityPercent:  money.Percent(48_500_000),
		TrancheID:      granted.ID,
		AllocationType: domain.AllocationTypeDevelopmentCompletion,
	}).Error)

	capped := seedTranche(t, db, "kintsugi-capped", 2)
	require.NoError(t, db.Model(&schema.FundingTranche{}).Where("id = ?", capped.ID).
		Update("status", domain.TrancheStatusCompleted).Error)

	t.Run("reject policy has no room for a full increment", func(t *testing.T) {
		pending, err := store.ListCompletedTranchesPendingSettlement(ctx,
			EquityHeadroom{Cap: 49 * money.OnePercent, MinGrant: money.OnePercent}, 0, 10)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("clamp policy still has room", func(t *testing.T) {
		pending, err := store.ListCompletedTranchesPendingSettlement(ctx,
			EquityHeadroom{Cap: 49 * money.OnePercent, MinGrant: 1}, 0, 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, capped.ID, pending[0].ID)
	})

	t.Run("zero cap disables the check", func(t *testing.T) {
		pending, err := store.ListCompletedTranchesPendingSettlement(ctx, EquityHeadroom{}, 0, 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
	})

	t.Run("pending escrow is listed regardless of the cap", func(t *testing.T) {
		seedAllocation(t, db, capped.ID, "investor", domain.EscrowStatusPending)
		pending, err := store.ListCompletedTranchesPendingSettlement(ctx,
			EquityHeadroom{Cap: 49 * money.OnePercent, MinGrant: money.OnePercent}, 0, 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, capped.ID, pending[0].ID)
	})
}

func testReleasePendingAllocations(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	seedProject(t, db, "escrow-project", "owner", "")
	tranche := seedTranche(t, db, "escrow-project", 1)
	a := seedAllocation(t, db, tranche.ID, "inv-1", domain.EscrowStatusPending)
	b := seedAllocation(t, db, tranche.ID, "inv-2", domain.EscrowStatusPending)
	seedAllocation(t, db, tranche.ID, "inv-3", domain.EscrowStatusReleased)

	ids, err := store.ReleasePendingAllocations(ctx, tranche.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{a.ID, b.ID}, ids)

	var row schema.InvestorAllocation
	require.NoError(t, db.First(&row, a.ID).Error)
	assert.Equal(t, domain.EscrowStatusReleased, row.EscrowStatus)
	assert.NotNil(t, row.ReleasedAt)

	again, err := store.ReleasePendingAllocations(ctx, tranche.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, again)
}

func testGrantPlatformEquity(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	project := seedProject(t, db, "kintsugi-app", "owner-1", domain.KINTSUGI_CREATED_VIA)
	seedMember(t, db, project.ID, "owner-1", money.HundredPercent)
	t1 := seedTranche(t, db, "kintsugi-app", 1)
	t2 := seedTranche(t, db, "kintsugi-app", 2)

	input := func(trancheID int64) GrantPlatformEquityInput {
		return GrantPlatformEquityInput{
			ProjectSlug: "kintsugi-app",
			TrancheID:   trancheID,
			RecipientID: "platform-user",
			Increment:   money.OnePercent,
			Cap:         49 * money.OnePercent,
			Policy:      domain.EquityCapPolicyReject,
			MemberRole:  domain.PLATFORM_MEMBER_ROLE,
		}
	}

	grant, err := store.GrantPlatformEquity(ctx, input(t1.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.EquityOutcomeGranted, grant.Outcome)
	assert.Equal(t, money.OnePercent, grant.Percent)
	assert.Equal(t, 99*money.OnePercent, memberShare(t, db, project.ID, "owner-1"))
	assert.Equal(t, money.OnePercent, memberShare(t, db, project.ID, "platform-user"))

	var allocation schema.EquityAllocation
	require.NoError(t, db.First(&allocation, grant.AllocationID).Error)
	assert.Equal(t, "Earned 1.000000% equity for completing Tranche 1: Milestone", allocation.Notes)
	assert.Equal(t, domain.AllocationTypeDevelopmentCompletion, allocation.AllocationType)

	grant, err = store.GrantPlatformEquity(ctx, input(t2.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.EquityOutcomeGranted, grant.Outcome)
	assert.Equal(t, 98*money.OnePercent, memberShare(t, db, project.ID, "owner-1"))
	assert.Equal(t, 2*money.OnePercent, memberShare(t, db, project.ID, "platform-user"))
	assert.Equal(t, 2*money.OnePercent, grant.PlatformHeld)

	t.Run("same tranche is granted once", func(t *testing.T) {
		grant, err := store.GrantPlatformEquity(ctx, input(t1.ID))
		require.NoError(t, err)
		assert.Equal(t, domain.EquityOutcomeAlreadyGranted, grant.Outcome)
		assert.Equal(t, 98*money.OnePercent, memberShare(t, db, project.ID, "owner-1"))
	})

	t.Run("cap rejects", func(t *testing.T) {
		t3 := seedTranche(t, db, "kintsugi-app", 3)
		in := input(t3.ID)
		in.Cap = 2*money.OnePercent + money.OnePercent/2
		_, err := store.GrantPlatformEquity(ctx, in)
		assert.ErrorIs(t, err, domain.ErrEquityCapExceeded)
		assert.Equal(t, 98*money.OnePercent, memberShare(t, db, project.ID, "owner-1"))
	})

	t.Run("cap clamps", func(t *testing.T) {
		t4 := seedTranche(t, db, "kintsugi-app", 4)
		in := input(t4.ID)
		in.Cap = 2*money.OnePercent + money.OnePercent/2
		in.Policy = domain.EquityCapPolicyClamp
		grant, err := store.GrantPlatformEquity(ctx, in)
		require.NoError(t, err)
		assert.True(t, grant.Clamped)
		assert.Equal(t, money.OnePercent/2, grant.Percent)
		assert.Equal(t, in.Cap, grant.PlatformHeld)
	})

	t.Run("non kintsugi project is not eligible", func(t *testing.T) {
		seedProject(t, db, "plain", "owner-2", "")
		tr := seedTranche(t, db, "plain", 1)
		in := input(tr.ID)
		in.ProjectSlug = "plain"
		grant, err := store.GrantPlatformEquity(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, domain.EquityOutcomeNotEligible, grant.Outcome)
	})

	t.Run("unknown project", func(t *testing.T) {
		in := input(t1.ID)
		in.ProjectSlug = "missing"
		_, err := store.GrantPlatformEquity(ctx, in)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})
}

func testApplyEquityCap(t *testing.T, _ Store, _ *gorm.DB) {
	tests := []struct {
		name     string
		held     money.Percent
		policy   domain.EquityCapPolicy
		expected money.Percent
		clamped  bool
		err      error
	}{
		{name: "under cap", held: 0, policy: domain.EquityCapPolicyReject, expected: money.OnePercent},
		{name: "exactly at cap", held: 48 * money.OnePercent, policy: domain.EquityCapPolicyReject, expected: money.OnePercent},
		{name: "reject over cap", held: 49 * money.OnePercent, policy: domain.EquityCapPolicyReject, err: domain.ErrEquityCapExceeded},
		{name: "clamp partial", held: 48*money.OnePercent + money.OnePercent/4, policy: domain.EquityCapPolicyClamp, expected: 3 * money.OnePercent / 4, clamped: true},
		{name: "clamp with no headroom", held: 49 * money.OnePercent, policy: domain.EquityCapPolicyClamp, err: domain.ErrEquityCapExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped, err := applyEquityCap(tt.held, money.OnePercent, 49*money.OnePercent, tt.policy)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.clamped, clamped)
		})
	}
}

// =============================================================================
// Webhooks
// =============================================================================

func testRecordWebhookDelivery(t *testing.T, store Store, _ *gorm.DB) {
	ctx := context.Background()
	delivery := schema.GitHubWebhookDelivery{
		ID:         "01HZX8Y0000000000000000000",
		DeliveryID: "72d3162e-cc78-11e3-81ab-4c9367dc0958",
		Event:      "issues",
		Action:     "closed",
		ReceivedAt: time.Now().UTC(),
	}

	duplicate, err := store.RecordWebhookDelivery(ctx, delivery)
	require.NoError(t, err)
	assert.False(t, duplicate)

	delivery.ID = "01HZX8Y0000000000000000001"
	duplicate, err = store.RecordWebhookDelivery(ctx, delivery)
	require.NoError(t, err)
	assert.True(t, duplicate)
}

func testPing(t *testing.T, store Store, _ *gorm.DB) {
	require.NoError(t, store.Ping(context.Background()))
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, life, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 20, open)
	assert.Equal(t, 5, idle)
	assert.Equal(t, 5*time.Minute, life)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(3, 10, time.Hour, time.Minute)
	assert.Equal(t, 3, open)
	assert.Equal(t, 3, idle)
}

// RunStoreTests runs every store test, each in its own rolled-back transaction
func RunStoreTests(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store, *gorm.DB)
	}{
		{"ClaimPendingRevenue", testClaimPendingRevenue},
		{"GetConfirmedStakes", testGetConfirmedStakes},
		{"UpsertCapTableEntry", testUpsertCapTableEntry},
		{"GetWithdrawalAddresses", testGetWithdrawalAddresses},
		{"RecordDistribution", testRecordDistribution},
		{"IssueState", testIssueState},
		{"CompleteTranche", testCompleteTranche},
		{"ListTranchesForReconciliation", testListTranchesForReconciliation},
		{"ListPendingSettlementSkipsCappedProjects", testListPendingSettlementSkipsCappedProjects},
		{"ReleasePendingAllocations", testReleasePendingAllocations},
		{"GrantPlatformEquity", testGrantPlatformEquity},
		{"ApplyEquityCap", testApplyEquityCap},
		{"RecordWebhookDelivery", testRecordWebhookDelivery},
		{"Ping", testPing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, db := initDB(t)
			tt.fn(t, store, db)
		})
	}
}
