package issues

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartcity-be/models"
)

func TestAdminBadgeCountsPendingOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	badge, err := svc.ComputeBadge(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 0, badge.Count)
	assert.False(t, badge.Show)

	// Three pending from two reporters plus two non-pending.
	p1 := mustCreate(t, svc, alice)
	mustCreate(t, svc, alice)
	mustCreate(t, svc, bob)

	r1 := mustCreate(t, svc, alice)
	_, err = svc.Resolve(ctx, admin, r1.ID)
	require.NoError(t, err)
	c1 := mustCreate(t, svc, bob)
	_, err = svc.Resolve(ctx, admin, c1.ID)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, admin, c1.ID)
	require.NoError(t, err)

	badge, err = svc.ComputeBadge(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 3, badge.Count)
	assert.True(t, badge.Show)

	require.NoError(t, svc.Delete(ctx, admin, p1.ID))
	badge, err = svc.ComputeBadge(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, badge.Count)
}

func TestReporterBadgeTracksUnseenUpdates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	i1 := mustCreate(t, svc, alice)
	i2 := mustCreate(t, svc, alice)
	other := mustCreate(t, svc, bob)

	badge, err := svc.ComputeBadge(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 0, badge.Count, "pending issues with no updates carry no badge")

	_, err = svc.AttachSolution(ctx, admin, i1.ID, "Filled and resealed")
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, admin, i2.ID)
	require.NoError(t, err)
	_, err = svc.AttachSolution(ctx, admin, other.ID, "Rewired the pole")
	require.NoError(t, err)

	badge, err = svc.ComputeBadge(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, badge.Count, "only Alice's issues count toward her badge")

	_, err = svc.ListMine(ctx, alice)
	require.NoError(t, err)

	badge, err = svc.ComputeBadge(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 0, badge.Count)
	assert.False(t, badge.Show)

	// Re-listing with nothing new keeps the badge at zero.
	_, err = svc.ListMine(ctx, alice)
	require.NoError(t, err)
	badge, err = svc.ComputeBadge(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 0, badge.Count)

	// Bob never listed, so his badge is untouched.
	badge, err = svc.ComputeBadge(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, 1, badge.Count)
}

func TestStatsAggregates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ComputeStats(ctx, alice)
	var perr *PermissionError
	require.ErrorAs(t, err, &perr)

	mustCreate(t, svc, alice)
	i2, err := svc.Create(ctx, bob, CreateInput{
		Phone:       "5559876543",
		Category:    models.Streetlight,
		Location:    "Oak Ave",
		Description: "Streetlight flickering all night",
	})
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, admin, i2.ID)
	require.NoError(t, err)
	_, err = svc.Rate(ctx, bob, i2.ID, 5)
	require.NoError(t, err)

	i3 := mustCreate(t, svc, alice)
	_, err = svc.Resolve(ctx, admin, i3.ID)
	require.NoError(t, err)
	_, err = svc.Rate(ctx, alice, i3.ID, 3)
	require.NoError(t, err)

	stats, err := svc.ComputeStats(ctx, admin)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalIssues)
	assert.Equal(t, 1, stats.PendingIssues)
	assert.Equal(t, 2, stats.ByCategory[models.Pothole])
	assert.Equal(t, 1, stats.ByCategory[models.Streetlight])
	assert.Equal(t, 1, stats.ByStatus[models.Pending])
	assert.Equal(t, 2, stats.ByStatus[models.Resolved])
	assert.Equal(t, 2, stats.RatedIssues)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.001)

	require.Len(t, stats.Last7Days, 7)
	today := stats.Last7Days[6]
	assert.Equal(t, 3, today.Count, "all issues were created today")
}
