package logic

import (
	"testing"

	"github.com/blues/rfs/internal/model"
	"github.com/stretchr/testify/require"
)

func TestMilestoneLifecycle(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	_, err := f.validators.RegisterValidator(authority, reviewer, f.now)
	require.NoError(err)

	project := f.createProject(t, 1, 1000, 60, 40)
	f.deposit(t, alice, 400)
	f.deposit(t, bob, 600)
	_, err = f.projects.FundProject(1, alice, 400, f.now)
	require.NoError(err)
	funded, err := f.projects.FundProject(1, bob, 600, f.now)
	require.NoError(err)
	require.Equal(uint64(1000), funded.CurrentFunding)
	require.Equal(model.ProjectStatusFunded, funded.Status)

	submitted, err := f.milestones.CompleteMilestone(1, 0, evidence(0xa1), creator, f.now)
	require.NoError(err)
	require.Equal(model.MilestoneStatusUnderReview, submitted.Status)
	require.Equal(evidence(0xa1), submitted.EvidenceHash)
	require.NotNil(submitted.SubmittedAt)

	approved, err := f.milestones.ValidateMilestone(1, 0, true, reviewer, f.now)
	require.NoError(err)
	require.Equal(uint64(600), approved.ReleaseAmount)
	require.Equal(model.MilestoneStatusCompleted, approved.Milestone.Status)
	require.Equal(model.ProjectStatusFunded, approved.ProjectStatus)
	require.Equal(uint64(600), f.balance(t, creator))
	require.Equal(uint64(400), f.balance(t, project.EscrowAddress))

	_, err = f.milestones.CompleteMilestone(1, 1, evidence(0xb2), creator, f.now)
	require.NoError(err)
	rejected, err := f.milestones.ValidateMilestone(1, 1, false, reviewer, f.now)
	require.NoError(err)
	require.Zero(rejected.ReleaseAmount)
	require.Equal(model.MilestoneStatusRejected, rejected.Milestone.Status)
	require.Equal(model.ProjectStatusCompleted, rejected.ProjectStatus)
	require.Equal(uint64(600), f.balance(t, creator))

	loaded, err := f.projects.GetProject(1)
	require.NoError(err)
	require.Equal(model.ProjectStatusCompleted, loaded.Status)
	require.Equal(uint64(600), loaded.Milestones[0].ReleasedAmount)
	require.NotNil(loaded.Milestones[0].ApprovedAt)
	require.Equal(reviewer, loaded.Milestones[1].ReviewedBy)
	require.Nil(loaded.Milestones[1].ApprovedAt)

	v, err := f.validators.GetValidator(reviewer)
	require.NoError(err)
	require.Equal(uint64(2), v.ValidationsCompleted)
	require.Equal(uint32(2), v.ReputationScore)

	types := f.eventTypes(t, 1)
	require.Equal([]string{
		model.EventMilestoneSubmitted,
		model.EventMilestoneCompleted,
		model.EventMilestoneSubmitted,
		model.EventMilestoneRejected,
		model.EventProjectCompleted,
	}, types[len(types)-5:])

	// 已审核的里程碑不能再次审核，也不会再放款
	_, err = f.milestones.ValidateMilestone(1, 0, true, reviewer, f.now)
	require.ErrorIs(err, ErrInvalidMilestoneStatus)
	require.Equal(uint64(600), f.balance(t, creator))
}

func TestCompleteMilestoneFailures(t *testing.T) {
	f := newFixture(t)
	f.createProject(t, 1, 1000, 50, 50)
	f.createProject(t, 2, 500, 100)
	f.fundToGoal(t, 2, 500)
	_, err := f.milestones.CompleteMilestone(2, 0, evidence(1), creator, f.now)
	require.NoError(t, err)

	tests := []struct {
		name      string
		projectId uint64
		index     int
		hash      string
		caller    string
		want      error
	}{
		{"bad evidence hash", 2, 0, "0xabcd", creator, ErrInvalidEvidenceHash},
		{"missing project", 9, 0, evidence(1), creator, ErrProjectNotFound},
		{"not the creator", 2, 0, evidence(1), stranger, ErrUnauthorized},
		{"not funded yet", 1, 0, evidence(1), creator, ErrProjectNotFunded},
		{"index out of range", 2, 1, evidence(1), creator, ErrInvalidMilestone},
		{"negative index", 2, -1, evidence(1), creator, ErrInvalidMilestone},
		{"already submitted", 2, 0, evidence(2), creator, ErrMilestoneAlreadyCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.milestones.CompleteMilestone(tt.projectId, tt.index, tt.hash, tt.caller, f.now)
			require.ErrorIs(t, err, tt.want)
		})
	}

	project, err := f.projects.GetProject(2)
	require.NoError(t, err)
	require.Equal(t, evidence(1), project.Milestones[0].EvidenceHash)
}

func TestValidateMilestoneFailures(t *testing.T) {
	f := newFixture(t)
	_, err := f.validators.RegisterValidator(authority, reviewer, f.now)
	require.NoError(t, err)
	_, err = f.validators.RegisterValidator(authority, bob, f.now)
	require.NoError(t, err)
	_, err = f.validators.RevokeValidator(authority, bob, f.now)
	require.NoError(t, err)

	f.createProject(t, 1, 1000, 50, 50)
	f.fundToGoal(t, 1, 1000)
	_, err = f.milestones.CompleteMilestone(1, 0, evidence(1), creator, f.now)
	require.NoError(t, err)

	tests := []struct {
		name      string
		projectId uint64
		index     int
		validator string
		want      error
	}{
		{"unknown validator", 1, 0, stranger, ErrNotValidator},
		{"revoked validator", 1, 0, bob, ErrNotValidator},
		{"creator is not a validator", 1, 0, creator, ErrNotValidator},
		{"missing project", 9, 0, reviewer, ErrProjectNotFound},
		{"index out of range", 1, 2, reviewer, ErrInvalidMilestone},
		{"still pending", 1, 1, reviewer, ErrInvalidMilestoneStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.milestones.ValidateMilestone(tt.projectId, tt.index, true, tt.validator, f.now)
			require.ErrorIs(t, err, tt.want)
		})
	}

	require.Equal(t, uint64(1000), f.balance(t, escrowAddress(1)))
}

func TestReleaseAmountTruncates(t *testing.T) {
	tests := []struct {
		funding uint64
		pct     uint8
		want    uint64
	}{
		{1000, 60, 600},
		{999, 33, 329},
		{7, 50, 3},
		{1000, 0, 0},
		{^uint64(0), 100, ^uint64(0)},
		{^uint64(0), 50, ^uint64(0) / 2},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ReleaseAmount(tt.funding, tt.pct))
	}
}
