package logic

import (
	"testing"
	"time"

	"github.com/blues/rfs/internal/chain"
	"github.com/blues/rfs/internal/ledger"
	"github.com/blues/rfs/internal/model"
	"github.com/blues/rfs/internal/repository/repositorytest"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 纯数字地址的校验和格式与原文相同
const (
	authority = "0x1111111111111111111111111111111111111111"
	creator   = "0x2222222222222222222222222222222222222222"
	alice     = "0x3333333333333333333333333333333333333333"
	bob       = "0x4444444444444444444444444444444444444444"
	reviewer  = "0x5555555555555555555555555555555555555555"
	stranger  = "0x6666666666666666666666666666666666666666"
)

type fixture struct {
	db         *gorm.DB
	ledger     *ledger.DBLedger
	platform   *PlatformLogic
	validators *ValidatorLogic
	accounts   *LedgerLogic
	events     *EventLogic
	projects   *ProjectLogic
	milestones *MilestoneLogic
	nfts       *NFTLogic
	now        time.Time
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithLedger(t, nil)
}

// newFixtureWithLedger 可替换项目与里程碑使用的账本实现
func newFixtureWithLedger(t *testing.T, wrap func(ledger.Ledger) ledger.Ledger) *fixture {
	t.Helper()

	db := repositorytest.NewDB(t)
	codec, err := chain.NewEventCodec()
	require.NoError(t, err)

	dbLedger := ledger.NewDBLedger()
	var projectLedger ledger.Ledger = dbLedger
	if wrap != nil {
		projectLedger = wrap(dbLedger)
	}

	events := NewEventLogic(db, codec)
	f := &fixture{
		db:         db,
		ledger:     dbLedger,
		platform:   NewPlatformLogic(db),
		validators: NewValidatorLogic(db),
		accounts:   NewLedgerLogic(db, dbLedger),
		events:     events,
		projects:   NewProjectLogic(db, projectLedger, events),
		milestones: NewMilestoneLogic(db, projectLedger, events),
		nfts:       NewNFTLogic(db, events),
		now:        time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	_, err = f.platform.Initialize(authority, 250, 100, f.now)
	require.NoError(t, err)
	return f
}

func (f *fixture) deposit(t *testing.T, address string, amount uint64) {
	t.Helper()
	_, err := f.accounts.Deposit(authority, address, amount)
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, address string) uint64 {
	t.Helper()
	account, err := f.ledger.GetAccount(f.db, address)
	require.NoError(t, err)
	return account.Balance
}

func (f *fixture) createProject(t *testing.T, projectId, goal uint64, percentages ...uint8) *model.ProjectModel {
	t.Helper()
	project, err := f.projects.CreateResearchProject(creator, projectParams(projectId, goal, percentages...), f.now)
	require.NoError(t, err)
	return project
}

// fundToGoal 由 alice 一次性筹满
func (f *fixture) fundToGoal(t *testing.T, projectId, goal uint64) {
	t.Helper()
	f.deposit(t, alice, goal)
	_, err := f.projects.FundProject(projectId, alice, goal, f.now)
	require.NoError(t, err)
}

func (f *fixture) eventTypes(t *testing.T, projectId uint64) []string {
	t.Helper()
	events, _, err := f.events.GetEvents(projectId, "", 1, 100)
	require.NoError(t, err)
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.EventType)
	}
	return types
}

func projectParams(projectId, goal uint64, percentages ...uint8) CreateProjectParams {
	params := CreateProjectParams{
		ProjectId:    projectId,
		Title:        "Coral reef microbiome",
		Description:  "Sequencing reef samples across three seasons",
		FundingGoal:  goal,
		DurationDays: 30,
	}
	for _, pct := range percentages {
		params.Milestones = append(params.Milestones, MilestoneParams{
			Title:             "Phase",
			Description:       "Deliverable",
			FundingPercentage: pct,
		})
	}
	return params
}

func evidence(b byte) string {
	return common.BytesToHash([]byte{b}).Hex()
}
