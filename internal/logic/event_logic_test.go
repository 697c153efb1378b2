package logic

import (
	"encoding/json"
	"testing"

	"github.com/blues/rfs/internal/chain"
	"github.com/blues/rfs/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestEmittedEventsDecode(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.createProject(t, 5, 1000, 100)
	f.deposit(t, alice, 250)
	_, err := f.projects.FundProject(5, alice, 250, f.now)
	require.NoError(err)

	events, total, err := f.events.GetEvents(5, model.EventProjectContribution, 1, 10)
	require.NoError(err)
	require.Equal(int64(1), total)
	event := events[0]

	codec, err := chain.NewEventCodec()
	require.NoError(err)
	name, values, err := codec.Decode(common.HexToHash(event.Topic), event.RawData)
	require.NoError(err)
	require.Equal(model.EventProjectContribution, name)
	require.Equal(uint64(5), values["projectId"])
	require.Equal(common.HexToAddress(alice), values["contributor"])
	require.Equal(uint64(250), values["amount"])
	require.Equal(uint64(250), values["totalFunding"])

	var payload model.ProjectContributionEvent
	require.NoError(json.Unmarshal(event.Data, &payload))
	require.Equal(alice, payload.Contributor)
	require.Equal(uint64(250), payload.TotalFunding)
}

func TestUnprocessedEvents(t *testing.T) {
	require := require.New(t)
	f := newFixture(t)
	f.createProject(t, 1, 1000, 100)
	f.createProject(t, 2, 1000, 100)

	pending, err := f.events.GetUnprocessedEvents(10)
	require.NoError(err)
	require.Len(pending, 2)
	require.Less(pending[0].Id, pending[1].Id)

	require.NoError(f.events.MarkEventsProcessed([]int64{pending[0].Id}, f.now))
	require.NoError(f.events.MarkEventsProcessed(nil, f.now))

	pending, err = f.events.GetUnprocessedEvents(10)
	require.NoError(err)
	require.Len(pending, 1)
	require.Equal(uint64(2), pending[0].ProjectId)
}

func TestEmitRejectsUnknownEvent(t *testing.T) {
	f := newFixture(t)
	err := f.events.Emit(f.db, unknownEvent{}, f.now)
	require.ErrorIs(t, err, chain.ErrUnknownEvent)
}

type unknownEvent struct{}

func (unknownEvent) EventName() string      { return "Unknown" }
func (unknownEvent) EventProjectId() uint64 { return 0 }
