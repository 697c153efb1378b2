package event

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/blues/rfs/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// fakePublisher 只实现 Publish，其余方法不会被调用
type fakePublisher struct {
	redis.Cmdable
	channel  string
	messages [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.messages = append(f.messages, message.([]byte))
	return redis.NewIntResult(1, nil)
}

func TestRedisProcessorPublishesNotification(t *testing.T) {
	require := require.New(t)
	publisher := &fakePublisher{}
	p := NewRedisProcessor(publisher, "rfs:events")

	event := &model.EventModel{
		Id:        9,
		ProjectId: 3,
		EventType: model.EventProjectFunded,
		Data:      datatypes.JSON(`{"projectId":3,"totalFunding":1000}`),
	}
	require.NoError(p.Process(event, nil))

	require.Equal("rfs:events", publisher.channel)
	require.Len(publisher.messages, 1)

	var n Notification
	require.NoError(json.Unmarshal(publisher.messages[0], &n))
	require.Equal(int64(9), n.Id)
	require.Equal(uint64(3), n.ProjectId)
	require.Equal(model.EventProjectFunded, n.EventType)
	require.JSONEq(`{"projectId":3,"totalFunding":1000}`, string(n.Data))
}
