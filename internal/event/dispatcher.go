package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blues/rfs/internal/chain"
	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/model"
	"github.com/ethereum/go-ethereum/common"
	"github.com/panjf2000/ants/v2"
)

// EventSource 待分发事件的来源
type EventSource interface {
	GetUnprocessedEvents(limit int) ([]model.EventModel, error)
	MarkEventsProcessed(ids []int64, now time.Time) error
}

// Dispatcher 把事件表中未处理的事件分发给处理器
type Dispatcher struct {
	source    EventSource
	codec     *chain.EventCodec
	manager   *ProcessorManager
	batchSize int
	now       func() time.Time
}

// NewDispatcher 创建事件分发器
func NewDispatcher(source EventSource, codec *chain.EventCodec, manager *ProcessorManager, batchSize int) *Dispatcher {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &Dispatcher{
		source:    source,
		codec:     codec,
		manager:   manager,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// DispatchOnce 处理一批事件，返回成功处理的数量
//
// 同一项目的事件按写入顺序串行处理，某个事件处理失败后该项目剩余事件留到下一轮；
// 无法解码的事件记录日志后直接标记为已处理。不同项目之间并发处理。
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	events, err := d.source.GetUnprocessedEvents(d.batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	groups, order := groupByProject(events)
	logger.Debug("Dispatching %d events across %d projects", len(events), len(groups))

	pool, err := ants.NewPool(len(groups))
	if err != nil {
		return 0, fmt.Errorf("failed to create pool for %d groups: %w", len(groups), err)
	}
	defer pool.Release()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		processed []int64
	)
	for _, projectId := range order {
		group := groups[projectId]
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			ids := d.processGroup(ctx, projectId, group)
			mu.Lock()
			processed = append(processed, ids...)
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit project %d events to pool: %v", projectId, err)
		}
	}
	wg.Wait()

	if err := d.source.MarkEventsProcessed(processed, d.now()); err != nil {
		return 0, err
	}
	return len(processed), nil
}

// processGroup 串行处理同一项目的事件
func (d *Dispatcher) processGroup(ctx context.Context, projectId uint64, events []*model.EventModel) []int64 {
	ids := make([]int64, 0, len(events))
	for _, e := range events {
		if ctx.Err() != nil {
			break
		}

		_, eventData, err := d.codec.Decode(common.HexToHash(e.Topic), e.RawData)
		if err != nil {
			// 无法解码的事件重试也不会成功，标记已处理后跳过
			logger.Error("Dropping undecodable event %d (%s) for project %d: %v", e.Id, e.EventType, projectId, err)
			ids = append(ids, e.Id)
			continue
		}

		if err := d.manager.ProcessEvent(e, eventData); err != nil {
			logger.Error("Error processing event %d for project %d: %v", e.Id, projectId, err)
			break
		}
		ids = append(ids, e.Id)
	}
	return ids
}

// groupByProject 按项目分组，保持首次出现的顺序
func groupByProject(events []model.EventModel) (map[uint64][]*model.EventModel, []uint64) {
	groups := make(map[uint64][]*model.EventModel)
	var order []uint64
	for i := range events {
		projectId := events[i].ProjectId
		if _, ok := groups[projectId]; !ok {
			order = append(order, projectId)
		}
		groups[projectId] = append(groups[projectId], &events[i])
	}
	return groups, order
}
