package task

import (
	"context"
	"time"

	"github.com/blues/rfs/internal/config"
	"github.com/blues/rfs/internal/event"
	"github.com/blues/rfs/internal/logger"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const eventDispatchJobName = "event_dispatcher"

// EventDispatchJob 事件分发任务
type EventDispatchJob struct {
	dispatcher *event.Dispatcher
	config     config.TaskConfig
	log        *logger.Logger
}

// NewEventDispatchJob 创建事件分发任务
func NewEventDispatchJob(dispatcher *event.Dispatcher, cfg config.TaskConfig) *EventDispatchJob {
	return &EventDispatchJob{
		dispatcher: dispatcher,
		config:     cfg,
		log:        logger.With(zap.String("job", eventDispatchJobName)),
	}
}

// GetName 获取任务名称
func (j *EventDispatchJob) GetName() string {
	return eventDispatchJobName
}

// GetSchedule 获取调度配置
func (j *EventDispatchJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.EventInterval) * time.Second)
}

// Execute 执行任务
func (j *EventDispatchJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(j.config.EventInterval)*time.Second)
	defer cancel()

	n, err := j.dispatcher.DispatchOnce(ctx)
	if err != nil {
		j.log.Error("Failed to dispatch events: %v", err)
		return
	}
	if n > 0 {
		j.log.Info("Dispatched %d events", n)
	}
}
