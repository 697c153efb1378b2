package event

import (
	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/model"
)

// LogProcessor 把事件写入日志
type LogProcessor struct{}

// NewLogProcessor 创建日志处理器
func NewLogProcessor() *LogProcessor {
	return &LogProcessor{}
}

func (p *LogProcessor) GetEventTypes() []string {
	return []string{AllEvents}
}

func (p *LogProcessor) Process(event *model.EventModel, eventData map[string]interface{}) error {
	logger.Info("Event %s #%d for project %d: %s", event.EventType, event.Id, event.ProjectId, string(event.Data))
	return nil
}
