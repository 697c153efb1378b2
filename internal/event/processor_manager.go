package event

import (
	"fmt"
	"sort"
	"sync"

	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/model"
)

// AllEvents 订阅全部事件类型
const AllEvents = "*"

// EventProcessor 事件处理器接口
type EventProcessor interface {
	Process(event *model.EventModel, eventData map[string]interface{}) error
	GetEventTypes() []string
}

// ProcessorManager 事件处理器管理器
type ProcessorManager struct {
	mu         sync.RWMutex
	processors map[string][]EventProcessor
}

// NewProcessorManager 创建处理器管理器
func NewProcessorManager(processors ...EventProcessor) *ProcessorManager {
	manager := &ProcessorManager{
		processors: make(map[string][]EventProcessor),
	}
	for _, p := range processors {
		manager.RegisterProcessor(p)
	}

	logger.Info("ProcessorManager initialized with %d processors", len(processors))
	return manager
}

// RegisterProcessor 注册事件处理器
func (pm *ProcessorManager) RegisterProcessor(processor EventProcessor) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	for _, eventType := range processor.GetEventTypes() {
		pm.processors[eventType] = append(pm.processors[eventType], processor)
		logger.Debug("Registered processor %T for event type: %s", processor, eventType)
	}
}

// GetProcessors 获取指定事件类型的处理器，包括订阅全部事件的处理器
func (pm *ProcessorManager) GetProcessors(eventType string) []EventProcessor {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	result := make([]EventProcessor, 0, len(pm.processors[AllEvents])+len(pm.processors[eventType]))
	result = append(result, pm.processors[AllEvents]...)
	if eventType != AllEvents {
		result = append(result, pm.processors[eventType]...)
	}
	return result
}

// ProcessEvent 依次交给所有匹配的处理器，任一失败即返回
func (pm *ProcessorManager) ProcessEvent(event *model.EventModel, eventData map[string]interface{}) error {
	processors := pm.GetProcessors(event.EventType)
	if len(processors) == 0 {
		logger.Debug("No processor found for event type: %s", event.EventType)
		return nil
	}

	for _, p := range processors {
		if err := p.Process(event, eventData); err != nil {
			return fmt.Errorf("processor %T failed on event %d: %w", p, event.Id, err)
		}
	}
	return nil
}

// GetSupportedEventTypes 获取支持的事件类型列表
func (pm *ProcessorManager) GetSupportedEventTypes() []string {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	eventTypes := make([]string, 0, len(pm.processors))
	for eventType := range pm.processors {
		eventTypes = append(eventTypes, eventType)
	}
	sort.Strings(eventTypes)
	return eventTypes
}
