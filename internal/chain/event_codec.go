package chain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var ErrUnknownEvent = errors.New("unknown event")

// 科研众筹事件ABI定义，与链上索引器使用同一套编码
const eventABI = `[
	{"anonymous": false, "type": "event", "name": "ProjectCreated", "inputs": [
		{"indexed": false, "name": "projectId", "type": "uint64"},
		{"indexed": false, "name": "creator", "type": "address"},
		{"indexed": false, "name": "fundingGoal", "type": "uint64"},
		{"indexed": false, "name": "title", "type": "string"}
	]},
	{"anonymous": false, "type": "event", "name": "ProjectContribution", "inputs": [
		{"indexed": false, "name": "projectId", "type": "uint64"},
		{"indexed": false, "name": "contributor", "type": "address"},
		{"indexed": false, "name": "amount", "type": "uint64"},
		{"indexed": false, "name": "totalFunding", "type": "uint64"}
	]},
	{"anonymous": false, "type": "event", "name": "ProjectFunded", "inputs": [
		{"indexed": false, "name": "projectId", "type": "uint64"},
		{"indexed": false, "name": "totalFunding", "type": "uint64"}
	]},
	{"anonymous": false, "type": "event", "name": "MilestoneSubmitted", "inputs": [
		{"indexed": false, "name": "projectId", "type": "uint64"},
		{"indexed": false, "name": "milestoneIndex", "type": "uint8"},
		{"indexed": false, "name": "evidenceHash", "type": "bytes32"}
	]},
	{"anonymous": false, "type": "event", "name": "MilestoneCompleted", "inputs": [
		{"indexed": false, "name": "projectId", "type": "uint64"},
		{"indexed": false, "name": "milestoneIndex", "type": "uint8"},
		{"indexed": false, "name": "fundsReleased", "type": "uint64"}
	]},
	{"anonymous": false, "type": "event", "name": "MilestoneRejected", "inputs": [
		{"indexed": false, "name": "projectId", "type": "uint64"},
		{"indexed": false, "name": "milestoneIndex", "type": "uint8"},
		{"indexed": false, "name": "validator", "type": "address"}
	]},
	{"anonymous": false, "type": "event", "name": "ProjectCompleted", "inputs": [
		{"indexed": false, "name": "projectId", "type": "uint64"},
		{"indexed": false, "name": "totalReleased", "type": "uint64"}
	]},
	{"anonymous": false, "type": "event", "name": "ProjectCancelled", "inputs": [
		{"indexed": false, "name": "projectId", "type": "uint64"},
		{"indexed": false, "name": "totalRefunded", "type": "uint64"}
	]},
	{"anonymous": false, "type": "event", "name": "ContributionRefunded", "inputs": [
		{"indexed": false, "name": "projectId", "type": "uint64"},
		{"indexed": false, "name": "contributor", "type": "address"},
		{"indexed": false, "name": "amount", "type": "uint64"}
	]},
	{"anonymous": false, "type": "event", "name": "NFTMinted", "inputs": [
		{"indexed": false, "name": "projectId", "type": "uint64"},
		{"indexed": false, "name": "contributor", "type": "address"},
		{"indexed": false, "name": "amount", "type": "uint64"}
	]}
]`

// EventCodec 事件ABI编解码工具
type EventCodec struct {
	abi abi.ABI
}

// NewEventCodec 创建事件编解码工具
func NewEventCodec() (*EventCodec, error) {
	parsedABI, err := abi.JSON(strings.NewReader(eventABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse event ABI: %w", err)
	}
	return &EventCodec{abi: parsedABI}, nil
}

// Topic 获取事件签名哈希
func (c *EventCodec) Topic(eventName string) (common.Hash, error) {
	event, ok := c.abi.Events[eventName]
	if !ok {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrUnknownEvent, eventName)
	}
	return event.ID, nil
}

// Encode 按ABI顺序编码事件参数
func (c *EventCodec) Encode(eventName string, args ...interface{}) (common.Hash, []byte, error) {
	event, ok := c.abi.Events[eventName]
	if !ok {
		return common.Hash{}, nil, fmt.Errorf("%w: %s", ErrUnknownEvent, eventName)
	}

	data, err := event.Inputs.NonIndexed().Pack(args...)
	if err != nil {
		return common.Hash{}, nil, fmt.Errorf("failed to pack %s: %w", eventName, err)
	}
	return event.ID, data, nil
}

// Decode 根据签名哈希解析事件数据
func (c *EventCodec) Decode(topic common.Hash, data []byte) (string, map[string]interface{}, error) {
	for eventName, event := range c.abi.Events {
		if event.ID != topic {
			continue
		}

		result := make(map[string]interface{})
		if err := event.Inputs.NonIndexed().UnpackIntoMap(result, data); err != nil {
			return "", nil, fmt.Errorf("failed to unpack %s: %w", eventName, err)
		}
		result["eventName"] = eventName
		return eventName, result, nil
	}

	return "", nil, fmt.Errorf("%w: topic %s", ErrUnknownEvent, topic.Hex())
}
