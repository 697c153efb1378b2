package model

// 事件类型
const (
	EventProjectCreated       = "ProjectCreated"
	EventProjectContribution  = "ProjectContribution"
	EventProjectFunded        = "ProjectFunded"
	EventMilestoneSubmitted   = "MilestoneSubmitted"
	EventMilestoneCompleted   = "MilestoneCompleted"
	EventMilestoneRejected    = "MilestoneRejected"
	EventProjectCompleted     = "ProjectCompleted"
	EventProjectCancelled     = "ProjectCancelled"
	EventContributionRefunded = "ContributionRefunded"
	EventNFTMinted            = "NFTMinted"
)

// DomainEvent 核心操作发出的通知
type DomainEvent interface {
	EventName() string
	EventProjectId() uint64
}

type ProjectCreatedEvent struct {
	ProjectId   uint64 `json:"projectId"`
	Creator     string `json:"creator"`
	FundingGoal uint64 `json:"fundingGoal"`
	Title       string `json:"title"`
}

type ProjectContributionEvent struct {
	ProjectId    uint64 `json:"projectId"`
	Contributor  string `json:"contributor"`
	Amount       uint64 `json:"amount"`
	TotalFunding uint64 `json:"totalFunding"`
}

type ProjectFundedEvent struct {
	ProjectId    uint64 `json:"projectId"`
	TotalFunding uint64 `json:"totalFunding"`
}

type MilestoneSubmittedEvent struct {
	ProjectId      uint64 `json:"projectId"`
	MilestoneIndex uint8  `json:"milestoneIndex"`
	EvidenceHash   string `json:"evidenceHash"`
}

type MilestoneCompletedEvent struct {
	ProjectId      uint64 `json:"projectId"`
	MilestoneIndex uint8  `json:"milestoneIndex"`
	FundsReleased  uint64 `json:"fundsReleased"`
}

type MilestoneRejectedEvent struct {
	ProjectId      uint64 `json:"projectId"`
	MilestoneIndex uint8  `json:"milestoneIndex"`
	Validator      string `json:"validator"`
}

type ProjectCompletedEvent struct {
	ProjectId     uint64 `json:"projectId"`
	TotalReleased uint64 `json:"totalReleased"`
}

type ProjectCancelledEvent struct {
	ProjectId     uint64 `json:"projectId"`
	TotalRefunded uint64 `json:"totalRefunded"`
}

type ContributionRefundedEvent struct {
	ProjectId   uint64 `json:"projectId"`
	Contributor string `json:"contributor"`
	Amount      uint64 `json:"amount"`
}

type NFTMintedEvent struct {
	ProjectId   uint64 `json:"projectId"`
	Contributor string `json:"contributor"`
	Amount      uint64 `json:"amount"`
}

func (e ProjectCreatedEvent) EventName() string       { return EventProjectCreated }
func (e ProjectContributionEvent) EventName() string  { return EventProjectContribution }
func (e ProjectFundedEvent) EventName() string        { return EventProjectFunded }
func (e MilestoneSubmittedEvent) EventName() string   { return EventMilestoneSubmitted }
func (e MilestoneCompletedEvent) EventName() string   { return EventMilestoneCompleted }
func (e MilestoneRejectedEvent) EventName() string    { return EventMilestoneRejected }
func (e ProjectCompletedEvent) EventName() string     { return EventProjectCompleted }
func (e ProjectCancelledEvent) EventName() string     { return EventProjectCancelled }
func (e ContributionRefundedEvent) EventName() string { return EventContributionRefunded }
func (e NFTMintedEvent) EventName() string            { return EventNFTMinted }

func (e ProjectCreatedEvent) EventProjectId() uint64       { return e.ProjectId }
func (e ProjectContributionEvent) EventProjectId() uint64  { return e.ProjectId }
func (e ProjectFundedEvent) EventProjectId() uint64        { return e.ProjectId }
func (e MilestoneSubmittedEvent) EventProjectId() uint64   { return e.ProjectId }
func (e MilestoneCompletedEvent) EventProjectId() uint64   { return e.ProjectId }
func (e MilestoneRejectedEvent) EventProjectId() uint64    { return e.ProjectId }
func (e ProjectCompletedEvent) EventProjectId() uint64     { return e.ProjectId }
func (e ProjectCancelledEvent) EventProjectId() uint64     { return e.ProjectId }
func (e ContributionRefundedEvent) EventProjectId() uint64 { return e.ProjectId }
func (e NFTMintedEvent) EventProjectId() uint64            { return e.ProjectId }
