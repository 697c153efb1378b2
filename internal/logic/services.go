package logic

import (
	"github.com/blues/rfs/internal/chain"
	"github.com/blues/rfs/internal/ledger"
	"gorm.io/gorm"
)

// Services 共享同一账本与事件出口的全部业务逻辑
type Services struct {
	Platform  *PlatformLogic
	Validator *ValidatorLogic
	Ledger    *LedgerLogic
	Event     *EventLogic
	Project   *ProjectLogic
	Milestone *MilestoneLogic
	NFT       *NFTLogic
}

// NewServices 组装业务逻辑
func NewServices(db *gorm.DB, codec *chain.EventCodec) *Services {
	l := ledger.NewDBLedger()
	events := NewEventLogic(db, codec)

	return &Services{
		Platform:  NewPlatformLogic(db),
		Validator: NewValidatorLogic(db),
		Ledger:    NewLedgerLogic(db, l),
		Event:     events,
		Project:   NewProjectLogic(db, l, events),
		Milestone: NewMilestoneLogic(db, l, events),
		NFT:       NewNFTLogic(db, events),
	}
}
