package model

import (
	"time"
)

// ContributionNFTModel 贡献纪念NFT，铸造后不可变
type ContributionNFTModel struct {
	TokenId   string    `json:"token_id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at"`

	ProjectId    uint64    `json:"project_id" gorm:"not null;uniqueIndex:idx_nft_project_contributor"`
	Contributor  string    `json:"contributor" gorm:"type:varchar(42);not null;uniqueIndex:idx_nft_project_contributor"`
	Amount       uint64    `json:"amount" gorm:"not null"`    // 铸造时的累计贡献快照
	Timestamp    time.Time `json:"timestamp" gorm:"not null"` // 贡献者最近一次贡献时间
	ProjectTitle string    `json:"project_title" gorm:"type:varchar(100)"`
	Rarity       NFTRarity `json:"rarity" gorm:"type:varchar(16);not null"`
}

// NFTRarity NFT稀有度
type NFTRarity string

const (
	NFTRarityCommon    NFTRarity = "common"    // 0-1%
	NFTRarityRare      NFTRarity = "rare"      // 2-5%
	NFTRarityEpic      NFTRarity = "epic"      // 6-15%
	NFTRarityLegendary NFTRarity = "legendary" // >15%
)

// TableName 自定义表名
func (ContributionNFTModel) TableName() string {
	return "contribution_nft"
}
