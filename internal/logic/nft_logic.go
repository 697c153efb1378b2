package logic

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 贡献NFT的 token id 命名空间
var nftNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("rfs/contribution-nft"))

// 稀有度分档（贡献占目标的百分比上限，含边界）
var (
	commonMaxPercent = big.NewInt(1)
	rareMaxPercent   = big.NewInt(5)
	epicMaxPercent   = big.NewInt(15)
)

// NFTLogic 贡献NFT业务逻辑
type NFTLogic struct {
	db     *gorm.DB
	events *EventLogic
}

// NewNFTLogic 创建NFT业务逻辑
func NewNFTLogic(db *gorm.DB, events *EventLogic) *NFTLogic {
	return &NFTLogic{db: db, events: events}
}

// MintContributionNFT 为贡献者铸造纪念NFT，每个贡献者每个项目只能铸造一次
func (n *NFTLogic) MintContributionNFT(projectId uint64, contributor string, now time.Time) (*model.ContributionNFTModel, error) {
	contributor, err := normalizeAddress(contributor)
	if err != nil {
		return nil, err
	}

	var nft model.ContributionNFTModel
	err = n.db.Transaction(func(tx *gorm.DB) error {
		if _, err := requireActivePlatform(tx); err != nil {
			return err
		}
		project, err := loadProject(tx, projectId, false)
		if err != nil {
			return err
		}
		entry := project.FindContributor(contributor)
		if entry == nil {
			return ErrNotContributor
		}

		var count int64
		if err := tx.Model(&model.ContributionNFTModel{}).
			Where("project_id = ? AND contributor = ?", projectId, contributor).
			Count(&count).Error; err != nil {
			return fmt.Errorf("检查NFT失败: %w", err)
		}
		if count > 0 {
			return ErrNFTAlreadyMinted
		}

		nft = DeriveContributionNFT(project, entry)
		nft.CreatedAt = now
		if err := tx.Create(&nft).Error; err != nil {
			return fmt.Errorf("铸造NFT失败: %w", err)
		}

		return n.events.Emit(tx, model.NFTMintedEvent{
			ProjectId:   projectId,
			Contributor: contributor,
			Amount:      entry.Amount,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Minted %s NFT %s for %s on project %d", nft.Rarity, nft.TokenId, contributor, projectId)
	return &nft, nil
}

// GetContributionNFT 获取贡献者的NFT
func (n *NFTLogic) GetContributionNFT(projectId uint64, contributor string) (*model.ContributionNFTModel, error) {
	contributor, err := normalizeAddress(contributor)
	if err != nil {
		return nil, err
	}

	var nft model.ContributionNFTModel
	if err := n.db.First(&nft, "project_id = ? AND contributor = ?", projectId, contributor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNFTNotFound
		}
		return nil, fmt.Errorf("获取NFT失败: %w", err)
	}
	return &nft, nil
}

// DeriveContributionNFT 由贡献快照推导NFT元数据，相同输入得到相同结果
func DeriveContributionNFT(project *model.ProjectModel, contributor *model.ContributorModel) model.ContributionNFTModel {
	return model.ContributionNFTModel{
		TokenId:      ContributionTokenId(project.ProjectId, contributor.Address),
		ProjectId:    project.ProjectId,
		Contributor:  contributor.Address,
		Amount:       contributor.Amount,
		Timestamp:    contributor.Timestamp,
		ProjectTitle: project.Title,
		Rarity:       CalculateRarity(contributor.Amount, project.FundingGoal),
	}
}

// ContributionTokenId 项目与贡献者确定唯一的 token id
func ContributionTokenId(projectId uint64, contributor string) string {
	return uuid.NewSHA1(nftNamespace, []byte(fmt.Sprintf("%d:%s", projectId, contributor))).String()
}

// CalculateRarity 按 (contribution*100)/fundingGoal 分档
func CalculateRarity(contribution, fundingGoal uint64) model.NFTRarity {
	if fundingGoal == 0 {
		return model.NFTRarityCommon
	}

	percent := new(big.Int).SetUint64(contribution)
	percent.Mul(percent, big.NewInt(100))
	percent.Quo(percent, new(big.Int).SetUint64(fundingGoal))

	switch {
	case percent.Cmp(commonMaxPercent) <= 0:
		return model.NFTRarityCommon
	case percent.Cmp(rareMaxPercent) <= 0:
		return model.NFTRarityRare
	case percent.Cmp(epicMaxPercent) <= 0:
		return model.NFTRarityEpic
	default:
		return model.NFTRarityLegendary
	}
}
