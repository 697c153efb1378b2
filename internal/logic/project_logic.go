package logic

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/blues/rfs/internal/ledger"
	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/model"
	"gorm.io/gorm"
)

// ProjectLogic 项目业务逻辑
type ProjectLogic struct {
	db     *gorm.DB
	ledger ledger.Ledger
	events *EventLogic
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(db *gorm.DB, l ledger.Ledger, events *EventLogic) *ProjectLogic {
	return &ProjectLogic{db: db, ledger: l, events: events}
}

// MilestoneParams 创建项目时的里程碑参数
type MilestoneParams struct {
	Title             string
	Description       string
	FundingPercentage uint8
}

// CreateProjectParams 创建项目参数
type CreateProjectParams struct {
	ProjectId    uint64
	Title        string
	Description  string
	FundingGoal  uint64
	DurationDays uint32
	Milestones   []MilestoneParams
}

// CreateResearchProject 创建科研项目并开立托管账户
func (p *ProjectLogic) CreateResearchProject(creator string, params CreateProjectParams, now time.Time) (*model.ProjectModel, error) {
	creator, err := normalizeAddress(creator)
	if err != nil {
		return nil, err
	}

	var project *model.ProjectModel
	err = p.db.Transaction(func(tx *gorm.DB) error {
		state, err := requireActivePlatform(tx)
		if err != nil {
			return err
		}
		if params.FundingGoal < state.MinFundingAmount {
			return ErrFundingTooLow
		}
		if err := validateProjectParams(params); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.ProjectModel{}).Where("project_id = ?", params.ProjectId).Count(&count).Error; err != nil {
			return fmt.Errorf("检查项目是否存在失败: %w", err)
		}
		if count > 0 {
			return ErrProjectExists
		}

		escrow := escrowAddress(params.ProjectId)
		project = &model.ProjectModel{
			ProjectId:     params.ProjectId,
			CreatedAt:     now,
			UpdatedAt:     now,
			Creator:       creator,
			Title:         params.Title,
			Description:   params.Description,
			FundingGoal:   params.FundingGoal,
			DurationDays:  params.DurationDays,
			Status:        model.ProjectStatusActive,
			EscrowAddress: escrow,
		}
		for i, m := range params.Milestones {
			project.Milestones = append(project.Milestones, model.ProjectMilestoneModel{
				CreatedAt:         now,
				UpdatedAt:         now,
				MilestoneIndex:    i,
				Title:             m.Title,
				Description:       m.Description,
				FundingPercentage: m.FundingPercentage,
				Status:            model.MilestoneStatusPending,
			})
		}

		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("创建项目失败: %w", err)
		}
		if err := p.ledger.OpenAccount(tx, escrow, projectAuthority(params.ProjectId)); err != nil {
			return err
		}
		if err := tx.Model(&model.PlatformStateModel{}).
			Where("id = ?", model.PlatformStateId).
			Update("total_projects", gorm.Expr("total_projects + ?", 1)).Error; err != nil {
			return fmt.Errorf("更新平台统计失败: %w", err)
		}

		return p.events.Emit(tx, model.ProjectCreatedEvent{
			ProjectId:   project.ProjectId,
			Creator:     creator,
			FundingGoal: project.FundingGoal,
			Title:       project.Title,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Created project %d by %s, goal %d, %d milestones", project.ProjectId, creator, project.FundingGoal, len(project.Milestones))
	return project, nil
}

// validateProjectParams 校验筹款目标上限、里程碑数量、比例与文本长度
func validateProjectParams(params CreateProjectParams) error {
	if params.FundingGoal > math.MaxInt64 {
		return ErrInvalidAmount
	}
	if len(params.Milestones) < 1 || len(params.Milestones) > model.MaxMilestones {
		return ErrInvalidMilestones
	}

	var total int
	for _, m := range params.Milestones {
		if m.FundingPercentage > 100 {
			return ErrInvalidMilestonePercentages
		}
		total += int(m.FundingPercentage)
	}
	if total > 100 {
		return ErrInvalidMilestonePercentages
	}

	if !textInRange(params.Title, 1, model.MaxTitleLength) ||
		!textInRange(params.Description, 0, model.MaxDescriptionLength) {
		return ErrInvalidText
	}
	for _, m := range params.Milestones {
		if !textInRange(m.Title, 1, model.MaxMilestoneTitle) ||
			!textInRange(m.Description, 0, model.MaxMilestoneDescription) {
			return ErrInvalidText
		}
	}
	return nil
}

func textInRange(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// GetProject 获取项目详情
func (p *ProjectLogic) GetProject(projectId uint64) (*model.ProjectModel, error) {
	return loadProject(p.db, projectId, false)
}

// GetProjects 获取项目列表
func (p *ProjectLogic) GetProjects(status, creator string, page, pageSize int) ([]model.ProjectModel, int64, error) {
	var projects []model.ProjectModel
	var total int64

	query := p.db.Model(&model.ProjectModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if creator != "" {
		normalized, err := normalizeAddress(creator)
		if err != nil {
			return nil, 0, err
		}
		query = query.Where("creator = ?", normalized)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取项目总数失败: %w", err)
	}

	page, pageSize = normalizePage(page, pageSize)
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Order("project_id ASC").Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("获取项目列表失败: %w", err)
	}

	return projects, total, nil
}

// GetContributors 获取项目贡献者
func (p *ProjectLogic) GetContributors(projectId uint64) ([]model.ContributorModel, error) {
	var count int64
	if err := p.db.Model(&model.ProjectModel{}).Where("project_id = ?", projectId).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("获取项目失败: %w", err)
	}
	if count == 0 {
		return nil, ErrProjectNotFound
	}

	var contributors []model.ContributorModel
	if err := p.db.Where("project_id = ?", projectId).Order("id ASC").Find(&contributors).Error; err != nil {
		return nil, fmt.Errorf("获取贡献者失败: %w", err)
	}
	return contributors, nil
}

// isExpired 截止时间已到
func isExpired(project *model.ProjectModel, now time.Time) bool {
	deadline, ok := project.ExpiresAt()
	return ok && !now.Before(deadline)
}
