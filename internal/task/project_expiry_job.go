package task

import (
	"time"

	"github.com/blues/rfs/internal/config"
	"github.com/blues/rfs/internal/logger"
	"github.com/blues/rfs/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const projectExpiryJobName = "project_expiry_updater"

// ProjectExpiryJob 项目到期任务，到期未筹满的项目取消并退款
type ProjectExpiryJob struct {
	projectLogic *logic.ProjectLogic
	config       config.TaskConfig
	now          func() time.Time
	log          *logger.Logger
}

// NewProjectExpiryJob 创建项目到期任务
func NewProjectExpiryJob(projectLogic *logic.ProjectLogic, cfg config.TaskConfig) *ProjectExpiryJob {
	return &ProjectExpiryJob{
		projectLogic: projectLogic,
		config:       cfg,
		now:          time.Now,
		log:          logger.With(zap.String("job", projectExpiryJobName)),
	}
}

// GetName 获取任务名称
func (j *ProjectExpiryJob) GetName() string {
	return projectExpiryJobName
}

// GetSchedule 获取调度配置
func (j *ProjectExpiryJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectExpiryJob) Execute() {
	j.log.Debug("Starting project expiry task")

	cancelled, err := j.projectLogic.CancelExpiredProjects(j.now())
	if err != nil {
		j.log.Error("Failed to cancel expired projects: %v", err)
		return
	}

	if cancelled > 0 {
		j.log.Info("Project expiry task completed, cancelled %d projects", cancelled)
	}
}
