package logic

// ErrorKind 错误分类
type ErrorKind string

const (
	KindInputValidation ErrorKind = "input_validation"
	KindStateGate       ErrorKind = "state_gate"
	KindAuthorization   ErrorKind = "authorization"
	KindEconomicLimit   ErrorKind = "economic_limit"
	KindNotFound        ErrorKind = "not_found"
)

// Error 业务错误，任何一个都会使整个操作回滚
type Error struct {
	Code    string
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code string, kind ErrorKind, message string) *Error {
	return &Error{Code: code, Kind: kind, Message: message}
}

// 输入校验
var (
	ErrInvalidAmount               = newError("InvalidAmount", KindInputValidation, "金额无效")
	ErrInvalidMilestones           = newError("InvalidMilestones", KindInputValidation, "里程碑数量必须在1-10之间")
	ErrInvalidMilestonePercentages = newError("InvalidMilestonePercentages", KindInputValidation, "里程碑资金比例之和不能超过100")
	ErrInvalidMilestone            = newError("InvalidMilestone", KindInputValidation, "里程碑索引无效")
	ErrInvalidText                 = newError("InvalidText", KindInputValidation, "标题或描述长度无效")
	ErrInvalidAddress              = newError("InvalidAddress", KindInputValidation, "地址格式无效")
	ErrInvalidEvidenceHash         = newError("InvalidEvidenceHash", KindInputValidation, "证明材料摘要必须是32字节")
)

// 状态门控
var (
	ErrAlreadyInitialized        = newError("AlreadyInitialized", KindStateGate, "平台已初始化")
	ErrPlatformNotInitialized    = newError("PlatformNotInitialized", KindStateGate, "平台尚未初始化")
	ErrPlatformPaused            = newError("PlatformPaused", KindStateGate, "平台已暂停")
	ErrProjectExists             = newError("ProjectExists", KindStateGate, "项目ID已存在")
	ErrProjectNotActive          = newError("ProjectNotActive", KindStateGate, "项目不在筹款中")
	ErrProjectNotFunded          = newError("ProjectNotFunded", KindStateGate, "项目尚未筹满")
	ErrMilestoneAlreadyCompleted = newError("MilestoneAlreadyCompleted", KindStateGate, "里程碑已提交")
	ErrInvalidMilestoneStatus    = newError("InvalidMilestoneStatus", KindStateGate, "里程碑不在审核中")
	ErrNFTAlreadyMinted          = newError("NFTAlreadyMinted", KindStateGate, "该贡献者已铸造过NFT")
)

// 权限
var (
	ErrUnauthorized   = newError("Unauthorized", KindAuthorization, "无权执行该操作")
	ErrNotValidator   = newError("NotValidator", KindAuthorization, "调用者不是审核人")
	ErrNotContributor = newError("NotContributor", KindAuthorization, "调用者不是该项目的贡献者")
)

// 经济限制
var (
	ErrFundingTooLow              = newError("FundingTooLow", KindEconomicLimit, "筹款目标低于平台最低要求")
	ErrExceedsFundingGoal         = newError("ExceedsFundingGoal", KindEconomicLimit, "贡献金额超过剩余筹款额度")
	ErrContributorCapacityReached = newError("ContributorCapacityReached", KindEconomicLimit, "项目贡献者数量已达上限")
)

// 记录不存在
var (
	ErrProjectNotFound   = newError("ProjectNotFound", KindNotFound, "项目不存在")
	ErrValidatorNotFound = newError("ValidatorNotFound", KindNotFound, "审核人不存在")
	ErrNFTNotFound       = newError("NFTNotFound", KindNotFound, "NFT不存在")
)
