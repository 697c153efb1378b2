package handler

import (
	"net/http"

	"github.com/blues/rfs/internal/logic"
	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledgerLogic *logic.LedgerLogic
}

func NewLedgerHandler(ledgerLogic *logic.LedgerLogic) *LedgerHandler {
	return &LedgerHandler{ledgerLogic: ledgerLogic}
}

// GetAccount 获取账户余额
func (h *LedgerHandler) GetAccount(c *gin.Context) {
	account, err := h.ledgerLogic.GetAccount(c.Param("address"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取账户成功", account)
}

// Deposit 平台管理员充值
func (h *LedgerHandler) Deposit(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	account, err := h.ledgerLogic.Deposit(caller, c.Param("address"), req.Amount)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "充值成功", account)
}

// GetTransfers 获取账户流水
func (h *LedgerHandler) GetTransfers(c *gin.Context) {
	page, pageSize := pageParams(c)
	transfers, total, err := h.ledgerLogic.GetTransfers(c.Param("address"), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取流水成功", TransferListResponse{
		Transfers:  transfers,
		Pagination: newPagination(page, pageSize, total),
	})
}
