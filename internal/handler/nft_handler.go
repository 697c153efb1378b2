package handler

import (
	"net/http"
	"time"

	"github.com/blues/rfs/internal/logic"
	"github.com/gin-gonic/gin"
)

type NFTHandler struct {
	nftLogic *logic.NFTLogic
}

func NewNFTHandler(nftLogic *logic.NFTLogic) *NFTHandler {
	return &NFTHandler{nftLogic: nftLogic}
}

// MintContributionNFT 贡献者铸造纪念NFT
func (h *NFTHandler) MintContributionNFT(c *gin.Context) {
	contributor, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := projectIdParam(c)
	if !ok {
		return
	}

	nft, err := h.nftLogic.MintContributionNFT(id, contributor, time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "NFT铸造成功", nft)
}

// GetContributionNFT 获取贡献者的NFT
func (h *NFTHandler) GetContributionNFT(c *gin.Context) {
	id, ok := projectIdParam(c)
	if !ok {
		return
	}

	nft, err := h.nftLogic.GetContributionNFT(id, c.Param("address"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取NFT成功", nft)
}
