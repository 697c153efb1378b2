package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func projectIdParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "无效的项目ID")
		return 0, false
	}
	return id, true
}

func milestoneIndexParam(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "无效的里程碑索引")
		return 0, false
	}
	return index, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}
