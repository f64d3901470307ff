package controller

import (
	"edumate_backend/internal/service"
	"edumate_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type KnowledgeController struct {
	KnowledgeService *service.KnowledgeService
}

func NewKnowledgeController(knowledgeService *service.KnowledgeService) *KnowledgeController {
	return &KnowledgeController{KnowledgeService: knowledgeService}
}

type IngestRequest struct {
	Content    string `json:"content" binding:"required"`
	Source     string `json:"source"`
	Subject    string `json:"subject"`
	GradeLevel int    `json:"grade_level"`
}

// Ingest godoc
// @Summary 写入知识库文档
// @Description 向量化并入库一条文档
// @Tags 知识库
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body IngestRequest true "文档内容"
// @Success 201 {object} util.Response{data=model.KnowledgeDocument}
// @Router /api/admin/knowledge [post]
func (c *KnowledgeController) Ingest(ctx *gin.Context) {
	var req IngestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	doc, err := c.KnowledgeService.Ingest(ctx.Request.Context(), req.Content, req.Source, req.Subject, req.GradeLevel)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, doc)
}

// Search godoc
// @Summary 相似检索（调试）
// @Tags 知识库
// @Produce json
// @Security ApiKeyAuth
// @Param q query string true "查询文本"
// @Param limit query int false "返回条数，默认3"
// @Success 200 {object} util.Response{data=[]repository.Neighbor}
// @Router /api/knowledge/search [get]
func (c *KnowledgeController) Search(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "q is required")
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "3"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 3
	}

	neighbors, err := c.KnowledgeService.Search(ctx.Request.Context(), query, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, neighbors)
}
