package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appmessage "github.com/xiebiao/booksapi/internal/application/message"
	"github.com/xiebiao/booksapi/internal/domain/message"
	"github.com/xiebiao/booksapi/internal/interface/http/dto"
	"github.com/xiebiao/booksapi/pkg/response"
)

// MessageHandler 留言演示接口
type MessageHandler struct {
	post   *appmessage.PostMessageUseCase
	list   *appmessage.ListMessagesUseCase
	get    *appmessage.GetMessageUseCase
	update *appmessage.UpdateMessageUseCase
	delete *appmessage.DeleteMessagesUseCase
}

// NewMessageHandler 创建留言处理器
func NewMessageHandler(
	post *appmessage.PostMessageUseCase,
	list *appmessage.ListMessagesUseCase,
	get *appmessage.GetMessageUseCase,
	update *appmessage.UpdateMessageUseCase,
	del *appmessage.DeleteMessagesUseCase,
) *MessageHandler {
	return &MessageHandler{post: post, list: list, get: get, update: update, delete: del}
}

// Post 新增留言
// @Summary      新增留言
// @Tags         留言
// @Accept       json
// @Produce      json
// @Param        request  body  dto.PostMessageRequest  true  "留言"
// @Success      201 {object} map[string]string
// @Failure      400 {object} response.Message
// @Router       /message [post]
func (h *MessageHandler) Post(c *gin.Context) {
	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, message.ErrMissingInfo)
		return
	}

	entry, err := h.post.Execute(c.Request.Context(), appmessage.PostMessageRequest{
		Name:     req.Name,
		Message:  req.Message,
		Priority: req.ParsePriority(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Entry(c, http.StatusCreated, entry)
}

// All 全部留言
// @Summary      全部留言
// @Tags         留言
// @Produce      json
// @Success      200 {object} map[string][]string
// @Router       /message/all [get]
func (h *MessageHandler) All(c *gin.Context) {
	entries, err := h.list.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Entries(c, entries)
}

// ByPriority 指定优先级的留言
// @Summary      按优先级查询
// @Tags         留言
// @Produce      json
// @Param        priority  query  int  true  "1-3"
// @Success      200 {object} map[string][]string
// @Failure      400 {object} response.Message
// @Failure      404 {object} response.Message
// @Router       /message [get]
func (h *MessageHandler) ByPriority(c *gin.Context) {
	priority, err := dto.ParsePriorityQuery(c.Query("priority"))
	if err != nil {
		response.Error(c, err)
		return
	}

	entries, err := h.list.ByPriority(c.Request.Context(), priority)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Entries(c, entries)
}

// HelloWorld 固定问候
// @Summary      Hello World
// @Tags         留言
// @Produce      json
// @Success      200 {object} response.Message
// @Router       /message/helloworld [get]
func (h *MessageHandler) HelloWorld(c *gin.Context) {
	response.OK(c, response.Message{Message: "Hello, World!"})
}

// Get 按name查询完整条目
// @Summary      按名称查询
// @Tags         留言
// @Produce      json
// @Param        name  path  string  true  "名称"
// @Success      200 {object} map[string]dto.MessageEntry
// @Failure      404 {object} response.Message "Name not found"
// @Router       /message/{name} [get]
func (h *MessageHandler) Get(c *gin.Context) {
	m, err := h.get.Execute(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Entry(c, http.StatusOK, dto.NewMessageEntry(m))
}

// Update 替换留言内容
// @Summary      修改留言
// @Tags         留言
// @Accept       json
// @Produce      json
// @Param        request  body  dto.UpdateMessageRequest  true  "名称和新内容"
// @Success      200 {object} map[string]string
// @Failure      400 {object} response.Message
// @Failure      404 {object} response.Message "Name not found"
// @Router       /message [put]
func (h *MessageHandler) Update(c *gin.Context) {
	var req dto.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, message.ErrMissingInfo)
		return
	}

	entry, err := h.update.Execute(c.Request.Context(), req.Name, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Entry(c, http.StatusOK, entry)
}

// DeleteByPriority 删除该优先级的全部留言
// @Summary      按优先级删除
// @Tags         留言
// @Produce      json
// @Param        priority  query  int  true  "1-3"
// @Success      200 {object} map[string][]string
// @Failure      404 {object} response.Message
// @Router       /message [delete]
func (h *MessageHandler) DeleteByPriority(c *gin.Context) {
	priority, err := dto.ParsePriorityQuery(c.Query("priority"))
	if err != nil {
		response.Error(c, err)
		return
	}

	entries, err := h.delete.ByPriority(c.Request.Context(), priority)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Entries(c, entries)
}

// Delete 按name删除
// @Summary      按名称删除
// @Tags         留言
// @Produce      json
// @Param        name  path  string  true  "名称"
// @Success      200 {object} map[string]string
// @Failure      404 {object} response.Message "Name not found"
// @Router       /message/{name} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	entry, err := h.delete.ByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Entry(c, http.StatusOK, entry)
}
