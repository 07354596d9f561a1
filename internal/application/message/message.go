package message

import (
	"context"

	"github.com/xiebiao/booksapi/internal/domain/message"
)

// PostMessageRequest 新增留言请求
type PostMessageRequest struct {
	Name     string
	Message  string
	Priority int
}

// PostMessageUseCase 新增留言,返回格式化后的条目
type PostMessageUseCase struct {
	messageService message.Service
}

func NewPostMessageUseCase(messageService message.Service) *PostMessageUseCase {
	return &PostMessageUseCase{messageService: messageService}
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, req PostMessageRequest) (string, error) {
	m, err := uc.messageService.Post(ctx, &message.Message{
		Name:     req.Name,
		Message:  req.Message,
		Priority: req.Priority,
	})
	if err != nil {
		return "", err
	}
	return m.Format(), nil
}

// ListMessagesUseCase 全部留言,或指定优先级的留言
type ListMessagesUseCase struct {
	messageService message.Service
}

func NewListMessagesUseCase(messageService message.Service) *ListMessagesUseCase {
	return &ListMessagesUseCase{messageService: messageService}
}

// All 全部留言
func (uc *ListMessagesUseCase) All(ctx context.Context) ([]string, error) {
	messages, err := uc.messageService.All(ctx)
	if err != nil {
		return nil, err
	}
	return message.FormatAll(messages), nil
}

// ByPriority 指定优先级,为空返回404
func (uc *ListMessagesUseCase) ByPriority(ctx context.Context, priority int) ([]string, error) {
	messages, err := uc.messageService.ByPriority(ctx, priority)
	if err != nil {
		return nil, err
	}
	return message.FormatAll(messages), nil
}

// GetMessageUseCase 按name查询完整条目
type GetMessageUseCase struct {
	messageService message.Service
}

func NewGetMessageUseCase(messageService message.Service) *GetMessageUseCase {
	return &GetMessageUseCase{messageService: messageService}
}

func (uc *GetMessageUseCase) Execute(ctx context.Context, name string) (*message.Message, error) {
	return uc.messageService.Get(ctx, name)
}

// UpdateMessageUseCase 替换留言内容
type UpdateMessageUseCase struct {
	messageService message.Service
}

func NewUpdateMessageUseCase(messageService message.Service) *UpdateMessageUseCase {
	return &UpdateMessageUseCase{messageService: messageService}
}

func (uc *UpdateMessageUseCase) Execute(ctx context.Context, name, text string) (string, error) {
	m, err := uc.messageService.UpdateText(ctx, name, text)
	if err != nil {
		return "", err
	}
	return "Updated: " + m.Format(), nil
}

// DeleteMessagesUseCase 按name或优先级删除
type DeleteMessagesUseCase struct {
	messageService message.Service
}

func NewDeleteMessagesUseCase(messageService message.Service) *DeleteMessagesUseCase {
	return &DeleteMessagesUseCase{messageService: messageService}
}

// ByName 删除单条
func (uc *DeleteMessagesUseCase) ByName(ctx context.Context, name string) (string, error) {
	m, err := uc.messageService.Delete(ctx, name)
	if err != nil {
		return "", err
	}
	return "Deleted: " + m.Format(), nil
}

// ByPriority 删除该优先级下的全部留言
func (uc *DeleteMessagesUseCase) ByPriority(ctx context.Context, priority int) ([]string, error) {
	deleted, err := uc.messageService.DeleteByPriority(ctx, priority)
	if err != nil {
		return nil, err
	}
	return message.FormatAll(deleted), nil
}
