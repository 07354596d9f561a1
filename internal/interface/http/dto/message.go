package dto

import (
	"encoding/json"

	"github.com/xiebiao/booksapi/internal/domain/message"
)

// PostMessageRequest 新增留言请求体
type PostMessageRequest struct {
	Name     string          `json:"name"`
	Message  string          `json:"message"`
	Priority json.RawMessage `json:"priority" swaggertype:"integer"`
}

// ParsePriority 非整数时返回0,交由领域层按范围拒绝
func (r PostMessageRequest) ParsePriority() int {
	p, _ := integerValue(r.Priority)
	return p
}

// UpdateMessageRequest 修改留言请求体
type UpdateMessageRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// ParsePriorityQuery 解析?priority=N
func ParsePriorityQuery(raw string) (int, error) {
	p, ok := integerString(raw)
	if !ok {
		return 0, message.ErrInvalidPriority
	}
	if err := message.ValidatePriority(p); err != nil {
		return 0, err
	}
	return p, nil
}

// MessageEntry GET /message/:name 返回完整条目
type MessageEntry struct {
	Name     string `json:"name"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

// NewMessageEntry 领域实体 → 条目
func NewMessageEntry(m *message.Message) MessageEntry {
	return MessageEntry{Name: m.Name, Message: m.Message, Priority: m.Priority}
}
