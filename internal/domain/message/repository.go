package message

import "context"

// Repository 留言仓储接口
type Repository interface {
	// Create name冲突返回ErrNameExists
	Create(ctx context.Context, m *Message) error
	List(ctx context.Context) ([]*Message, error)
	ListByPriority(ctx context.Context, priority int) ([]*Message, error)
	// FindByName 不存在返回ErrNameNotFound
	FindByName(ctx context.Context, name string) (*Message, error)
	// UpdateText 只修改message字段,返回更新后的行
	UpdateText(ctx context.Context, name, text string) (*Message, error)
	// DeleteByPriority 返回被删除的行
	DeleteByPriority(ctx context.Context, priority int) ([]*Message, error)
	DeleteByName(ctx context.Context, name string) (*Message, error)
}
