package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/booksapi/internal/domain/message"
	apperrors "github.com/xiebiao/booksapi/pkg/errors"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建留言仓储
func NewMessageRepository(db *gorm.DB) message.Repository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *message.Message) error {
	model := &MessageModel{Name: m.Name, Message: m.Message, Priority: m.Priority}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if _, dup := uniqueViolation(err); dup {
			return message.ErrNameExists.WithCause(err)
		}
		return apperrors.Storage(err)
	}
	return nil
}

func (r *messageRepository) List(ctx context.Context) ([]*message.Message, error) {
	return r.find(conn(ctx, r.db))
}

func (r *messageRepository) ListByPriority(ctx context.Context, priority int) ([]*message.Message, error) {
	return r.find(conn(ctx, r.db).Where("priority = ?", priority))
}

func (r *messageRepository) find(db *gorm.DB) ([]*message.Message, error) {
	var models []MessageModel
	if err := db.Order("id").Find(&models).Error; err != nil {
		return nil, apperrors.Storage(err)
	}
	return toMessages(models), nil
}

func (r *messageRepository) FindByName(ctx context.Context, name string) (*message.Message, error) {
	var model MessageModel
	if err := conn(ctx, r.db).Where("name = ?", name).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, message.ErrNameNotFound
		}
		return nil, apperrors.Storage(err)
	}
	return toMessage(&model), nil
}

func (r *messageRepository) UpdateText(ctx context.Context, name, text string) (*message.Message, error) {
	db := conn(ctx, r.db)

	result := db.Model(&MessageModel{}).Where("name = ?", name).Update("message", text)
	if result.Error != nil {
		return nil, apperrors.Storage(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, message.ErrNameNotFound
	}
	return r.FindByName(ctx, name)
}

// DeleteByPriority 同一事务内先查后删,返回被删除的行(MySQL没有RETURNING)
func (r *messageRepository) DeleteByPriority(ctx context.Context, priority int) ([]*message.Message, error) {
	var deleted []*message.Message
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var models []MessageModel
		if err := tx.Where("priority = ?", priority).Order("id").Find(&models).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		ids := make([]int64, len(models))
		for i, m := range models {
			ids[i] = m.ID
		}
		if err := tx.Delete(&MessageModel{}, ids).Error; err != nil {
			return err
		}
		deleted = toMessages(models)
		return nil
	})
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return deleted, nil
}

func (r *messageRepository) DeleteByName(ctx context.Context, name string) (*message.Message, error) {
	var model MessageModel
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", name).Take(&model).Error; err != nil {
			return err
		}
		return tx.Delete(&MessageModel{}, model.ID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, message.ErrNameNotFound
		}
		return nil, apperrors.Storage(err)
	}
	return toMessage(&model), nil
}

func toMessage(m *MessageModel) *message.Message {
	return &message.Message{Name: m.Name, Message: m.Message, Priority: m.Priority}
}

func toMessages(models []MessageModel) []*message.Message {
	out := make([]*message.Message, len(models))
	for i := range models {
		out[i] = toMessage(&models[i])
	}
	return out
}
