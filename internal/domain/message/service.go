package message

import (
	"context"
	"strings"
)

// Service 留言领域服务
type Service interface {
	Post(ctx context.Context, m *Message) (*Message, error)
	All(ctx context.Context) ([]*Message, error)
	ByPriority(ctx context.Context, priority int) ([]*Message, error)
	Get(ctx context.Context, name string) (*Message, error)
	UpdateText(ctx context.Context, name, text string) (*Message, error)
	DeleteByPriority(ctx context.Context, priority int) ([]*Message, error)
	Delete(ctx context.Context, name string) (*Message, error)
}

type service struct {
	repo Repository
}

// NewService 创建留言服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ValidatePriority 优先级必须在1-3之间
func ValidatePriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return ErrInvalidPriority
	}
	return nil
}

func validateText(name, text string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(text) == "" {
		return ErrMissingInfo
	}
	return nil
}

func (s *service) Post(ctx context.Context, m *Message) (*Message, error) {
	// 1. name/message必填,优先级1-3
	if err := validateText(m.Name, m.Message); err != nil {
		return nil, err
	}
	if err := ValidatePriority(m.Priority); err != nil {
		return nil, err
	}

	// 2. 持久化
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) All(ctx context.Context) ([]*Message, error) {
	return s.repo.List(ctx)
}

func (s *service) ByPriority(ctx context.Context, priority int) ([]*Message, error) {
	if err := ValidatePriority(priority); err != nil {
		return nil, err
	}
	messages, err := s.repo.ListByPriority(ctx, priority)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, ErrNoPriorityMessages(priority)
	}
	return messages, nil
}

func (s *service) Get(ctx context.Context, name string) (*Message, error) {
	return s.repo.FindByName(ctx, name)
}

func (s *service) UpdateText(ctx context.Context, name, text string) (*Message, error) {
	if err := validateText(name, text); err != nil {
		return nil, err
	}
	return s.repo.UpdateText(ctx, name, text)
}

func (s *service) DeleteByPriority(ctx context.Context, priority int) ([]*Message, error) {
	if err := ValidatePriority(priority); err != nil {
		return nil, err
	}
	deleted, err := s.repo.DeleteByPriority(ctx, priority)
	if err != nil {
		return nil, err
	}
	if len(deleted) == 0 {
		return nil, ErrNoPriorityMessages(priority)
	}
	return deleted, nil
}

func (s *service) Delete(ctx context.Context, name string) (*Message, error) {
	return s.repo.DeleteByName(ctx, name)
}
