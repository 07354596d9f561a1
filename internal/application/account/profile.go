package account

import (
	"context"

	"github.com/xiebiao/booksapi/internal/domain/account"
)

// ListAccountsUseCase 全部账号
type ListAccountsUseCase struct {
	accountService account.Service
}

func NewListAccountsUseCase(accountService account.Service) *ListAccountsUseCase {
	return &ListAccountsUseCase{accountService: accountService}
}

func (uc *ListAccountsUseCase) Execute(ctx context.Context) ([]*account.Account, error) {
	return uc.accountService.List(ctx)
}

// GetAccountUseCase 按id查询账号
type GetAccountUseCase struct {
	accountService account.Service
}

func NewGetAccountUseCase(accountService account.Service) *GetAccountUseCase {
	return &GetAccountUseCase{accountService: accountService}
}

func (uc *GetAccountUseCase) Execute(ctx context.Context, id int64) (*account.Account, error) {
	return uc.accountService.Get(ctx, id)
}

// UpdateDetailsRequest 资料更新请求
type UpdateDetailsRequest struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	Phone     string
}

// UpdateDetailsUseCase 更新个人资料
type UpdateDetailsUseCase struct {
	accountService account.Service
}

func NewUpdateDetailsUseCase(accountService account.Service) *UpdateDetailsUseCase {
	return &UpdateDetailsUseCase{accountService: accountService}
}

func (uc *UpdateDetailsUseCase) Execute(ctx context.Context, req UpdateDetailsRequest) (*account.Account, error) {
	return uc.accountService.UpdateDetails(ctx, req.ID, account.Details{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Phone:     req.Phone,
	})
}
