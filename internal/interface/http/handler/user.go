package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appaccount "github.com/xiebiao/booksapi/internal/application/account"
	"github.com/xiebiao/booksapi/internal/domain/account"
	"github.com/xiebiao/booksapi/internal/interface/http/dto"
	"github.com/xiebiao/booksapi/pkg/response"
)

// UserHandler 用户资料(需要Token)
type UserHandler struct {
	listAccounts  *appaccount.ListAccountsUseCase
	getAccount    *appaccount.GetAccountUseCase
	updateDetails *appaccount.UpdateDetailsUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	listAccounts *appaccount.ListAccountsUseCase,
	getAccount *appaccount.GetAccountUseCase,
	updateDetails *appaccount.UpdateDetailsUseCase,
) *UserHandler {
	return &UserHandler{
		listAccounts:  listAccounts,
		getAccount:    getAccount,
		updateDetails: updateDetails,
	}
}

// List 全部用户
// @Summary      用户列表
// @Tags         用户
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200 {array} dto.UserResponse
// @Failure      404 {object} response.Message "User not found"
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	accounts, err := h.listAccounts.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewMaskedUsers(accounts))
}

// Get 当前用户资料
// @Summary      用户资料
// @Tags         用户
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id  path  int  true  "账号id,必须与Token一致"
// @Success      200 {object} dto.UserResponse
// @Failure      400 {object} response.Message "Credentials do not match for this user."
// @Failure      404 {object} response.Message "User not found"
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	acc, err := h.getAccount.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewMaskedUser(acc))
}

// UpdateDetails 修改资料
// @Summary      修改资料
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  int                       true  "账号id,必须与Token一致"
// @Param        request  body  dto.UpdateDetailsRequest  true  "资料"
// @Success      200 {object} dto.UserResponse
// @Failure      400 {object} response.Message "Missing required information"
// @Failure      404 {object} response.Message "Name not found"
// @Router       /users/details/{id} [put]
func (h *UserHandler) UpdateDetails(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req dto.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, account.ErrMissingInfo)
		return
	}

	acc, err := h.updateDetails.Execute(c.Request.Context(), appaccount.UpdateDetailsRequest{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Phone:     req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewMaskedUser(acc))
}
