package handlers

import (
	"github.com/gin-gonic/gin"

	"roomlog/internal/apperr"
	"roomlog/internal/models"
	"roomlog/internal/service"
)

// UserHandler 處理用戶註冊、登入與管理的請求
type UserHandler struct {
	userService *service.UserService
	resp        *Responder
}

func NewUserHandler(userService *service.UserService, resp *Responder) *UserHandler {
	return &UserHandler{userService: userService, resp: resp}
}

// RegisterInput 定義註冊請求的結構，必要欄位由服務層檢查
type RegisterInput struct {
	UserID      string   `json:"userId"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	AllowedRoom []string `json:"allowedRoom"`
}

// LoginInput 定義登入請求的結構
type LoginInput struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// Register 處理用戶註冊
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.Fail(c, apperr.Validation(err.Error()))
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		UserID:      input.UserID,
		Password:    input.Password,
		Role:        models.UserRole(input.Role),
		AllowedRoom: input.AllowedRoom,
	})
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	h.resp.OK(c, "Successfully Registered User", user)
}

// Login 處理用戶登入，成功時回傳用戶資料
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.resp.Fail(c, apperr.Validation(err.Error()))
		return
	}

	user, err := h.userService.Login(c.Request.Context(), input.UserID, input.Password)
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	h.resp.OK(c, "Login successful", user)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.resp.Fail(c, err)
		return
	}

	h.resp.OK(c, "Found all users", users)
}

// Delete 依記錄 ID 刪除用戶，路徑參數沿用 :userId 名稱
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("userId")); err != nil {
		h.resp.Fail(c, err)
		return
	}

	h.resp.OK(c, "Successfully deleted user", nil)
}
