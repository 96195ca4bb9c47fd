package service

import (
	"context"
	"log/slog"

	"roomlog/internal/apperr"
	"roomlog/internal/metrics"
	"roomlog/internal/models"
	"roomlog/internal/repository"
	"roomlog/internal/utils"
)

// RegisterInput 是註冊所需的欄位
type RegisterInput struct {
	UserID      string
	Password    string
	Role        models.UserRole
	AllowedRoom []string
}

// UserService 負責註冊、登入與用戶管理
type UserService struct {
	userRepo repository.UserRepository
	hasher   utils.PasswordHasher
	issuer   utils.SecretKeyIssuer
	logger   *slog.Logger
}

func NewUserService(userRepo repository.UserRepository, hasher utils.PasswordHasher, issuer utils.SecretKeyIssuer, logger *slog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		logger:   logger,
	}
}

// Register 建立新用戶，回傳的資料不含密碼
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	user, err := s.register(ctx, in)
	metrics.RecordAuth("register", apperr.Kind(err))
	return user, err
}

func (s *UserService) register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.UserID == "" || in.Password == "" || in.Role == "" {
		return nil, apperr.Validation("userId, password and role are required")
	}
	if !in.Role.Valid() {
		return nil, apperr.Validation("role must be one of: admin, lecturer")
	}
	if len(in.Password) > utils.MaxPasswordBytes {
		return nil, apperr.Validation("password must be at most 72 bytes")
	}

	secretKey, err := s.issuer.Issue()
	if err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	allowed := in.AllowedRoom
	if allowed == nil {
		allowed = []string{}
	}

	user := &models.User{
		UserID:      in.UserID,
		SecretKey:   secretKey,
		Password:    digest,
		Role:        in.Role,
		AllowedRoom: allowed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.UserID, "role", user.Role)
	out := user.Sanitized()
	return &out, nil
}

// Login 驗證密碼並回傳用戶資料，不發放 token
func (s *UserService) Login(ctx context.Context, userID, password string) (*models.User, error) {
	user, err := s.login(ctx, userID, password)
	metrics.RecordAuth("login", apperr.Kind(err))
	return user, err
}

func (s *UserService) login(ctx context.Context, userID, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, apperr.InvalidCredential("Invalid Password")
	}

	out := user.Sanitized()
	return &out, nil
}

// ListUsers 回傳所有用戶，皆不含密碼
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

// DeleteUser 依記錄 ID 刪除用戶
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	removed, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("User not found")
	}
	s.logger.InfoContext(ctx, "user deleted", "id", id)
	return nil
}
