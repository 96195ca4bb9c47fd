package service

import (
	"context"
	"log/slog"
	"time"

	"roomlog/internal/apperr"
	"roomlog/internal/metrics"
	"roomlog/internal/models"
	"roomlog/internal/repository"
)

// Publisher 接收新增的紀錄，用於即時推送
type Publisher interface {
	Publish(entry models.LogEntry)
}

// LogService 負責進出紀錄的新增、查詢與刪除
type LogService struct {
	logRepo  repository.LogRepository
	userRepo repository.UserRepository
	feed     Publisher

	// enforceRoomAccess 為 true 時，只接受用戶允許進入的房間
	enforceRoomAccess bool
	logger            *slog.Logger
}

// LogServiceOption 調整 LogService 的行為
type LogServiceOption func(*LogService)

// WithPublisher 設定紀錄新增後的推送目標
func WithPublisher(p Publisher) LogServiceOption {
	return func(s *LogService) { s.feed = p }
}

// WithRoomAccessCheck 要求紀錄的房間必須在用戶的 allowedRoom 中
func WithRoomAccessCheck(userRepo repository.UserRepository) LogServiceOption {
	return func(s *LogService) {
		s.userRepo = userRepo
		s.enforceRoomAccess = true
	}
}

func NewLogService(logRepo repository.LogRepository, logger *slog.Logger, opts ...LogServiceOption) *LogService {
	s := &LogService{logRepo: logRepo, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append 新增一筆紀錄，timestamp 為 nil 時使用現在時間
func (s *LogService) Append(ctx context.Context, userID, room string, timestamp *time.Time) (*models.LogEntry, error) {
	if userID == "" || room == "" {
		return nil, apperr.Validation("userId and room are required")
	}

	if s.enforceRoomAccess {
		if err := s.checkRoomAccess(ctx, userID, room); err != nil {
			return nil, err
		}
	}

	entry := models.NewLogEntry(userID, room, timestamp)
	if err := s.logRepo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	metrics.LogEntriesAppended.Inc()

	if s.feed != nil {
		s.feed.Publish(entry)
	}
	return &entry, nil
}

func (s *LogService) checkRoomAccess(ctx context.Context, userID, room string) error {
	user, err := s.userRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CanAccess(room) {
		s.logger.WarnContext(ctx, "room access denied", "user_id", userID, "room", room)
		return apperr.Forbidden("User is not allowed to access this room")
	}
	return nil
}

func (s *LogService) ListAll(ctx context.Context) ([]models.LogEntry, error) {
	return s.logRepo.FindAll(ctx)
}

// ListByUserID 回傳指定用戶的紀錄，沒有任何紀錄時視為查無資料
func (s *LogService) ListByUserID(ctx context.Context, userID string) ([]models.LogEntry, error) {
	entries, err := s.logRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperr.NotFound("No logs found for this user")
	}
	return entries, nil
}

func (s *LogService) Delete(ctx context.Context, id string) error {
	removed, err := s.logRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("Log not found")
	}
	return nil
}
