// Package apperr 定義服務層與存儲層共用的錯誤種類。
//
// 每個錯誤都帶有 oops 錯誤碼，呼叫端以 errors.Is 或 Kind 判斷種類。
package apperr

import (
	"errors"
	"net/http"

	"github.com/samber/oops"
)

// 錯誤碼
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeDuplicateIdentity = "DUPLICATE_IDENTITY"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidCredential = "INVALID_CREDENTIAL"
	CodeForbidden         = "FORBIDDEN"
	CodeInternal          = "INTERNAL"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrDuplicateIdentity = errors.New("duplicate identity")
	ErrNotFound          = errors.New("not found")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrForbidden         = errors.New("forbidden")
)

// Validation 回傳缺少必要欄位等輸入錯誤
func Validation(msg string) error {
	return oops.Code(CodeValidation).Wrap(withMessage(ErrValidation, msg))
}

// DuplicateIdentity 包裝唯一性衝突
func DuplicateIdentity(cause error) error {
	return oops.Code(CodeDuplicateIdentity).Wrap(withCause(ErrDuplicateIdentity, cause))
}

// NotFound 回傳查無資料的錯誤
func NotFound(msg string) error {
	return oops.Code(CodeNotFound).Wrap(withMessage(ErrNotFound, msg))
}

// InvalidCredential 回傳密碼不符的錯誤
func InvalidCredential(msg string) error {
	return oops.Code(CodeInvalidCredential).Wrap(withMessage(ErrInvalidCredential, msg))
}

// Forbidden 回傳無權存取的錯誤
func Forbidden(msg string) error {
	return oops.Code(CodeForbidden).Wrap(withMessage(ErrForbidden, msg))
}

// Kind 回傳錯誤所屬的種類碼，無法辨識時回傳 CodeInternal
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrDuplicateIdentity):
		return CodeDuplicateIdentity
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidCredential):
		return CodeInvalidCredential
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	}
	return CodeInternal
}

// HTTPStatus 將錯誤種類對應到 HTTP 狀態碼
func HTTPStatus(err error) int {
	switch Kind(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeDuplicateIdentity:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidCredential:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// kindError 讓訊息保持原樣，同時能以 errors.Is 比對種類
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

func withMessage(kind error, msg string) error {
	if msg == "" {
		msg = kind.Error()
	}
	return &kindError{kind: kind, msg: msg}
}

func withCause(kind error, cause error) error {
	if cause == nil {
		return kind
	}
	return &kindError{kind: kind, msg: cause.Error()}
}
