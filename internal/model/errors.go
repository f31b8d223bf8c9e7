// Package model はドメインモデルを定義する。
package model

import "fmt"

// AppError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type AppError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, storage, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeLoginRequired = "LOGIN_REQUIRED"
	ErrCodeAdminOnly     = "ADMIN_ONLY"
	ErrCodeMissingField  = "MISSING_FIELD"
	ErrCodeInvalidTab    = "INVALID_TAB"
	ErrCodeJobNotFound   = "JOB_NOT_FOUND"
)

// NewLoginRequiredError は未ログイン状態での操作エラーを生成する。
func NewLoginRequiredError() *AppError {
	return &AppError{
		Code:     ErrCodeLoginRequired,
		Message:  "ログインしていません。",
		Category: "auth",
		Action:   "login コマンドでログインしてください。",
	}
}

// NewAdminOnlyError は管理者専用操作へのアクセスエラーを生成する。
func NewAdminOnlyError() *AppError {
	return &AppError{
		Code:     ErrCodeAdminOnly,
		Message:  "この操作には管理者ロールが必要です。",
		Category: "auth",
		Action:   "toggle-role コマンドで管理者ビューに切り替えてください。",
	}
}

// NewMissingFieldError は必須項目の未入力エラーを生成する。
func NewMissingFieldError(field string) *AppError {
	return &AppError{
		Code:     ErrCodeMissingField,
		Message:  fmt.Sprintf("必須項目が入力されていません: %s", field),
		Category: "validation",
		Action:   fmt.Sprintf("%s を入力してください。", field),
	}
}

// NewInvalidTabError は無効なタブ値のエラーを生成する。
func NewInvalidTabError(tab string) *AppError {
	return &AppError{
		Code:     ErrCodeInvalidTab,
		Message:  fmt.Sprintf("無効なタブです: %s", tab),
		Category: "validation",
		Action:   "タブには ALL、OPEN、CLOSED、ARCHIVED のいずれかを指定してください。",
	}
}

// NewJobNotFoundError は求人未検出エラーを生成する。
func NewJobNotFoundError(id string) *AppError {
	return &AppError{
		Code:     ErrCodeJobNotFound,
		Message:  fmt.Sprintf("指定された求人が見つかりません: %s", id),
		Category: "storage",
		Action:   "list コマンドで求人IDを確認してください。",
	}
}
