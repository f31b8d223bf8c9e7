// Package session はログインセッションの永続化を提供する。
//
// セッションは単一の名前付きスロットにシリアライズ済みのUserを1件だけ
// 保持する。起動時に1回読み込み、ログイン・ロール切り替えで上書きし、
// ログアウトで消去する。有効期限やサーバー側の検証は存在しない。
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hitoshi/careerhub/internal/model"
)

// Store はセッションスロットの読み書きインターフェース。
type Store interface {
	// Load はスロットからユーザーを読み込む。未ログインの場合はnilを返す。
	Load() (*model.User, error)
	// Save はユーザーをスロットに書き込む。既存の内容は上書きされる。
	Save(user *model.User) error
	// Clear はスロットを消去する。スロットが存在しない場合も成功する。
	Clear() error
}

// FileStore はローカルファイル1つをスロットとして使うStore実装。
type FileStore struct {
	path string
}

// NewFileStore はFileStoreを生成する。pathはスロットファイルのパスを指定する。
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load はスロットからユーザーを読み込む。
// スロットが存在しない場合はnilを返す。壊れたスロットは未ログインとして
// 扱い、ログに記録するだけでエラーにはしない。
func (s *FileStore) Load() (*model.User, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("セッションスロットの読み込みに失敗しました: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		slog.Warn("セッションスロットが壊れているため未ログインとして扱います",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}

	return &user, nil
}

// Save はユーザーをスロットに書き込む。親ディレクトリが無ければ作成する。
func (s *FileStore) Save(user *model.User) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("セッションディレクトリの作成に失敗しました: %w", err)
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("セッションのシリアライズに失敗しました: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("セッションスロットの書き込みに失敗しました: %w", err)
	}

	return nil
}

// Clear はスロットを消去する。
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("セッションスロットの消去に失敗しました: %w", err)
	}
	return nil
}
