package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// FetchErrorPolicy はフェッチ失敗時の扱いを表す。
type FetchErrorPolicy string

const (
	// FetchErrorsSilent は失敗をログにのみ記録し、古いキャッシュを保持する（元実装の挙動）。
	FetchErrorsSilent FetchErrorPolicy = "silent"
	// FetchErrorsSurfaced は失敗を呼び出し側にエラーとして返す。
	FetchErrorsSurfaced FetchErrorPolicy = "surfaced"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Storage
	DataDir      string
	DatabaseFile string

	// Session
	SessionFile string

	// Policy
	FetchErrors FetchErrorPolicy

	// Logging
	LogLevel slog.Level
}

// Load は環境変数からConfigを読み込む。
// カレントディレクトリに.envファイルが存在する場合は先に読み込む。
// すべての項目にデフォルト値があるため、必須環境変数はない。
func Load() (*Config, error) {
	// .envが無い場合は環境変数のみを使用する
	_ = godotenv.Load()

	dataDir := getEnvString("CAREERHUB_DATA_DIR", defaultDataDir())

	cfg := &Config{
		DataDir:      dataDir,
		DatabaseFile: getEnvString("CAREERHUB_DB_FILE", filepath.Join(dataDir, "careerhub.db")),
		SessionFile:  getEnvString("CAREERHUB_SESSION_FILE", filepath.Join(dataDir, "session.json")),
	}

	policy := FetchErrorPolicy(getEnvString("CAREERHUB_FETCH_ERRORS", string(FetchErrorsSilent)))
	if policy != FetchErrorsSilent && policy != FetchErrorsSurfaced {
		return nil, fmt.Errorf("CAREERHUB_FETCH_ERRORS must be %q or %q, got %q",
			FetchErrorsSilent, FetchErrorsSurfaced, policy)
	}
	cfg.FetchErrors = policy

	level, err := parseLogLevel(getEnvString("CAREERHUB_LOG_LEVEL", "warn"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

// defaultDataDir はデータディレクトリのデフォルト値を返す。
// ホームディレクトリが特定できない場合はカレントディレクトリ配下にフォールバックする。
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".careerhub"
	}
	return filepath.Join(home, ".careerhub")
}

// parseLogLevel はログレベル文字列をslog.Levelに変換する。
func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("CAREERHUB_LOG_LEVEL must be one of debug, info, warn, error, got %q", s)
	}
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
