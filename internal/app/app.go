// Package app はアプリケーションの初期化とエントリーポイントを提供する。
package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/hitoshi/careerhub/internal/cli"
	"github.com/hitoshi/careerhub/internal/config"
	"github.com/hitoshi/careerhub/internal/logger"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// ログ出力は標準エラーに向ける。標準出力はコマンドの表示専用とする。
func Init(w io.Writer) (*config.Config, error) {
	// 設定読み込み前にログを使えるようにする
	logger.SetupDefault(w, slog.LevelWarn)

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 設定で指定されたレベルでログを再セットアップする
	logger.SetupDefault(w, cfg.LogLevel)
	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("data_dir", cfg.DataDir),
		slog.String("fetch_errors", string(cfg.FetchErrors)),
	)

	rootCmd := cli.NewRootCmd(cfg)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
