// Package cli はcobraベースのコマンドラインインターフェースを提供する。
package cli

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hitoshi/careerhub/internal/board"
	"github.com/hitoshi/careerhub/internal/config"
	"github.com/hitoshi/careerhub/internal/database"
	"github.com/hitoshi/careerhub/internal/metrics"
	"github.com/hitoshi/careerhub/internal/repository"
	"github.com/hitoshi/careerhub/internal/security"
	"github.com/hitoshi/careerhub/internal/session"
	"github.com/hitoshi/careerhub/internal/ui"
)

// App はコマンド間で共有する依存をまとめて保持する。
// 各コマンドのPersistentPreRunEで初期化され、PersistentPostRunEで閉じる。
type App struct {
	cfg      *config.Config
	db       *sql.DB
	board    *board.Board
	registry *prometheus.Registry
	renderer *ui.Renderer
	prompter *ui.Prompter

	// yes は--yesフラグの値。trueの場合は確認プロンプトを省略して承認する。
	yes bool
}

// NewRootCmd はルートコマンドを構築する。
func NewRootCmd(cfg *config.Config) *cobra.Command {
	return newRootCmd(cfg, os.Stdin, os.Stdout, true)
}

func newRootCmd(cfg *config.Config, in io.Reader, out io.Writer, color bool) *cobra.Command {
	app := &App{
		cfg:      cfg,
		renderer: ui.NewRenderer(out, color),
		prompter: ui.NewPrompter(in, out),
	}

	rootCmd := &cobra.Command{
		Use:   "careerhub",
		Short: "社内求人ボード",
		Long:  "CareerHubは社内の求人情報を管理・閲覧するためのツールです。",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.teardown()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().BoolVarP(&app.yes, "yes", "y", false, "確認プロンプトを省略して承認する")

	rootCmd.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newToggleRoleCmd(app),
		newListCmd(app),
		newCreateCmd(app),
		newEditCmd(app),
		newArchiveCmd(app),
		newDeleteCmd(app),
		newDBCmd(app),
		newStatsCmd(app),
		newMigrateCmd(app),
	)

	return rootCmd
}

// setup はデータベースを開き、マイグレーションを適用し、Boardを組み立てる。
func (a *App) setup() error {
	db, err := database.Open(a.cfg.DatabaseFile)
	if err != nil {
		return err
	}
	a.db = db

	if err := database.RunMigrations(db); err != nil {
		return err
	}

	a.registry = prometheus.NewRegistry()
	collector := metrics.NewCollector(a.registry)

	repo := repository.NewSQLiteJobRepo(db)
	sessions := session.NewFileStore(a.cfg.SessionFile)

	b, err := board.New(repo, sessions, security.NewInputSanitizer(), collector, board.Config{
		Confirm:     a.confirm,
		FetchErrors: a.cfg.FetchErrors,
	})
	if err != nil {
		return err
	}
	a.board = b
	return nil
}

func (a *App) teardown() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// confirm は破壊的操作の確認を行う。--yes指定時は常に承認する。
func (a *App) confirm(prompt string) bool {
	if a.yes {
		return true
	}
	return a.prompter.Confirm(prompt)
}

// requireLogin はセッションの存在を確認し、未ログインの場合はエラーを返す。
func (a *App) requireLogin() error {
	if !a.board.LoggedIn() {
		return fmt.Errorf("ログインしていません。login コマンドでログインしてください")
	}
	return nil
}
