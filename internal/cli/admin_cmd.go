package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hitoshi/careerhub/internal/database"
	"github.com/hitoshi/careerhub/internal/metrics"
	"github.com/hitoshi/careerhub/internal/model"
)

func newDBCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "db",
		Short: "保存中の全求人データを表示する (管理者専用)",
		Long: "フィルタを適用せず、保存されている全求人をそのまま表示します。\n" +
			"保存内容の確認やデバッグに使います。",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.board.OpenExplorer(); err != nil {
				return err
			}
			defer app.board.CloseExplorer()

			if err := app.board.FetchJobs(cmd.Context()); err != nil {
				return err
			}

			switch format {
			case "json":
				return app.renderer.RenderJSON(app.board.Snapshot())
			case "table":
				return app.renderer.RenderTable(app.board.Snapshot())
			default:
				return fmt.Errorf("無効なフォーマットです: %s (json または table を指定してください)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "出力フォーマット (json/table)")
	cmd.AddCommand(newDBResetCmd(app))
	return cmd
}

func newDBResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "全求人データを消去する (管理者専用)",
		Long:  "保存されている求人データをすべて消去します。元に戻すことはできません。",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.board.ResetAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "完了しました。")
			return nil
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "ステータス別の求人件数を表示する",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			counts, err := app.board.CountByStatus(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, status := range []model.JobStatus{
				model.JobStatusOpen, model.JobStatusClosed, model.JobStatusArchived,
			} {
				fmt.Fprintf(out, "%-10s %d\n", status, counts[status])
				total += counts[status]
			}
			fmt.Fprintf(out, "%-10s %d\n", "TOTAL", total)

			if showMetrics {
				// レジストリは起動ごとに作られるため、一度フェッチして
				// 今回の取得件数とレイテンシをダンプに反映させる
				if err := app.board.FetchJobs(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out)
				return metrics.WriteTo(app.registry, out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "プロセス内のメトリクスも出力する")
	return cmd
}

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "データベースマイグレーションを適用する",
		Long: "未適用のマイグレーションをすべて適用します。\n" +
			"通常は起動時に自動適用されるため、明示的な実行は不要です。",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.RunMigrations(app.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "マイグレーションを適用しました。")
			return nil
		},
	}
}
