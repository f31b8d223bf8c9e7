package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hitoshi/careerhub/internal/model"
)

func newListCmd(app *App) *cobra.Command {
	var search, tab string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "求人一覧を表示する",
		Long: "現在のロールで閲覧できる求人の一覧を表示します。\n" +
			"EMPLOYEEロールでは募集中の求人のみが表示されます。",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			app.board.SetSearch(search)
			if err := app.board.SetTab(model.StatusTab(strings.ToUpper(tab))); err != nil {
				return err
			}
			if err := app.board.FetchJobs(cmd.Context()); err != nil {
				return err
			}

			visible := app.board.VisibleJobs()
			if asJSON {
				return app.renderer.RenderJSON(visible)
			}
			app.renderer.RenderJobs(visible)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "タイトルまたは部署で絞り込む")
	cmd.Flags().StringVarP(&tab, "tab", "t", string(model.TabAll), "表示タブ (ALL/OPEN/CLOSED/ARCHIVED)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON形式で出力する")
	return cmd
}

func newCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "求人を作成する (管理者専用)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.board.OpenCreate(); err != nil {
				return err
			}

			input, err := app.prompter.PromptJobInput(nil)
			if err != nil {
				return fmt.Errorf("入力の読み取りに失敗しました: %w", err)
			}
			if err := app.board.SubmitJob(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "求人を作成しました。")
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "求人を編集する (管理者専用)",
		Long: "指定したIDの求人を編集します。各項目は空入力で現在の値を引き継ぎます。\n" +
			"IDは db コマンドまたは list --json で確認できます。",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			if err := app.board.FetchJobs(cmd.Context()); err != nil {
				return err
			}

			target := findJob(app.board.Snapshot(), args[0])
			if target == nil {
				return model.NewJobNotFoundError(args[0])
			}
			if err := app.board.OpenEdit(*target); err != nil {
				return err
			}

			input, err := app.prompter.PromptJobInput(target)
			if err != nil {
				return fmt.Errorf("入力の読み取りに失敗しました: %w", err)
			}
			if err := app.board.SubmitJob(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "求人を更新しました。")
			return nil
		},
	}
}

func newArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "求人をアーカイブする (管理者専用)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.board.ArchiveJob(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "求人をアーカイブしました。")
			return nil
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "求人を削除する (管理者専用)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.board.DeleteJob(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "完了しました。")
			return nil
		},
	}
}

// findJob はキャッシュから指定IDの求人を探す。見つからない場合はnilを返す。
func findJob(jobs []model.Job, id string) *model.Job {
	for i := range jobs {
		if jobs[i].ID == id {
			return &jobs[i]
		}
	}
	return nil
}
