package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hitoshi/careerhub/internal/model"
)

func newLoginCmd(app *App) *cobra.Command {
	var name, email, role string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "ログインしてセッションを開始する",
		Long: "名前・メールアドレス・ロールを登録してセッションを開始します。\n" +
			"フラグが未指定の場合は対話的に入力を求めます。",
		RunE: func(cmd *cobra.Command, args []string) error {
			var user model.User
			if name == "" && email == "" {
				var err error
				user, err = app.prompter.PromptLogin()
				if err != nil {
					return fmt.Errorf("入力の読み取りに失敗しました: %w", err)
				}
			} else {
				user = model.User{Name: name, Email: email}
				if strings.EqualFold(role, string(model.RoleAdmin)) {
					user.Role = model.RoleAdmin
				} else {
					user.Role = model.RoleEmployee
				}
			}

			if err := app.board.Login(user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ログインしました: %s (%s)\n", user.Name, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "名前")
	cmd.Flags().StringVar(&email, "email", "", "メールアドレス")
	cmd.Flags().StringVar(&role, "role", string(model.RoleEmployee), "ロール (ADMIN/EMPLOYEE)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "セッションを終了する",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.board.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ログアウトしました。")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "現在のセッションユーザーを表示する",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.renderer.RenderUser(app.board.User())
			return nil
		},
	}
}

func newToggleRoleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-role",
		Short: "ADMINとEMPLOYEEのビューを切り替える",
		Long:  "現在のセッションのロールを切り替えます。両方のビューを確認するためのデモ用の仕組みです。",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.board.ToggleRole(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ロールを切り替えました: %s\n", app.board.User().Role)
			return nil
		},
	}
}
