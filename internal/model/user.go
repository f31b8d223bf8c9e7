// Package model はドメインモデルを定義する。
package model

// Role は利用者の権限区分を表す。
type Role string

const (
	// RoleAdmin は求人の作成・編集・アーカイブ・削除ができる管理者ロール。
	RoleAdmin Role = "ADMIN"
	// RoleEmployee は募集中の求人のみ閲覧できる従業員ロール。
	RoleEmployee Role = "EMPLOYEE"
)

// Toggled はADMINとEMPLOYEEを入れ替えたロールを返す。
func (r Role) Toggled() Role {
	if r == RoleAdmin {
		return RoleEmployee
	}
	return RoleAdmin
}

// User はログイン中の利用者を表す。
// ログイン時に自己申告で作成され、ディレクトリ等に対する検証は行わない。
// ロールも申告値をそのまま信頼する（デモ・社内利用前提の設計）。
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin は管理者ロールかどうかを返す。nilレシーバは非管理者として扱う。
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
