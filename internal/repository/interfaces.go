// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/careerhub/internal/model"
)

// JobRepository は求人データの永続化インターフェース。
// 求人コレクションの正本はこの層が所有する。呼び出し側は変更系の操作後に
// 必ずListで全件を取得し直すことでキャッシュとの整合性を保つ。
type JobRepository interface {
	// List は全求人を作成日時の降順で返す。コレクションの並び順はこの層が決める。
	List(ctx context.Context) ([]model.Job, error)

	// FindByID は指定IDの求人を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Job, error)

	// Create は求人を新規作成する。IDと作成日時を割り当て、ステータスはOPENになる。
	Create(ctx context.Context, input model.JobInput) (*model.Job, error)

	// Update は指定IDの求人の編集可能フィールドを上書き更新する。
	// 求人が存在しない場合はJOB_NOT_FOUNDエラーを返す。
	Update(ctx context.Context, id string, input model.JobInput) (*model.Job, error)

	// Delete は指定IDの求人を削除する。
	// 求人が存在しない場合はJOB_NOT_FOUNDエラーを返す。
	Delete(ctx context.Context, id string) error

	// Archive は指定IDの求人のステータスをARCHIVEDに変更する。
	// 求人が存在しない場合はJOB_NOT_FOUNDエラーを返す。
	Archive(ctx context.Context, id string) error

	// ResetAll は求人コレクション全体を消去する。
	ResetAll(ctx context.Context) error

	// CountByStatus はステータスごとの求人件数を返す。
	CountByStatus(ctx context.Context) (map[model.JobStatus]int, error)
}
