// Package view は求人一覧の派生ビュー計算を提供する。
package view

import (
	"strings"

	"github.com/hitoshi/careerhub/internal/model"
)

// Filter は求人コレクションにロール・検索・タブの条件を適用した派生ビューを返す。
// 純粋関数であり、同一入力に対して常に同一の結果を返す。入力の並び順は保持し、
// 再ソートは行わない。入力スライス自体は変更しない。
//
// 適用順:
//  1. ロールによる可視性フロア。EMPLOYEEはOPENの求人のみ閲覧できる。
//     他のフィルタより先に適用するため、どのタブを選択しても
//     非公開の求人が露出することはない。
//  2. 検索クエリ。タイトルまたは部署に対する大文字小文字を無視した部分一致。
//     空クエリは全件にマッチする。
//  3. タブ。ALLは全ステータス、それ以外はステータス完全一致。
func Filter(jobs []model.Job, role model.Role, query string, tab model.StatusTab) []model.Job {
	working := jobs
	if role == model.RoleEmployee {
		working = make([]model.Job, 0, len(jobs))
		for _, job := range jobs {
			if job.Status == model.JobStatusOpen {
				working = append(working, job)
			}
		}
	}

	q := strings.ToLower(query)
	result := make([]model.Job, 0, len(working))
	for _, job := range working {
		matchesSearch := q == "" ||
			strings.Contains(strings.ToLower(job.Title), q) ||
			strings.Contains(strings.ToLower(job.Department), q)
		matchesTab := tab == model.TabAll || string(job.Status) == string(tab)
		if matchesSearch && matchesTab {
			result = append(result, job)
		}
	}
	return result
}
