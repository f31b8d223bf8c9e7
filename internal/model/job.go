// Package model はドメインモデルを定義する。
package model

import "time"

// JobStatus は求人掲載の募集状態を表す。
type JobStatus string

const (
	// JobStatusOpen は募集中の状態。作成直後の求人はこの状態になる。
	JobStatusOpen JobStatus = "OPEN"
	// JobStatusClosed は募集終了の状態。
	JobStatusClosed JobStatus = "CLOSED"
	// JobStatusArchived はアーカイブ済みの状態。
	// UI上の遷移は一方向であり、アーカイブ済みの求人を再公開する経路はない。
	JobStatusArchived JobStatus = "ARCHIVED"
)

// Job は社内求人の掲載1件を表す。
// IDはコレクション内で一意。コレクションの正本はストレージ層が所有し、
// オーケストレーターはその読み取り専用スナップショットだけを保持する。
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	SalaryRange string    `json:"salaryRange,omitempty"`
	Status      JobStatus `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JobInput はフォームから受け付ける編集可能フィールドの集合を表す。
// ID・Status・CreatedAtはストレージ層が割り当てるため含まない。
type JobInput struct {
	Title       string `json:"title"`
	Department  string `json:"department"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Type        string `json:"type"`
	SalaryRange string `json:"salaryRange,omitempty"`
}

// StatusTab は一覧画面のステータスフィルタタブを表す。
type StatusTab string

const (
	// TabAll は全ステータスを表示するタブ。
	TabAll StatusTab = "ALL"
	// TabOpen は募集中のみを表示するタブ。
	TabOpen StatusTab = "OPEN"
	// TabClosed は募集終了のみを表示するタブ。
	TabClosed StatusTab = "CLOSED"
	// TabArchived はアーカイブ済みのみを表示するタブ。
	TabArchived StatusTab = "ARCHIVED"
)

// validTabs は有効なタブ値のセット。
var validTabs = map[StatusTab]bool{
	TabAll:      true,
	TabOpen:     true,
	TabClosed:   true,
	TabArchived: true,
}

// IsValid はタブ値が定義済みのものかどうかを返す。
func (t StatusTab) IsValid() bool {
	return validTabs[t]
}
