// Package ui はターミナル向けの表示とプロンプトを提供する。
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hitoshi/careerhub/internal/model"
)

// ステータスごとの表示色（ANSIエスケープシーケンス）
const (
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorReset  = "\033[0m"
)

// StatusLabel はステータスの表示用ラベルを返す。
func StatusLabel(status model.JobStatus) string {
	switch status {
	case model.JobStatusOpen:
		return "Open"
	case model.JobStatusClosed:
		return "Closed"
	case model.JobStatusArchived:
		return "Archived"
	default:
		return string(status)
	}
}

// statusColor はステータスの表示色を返す。
func statusColor(status model.JobStatus) string {
	switch status {
	case model.JobStatusOpen:
		return colorGreen
	case model.JobStatusClosed:
		return colorYellow
	case model.JobStatusArchived:
		return colorGray
	default:
		return ""
	}
}

// Renderer は求人一覧をターミナルに描画する。
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer はRendererを生成する。colorがfalseの場合はANSI色を使わない。
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

// RenderJobs は求人一覧をカード形式で描画する。
func (r *Renderer) RenderJobs(jobs []model.Job) {
	if len(jobs) == 0 {
		fmt.Fprintln(r.w, "該当する求人はありません。")
		return
	}

	for i, job := range jobs {
		if i > 0 {
			fmt.Fprintln(r.w)
		}
		r.renderCard(job)
	}
	fmt.Fprintf(r.w, "\n%d件の求人\n", len(jobs))
}

func (r *Renderer) renderCard(job model.Job) {
	label := StatusLabel(job.Status)
	if r.color {
		label = statusColor(job.Status) + label + colorReset
	}

	fmt.Fprintf(r.w, "%s  [%s]\n", job.Title, label)
	fmt.Fprintf(r.w, "  %s • %s\n", job.Department, job.Location)

	tags := []string{job.Type}
	if job.SalaryRange != "" {
		tags = append(tags, job.SalaryRange)
	}
	fmt.Fprintf(r.w, "  %s\n", strings.Join(tags, " | "))

	if job.Description != "" {
		fmt.Fprintf(r.w, "  %s\n", job.Description)
	}
	fmt.Fprintf(r.w, "  ID: %s  作成日: %s\n", job.ID, job.CreatedAt.Format("2006-01-02"))
}

// RenderTable は求人一覧を表形式で描画する（データエクスプローラー用）。
func (r *Renderer) RenderTable(jobs []model.Job) error {
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDEPARTMENT\tLOCATION\tTYPE\tSTATUS\tCREATED")
	for _, job := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			job.ID, job.Title, job.Department, job.Location,
			job.Type, job.Status, job.CreatedAt.Format("2006-01-02"),
		)
	}
	return tw.Flush()
}

// RenderJSON は求人一覧を整形済みJSONで出力する（データエクスプローラー用）。
// 要素ゼロの場合も空配列として出力する。
func (r *Renderer) RenderJSON(jobs []model.Job) error {
	if jobs == nil {
		jobs = []model.Job{}
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(jobs)
}

// RenderUser はセッションユーザーの情報を表示する。
func (r *Renderer) RenderUser(user *model.User) {
	if user == nil {
		fmt.Fprintln(r.w, "ログインしていません。")
		return
	}
	fmt.Fprintf(r.w, "%s <%s>  ロール: %s\n", user.Name, user.Email, user.Role)
}
