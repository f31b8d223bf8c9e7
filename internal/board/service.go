// Package board は求人ボードの状態管理とユースケースのオーケストレーションを提供する。
package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hitoshi/careerhub/internal/config"
	"github.com/hitoshi/careerhub/internal/metrics"
	"github.com/hitoshi/careerhub/internal/model"
	"github.com/hitoshi/careerhub/internal/repository"
	"github.com/hitoshi/careerhub/internal/security"
	"github.com/hitoshi/careerhub/internal/session"
	"github.com/hitoshi/careerhub/internal/view"
)

// ConfirmFunc は破壊的操作の実行前にユーザーへ確認を求める関数。
// trueを返した場合のみ操作を続行する。
type ConfirmFunc func(prompt string) bool

// Config はBoardの動作設定。
type Config struct {
	// Confirm は削除・リセット前の確認に使用する。
	// 未設定の場合は常に拒否する（確認手段なしで破壊的操作は実行しない）。
	Confirm ConfirmFunc

	// FetchErrors はフェッチ失敗時の扱い。未設定の場合はsilent。
	FetchErrors config.FetchErrorPolicy
}

// Board は求人ボードのルートオーケストレーター。
//
// セッション・求人キャッシュ・UI状態（検索・タブ・エディタ・エクスプローラー）を
// 保持し、ユーザーの操作をストレージ呼び出しへ変換する。求人コレクションの
// 正本はストレージ層が所有し、Boardはその読み取り専用スナップショットだけを
// 持つ。変更系の操作後は必ず全件を取得し直し、部分的なキャッシュ更新や
// 楽観的更新は行わない。
//
// 単一利用者・単一スレッドでの利用を前提とし、排他制御や実行中リクエストの
// キャンセルは行わない。
type Board struct {
	repo      repository.JobRepository
	sessions  session.Store
	sanitizer security.InputSanitizerService
	collector metrics.MetricsCollector

	confirm     ConfirmFunc
	fetchErrors config.FetchErrorPolicy

	user         *model.User
	jobs         []model.Job
	loading      bool
	searchQuery  string
	activeTab    model.StatusTab
	editorOpen   bool
	editing      *model.Job
	explorerOpen bool
}

// New はBoardを生成する。セッションスロットはここで1回だけ読み込む。
func New(
	repo repository.JobRepository,
	sessions session.Store,
	sanitizer security.InputSanitizerService,
	collector metrics.MetricsCollector,
	cfg Config,
) (*Board, error) {
	user, err := sessions.Load()
	if err != nil {
		return nil, fmt.Errorf("セッションの読み込みに失敗しました: %w", err)
	}

	confirm := cfg.Confirm
	if confirm == nil {
		confirm = func(string) bool { return false }
	}

	fetchErrors := cfg.FetchErrors
	if fetchErrors == "" {
		fetchErrors = config.FetchErrorsSilent
	}

	return &Board{
		repo:        repo,
		sessions:    sessions,
		sanitizer:   sanitizer,
		collector:   collector,
		confirm:     confirm,
		fetchErrors: fetchErrors,
		user:        user,
		activeTab:   model.TabAll,
	}, nil
}

// --- セッション操作 ---

// User は現在のセッションユーザーを返す。未ログインの場合はnil。
func (b *Board) User() *model.User {
	return b.user
}

// LoggedIn はセッションが存在するかどうかを返す。
func (b *Board) LoggedIn() bool {
	return b.user != nil
}

// Login は自己申告のユーザー情報でセッションを開始し、スロットに永続化する。
// 名前とメールアドレスが空でないことだけを検証し（フォームレベルの
// 必須チェック）、ロールは申告値をそのまま信頼する。
// ロールが未指定の場合はEMPLOYEEになる。
func (b *Board) Login(user model.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return model.NewMissingFieldError("name")
	}
	if strings.TrimSpace(user.Email) == "" {
		return model.NewMissingFieldError("email")
	}
	if user.Role != model.RoleAdmin && user.Role != model.RoleEmployee {
		user.Role = model.RoleEmployee
	}

	b.user = &user
	if err := b.sessions.Save(&user); err != nil {
		return fmt.Errorf("セッションの保存に失敗しました: %w", err)
	}

	slog.Info("ログインしました",
		slog.String("email", user.Email),
		slog.String("role", string(user.Role)),
	)
	return nil
}

// Logout はセッションを終了し、スロットを消去する。
// 求人キャッシュの内容はクリアしないが、セッションなしでは到達できなくなる。
func (b *Board) Logout() error {
	b.user = nil
	if err := b.sessions.Clear(); err != nil {
		return fmt.Errorf("セッションの消去に失敗しました: %w", err)
	}
	return nil
}

// ToggleRole は現在のセッションのロールをADMINとEMPLOYEEで切り替えて永続化する。
// 両方のビューを確認するためのデモ用の仕組みであり、権限システムではない。
func (b *Board) ToggleRole() error {
	if b.user == nil {
		return model.NewLoginRequiredError()
	}

	toggled := *b.user
	toggled.Role = b.user.Role.Toggled()
	b.user = &toggled

	if err := b.sessions.Save(&toggled); err != nil {
		return fmt.Errorf("セッションの保存に失敗しました: %w", err)
	}
	return nil
}

// --- フェッチとキャッシュ ---

// Loading はフェッチ実行中かどうかを返す。
func (b *Board) Loading() bool {
	return b.loading
}

// FetchJobs はストレージから求人の全件を取得してキャッシュを置き換える。
// loadingフラグは成否にかかわらずdeferで必ずクリアする。
// 取得失敗時の扱いはFetchErrorsポリシーに従う。silentの場合はログにのみ
// 記録して既存キャッシュを保持し、surfacedの場合はエラーを返す。
func (b *Board) FetchJobs(ctx context.Context) error {
	if b.user == nil {
		return model.NewLoginRequiredError()
	}

	b.loading = true
	defer func() { b.loading = false }()

	start := time.Now()
	jobs, err := b.repo.List(ctx)
	b.collector.RecordFetchLatency(time.Since(start))

	if err != nil {
		b.collector.RecordFetchFailure()
		if b.fetchErrors == config.FetchErrorsSurfaced {
			return fmt.Errorf("求人一覧の取得に失敗しました: %w", err)
		}
		// 元実装と同じく、失敗はログにのみ記録して古いキャッシュを保持する
		slog.Error("求人一覧の取得に失敗しました", slog.String("error", err.Error()))
		return nil
	}

	b.jobs = jobs
	b.collector.RecordFetchSuccess(len(jobs))
	return nil
}

// --- 変更系操作（管理者専用） ---

// SubmitJob はフォーム入力を保存する。編集対象が設定されている場合は更新、
// 未設定の場合は新規作成になる。入力は必須チェックとサニタイズを経てから
// ストレージに渡す。成功時はエディタを閉じて編集対象をクリアし、全件を
// 取得し直す。失敗時はエディタを開いたままにする。
func (b *Board) SubmitJob(ctx context.Context, input model.JobInput) error {
	if err := b.requireAdmin(); err != nil {
		return err
	}
	if err := validateInput(input); err != nil {
		return err
	}

	input = b.sanitizer.SanitizeInput(input)

	if b.editing != nil {
		if _, err := b.repo.Update(ctx, b.editing.ID, input); err != nil {
			return fmt.Errorf("求人の更新に失敗しました: %w", err)
		}
		b.collector.RecordMutation("update")
	} else {
		if _, err := b.repo.Create(ctx, input); err != nil {
			return fmt.Errorf("求人の作成に失敗しました: %w", err)
		}
		b.collector.RecordMutation("create")
	}

	b.editorOpen = false
	b.editing = nil
	return b.FetchJobs(ctx)
}

// DeleteJob は確認ステップを経て求人を削除し、全件を取得し直す。
// 確認が拒否された場合は何もせず成功として返る。
func (b *Board) DeleteJob(ctx context.Context, id string) error {
	if err := b.requireAdmin(); err != nil {
		return err
	}
	if !b.confirm("この求人を削除してもよろしいですか?") {
		return nil
	}

	if err := b.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("求人の削除に失敗しました: %w", err)
	}
	b.collector.RecordMutation("delete")
	return b.FetchJobs(ctx)
}

// ArchiveJob は求人をアーカイブし、全件を取得し直す。確認ステップはない。
func (b *Board) ArchiveJob(ctx context.Context, id string) error {
	if err := b.requireAdmin(); err != nil {
		return err
	}

	if err := b.repo.Archive(ctx, id); err != nil {
		return fmt.Errorf("求人のアーカイブに失敗しました: %w", err)
	}
	b.collector.RecordMutation("archive")
	return b.FetchJobs(ctx)
}

// ResetAll は確認ステップを経て永続化された求人コレクション全体を消去し、
// 全件を取得し直す。完了後はエクスプローラーを閉じる。
// 通常の削除操作を迂回する一括消去であり、デモデータの初期化に使う。
func (b *Board) ResetAll(ctx context.Context) error {
	if err := b.requireAdmin(); err != nil {
		return err
	}
	if !b.confirm("全データを消去してもよろしいですか?") {
		return nil
	}

	if err := b.repo.ResetAll(ctx); err != nil {
		return fmt.Errorf("求人データの消去に失敗しました: %w", err)
	}
	b.collector.RecordMutation("reset")

	if err := b.FetchJobs(ctx); err != nil {
		return err
	}
	b.explorerOpen = false
	return nil
}

// CountByStatus はステータスごとの保存済み求人件数を返す。
func (b *Board) CountByStatus(ctx context.Context) (map[model.JobStatus]int, error) {
	if b.user == nil {
		return nil, model.NewLoginRequiredError()
	}
	counts, err := b.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("求人件数の集計に失敗しました: %w", err)
	}
	return counts, nil
}

// --- UI状態 ---

// SearchQuery は現在の検索クエリを返す。
func (b *Board) SearchQuery() string {
	return b.searchQuery
}

// SetSearch は検索クエリを設定する。
func (b *Board) SetSearch(query string) {
	b.searchQuery = query
}

// ActiveTab は現在のアクティブタブを返す。
func (b *Board) ActiveTab() model.StatusTab {
	return b.activeTab
}

// SetTab はアクティブタブを設定する。無効なタブ値はエラーになる。
// EMPLOYEEがOPEN以外のタブを選択しても、派生ビューの可視性フロアにより
// 非公開の求人が露出することはない。
func (b *Board) SetTab(tab model.StatusTab) error {
	if !tab.IsValid() {
		return model.NewInvalidTabError(string(tab))
	}
	b.activeTab = tab
	return nil
}

// EditorOpen はエディタが開いているかどうかを返す。
func (b *Board) EditorOpen() bool {
	return b.editorOpen
}

// Editing は現在の編集対象を返す。新規作成モードの場合はnil。
func (b *Board) Editing() *model.Job {
	return b.editing
}

// OpenCreate は新規作成モードでエディタを開く。
func (b *Board) OpenCreate() error {
	if err := b.requireAdmin(); err != nil {
		return err
	}
	b.editing = nil
	b.editorOpen = true
	return nil
}

// OpenEdit は指定した求人を編集対象としてエディタを開く。
func (b *Board) OpenEdit(job model.Job) error {
	if err := b.requireAdmin(); err != nil {
		return err
	}
	target := job
	b.editing = &target
	b.editorOpen = true
	return nil
}

// CloseEditor はエディタを閉じ、編集対象をクリアする。
func (b *Board) CloseEditor() {
	b.editorOpen = false
	b.editing = nil
}

// ExplorerOpen はデータエクスプローラーが開いているかどうかを返す。
func (b *Board) ExplorerOpen() bool {
	return b.explorerOpen
}

// OpenExplorer はデータエクスプローラーを開く（管理者専用）。
func (b *Board) OpenExplorer() error {
	if err := b.requireAdmin(); err != nil {
		return err
	}
	b.explorerOpen = true
	return nil
}

// CloseExplorer はデータエクスプローラーを閉じる。
func (b *Board) CloseExplorer() {
	b.explorerOpen = false
}

// --- 派生ビュー ---

// VisibleJobs は現在のロール・検索・タブに基づく派生ビューを返す。
// 未ログインの場合は空を返す。
func (b *Board) VisibleJobs() []model.Job {
	if b.user == nil {
		return nil
	}
	return view.Filter(b.jobs, b.user.Role, b.searchQuery, b.activeTab)
}

// Snapshot はキャッシュ中の全求人をそのまま返す（データエクスプローラー用）。
// ロールによるフィルタは適用されないため、呼び出し側で管理者に限定すること。
func (b *Board) Snapshot() []model.Job {
	return b.jobs
}

// requireAdmin はログイン済みの管理者であることを検証する。
func (b *Board) requireAdmin() error {
	if b.user == nil {
		return model.NewLoginRequiredError()
	}
	if !b.user.IsAdmin() {
		return model.NewAdminOnlyError()
	}
	return nil
}

// validateInput はフォームレベルの必須チェックを行う。SalaryRangeのみ任意。
func validateInput(input model.JobInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", input.Title},
		{"department", input.Department},
		{"location", input.Location},
		{"description", input.Description},
		{"type", input.Type},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return model.NewMissingFieldError(field.name)
		}
	}
	return nil
}
