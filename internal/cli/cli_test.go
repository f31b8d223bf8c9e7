package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hitoshi/careerhub/internal/config"
	"github.com/hitoshi/careerhub/internal/database"
	"github.com/hitoshi/careerhub/internal/model"
	"github.com/hitoshi/careerhub/internal/repository"
)

// testConfig はt.TempDir配下にデータを置く設定を返す。
// config.Loadと同じく、ファイル項目はデータディレクトリ配下の完全パスを持つ。
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dataDir := t.TempDir()
	return &config.Config{
		DataDir:      dataDir,
		DatabaseFile: filepath.Join(dataDir, "careerhub.db"),
		SessionFile:  filepath.Join(dataDir, "session.json"),
		FetchErrors:  config.FetchErrorsSurfaced,
	}
}

// run はコマンドを実行し、標準出力の内容を返す。
func run(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(cfg, strings.NewReader(stdin), &out, false)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// seedJob はテスト用の求人を直接ストレージに投入する。
func seedJob(t *testing.T, cfg *config.Config, input model.JobInput) model.Job {
	t.Helper()
	db, err := database.Open(cfg.DatabaseFile)
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	repo := repository.NewSQLiteJobRepo(db)
	job, err := repo.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return *job
}

func adminLogin(t *testing.T, cfg *config.Config) {
	t.Helper()
	if _, err := run(t, cfg, "", "login", "--name", "管理者", "--email", "admin@example.com", "--role", "ADMIN"); err != nil {
		t.Fatalf("login error = %v", err)
	}
}

func TestLoginAndWhoami(t *testing.T) {
	cfg := testConfig(t)
	adminLogin(t, cfg)

	out, err := run(t, cfg, "", "whoami")
	if err != nil {
		t.Fatalf("whoami error = %v", err)
	}
	if !strings.Contains(out, "admin@example.com") || !strings.Contains(out, "ADMIN") {
		t.Errorf("whoami output = %q", out)
	}
}

func TestLogin_MissingName(t *testing.T) {
	cfg := testConfig(t)

	_, err := run(t, cfg, "", "login", "--name", "", "--email", "a@example.com")
	if err == nil {
		t.Fatal("login succeeded without a name")
	}
	if !strings.Contains(err.Error(), model.ErrCodeMissingField) {
		t.Errorf("error = %v, want MISSING_FIELD", err)
	}
}

func TestLogin_Interactive(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, cfg, "山田\nyamada@example.com\nADMIN\n", "login")
	if err != nil {
		t.Fatalf("login error = %v", err)
	}
	if !strings.Contains(out, "山田") {
		t.Errorf("login output = %q", out)
	}
}

func TestLogout(t *testing.T) {
	cfg := testConfig(t)
	adminLogin(t, cfg)

	if _, err := run(t, cfg, "", "logout"); err != nil {
		t.Fatalf("logout error = %v", err)
	}

	out, err := run(t, cfg, "", "whoami")
	if err != nil {
		t.Fatalf("whoami error = %v", err)
	}
	if !strings.Contains(out, "ログインしていません") {
		t.Errorf("whoami output = %q", out)
	}
}

func TestToggleRole_PersistsAcrossInvocations(t *testing.T) {
	cfg := testConfig(t)
	adminLogin(t, cfg)

	if _, err := run(t, cfg, "", "toggle-role"); err != nil {
		t.Fatalf("toggle-role error = %v", err)
	}

	out, err := run(t, cfg, "", "whoami")
	if err != nil {
		t.Fatalf("whoami error = %v", err)
	}
	if !strings.Contains(out, "EMPLOYEE") {
		t.Errorf("whoami output = %q, want EMPLOYEE role", out)
	}
}

func TestList_RequiresLogin(t *testing.T) {
	cfg := testConfig(t)

	_, err := run(t, cfg, "", "list")
	if err == nil {
		t.Fatal("list succeeded without a session")
	}
}

func TestList_JSON(t *testing.T) {
	cfg := testConfig(t)
	seedJob(t, cfg, model.JobInput{
		Title: "Engineer", Department: "Engineering", Location: "Tokyo",
		Description: "desc", Type: "FULL_TIME",
	})
	adminLogin(t, cfg)

	out, err := run(t, cfg, "", "list", "--json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	var jobs []model.Job
	if err := json.Unmarshal([]byte(out), &jobs); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(jobs) != 1 || jobs[0].Title != "Engineer" {
		t.Errorf("jobs = %+v", jobs)
	}
}

func TestList_EmployeeTabFloor(t *testing.T) {
	cfg := testConfig(t)
	job := seedJob(t, cfg, model.JobInput{
		Title: "Engineer", Department: "Engineering", Location: "Tokyo",
		Description: "desc", Type: "FULL_TIME",
	})
	adminLogin(t, cfg)
	if _, err := run(t, cfg, "", "--yes", "archive", job.ID); err != nil {
		t.Fatalf("archive error = %v", err)
	}

	// EMPLOYEEビューに切り替えるとアーカイブ済みはどのタブでも見えない
	if _, err := run(t, cfg, "", "toggle-role"); err != nil {
		t.Fatalf("toggle-role error = %v", err)
	}
	out, err := run(t, cfg, "", "list", "--tab", "archived")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "該当する求人はありません") {
		t.Errorf("archived job leaked to employee view:\n%s", out)
	}
}

func TestList_InvalidTab(t *testing.T) {
	cfg := testConfig(t)
	adminLogin(t, cfg)

	_, err := run(t, cfg, "", "list", "--tab", "PENDING")
	if err == nil {
		t.Fatal("list succeeded with an invalid tab")
	}
	if !strings.Contains(err.Error(), model.ErrCodeInvalidTab) {
		t.Errorf("error = %v, want INVALID_TAB", err)
	}
}

func TestList_Search(t *testing.T) {
	cfg := testConfig(t)
	seedJob(t, cfg, model.JobInput{
		Title: "Backend Engineer", Department: "Engineering", Location: "Tokyo",
		Description: "desc", Type: "FULL_TIME",
	})
	seedJob(t, cfg, model.JobInput{
		Title: "Analyst", Department: "Finance", Location: "Osaka",
		Description: "desc", Type: "FULL_TIME",
	})
	adminLogin(t, cfg)

	out, err := run(t, cfg, "", "list", "--search", "eng")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "Backend Engineer") || strings.Contains(out, "Analyst") {
		t.Errorf("search filter failed:\n%s", out)
	}
}

func TestCreate_Interactive(t *testing.T) {
	cfg := testConfig(t)
	adminLogin(t, cfg)

	stdin := "Platform Engineer\nEngineering\nTokyo\nインフラ基盤の開発\nFULL_TIME\n700万〜\n"
	out, err := run(t, cfg, stdin, "create")
	if err != nil {
		t.Fatalf("create error = %v", err)
	}
	if !strings.Contains(out, "求人を作成しました") {
		t.Errorf("create output = %q", out)
	}

	listOut, err := run(t, cfg, "", "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(listOut, "Platform Engineer") {
		t.Errorf("created job missing from list:\n%s", listOut)
	}
}

func TestCreate_RequiresAdmin(t *testing.T) {
	cfg := testConfig(t)
	if _, err := run(t, cfg, "", "login", "--name", "A", "--email", "a@example.com"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	_, err := run(t, cfg, "", "create")
	if err == nil {
		t.Fatal("create succeeded for an employee")
	}
	if !strings.Contains(err.Error(), model.ErrCodeAdminOnly) {
		t.Errorf("error = %v, want ADMIN_ONLY", err)
	}
}

func TestEdit_KeepsUnchangedFields(t *testing.T) {
	cfg := testConfig(t)
	job := seedJob(t, cfg, model.JobInput{
		Title: "Engineer", Department: "Engineering", Location: "Tokyo",
		Description: "desc", Type: "FULL_TIME", SalaryRange: "600万〜",
	})
	adminLogin(t, cfg)

	// タイトルだけ変更し、残りは空入力で引き継ぐ
	stdin := "Senior Engineer\n\n\n\n\n\n"
	if _, err := run(t, cfg, stdin, "edit", job.ID); err != nil {
		t.Fatalf("edit error = %v", err)
	}

	out, err := run(t, cfg, "", "list", "--json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	var jobs []model.Job
	if err := json.Unmarshal([]byte(out), &jobs); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if jobs[0].Title != "Senior Engineer" {
		t.Errorf("Title = %q, want %q", jobs[0].Title, "Senior Engineer")
	}
	if jobs[0].Department != "Engineering" {
		t.Errorf("Department = %q, want %q", jobs[0].Department, "Engineering")
	}
}

func TestEdit_NotFound(t *testing.T) {
	cfg := testConfig(t)
	adminLogin(t, cfg)

	_, err := run(t, cfg, "", "edit", "no-such-id")
	if err == nil {
		t.Fatal("edit succeeded for a missing job")
	}
	if !strings.Contains(err.Error(), model.ErrCodeJobNotFound) {
		t.Errorf("error = %v, want JOB_NOT_FOUND", err)
	}
}

func TestDelete_WithYesFlag(t *testing.T) {
	cfg := testConfig(t)
	job := seedJob(t, cfg, model.JobInput{
		Title: "Engineer", Department: "Engineering", Location: "Tokyo",
		Description: "desc", Type: "FULL_TIME",
	})
	adminLogin(t, cfg)

	if _, err := run(t, cfg, "", "--yes", "delete", job.ID); err != nil {
		t.Fatalf("delete error = %v", err)
	}

	out, err := run(t, cfg, "", "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "該当する求人はありません") {
		t.Errorf("job still listed after delete:\n%s", out)
	}
}

func TestDelete_Declined(t *testing.T) {
	cfg := testConfig(t)
	job := seedJob(t, cfg, model.JobInput{
		Title: "Engineer", Department: "Engineering", Location: "Tokyo",
		Description: "desc", Type: "FULL_TIME",
	})
	adminLogin(t, cfg)

	// 確認プロンプトにnを入力
	if _, err := run(t, cfg, "n\n", "delete", job.ID); err != nil {
		t.Fatalf("delete error = %v", err)
	}

	out, err := run(t, cfg, "", "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "Engineer") {
		t.Errorf("job was deleted despite declined confirmation:\n%s", out)
	}
}

func TestArchive(t *testing.T) {
	cfg := testConfig(t)
	job := seedJob(t, cfg, model.JobInput{
		Title: "Engineer", Department: "Engineering", Location: "Tokyo",
		Description: "desc", Type: "FULL_TIME",
	})
	adminLogin(t, cfg)

	// アーカイブは確認なしで実行される（--yesなし、stdin空）
	if _, err := run(t, cfg, "", "archive", job.ID); err != nil {
		t.Fatalf("archive error = %v", err)
	}

	out, err := run(t, cfg, "", "list", "--tab", "ARCHIVED")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "Engineer") {
		t.Errorf("archived job missing:\n%s", out)
	}
}

func TestDB_Table(t *testing.T) {
	cfg := testConfig(t)
	job := seedJob(t, cfg, model.JobInput{
		Title: "Engineer", Department: "Engineering", Location: "Tokyo",
		Description: "desc", Type: "FULL_TIME",
	})
	adminLogin(t, cfg)
	if _, err := run(t, cfg, "", "--yes", "archive", job.ID); err != nil {
		t.Fatalf("archive error = %v", err)
	}

	// エクスプローラーはフィルタなしで全件を表示する
	out, err := run(t, cfg, "", "db")
	if err != nil {
		t.Fatalf("db error = %v", err)
	}
	if !strings.Contains(out, job.ID) || !strings.Contains(out, "ARCHIVED") {
		t.Errorf("db output incomplete:\n%s", out)
	}
}

func TestDB_RequiresAdmin(t *testing.T) {
	cfg := testConfig(t)
	if _, err := run(t, cfg, "", "login", "--name", "A", "--email", "a@example.com"); err != nil {
		t.Fatalf("login error = %v", err)
	}

	_, err := run(t, cfg, "", "db")
	if err == nil {
		t.Fatal("db succeeded for an employee")
	}
}

func TestDB_InvalidFormat(t *testing.T) {
	cfg := testConfig(t)
	adminLogin(t, cfg)

	_, err := run(t, cfg, "", "db", "--format", "xml")
	if err == nil {
		t.Fatal("db succeeded with an invalid format")
	}
}

func TestDBReset(t *testing.T) {
	cfg := testConfig(t)
	seedJob(t, cfg, model.JobInput{
		Title: "Engineer", Department: "Engineering", Location: "Tokyo",
		Description: "desc", Type: "FULL_TIME",
	})
	adminLogin(t, cfg)

	if _, err := run(t, cfg, "", "--yes", "db", "reset"); err != nil {
		t.Fatalf("db reset error = %v", err)
	}

	out, err := run(t, cfg, "", "list", "--json")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if got := strings.TrimSpace(out); got != "[]" {
		t.Errorf("list --json after reset = %q, want %q", got, "[]")
	}
}

func TestStats(t *testing.T) {
	cfg := testConfig(t)
	seedJob(t, cfg, model.JobInput{
		Title: "Engineer", Department: "Engineering", Location: "Tokyo",
		Description: "desc", Type: "FULL_TIME",
	})
	adminLogin(t, cfg)

	out, err := run(t, cfg, "", "stats")
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}
	if !strings.Contains(out, "OPEN") || !strings.Contains(out, "TOTAL") {
		t.Errorf("stats output incomplete:\n%s", out)
	}
}

func TestStats_Metrics(t *testing.T) {
	cfg := testConfig(t)
	seedJob(t, cfg, model.JobInput{
		Title: "Engineer", Department: "Engineering", Location: "Tokyo",
		Description: "desc", Type: "FULL_TIME",
	})
	adminLogin(t, cfg)

	out, err := run(t, cfg, "", "stats", "--metrics")
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}
	// ダンプはゼロ値のスキーマではなく、今回のフェッチの実測値を含む
	if !strings.Contains(out, "careerhub_fetch_success_total 1") {
		t.Errorf("fetch counter missing or zero:\n%s", out)
	}
	if !strings.Contains(out, "careerhub_jobs_cached 1") {
		t.Errorf("cached gauge missing or zero:\n%s", out)
	}
}

func TestMigrateCommand(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, cfg, "", "migrate")
	if err != nil {
		t.Fatalf("migrate error = %v", err)
	}
	if !strings.Contains(out, "マイグレーションを適用しました") {
		t.Errorf("migrate output = %q", out)
	}
}

// データベースとセッションスロットが設定の完全パスそのものに作られることを検証。
// ファイル項目は既にデータディレクトリ配下の完全パスであり、再結合してはならない。
func TestSetup_UsesConfiguredPathsVerbatim(t *testing.T) {
	cfg := &config.Config{
		DataDir:      t.TempDir(),
		DatabaseFile: filepath.Join(t.TempDir(), "custom", "board.db"),
		SessionFile:  filepath.Join(t.TempDir(), "custom", "slot.json"),
		FetchErrors:  config.FetchErrorsSurfaced,
	}

	if _, err := run(t, cfg, "", "migrate"); err != nil {
		t.Fatalf("migrate error = %v", err)
	}
	if _, err := os.Stat(cfg.DatabaseFile); err != nil {
		t.Errorf("database not found at cfg.DatabaseFile: %v", err)
	}

	if _, err := run(t, cfg, "", "login", "--name", "A", "--email", "a@example.com"); err != nil {
		t.Fatalf("login error = %v", err)
	}
	if _, err := os.Stat(cfg.SessionFile); err != nil {
		t.Errorf("session slot not found at cfg.SessionFile: %v", err)
	}
}
