package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/careerhub/internal/model"
)

// SQLiteJobRepo はSQLiteを使用した求人リポジトリ。
type SQLiteJobRepo struct {
	db *sql.DB
}

// NewSQLiteJobRepo はSQLiteJobRepoを生成する。
func NewSQLiteJobRepo(db *sql.DB) *SQLiteJobRepo {
	return &SQLiteJobRepo{db: db}
}

// jobColumns はSELECT句で使用するカラムの並び。scanJobと対応する。
const jobColumns = `id, title, department, location, description, type, salary_range, status, created_at`

// timeLayout はcreated_atカラムの格納形式。
// RFC3339Nanoは末尾のゼロを省略するため、テキスト比較で時系列順に
// 並ぶよう固定桁のナノ秒表現を使う。
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// List は全求人を作成日時の降順で返す。同時刻の求人はIDで安定ソートする。
func (r *SQLiteJobRepo) List(ctx context.Context) ([]model.Job, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("求人一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("求人一覧の読み取りに失敗しました: %w", err)
	}

	return jobs, nil
}

// FindByID は指定IDの求人を取得する。見つからない場合はnilを返す。
func (r *SQLiteJobRepo) FindByID(ctx context.Context, id string) (*model.Job, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id,
	)

	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Create は求人を新規作成する。IDと作成日時を割り当て、ステータスはOPENになる。
func (r *SQLiteJobRepo) Create(ctx context.Context, input model.JobInput) (*model.Job, error) {
	job := &model.Job{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Department:  input.Department,
		Location:    input.Location,
		Description: input.Description,
		Type:        input.Type,
		SalaryRange: input.SalaryRange,
		Status:      model.JobStatusOpen,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, title, department, location, description, type, salary_range, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Title, job.Department, job.Location, job.Description,
		job.Type, nullString(job.SalaryRange), string(job.Status),
		job.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("求人の作成に失敗しました: %w", err)
	}

	return job, nil
}

// Update は指定IDの求人の編集可能フィールドを上書き更新する。
func (r *SQLiteJobRepo) Update(ctx context.Context, id string, input model.JobInput) (*model.Job, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs
		 SET title = ?, department = ?, location = ?, description = ?, type = ?, salary_range = ?
		 WHERE id = ?`,
		input.Title, input.Department, input.Location, input.Description,
		input.Type, nullString(input.SalaryRange), id,
	)
	if err != nil {
		return nil, fmt.Errorf("求人の更新に失敗しました: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, model.NewJobNotFoundError(id)
	}

	return r.FindByID(ctx, id)
}

// Delete は指定IDの求人を削除する。
func (r *SQLiteJobRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("求人の削除に失敗しました: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return model.NewJobNotFoundError(id)
	}
	return nil
}

// Archive は指定IDの求人のステータスをARCHIVEDに変更する。
func (r *SQLiteJobRepo) Archive(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status = ? WHERE id = ?`,
		string(model.JobStatusArchived), id,
	)
	if err != nil {
		return fmt.Errorf("求人のアーカイブに失敗しました: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return model.NewJobNotFoundError(id)
	}
	return nil
}

// ResetAll は求人コレクション全体を消去する。
func (r *SQLiteJobRepo) ResetAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM jobs`); err != nil {
		return fmt.Errorf("求人データの消去に失敗しました: %w", err)
	}
	return nil
}

// CountByStatus はステータスごとの求人件数を返す。
func (r *SQLiteJobRepo) CountByStatus(ctx context.Context) (map[model.JobStatus]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM jobs GROUP BY status`,
	)
	if err != nil {
		return nil, fmt.Errorf("求人件数の集計に失敗しました: %w", err)
	}
	defer rows.Close()

	counts := map[model.JobStatus]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("求人件数の読み取りに失敗しました: %w", err)
		}
		counts[model.JobStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("求人件数の読み取りに失敗しました: %w", err)
	}

	return counts, nil
}

// rowScanner は*sql.Rowと*sql.Rowsの共通部分。
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanJob は1行分のカラムをJobに読み取る。created_atはRFC3339テキストで格納されている。
func scanJob(row rowScanner) (*model.Job, error) {
	job := &model.Job{}
	var salaryRange sql.NullString
	var status, createdAt string

	err := row.Scan(
		&job.ID, &job.Title, &job.Department, &job.Location,
		&job.Description, &job.Type, &salaryRange, &status, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("求人の読み取りに失敗しました: %w", err)
	}

	job.SalaryRange = nullStringValue(salaryRange)
	job.Status = model.JobStatus(status)
	job.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("作成日時の解析に失敗しました: %w", err)
	}

	return job, nil
}

// parseTime は日時テキストを解析する。timeLayoutで書かれた値はRFC3339Nanoとして読める。
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Parse(time.RFC3339, s)
	}
	return t, nil
}

// nullString は空文字列をNULLに変換する。
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullStringValue はNULL許容カラムの値を文字列に変換する。NULLは空文字列になる。
func nullStringValue(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}
