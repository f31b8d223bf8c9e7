package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hitoshi/careerhub/internal/model"
)

// Prompter は対話的な入力を読み取る。
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter はPrompterを生成する。
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// readLine は1行読み取り、前後の空白を除去して返す。
func (p *Prompter) readLine(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readLineWithDefault は初期値付きで1行読み取る。空入力の場合は初期値を返す。
func (p *Prompter) readLineWithDefault(label, defaultVal string) (string, error) {
	if defaultVal == "" {
		return p.readLine(label)
	}
	fmt.Fprintf(p.out, "%s [%s]: ", label, defaultVal)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultVal, nil
	}
	return line, nil
}

// PromptLogin はログインフォームの入力を読み取る。
// ロールが無効または空の場合はEMPLOYEEになる。
func (p *Prompter) PromptLogin() (model.User, error) {
	name, err := p.readLine("名前")
	if err != nil {
		return model.User{}, err
	}
	email, err := p.readLine("メールアドレス")
	if err != nil {
		return model.User{}, err
	}
	role, err := p.readLine("ロール (ADMIN/EMPLOYEE)")
	if err != nil {
		return model.User{}, err
	}

	user := model.User{Name: name, Email: email}
	if strings.EqualFold(role, string(model.RoleAdmin)) {
		user.Role = model.RoleAdmin
	} else {
		user.Role = model.RoleEmployee
	}
	return user, nil
}

// PromptJobInput は求人フォームの入力を読み取る。
// initialが設定されている場合は編集モードとして各項目の初期値を表示し、
// 空入力でその値を引き継ぐ。
func (p *Prompter) PromptJobInput(initial *model.Job) (model.JobInput, error) {
	var base model.JobInput
	if initial != nil {
		base = model.JobInput{
			Title:       initial.Title,
			Department:  initial.Department,
			Location:    initial.Location,
			Description: initial.Description,
			Type:        initial.Type,
			SalaryRange: initial.SalaryRange,
		}
	}

	var input model.JobInput
	var err error

	if input.Title, err = p.readLineWithDefault("タイトル", base.Title); err != nil {
		return input, err
	}
	if input.Department, err = p.readLineWithDefault("部署", base.Department); err != nil {
		return input, err
	}
	if input.Location, err = p.readLineWithDefault("勤務地", base.Location); err != nil {
		return input, err
	}
	if input.Description, err = p.readLineWithDefault("説明", base.Description); err != nil {
		return input, err
	}
	if input.Type, err = p.readLineWithDefault("雇用形態", base.Type); err != nil {
		return input, err
	}
	if input.SalaryRange, err = p.readLineWithDefault("給与レンジ (任意)", base.SalaryRange); err != nil {
		return input, err
	}
	return input, nil
}

// Confirm は確認プロンプトを表示する。yまたはyesの入力のみtrueを返す。
func (p *Prompter) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
