// Package security はアプリケーションのセキュリティ機能を提供する。
//
// InputSanitizerService は求人フォームの自由入力テキストをサニタイズし、
// スクリプト断片などが永続化層やエクスプローラー出力に混入することを防ぐ。
// bluemondayライブラリのStrictPolicyで全タグを除去し、求人の各フィールドを
// プレーンテキストとして扱う。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hitoshi/careerhub/internal/model"
)

// InputSanitizerService は求人入力のサニタイズ機能のインターフェースを定義する。
// 求人の作成・更新でストレージに渡す直前に使用される。
type InputSanitizerService interface {
	// Sanitize は1つの文字列からHTMLタグを除去し、前後の空白を取り除いて返す。
	// プレーンテキストは変更されずに通過する。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string

	// SanitizeInput はJobInputの全テキストフィールドをサニタイズした複製を返す。
	SanitizeInput(input model.JobInput) model.JobInput
}

// inputSanitizer はInputSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type inputSanitizer struct {
	policy *bluemonday.Policy
}

// NewInputSanitizer はInputSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyを使用し、あらゆるHTML要素を除去する。
func NewInputSanitizer() *inputSanitizer {
	return &inputSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は1つの文字列からHTMLタグを除去して返す。
// bluemondayはタグ除去後のテキストをHTMLエスケープするため、
// エンティティを復元してプレーンテキストとして返す（"R&D"は"R&D"のまま）。
func (s *inputSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(raw)))
}

// SanitizeInput はJobInputの全テキストフィールドをサニタイズした複製を返す。
func (s *inputSanitizer) SanitizeInput(input model.JobInput) model.JobInput {
	return model.JobInput{
		Title:       s.Sanitize(input.Title),
		Department:  s.Sanitize(input.Department),
		Location:    s.Sanitize(input.Location),
		Description: s.Sanitize(input.Description),
		Type:        s.Sanitize(input.Type),
		SalaryRange: s.Sanitize(input.SalaryRange),
	}
}
