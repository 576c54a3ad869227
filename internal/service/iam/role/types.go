package role

import (
	"io"

	"rolepolicies/internal/service/common"
)

// PolicyQuery はロールにアタッチされた管理ポリシー一覧の取得条件。
// nil のフィールドはリクエストに含めない。
type PolicyQuery struct {
	RoleName   string  // 必須
	PathPrefix *string // 例: "/service-role/"
	Marker     *string // 前ページのレスポンスに含まれていた値
	MaxItems   *int32
}

// AttachedPolicy ロールにアタッチされた管理ポリシー（表示用）
type AttachedPolicy struct {
	PolicyName string `json:"policy_name" yaml:"policy_name"`
	PolicyArn  string `json:"policy_arn" yaml:"policy_arn"`
}

// Page IAMロールのアタッチ済みポリシー一覧の1ページ分（表示用）
type Page struct {
	AttachedPolicies []AttachedPolicy `json:"attached_policies" yaml:"attached_policies"`
	Marker           string           `json:"marker,omitempty" yaml:"marker,omitempty"`
	IsTruncated      bool             `json:"is_truncated" yaml:"is_truncated"`
}

// ListOptions IAMロールのアタッチ済みポリシー一覧表示時のオプション
type ListOptions struct {
	Query    PolicyQuery
	All      bool          // マーカーをたどって全ページを取得する
	Format   common.Format // json / yaml / table
	Match    []string      // 表示のみに適用するフィルター
	Progress io.Writer     // スピナーの出力先（nil=表示しない）
}
