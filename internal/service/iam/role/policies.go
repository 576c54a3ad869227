package role

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdkiam "github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/samber/lo"
)

// AttachedRolePoliciesAPI は一覧取得に必要な *iam.Client のメソッド
type AttachedRolePoliciesAPI interface {
	ListAttachedRolePolicies(ctx context.Context, params *sdkiam.ListAttachedRolePoliciesInput, optFns ...func(*sdkiam.Options)) (*sdkiam.ListAttachedRolePoliciesOutput, error)
}

// ListAttachedPolicies は ListAttachedRolePolicies を1回だけ呼び出し、
// レスポンスをそのまま返す。エラーもそのまま返す（リトライはクライアント側の設定による）。
func ListAttachedPolicies(ctx context.Context, client AttachedRolePoliciesAPI, q PolicyQuery) (*sdkiam.ListAttachedRolePoliciesOutput, error) {
	return client.ListAttachedRolePolicies(ctx, newInput(q))
}

func newInput(q PolicyQuery) *sdkiam.ListAttachedRolePoliciesInput {
	// 未指定のオプションは空文字/0ではなくnilのまま送る（ページングの意味が変わるため）
	return &sdkiam.ListAttachedRolePoliciesInput{
		RoleName:   aws.String(q.RoleName),
		PathPrefix: q.PathPrefix,
		Marker:     q.Marker,
		MaxItems:   q.MaxItems,
	}
}

// NewPage はSDKのレスポンスを表示用のページに変換する。ポリシー一覧が無い場合は空の一覧にする。
func NewPage(out *sdkiam.ListAttachedRolePoliciesOutput) Page {
	if out == nil {
		return Page{AttachedPolicies: []AttachedPolicy{}}
	}
	return Page{
		AttachedPolicies: ToAttachedPolicies(out.AttachedPolicies),
		Marker:           aws.ToString(out.Marker),
		IsTruncated:      out.IsTruncated,
	}
}

// ToAttachedPolicies はSDKのポリシーを順序を保ったまま表示用に変換する
func ToAttachedPolicies(policies []types.AttachedPolicy) []AttachedPolicy {
	if len(policies) == 0 {
		return []AttachedPolicy{}
	}
	return lo.Map(policies, func(p types.AttachedPolicy, _ int) AttachedPolicy {
		return AttachedPolicy{
			PolicyName: aws.ToString(p.PolicyName),
			PolicyArn:  aws.ToString(p.PolicyArn),
		}
	})
}
