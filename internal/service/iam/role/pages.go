package role

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdkiam "github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// ErrRepeatedMarker は一度受け取った（または開始時に指定した）マーカーが再度返された場合のエラー
var ErrRepeatedMarker = errors.New("service returned a marker it already returned")

// Pages は返されたマーカーを次のリクエストに渡しながら ListAttachedPolicies を繰り返し呼び出す。
// 切り詰められていないページで終了する。range するたびに q.Marker から取得し直す。
// エラーは一度だけ yield して終了する。
func Pages(ctx context.Context, client AttachedRolePoliciesAPI, q PolicyQuery) iter.Seq2[*sdkiam.ListAttachedRolePoliciesOutput, error] {
	return func(yield func(*sdkiam.ListAttachedRolePoliciesOutput, error) bool) {
		query := q
		seen := map[string]struct{}{}
		if q.Marker != nil {
			seen[aws.ToString(q.Marker)] = struct{}{}
		}

		for {
			out, err := ListAttachedPolicies(ctx, client, query)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(out, nil) {
				return
			}

			next := aws.ToString(out.Marker)
			if !out.IsTruncated || next == "" {
				return
			}
			if _, ok := seen[next]; ok {
				yield(nil, fmt.Errorf("%w: %s", ErrRepeatedMarker, next))
				return
			}
			seen[next] = struct{}{}
			query.Marker = aws.String(next)
		}
	}
}

// CollectPolicies は Pages を最後まで読み、全ポリシーをサービスが返した順に返す
func CollectPolicies(ctx context.Context, client AttachedRolePoliciesAPI, q PolicyQuery) ([]types.AttachedPolicy, error) {
	policies := []types.AttachedPolicy{}
	for page, err := range Pages(ctx, client, q) {
		if err != nil {
			return nil, err
		}
		policies = append(policies, page.AttachedPolicies...)
	}
	return policies, nil
}
