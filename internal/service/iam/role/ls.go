package role

import (
	"context"
	"fmt"
	"io"

	"rolepolicies/internal/service/common"

	"github.com/sirupsen/logrus"
)

// List はロールにアタッチされた管理ポリシーを取得して w に出力する。
// API呼び出しのエラーはそのまま返す。
func List(ctx context.Context, w io.Writer, client AttachedRolePoliciesAPI, opts ListOptions) error {
	if client == nil {
		return fmt.Errorf("iam client is nil")
	}
	if err := common.ValidatePatterns(opts.Match); err != nil {
		return err
	}

	log := logrus.WithField("role", opts.Query.RoleName)

	spinner := common.StartSpinner(opts.Progress, fmt.Sprintf("%s %s のポリシーを取得中...", common.SearchIcon, opts.Query.RoleName))
	policies, err := fetch(ctx, client, opts, log)
	spinner.Stop()
	if err != nil {
		return err
	}

	policies, err = common.Filter(policies, opts.Match, func(p AttachedPolicy) string { return p.PolicyName })
	if err != nil {
		return err
	}

	return common.Render(w, opts.Format, policies, toPolicyTable, &common.DisplayOptions{
		Title:        fmt.Sprintf("%s のアタッチ済みポリシー一覧", opts.Query.RoleName),
		ShowCount:    true,
		EmptyMessage: common.FormatEmptyMessage("アタッチ済みポリシー"),
	})
}

func fetch(ctx context.Context, client AttachedRolePoliciesAPI, opts ListOptions, log *logrus.Entry) ([]AttachedPolicy, error) {
	if opts.All {
		all, err := CollectPolicies(ctx, client, opts.Query)
		if err != nil {
			return nil, err
		}
		log.WithField("count", len(all)).Debug("collected all pages")
		return ToAttachedPolicies(all), nil
	}

	out, err := ListAttachedPolicies(ctx, client, opts.Query)
	if err != nil {
		return nil, err
	}
	page := NewPage(out)
	log.WithField("count", len(page.AttachedPolicies)).Debug("received page")
	if page.IsTruncated {
		log.WithField("marker", page.Marker).Infof("%s 続きのポリシーがあります（--marker または --all で取得）", common.InfoIcon)
	}
	return page.AttachedPolicies, nil
}

func toPolicyTable(items []AttachedPolicy) ([]common.TableColumn, [][]string) {
	cols := []common.TableColumn{{Header: "ポリシー名"}, {Header: "ARN"}}
	rows := make([][]string, len(items))
	for i, p := range items {
		rows[i] = []string{p.PolicyName, p.PolicyArn}
	}
	return cols, rows
}
