package cmd

import (
	"errors"
	"fmt"

	"rolepolicies/internal/aws"
	"rolepolicies/internal/service/common"
	"rolepolicies/internal/service/iam/role"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// defaultRoleName は引数を省略したときに参照するロール
const defaultRoleName = "eks-admin-role"

var iamClient role.AttachedRolePoliciesAPI

// RoleCmd represents the role command
var RoleCmd = &cobra.Command{
	Use:   "role",
	Short: "IAMロール操作",
	Long:  `IAMロールに関する操作コマンド群です。アタッチされた管理ポリシーの一覧表示に対応しています。`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 親のPersistentPreRunEを実行（ロガー設定とawsCtx設定）
		if err := RootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}

		// IAMクライアントを初期化
		clients, err := aws.NewAwsClients(cmd.Context(), &awsCtx)
		if err != nil {
			return fmt.Errorf("%s AWS設定の読み込みエラー: %w", common.ErrorIcon, err)
		}
		logger.WithField("region", clients.Region()).Debug("iam client ready")
		iamClient = clients.Iam()
		return nil
	},
}

var rolePoliciesCmd = newRolePoliciesCmd()

func newRolePoliciesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "policies [ROLE_NAME]",
		Short: "ロールにアタッチされた管理ポリシーを表示",
		Long: `IAMロールにアタッチされた管理ポリシー（ポリシー名とARN）を表示します。
ROLE_NAME を省略すると ` + defaultRoleName + ` を参照します。

デフォルトでは1ページ分のみ取得します。続きは表示されたマーカーを --marker に渡すか、
--all で全ページを取得してください。

例:
  ` + AppName + ` role policies                          # ` + defaultRoleName + ` のポリシー
  ` + AppName + ` role policies my-role -o table         # テーブル形式
  ` + AppName + ` role policies my-role --max-items 10   # 1ページ10件まで
  ` + AppName + ` role policies my-role --all -m "Amazon*"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := policyListOptions(cmd.Flags(), args)
			if err != nil {
				return err
			}
			if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
				opts.Progress = cmd.ErrOrStderr()
			}
			return role.List(cmd.Context(), cmd.OutOrStdout(), iamClient, opts)
		},
	}

	c.Flags().String("path-prefix", "", "ポリシーのパスプレフィックス（例: /service-role/）")
	c.Flags().String("marker", "", "前回の出力で得たページングマーカー")
	c.Flags().Int32("max-items", 0, "1ページの最大件数")
	c.Flags().Bool("all", false, "マーカーをたどって全ページを取得")
	c.Flags().StringP("output", "o", string(common.FormatJSON), "出力形式（json|yaml|table）")
	c.Flags().StringSliceP("match", "m", []string{}, "表示するポリシー名のパターン（*を含むとglob、それ以外は部分一致。大文字小文字は区別しない、複数指定可）")
	c.Flags().BoolP("quiet", "q", false, "取得中のスピナーを表示しない")
	return c
}

// policyListOptions はフラグと引数から一覧取得のオプションを組み立てる。
// 指定されなかったオプションはnilのまま残す。
func policyListOptions(flags *pflag.FlagSet, args []string) (role.ListOptions, error) {
	q := role.PolicyQuery{RoleName: defaultRoleName}
	if len(args) > 0 {
		if args[0] == "" {
			return role.ListOptions{}, errors.New(common.ErrorIcon + " ロール名が空です")
		}
		q.RoleName = args[0]
	}

	if flags.Changed("path-prefix") {
		s, _ := flags.GetString("path-prefix")
		q.PathPrefix = awssdk.String(s)
	}
	if flags.Changed("marker") {
		s, _ := flags.GetString("marker")
		q.Marker = awssdk.String(s)
	}
	if flags.Changed("max-items") {
		n, _ := flags.GetInt32("max-items")
		if n < 1 {
			return role.ListOptions{}, fmt.Errorf("%s --max-items は1以上を指定してください: %d", common.ErrorIcon, n)
		}
		q.MaxItems = awssdk.Int32(n)
	}

	output, _ := flags.GetString("output")
	format, err := common.ParseFormat(output)
	if err != nil {
		return role.ListOptions{}, err
	}
	all, _ := flags.GetBool("all")
	match, _ := flags.GetStringSlice("match")

	return role.ListOptions{
		Query:  q,
		All:    all,
		Format: format,
		Match:  match,
	}, nil
}

func init() {
	RootCmd.AddCommand(RoleCmd)
	RoleCmd.AddCommand(rolePoliciesCmd)
}
