package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"rolepolicies/internal/aws"
	"rolepolicies/internal/logging"
	"rolepolicies/internal/service/common"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// AppName はコマンド名（ヘルプやドキュメント生成で使用）
const AppName = "rolepolicies"

const (
	envPrefix             = "ROLEPOLICIES"
	defaultRetryBaseDelay = 200 * time.Millisecond
)

var (
	cfgFile string
	v       = viper.New()
	awsCtx  aws.Context
	logger  = logrus.StandardLogger()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   AppName,
	Short: "IAMロールにアタッチされた管理ポリシーを表示するツール",
	Long: `IAMロールにアタッチされた管理ポリシーを取得し、JSON/YAML/テーブル形式で表示します。

各フラグは環境変数（` + envPrefix + `_REGION など）や --config で指定したYAMLファイルからも設定できます。`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// ヘルプコマンドの場合はスキップ
		if cmd.Name() == "help" {
			return nil
		}
		if err := initConfig(); err != nil {
			return err
		}

		l, err := logging.Setup(v.GetString("log-level"), os.Stderr)
		if err != nil {
			return err
		}
		logger = l

		awsCtx, err = newAwsContext(v, logger)
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "設定ファイル（YAML）")
	RootCmd.PersistentFlags().StringP("profile", "P", "", "AWSプロファイル（未指定時は AWS_PROFILE またはデフォルト認証情報）")
	RootCmd.PersistentFlags().StringP("region", "R", aws.DefaultPreferredRegion, "優先するAWSリージョン（空文字で環境/プロファイルの設定を使用）")
	RootCmd.PersistentFlags().String("fallback-region", aws.DefaultFallbackRegion, "リージョンが決まらなかった場合のリージョン")
	RootCmd.PersistentFlags().String("retry-mode", string(aws.RetryModeNone), "リトライ方式（none|exponential）")
	RootCmd.PersistentFlags().Int("max-attempts", 3, "exponential 時の最大試行回数")
	RootCmd.PersistentFlags().Duration("retry-base-delay", defaultRetryBaseDelay, "exponential 時の初回待機時間")
	RootCmd.PersistentFlags().String("log-level", logging.DefaultLevel, "ログレベル（debug|info|warn|error）")

	if err := v.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		logrus.Fatal(err)
	}
}

// initConfig は環境変数と設定ファイルを読み込む（優先度: フラグ > 環境変数 > 設定ファイル > デフォルト）
func initConfig() error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AllowEmptyEnv(true) // ROLEPOLICIES_REGION="" で優先リージョンをスキップできるようにする
	v.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%s 設定ファイルの読み込みに失敗: %w", common.ErrorIcon, err)
	}
	return nil
}

// newAwsContext はフラグ/環境変数の値からAWS設定の組み立て方を決める
func newAwsContext(v *viper.Viper, logger *logrus.Logger) (aws.Context, error) {
	retry, err := aws.ParseRetryPolicy(
		v.GetString("retry-mode"),
		v.GetInt("max-attempts"),
		v.GetDuration("retry-base-delay"),
	)
	if err != nil {
		return aws.Context{}, err
	}

	ctx := aws.Context{
		Profile: resolveProfile(v.GetString("profile")),
		Region: aws.RegionChain{
			Preferred: v.GetString("region"),
			Fallback:  v.GetString("fallback-region"),
		},
		Retry:   retry,
		Logger:  logging.NewSDKLogger(logger),
		LogMode: logging.ClientLogMode(logger),
	}

	logger.WithFields(logrus.Fields{
		"profile": ctx.Profile,
		"region":  ctx.Region.Preferred,
		"retry":   ctx.Retry.String(),
	}).Debug("aws context")
	return ctx, nil
}

// resolveProfile はプロファイルの確認を行う。未指定なら AWS_PROFILE を使い、
// それも無ければSDKのデフォルト認証情報チェーンに任せる。
func resolveProfile(profile string) string {
	if profile != "" {
		return profile
	}
	envProfile := os.Getenv("AWS_PROFILE")
	if envProfile != "" {
		logger.Debugf("%s 環境変数 AWS_PROFILE の値 '%s' を使用します", common.SearchIcon, envProfile)
	}
	return envProfile
}

// reportError はエラーをそのままの文言でログに出す。分類できた場合は kind を付与する。
func reportError(err error) {
	l := logger
	if l == nil {
		l = logrus.StandardLogger()
	}
	entry := logrus.NewEntry(l)
	if kind := common.ClassifyError(err); kind != common.ErrorKindUnknown {
		entry = entry.WithField("kind", kind)
	}
	entry.Error(err.Error())
}
