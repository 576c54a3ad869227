package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/smithy-go/logging"
)

const (
	// DefaultPreferredRegion はリージョンチェーンの先頭に置く固定リージョン
	DefaultPreferredRegion = "eu-west-1"
	// DefaultFallbackRegion はどこからもリージョンが得られなかった場合に使うリージョン
	DefaultFallbackRegion = "us-east-1"
)

// Context AwsContext は認証情報・リージョン・リトライ方針を保持
type Context struct {
	Profile string
	Region  RegionChain
	Retry   RetryPolicy

	// SDKのログ出力先（nilの場合はSDKのデフォルト）
	Logger  logging.Logger
	LogMode aws.ClientLogMode

	config *aws.Config // AWS設定のキャッシュ（非公開）
}

// RegionChain はリージョン解決の優先順位を表す。
// Preferred → 環境/プロファイル由来のデフォルト → Fallback の順に採用する。
type RegionChain struct {
	Preferred string
	Fallback  string
}

// DefaultRegionChain は eu-west-1 → 環境/プロファイル → us-east-1 のチェーンを返す
func DefaultRegionChain() RegionChain {
	return RegionChain{
		Preferred: DefaultPreferredRegion,
		Fallback:  DefaultFallbackRegion,
	}
}

// Resolve はチェーンのうち最初に空でないリージョンを返す。
// ambient はSDKが環境変数や共有設定から解決したリージョン。
func (c RegionChain) Resolve(ambient string) string {
	if c.Preferred != "" {
		return c.Preferred
	}
	if ambient != "" {
		return ambient
	}
	return c.Fallback
}
