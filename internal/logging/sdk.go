package logging

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	smithylog "github.com/aws/smithy-go/logging"
	"github.com/sirupsen/logrus"
)

// SDKLogger はAWS SDKのログをlogrusに転送する
type SDKLogger struct {
	Entry *logrus.Entry
}

// NewSDKLogger は logger に "component=aws-sdk" を付けたSDK用ロガーを返す
func NewSDKLogger(logger *logrus.Logger) SDKLogger {
	return SDKLogger{Entry: logger.WithField("component", "aws-sdk")}
}

// Logf は smithylog.Logger の実装
func (l SDKLogger) Logf(classification smithylog.Classification, format string, v ...interface{}) {
	switch classification {
	case smithylog.Warn:
		l.Entry.Warnf(format, v...)
	default:
		l.Entry.Debugf(format, v...)
	}
}

// ClientLogMode はログレベルに応じたSDKのログモードを返す。
// リクエストとリトライのログはdebug時のみ出力する。
func ClientLogMode(logger *logrus.Logger) aws.ClientLogMode {
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		return aws.LogRetries | aws.LogRequest
	}
	return 0
}
