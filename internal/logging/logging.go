// Package logging はプロセス全体のlogrusロガーを設定し、AWS SDKのログをそこへ流す
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultLevel は未指定時のログレベル
const DefaultLevel = "info"

// Setup は logrus.StandardLogger を設定して返す
func Setup(level string, w io.Writer) (*logrus.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("❌ 不明なログレベル: %q", level)
	}

	logger := logrus.StandardLogger()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: lvl < logrus.DebugLevel,
		FullTimestamp:    true,
	})
	return logger, nil
}
