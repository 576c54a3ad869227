package common

import (
	"errors"
	"net"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// エラーメッセージの絵文字定数
const (
	ErrorIcon  = "❌"
	SearchIcon = "🔍"
	InfoIcon   = "📋"
)

// ErrorKind はAPI呼び出しの失敗の分類
type ErrorKind string

const (
	ErrorKindTransport         ErrorKind = "transport"
	ErrorKindAuthorization     ErrorKind = "authorization"
	ErrorKindNotFound          ErrorKind = "not_found"
	ErrorKindThrottling        ErrorKind = "throttling"
	ErrorKindMalformedResponse ErrorKind = "malformed_response"
	ErrorKindUnknown           ErrorKind = "unknown"
)

var authorizationErrorCodes = map[string]struct{}{
	"AccessDenied":                {},
	"AccessDeniedException":       {},
	"UnauthorizedOperation":       {},
	"InvalidClientTokenId":        {},
	"UnrecognizedClientException": {},
	"ExpiredToken":                {},
	"ExpiredTokenException":       {},
	"SignatureDoesNotMatch":       {},
}

var notFoundErrorCodes = map[string]struct{}{
	"NoSuchEntity":          {},
	"NoSuchEntityException": {},
}

// ClassifyError はSDKのエラーを ErrorKind に分類する。err 自体は変更しない。
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if _, ok := notFoundErrorCodes[code]; ok {
			return ErrorKindNotFound
		}
		if _, ok := authorizationErrorCodes[code]; ok {
			return ErrorKindAuthorization
		}
		if _, ok := retry.DefaultThrottleErrorCodes[code]; ok {
			return ErrorKindThrottling
		}
		return ErrorKindUnknown
	}

	var deserErr *smithy.DeserializationError
	if errors.As(err, &deserErr) {
		return ErrorKindMalformedResponse
	}

	var sendErr *smithyhttp.RequestSendError
	var canceled *aws.RequestCanceledError
	var netErr net.Error
	if errors.As(err, &sendErr) || errors.As(err, &canceled) || errors.As(err, &netErr) {
		return ErrorKindTransport
	}

	return ErrorKindUnknown
}
