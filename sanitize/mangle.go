package sanitize

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var lineBreaks = strings.NewReplacer("\n", "", "\r", "")

// UserInputString logs a caller supplied value with \r and \n
// stripped so it cannot forge log records (CWE-117)
func UserInputString(key string, value string) zapcore.Field {
	return zap.String(key, lineBreaks.Replace(value))
}
