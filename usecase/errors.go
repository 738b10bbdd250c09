package usecase

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/tidydo/domain"
)

// Wrap logs err and returns it classified under code with a user-facing message of the
// form "<operation> failed: <reason>". A nil err passes through.
func Wrap(logger *zap.Logger, operation string, code domain.ErrorCode, err error) error {
	if err == nil {
		return nil
	}
	if logger != nil {
		logger.Error(operation+" failed",
			zap.String("code", string(code)),
			zap.String("inner_code", string(domain.CodeOf(err))),
			zap.Error(err),
		)
	}
	return domain.WrapError(code, fmt.Sprintf("%s failed: %s", operation, domain.UserMessage(err)), err)
}
