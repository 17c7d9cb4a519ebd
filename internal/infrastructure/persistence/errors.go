package persistence

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/nexlearn/agenthub/pkg/errors"
)

// Postgres 错误码，见 https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// translateDBError 把驱动层错误翻译成领域错误。
// postgres 走错误码，sqlite 没有结构化错误只能嗅探消息文本；
// 识别不了的错误原样包进 INTERNAL_ERROR 向上传。
func translateDBError(op string, err error) error {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return domainErrors.NewReferentialError("referenced user does not exist")
		case pgCheckViolation:
			return domainErrors.NewConstraintError("value rejected by database constraint " + pgErr.ConstraintName)
		case pgUniqueViolation:
			return domainErrors.NewAlreadyExistsError("record already exists")
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return domainErrors.NewReferentialError("referenced user does not exist")
	case strings.Contains(msg, "CHECK constraint failed"):
		return domainErrors.NewConstraintError("value rejected by database constraint")
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return domainErrors.NewAlreadyExistsError("record already exists")
	}

	return domainErrors.NewInternalErrorWithCause(op, err)
}
