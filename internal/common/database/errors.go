package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE
const (
	pgNumericOverflow      = "22003"
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionViolation 排他约束冲突
func IsExclusionViolation(err error) bool {
	return pgCode(err) == pgExclusionViolation
}

// IsUniqueViolation 唯一约束冲突
func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// IsNumericOverflow 数值超出列精度
func IsNumericOverflow(err error) bool {
	return pgCode(err) == pgNumericOverflow
}

// IsSerializationFailure 可串行化事务冲突或死锁，事务已回滚
func IsSerializationFailure(err error) bool {
	code := pgCode(err)
	return code == pgSerializationFailure || code == pgDeadlockDetected
}
