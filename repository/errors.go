package repository

import (
	"errors"

	apperrors "abchotels/errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

// translate maps storage errors onto AppErrors. notFound is the sentinel for a missing row.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(notFound)
	case isDuplicate(err):
		return apperrors.NewAppError(apperrors.ErrCodeDBDuplicate, apperrors.ErrDuplicate.Error(), err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.NewAppError(apperrors.ErrCodeDBInUse, apperrors.ErrInUse.Error(), err)
	default:
		return apperrors.Internal(err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
