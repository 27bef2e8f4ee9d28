package attendance

import (
	"errors"

	attendanceerrors "go-payroll/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			// foreign_key_violation on attendance.employee_id
			return attendanceerrors.ErrEmployeeNotFound
		case "22P02":
			return attendanceerrors.ErrInvalidEmployeeID
		}
	}

	return err
}
