package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/go-postrpc/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_UniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "Product",
		ConstraintName: "Product_slug_key",
	})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PRODUCT_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Product with this Slug already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	err := HandleError(fmt.Errorf("insert: %w", &pgconn.PgError{
		Code:       "23502",
		TableName:  "Product",
		ColumnName: "name",
	}))

	httpErr := asHTTPError(t, err)
	assert.Equal(t, "PRODUCT_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
}

func TestHandleError_NoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleError_ConnectionFailuresAreOpaque(t *testing.T) {
	for _, err := range []error{
		&pgconn.PgError{Code: "08006", Message: "connection failure"},
		&pgconn.PgError{Code: "42P01", Message: `relation "Product" does not exist`},
		context.DeadlineExceeded,
		errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
	} {
		httpErr := asHTTPError(t, HandleError(err))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "Internal Server Error", httpErr.Message)
	}
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewUnauthorizedError("Unauthorized", false)
	assert.Same(t, original, HandleError(original))
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, UndefinedTable, ErrCode(&pgconn.PgError{Code: "42P01"}))
	assert.Equal(t, UniqueViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: "23505"})))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "slug", extractColumnForUniqueViolation("Product_slug_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_product"))
}
