package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/vjloable/fredelicacies-pos-sub003/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Teach the validator to treat decimal.Decimal as a number so tags like
	// gt=0 and min=0 work on money fields instead of panicking.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// serviceError responds to a failure from the service layer. Errors that
// originate in the database driver carry constraint names and SQL fragments,
// so they are logged and replaced with a generic message; errors the services
// craft themselves are safe to echo.
func serviceError(c *gin.Context, status int, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		c.JSON(http.StatusConflict, apierror.New("A record with that value already exists"))
	case errors.As(err, &pgErr):
		log.Error().Err(err).Str("path", c.FullPath()).Msg("database error")
		c.JSON(http.StatusInternalServerError, apierror.New("Internal error"))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Not found"))
	default:
		c.JSON(status, apierror.New(err.Error()))
	}
}

// bindAndValidate binds the JSON body and runs validator tags. On failure it
// writes the error response itself and returns false; the caller just returns.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}
