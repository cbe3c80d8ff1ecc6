package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// WriteBusiness maps a use-case error to an HTTP response. Codes ending in
// "_not_found" become 404, other business codes 400, anything else 500.
func WriteBusiness(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status := http.StatusBadRequest
		if strings.HasSuffix(be.Code, "_not_found") {
			status = http.StatusNotFound
		}
		Write(c, status, be.Code, be.Code)
		return
	}
	Write(c, http.StatusInternalServerError, "internal_error", err.Error())
}
