package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/farmstead/internal/patch"
	"github.com/h4ks-com/farmstead/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// PageQuery is the skip/limit pair accepted by every list endpoint.
type PageQuery struct {
	Skip  int `form:"skip" binding:"gte=0"`
	Limit int `form:"limit" binding:"gte=0"`
}

var notFoundErrors = []error{
	services.ErrFarmerNotFound,
	services.ErrTaskNotFound,
	services.ErrItemNotFound,
	services.ErrTransactionNotFound,
	services.ErrAssetNotFound,
	services.ErrLandNotFound,
	services.ErrCropNotFound,
	services.ErrUserNotFound,
	services.ErrTokenNotFound,
}

var badRequestErrors = []error{
	services.ErrUsernameTaken,
	services.ErrInvalidRole,
	services.ErrInvalidCropStatus,
	services.ErrInvalidQuantity,
	services.ErrInvalidPrice,
	services.ErrInvalidType,
}

// respondError maps service errors onto HTTP statuses. Anything unrecognised is a 500 and
// is attached to the context for the request logger.
func respondError(c *gin.Context, err error) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
	}

	var nullErr *patch.NullError
	if errors.As(err, &nullErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: nullErr.Error()})
		return
	}

	c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
}

// parseID reads a positive integer path parameter, writing a 400 when it is malformed.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func bindPage(c *gin.Context) (PageQuery, bool) {
	var page PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, err)
		return page, false
	}
	return page, true
}

func mapSlice[T, R any](in []T, fn func(*T) R) []R {
	out := make([]R, len(in))
	for i := range in {
		out[i] = fn(&in[i])
	}
	return out
}
