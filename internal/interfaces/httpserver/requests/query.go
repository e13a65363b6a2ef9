package requests

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"colloquy/dialogue-api/internal/domain/query"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

// GetPaginationFromQuery parses limit/offset query parameters.
func GetPaginationFromQuery(reqCtx *gin.Context) (*query.Pagination, error) {
	limitStr := reqCtx.DefaultQuery("limit", "50")
	offsetStr := reqCtx.Query("offset")

	var limit *int
	if limitStr != "" {
		limitInt, err := strconv.Atoi(limitStr)
		if err != nil || limitInt < 1 {
			return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid limit number", nil, "04aecd25-bd32-428b-864d-aeb7ecb06e53")
		}
		limit = &limitInt
	}

	var offset *int
	if offsetStr != "" {
		offsetInt, err := strconv.Atoi(offsetStr)
		if err != nil || offsetInt < 0 {
			return nil, platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "invalid offset number", nil, "a3e0ea22-afc6-45df-b686-a194868af415")
		}
		offset = &offsetInt
	}

	return &query.Pagination{
		Limit:  limit,
		Offset: offset,
	}, nil
}
