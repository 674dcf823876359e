package utils

import (
	"net/http"
	"strconv"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/exceptions"
)

// BuildPaginationRequest reads limit and offset query params. Missing values
// fall back to defaultLimit and zero; limits are capped at MaxListLimit.
func BuildPaginationRequest(r *http.Request, defaultLimit int) (*requests.Pagination, error) {
	pagination := &requests.Pagination{Limit: defaultLimit}

	if raw := r.URL.Query().Get(constvars.QueryParamLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return nil, exceptions.ErrQueryParamValidation(err, constvars.QueryParamLimit)
		}
		pagination.Limit = limit
	}
	if pagination.Limit > constvars.MaxListLimit {
		pagination.Limit = constvars.MaxListLimit
	}

	if raw := r.URL.Query().Get(constvars.QueryParamOffset); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return nil, exceptions.ErrQueryParamValidation(err, constvars.QueryParamOffset)
		}
		pagination.Offset = offset
	}

	return pagination, nil
}

func ParseBoolQueryParam(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, exceptions.ErrQueryParamValidation(err, name)
	}
	return value, nil
}
