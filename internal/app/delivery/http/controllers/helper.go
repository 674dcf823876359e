package controllers

import (
	"errors"
	"io"
	"net/http"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/dto/responses"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/utils"

	"github.com/goccy/go-json"
)

func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := utils.ValidateStruct(dst); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

// decodeOptionalAndValidate accepts an empty body and leaves dst untouched.
func decodeOptionalAndValidate(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := utils.ValidateStruct(dst); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func identityFromRequest(r *http.Request) (models.Identity, error) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		return models.Identity{}, exceptions.ErrTokenMissing(nil)
	}
	return identity, nil
}

func buildPagination(pagination *requests.Pagination, count int) *responses.Pagination {
	return &responses.Pagination{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
		Count:  count,
	}
}
