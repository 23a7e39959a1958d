package dto

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hotel/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
	Search  string `json:"search"   validate:"omitempty,max=100"`
}

// positive reads key as a number above zero, or reports false.
func positive(values url.Values, key string) (int, bool) {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}

// FromRequest populates QueryParams from the HTTP request. With defaultRequest
// set, a missing or invalid page or limit falls back to the package defaults.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	values := r.URL.Query()

	if page, ok := positive(values, constant.RequestParamPage); ok {
		q.Page = page
	} else if defaultRequest && q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if limit, ok := positive(values, constant.RequestParamLimit); ok {
		q.Limit = limit
	} else if defaultRequest && q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}

	if sortBy := values.Get(constant.RequestParamSortBy); sortBy != constant.Empty {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	q.Search = strings.TrimSpace(values.Get(constant.RequestParamSearch))
}
