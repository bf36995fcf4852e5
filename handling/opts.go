package handling

import (
	"net/http"
	"strconv"

	"cocomanthra_server/lib"
)

// ProductListOptions are the catalog browse filters. Search and collection
// compose; the featured flag narrows further.
type ProductListOptions struct {
	SearchTerm string
	Collection string
	Featured   *bool
}

// ParseProductListOptions parses HTTP query parameters into ProductListOptions
func ParseProductListOptions(r *http.Request) (*ProductListOptions, error) {
	query := r.URL.Query()

	// Early return if no query params
	if len(query) == 0 {
		return &ProductListOptions{}, nil
	}

	opts := &ProductListOptions{}

	if searchTerm := lib.SanitizeString(query.Get("search"), true, false); searchTerm != "" {
		opts.SearchTerm = searchTerm
	}

	if collection := lib.SanitizeString(query.Get("collection"), true, false); collection != "" {
		opts.Collection = collection
	}

	if featured := lib.SanitizeString(query.Get("featured"), true, true); featured != "" {
		valBool, err := strconv.ParseBool(featured)
		if err != nil {
			return nil, err
		}
		opts.Featured = &valBool
	}

	return opts, nil
}
