package handler

import (
	"net/http"
	"net/url"
	"strconv"
)

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func queryInt64(r *http.Request, name string, def int64) int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func formInt(r *http.Request, name string, def int) int {
	raw := r.PostFormValue(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// redirectToList sends the browser back to the list page, carrying page plus
// any flash parameters (message codes, violations, echoed input).
func redirectToList(w http.ResponseWriter, r *http.Request, page int, params url.Values) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("page", strconv.Itoa(page))
	http.Redirect(w, r, "/?"+params.Encode(), http.StatusSeeOther)
}
