package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/taxi/internal/taxi/service"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/aussiebroadwan/taxi/pkg/httpx"
	"github.com/aussiebroadwan/taxi/pkg/idx"
	"github.com/aussiebroadwan/taxi/pkg/taxisdk"
	"github.com/spf13/cast"
)

const maxBodyBytes = 1 << 20

// bind decodes the request body into dst. JSON bodies are decoded directly;
// form posts are handed to fromForm.
func bind(r *http.Request, dst any, fromForm func(url.Values)) error {
	if httpx.IsJSONBody(r) {
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
			return errMalformedBody
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return errMalformedBody
	}
	fromForm(r.PostForm)
	return nil
}

func pageInfo[T any](p store.Page[T]) taxisdk.PageInfo {
	info := taxisdk.PageInfo{
		Number:   p.Page,
		NumPages: p.NumPages(),
		Total:    p.Total,
		HasNext:  p.HasNext(),
		HasPrev:  p.HasPrev(),
	}
	if info.HasNext {
		info.Next = p.NextPage()
	}
	if info.HasPrev {
		info.Prev = p.PrevPage()
	}
	return info
}

// listOptions reads the search term from param and the page number from
// "page". A page that is not a positive integer is not found.
func listOptions(r *http.Request, param string, pageSize int) (store.ListOptions, error) {
	q := r.URL.Query()
	opts := store.ListOptions{
		Search:   strings.TrimSpace(q.Get(param)),
		PageSize: pageSize,
	}
	if raw := q.Get("page"); raw != "" && pageSize > 0 {
		n, err := cast.ToIntE(raw)
		if err != nil || n < 1 {
			return store.ListOptions{}, service.ErrNotFound
		}
		opts.Page = n
	}
	return opts.Normalize(), nil
}

// pageInRange reports a page past the last one as not found. The first page
// exists even when the list is empty.
func pageInRange[T any](p store.Page[T]) error {
	if p.PageSize > 0 && p.Page > p.NumPages() {
		return service.ErrNotFound
	}
	return nil
}

func listContext[T any](key, param string, opts store.ListOptions, p store.Page[T]) Context {
	return Context{
		key:            p.Items,
		"search":       opts.Search,
		"search_param": param,
		"page_obj":     pageInfo(p),
		"is_paginated": p.NumPages() > 1,
	}
}

// safeNext returns next when it is a local path, otherwise fallback.
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

// pathID returns the {id} path value. Anything that is not a ULID cannot name
// a row and is reported as not found without a store lookup.
func pathID(r *http.Request) (string, error) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		return "", service.ErrNotFound
	}
	return id.String(), nil
}
