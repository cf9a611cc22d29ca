package store_test

import (
	"testing"

	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/stretchr/testify/require"
)

func TestListOptionsNormalize(t *testing.T) {
	o := store.ListOptions{Search: "  toy ", Page: -3, PageSize: -1}.Normalize()
	require.Equal(t, store.ListOptions{Search: "toy", Page: 1, PageSize: 0}, o)

	require.Equal(t, 0, store.ListOptions{Page: 3}.Offset())
	require.Equal(t, 50, store.ListOptions{Page: 3, PageSize: 25}.Offset())
}

func TestPageNavigation(t *testing.T) {
	tests := []struct {
		name    string
		page    store.Page[int]
		pages   int
		hasNext bool
		hasPrev bool
	}{
		{"empty", store.Page[int]{Page: 1, PageSize: 10}, 1, false, false},
		{"unpaginated", store.Page[int]{Total: 100, Page: 1}, 1, false, false},
		{"first of three", store.Page[int]{Total: 21, Page: 1, PageSize: 10}, 3, true, false},
		{"middle", store.Page[int]{Total: 21, Page: 2, PageSize: 10}, 3, true, true},
		{"last", store.Page[int]{Total: 20, Page: 2, PageSize: 10}, 2, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.pages, tt.page.NumPages())
			require.Equal(t, tt.hasNext, tt.page.HasNext())
			require.Equal(t, tt.hasPrev, tt.page.HasPrev())
		})
	}
}

func TestNewPageNeverNil(t *testing.T) {
	p := store.NewPage[string](nil, 0, store.ListOptions{Page: 1})
	require.NotNil(t, p.Items)
	require.Empty(t, p.Items)
}

func TestEscapeLike(t *testing.T) {
	require.Equal(t, `100\%`, store.EscapeLike("100%"))
	require.Equal(t, `a\_b`, store.EscapeLike("a_b"))
	require.Equal(t, `c:\\d`, store.EscapeLike(`c:\d`))
	require.Equal(t, "plain", store.EscapeLike("plain"))
}

func TestConflictErrorIsAlreadyExists(t *testing.T) {
	var err error = &store.ConflictError{Field: "username"}
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	require.NotErrorIs(t, err, store.ErrNotFound)
}
