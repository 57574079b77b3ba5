package paging

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "govinda/pkg/domain-errors"
)

func TestFromQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req, err := FromQuery(url.Values{}, "last_name", "last_name", "first_name")
		require.NoError(t, err)
		assert.Equal(t, Request{Page: 0, Size: DefaultSize, SortBy: "last_name"}, req)
	})

	t.Run("caps size and reads sort", func(t *testing.T) {
		q := url.Values{"page": {"2"}, "size": {"500"}, "sort_by": {"first_name"}, "sort_dir": {"DESC"}}
		req, err := FromQuery(q, "last_name", "last_name", "first_name")
		require.NoError(t, err)
		assert.Equal(t, Request{Page: 2, Size: MaxSize, SortBy: "first_name", SortDesc: true}, req)
		assert.Equal(t, 200, req.Offset())
	})

	for name, q := range map[string]url.Values{
		"negative page":   {"page": {"-1"}},
		"zero size":       {"size": {"0"}},
		"garbage size":    {"size": {"x"}},
		"unknown sort":    {"sort_by": {"ahv_nr"}},
		"unknown sortdir": {"sort_dir": {"up"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := FromQuery(q, "last_name", "last_name")
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
		})
	}
}

func TestPage(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	p := Slice(all, Request{Page: 1, Size: 2})
	assert.Equal(t, []int{3, 4}, p.Content)
	assert.Equal(t, 3, p.TotalPages())
	assert.False(t, p.First())
	assert.False(t, p.Last())

	last := Slice(all, Request{Page: 2, Size: 2})
	assert.Equal(t, []int{5}, last.Content)
	assert.True(t, last.Last())

	beyond := Slice(all, Request{Page: 9, Size: 2})
	assert.Empty(t, beyond.Content)
	assert.NotNil(t, beyond.Content)

	empty := Slice([]int{}, Request{})
	assert.Equal(t, 0, empty.TotalPages())
	assert.True(t, empty.First())
	assert.True(t, empty.Last())

	doubled := Map(p, func(v int) int { return v * 2 })
	assert.Equal(t, []int{6, 8}, doubled.Content)
	assert.Equal(t, 5, doubled.TotalElements)
}
