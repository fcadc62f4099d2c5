package humastar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name          string
		offset, limit int
		want          []int
	}{
		{"first page", 0, 2, []int{1, 2}},
		{"last partial page", 4, 2, []int{5}},
		{"past the end", 10, 2, []int{}},
		{"no limit", 0, 0, []int{1, 2, 3, 4, 5}},
		{"negative offset", -3, 2, []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(items, tt.offset, tt.limit)
			assert.Equal(t, 5, page.Total)
			assert.Equal(t, tt.want, page.Data)
		})
	}
}

func TestPaginationLinks(t *testing.T) {
	page := PageBody[int]{Total: 5, Offset: 2, Limit: 2}
	assert.Equal(t, []string{
		`</x?offset=0&limit=2>; rel="first"`,
		`</x?offset=0&limit=2>; rel="prev"`,
		`</x?offset=4&limit=2>; rel="next"`,
		`</x?offset=4&limit=2>; rel="last"`,
	}, page.PaginationLinks("/x"))

	assert.Equal(t, []string{
		`</x?offset=0&limit=2>; rel="first"`,
		`</x?offset=0&limit=2>; rel="last"`,
	}, PageBody[int]{Total: 0, Limit: 2}.PaginationLinks("/x"))
}

func TestActionsFor(t *testing.T) {
	actions := ActionsFor("satellite", []ActionDef{
		{Rel: "delete", Pattern: "/api/v1/basemaps/%s", Method: "DELETE", Title: "Delete"},
	})
	assert.Equal(t, `</api/v1/basemaps/satellite>; rel="delete"; method="DELETE"; title="Delete"`, actions[0].LinkHeader())
}
