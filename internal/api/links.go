package api

import (
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/plat-mine/internal/humastar"
)

// links maps operation paths to their RFC 8288 Link header values.
// Enables restish hypermedia navigation via `restish links <url>`.
var links = map[string][]string{
	"/health": {
		`</api/v1/info>; rel="info"`,
		`</api/v1/map>; rel="map"`,
		`</api/v1/site>; rel="site"`,
	},
	"/api/v1/info": {
		`</health>; rel="health"`,
		`</api/v1/map>; rel="map"`,
	},
	"/api/v1/map": {
		`</api/v1/overlays>; rel="overlays"`,
		`</api/v1/styles>; rel="styles"`,
		`</api/v1/map/events>; rel="events"`,
		`</api/v1/basemaps>; rel="basemaps"`,
	},
	"/api/v1/overlays": {
		`</api/v1/map>; rel="map"`,
		`</api/v1/features/search>; rel="search"`,
	},
	"/api/v1/overlays/{group}": {
		`</api/v1/overlays>; rel="collection"`,
	},
	"/api/v1/styles": {
		`</api/v1/map>; rel="map"`,
	},
	"/api/v1/styles/{id}": {
		`</api/v1/styles>; rel="collection"`,
	},
	"/api/v1/features/{index}/popup": {
		`</api/v1/overlays>; rel="overlays"`,
	},
	"/api/v1/site": {
		`</api/v1/tour>; rel="tour"`,
		`</api/v1/locations>; rel="locations"`,
		`</api/v1/contacts>; rel="contacts"`,
		`</api/v1/documents>; rel="documents"`,
	},
	"/api/v1/basemaps": {
		`</api/v1/map>; rel="map"`,
	},
	"/api/v1/basemaps/{id}": {
		`</api/v1/basemaps>; rel="collection"`,
	},
	"/api/v1/tables": {
		`</api/v1/query>; rel="query"`,
	},
}

// LinkTransformer returns a Huma Transformer that injects RFC 8288 Link
// headers: the static relations above, a self link for item endpoints,
// pagination links and per-item actions.
func LinkTransformer() huma.Transformer {
	return func(ctx huma.Context, status string, v any) (any, error) {
		op := ctx.Operation()
		if op == nil {
			return v, nil
		}

		for _, link := range links[op.Path] {
			ctx.AppendHeader("Link", link)
		}

		// Item endpoints get a self link
		if strings.Contains(op.Path, "{") {
			ctx.AppendHeader("Link", fmt.Sprintf(`<%s>; rel="self"`, ctx.URL().Path))
		}

		if p, ok := v.(humastar.Pager); ok {
			for _, link := range p.PaginationLinks(ctx.URL().Path) {
				ctx.AppendHeader("Link", link)
			}
		}

		if a, ok := v.(humastar.Actor); ok {
			for _, action := range a.Actions() {
				ctx.AppendHeader("Link", action.LinkHeader())
			}
		}

		return v, nil
	}
}
