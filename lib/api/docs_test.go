package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/fosdem/glhello/lib/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type swaggerDoc struct {
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]struct {
		Properties map[string]json.RawMessage `json:"properties"`
	} `json:"definitions"`
}

func readSwagger(t *testing.T) swaggerDoc {
	t.Helper()
	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func jsonFields(v interface{}) []string {
	var names []string
	rt := reflect.TypeOf(v)
	for i := 0; i < rt.NumField(); i++ {
		name, _, _ := strings.Cut(rt.Field(i).Tag.Get("json"), ",")
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func keys(m map[string]json.RawMessage) []string {
	var names []string
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func TestSwaggerRoutesAreServed(t *testing.T) {
	doc := readSwagger(t)
	a, _ := newTestApi()

	require.NotEmpty(t, doc.Paths)
	for path, methods := range doc.Paths {
		for method := range methods {
			req := httptest.NewRequest(strings.ToUpper(method), path, nil)
			_, pattern := a.mux.Handler(req)
			assert.NotEmpty(t, pattern, "%s %s is documented but not routed", method, path)
		}
	}
	for _, path := range []string{"/api/quit", "/api/stats", "/api/shaders", "/api/ws"} {
		assert.Contains(t, doc.Paths, path)
	}
	assert.Contains(t, doc.Paths["/api/quit"], strings.ToLower(http.MethodPost))
}

func TestSwaggerDefinitionsMatchTypes(t *testing.T) {
	doc := readSwagger(t)

	assert.Equal(t, jsonFields(stats.Snapshot{}), keys(doc.Definitions["stats.Snapshot"].Properties))
	assert.Equal(t, jsonFields(ShadersResponse{}), keys(doc.Definitions["api.ShadersResponse"].Properties))
}
