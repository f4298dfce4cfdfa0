package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"panel-rekordow/docs"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestAPIDocs_EveryPathIsRouted(t *testing.T) {
	env := newTestEnv(t)
	routes, ok := env.handler.(chi.Routes)
	require.True(t, ok)

	served := make(map[string]bool)
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		served[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))
	require.NotEmpty(t, doc.Paths)

	for path, operations := range doc.Paths {
		for method := range operations {
			key := strings.ToUpper(method) + " " + doc.BasePath + path
			require.True(t, served[key], "%s is documented but not routed", key)
		}
	}
}
