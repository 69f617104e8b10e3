package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/book-finder/docs"
)

func TestSwaggerDocMatchesRoutes(t *testing.T) {
	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))
	require.Equal(t, "/api", doc.BasePath)

	routed := map[string]bool{}
	for _, rt := range setupRouter(&MockService{}, routerOptions{}).Routes() {
		if !strings.HasPrefix(rt.Path, doc.BasePath+"/") {
			continue
		}
		path := strings.TrimPrefix(rt.Path, doc.BasePath)
		method := strings.ToLower(rt.Method)
		routed[method+" "+path] = true

		assert.Contains(t, doc.Paths[path], method, "%s %s is not documented", rt.Method, rt.Path)
	}

	for path, ops := range doc.Paths {
		for method := range ops {
			assert.True(t, routed[method+" "+path], "documented %s %s has no route", method, path)
		}
	}
}
