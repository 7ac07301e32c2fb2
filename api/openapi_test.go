package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "TourDesk API", doc.Info.Title)
	assert.Equal(t, "/api/v1", BasePath(doc))

	create := doc.Paths.Find("/tours").Post
	require.NotNil(t, create)
	schema := create.RequestBody.Value.Content.Get("application/json").Schema.Value
	assert.ElementsMatch(t, []string{"name", "location", "startDate", "endDate", "capacity", "price"}, schema.Required)
}

func TestOperations(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	ops := Operations(doc)
	assert.Contains(t, ops, Operation{Method: "GET", Path: "/tours/:id"})
	assert.Contains(t, ops, Operation{Method: "GET", Path: "/files/:id/download"})
	assert.Contains(t, ops, Operation{Method: "POST", Path: "/files/upload"})
	assert.NotContains(t, ops, Operation{Method: "PATCH", Path: "/tours/:id"})
}

func TestGinPath(t *testing.T) {
	assert.Equal(t, "/files/:id/download", ginPath("/files/{id}/download"))
	assert.Equal(t, "/stats", ginPath("/stats"))
}
