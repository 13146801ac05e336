package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reiverr/reiverr-server/internal/service"
)

func TestGetDiscovery(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/discovery")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var view service.DiscoveryView
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))

	assert.Equal(t, "2024-05-01", view.Date)
	require.Len(t, view.Sections, 5)
	for _, section := range view.Sections {
		assert.Equal(t, service.SectionSuccess, section.Status, section.Key)
		assert.NotEmpty(t, section.Items, section.Key)
	}

	assert.Equal(t, service.SectionPopularPeople, view.Sections[0].Key)
	assert.Equal(t, "Christopher Nolan", view.Sections[0].Items[0].Title)
}

func TestGetDiscovery_SectionFailureKeepsPage(t *testing.T) {
	ts := setupTestServer(t)
	ts.catalog.trendingErr = errBoom

	resp := ts.api.Get("/api/v1/discovery")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var view service.DiscoveryView
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	require.Len(t, view.Sections, 5)

	people := view.Sections[0]
	assert.Equal(t, service.SectionError, people.Status)
	assert.NotEmpty(t, people.Error)
	assert.Empty(t, people.Items)

	for _, section := range view.Sections[1:] {
		assert.Equal(t, service.SectionSuccess, section.Status, section.Key)
	}
}
