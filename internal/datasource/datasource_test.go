package datasource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22chandu94/DragonsDashboard/internal/config"
	"github.com/22chandu94/DragonsDashboard/internal/datasource/file"
)

func TestNew(t *testing.T) {
	src, err := New(config.Source{Kind: "file", File: config.SourceFile{Path: "a.csv"}})
	require.NoError(t, err)
	assert.IsType(t, &file.Local{}, src)

	_, err = New(config.Source{Name: "Liga", Kind: "file"})
	assert.ErrorContains(t, err, `source "Liga": empty file path`)

	_, err = New(config.Source{Kind: "http", File: config.SourceFile{Path: "x"}})
	assert.ErrorContains(t, err, `unsupported kind "http"`)
}
