package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderStatusUnknownTemplateWritesNothing(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = engine.RenderStatus(rec, http.StatusUnprocessableEntity, "pages/missing.html", TemplateData{})
	assert.Error(t, err)
	assert.Empty(t, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestNilEngineRender(t *testing.T) {
	var engine *Engine
	err := engine.RenderStatus(httptest.NewRecorder(), http.StatusOK, "pages/landing.html", TemplateData{})
	assert.Error(t, err)
}
