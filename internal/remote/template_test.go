package remote

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/wdremote/internal/wderr"
)

func TestFillTemplate(t *testing.T) {
	entry := CommandEntry{Name: "getElementAttribute", Method: "GET", URLTemplate: "/session/$sessionId/element/${id}/attribute/$name"}
	params := map[string]any{"sessionId": "s1", "id": "e-7", "name": "href", "extra": true}

	path, body, err := fillTemplate(entry, params)
	require.NoError(t, err)
	assert.Equal(t, "/session/s1/element/e-7/attribute/href", path)
	assert.Equal(t, map[string]any{"extra": true}, body)
	assert.Len(t, params, 4, "caller's map is left alone")
}

func TestFillTemplateNoPlaceholders(t *testing.T) {
	path, body, err := fillTemplate(CommandEntry{Name: CmdNewSession, URLTemplate: "/session"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/session", path)
	assert.Empty(t, body)
	assert.NotNil(t, body)
}

func TestFillTemplateEscapesAndFormats(t *testing.T) {
	entry := CommandEntry{Name: "custom", URLTemplate: "/price/$$/$amount/${unit}s"}
	path, _, err := fillTemplate(entry, map[string]any{"amount": 42, "unit": "euro"})
	require.NoError(t, err)
	assert.Equal(t, "/price/$/42/euros", path)
}

func TestFillTemplateIsLiteral(t *testing.T) {
	entry := CommandEntry{Name: "custom", URLTemplate: "/session/$sessionId/moz/$name"}
	path, _, err := fillTemplate(entry, map[string]any{"sessionId": "a b", "name": "context/chrome"})
	require.NoError(t, err)
	assert.Equal(t, "/session/a b/moz/context/chrome", path)
}

func TestFillTemplateMissingParameter(t *testing.T) {
	entry := CommandEntry{Name: CmdQuit, URLTemplate: "/session/$sessionId"}

	for _, params := range []map[string]any{nil, {"other": 1}, {"sessionId": nil}} {
		_, _, err := fillTemplate(entry, params)
		var target *wderr.InvalidArgumentError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, CmdQuit, target.Command)
		assert.Equal(t, "sessionId", target.Parameter)
	}
}
