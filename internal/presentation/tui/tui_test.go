package tui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/toyrobot/pkg/domain"
)

func TestGuide(t *testing.T) {
	md := Guide(domain.NewSquareTable(6))
	assert.Contains(t, md, "**X 0..5**")
	assert.Contains(t, md, "PLACE X,Y,F")
}

func TestRenderGuide(t *testing.T) {
	render, err := NewRenderer("notty")
	require.NoError(t, err)

	out := RenderGuide(render, domain.DefaultTable())
	assert.Contains(t, out, "REPORT")
	assert.Contains(t, out, "0..4")
}

func TestRenderGuide_Fallback(t *testing.T) {
	failing := func(string) (string, error) { return "", errors.New("no terminal") }
	assert.Equal(t, Guide(domain.DefaultTable()), RenderGuide(failing, domain.DefaultTable()))
	assert.Equal(t, Guide(domain.DefaultTable()), RenderGuide(nil, domain.DefaultTable()))
}

func TestErrorStyler(t *testing.T) {
	plain := ErrorStyler(false)
	assert.Equal(t, "Robot has not been placed", plain("Robot has not been placed"))

	t.Setenv("NO_COLOR", "")
	red := ErrorStyler(true)
	styled := red("Robot has not been placed")
	assert.Contains(t, styled, "Robot has not been placed")
	assert.Contains(t, styled, "\x1b[31m")
}

func TestPrintBanner(t *testing.T) {
	buf := &bytes.Buffer{}
	PrintBanner(buf, "0.1.0")
	assert.Contains(t, buf.String(), "v0.1.0")
}
