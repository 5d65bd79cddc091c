package grok_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loggrok/grok/pkg/grok"
)

func newChain(t *testing.T, mode grok.ChainMode) *grok.Chain {
	t.Helper()
	g := newBuiltin(t)

	access, err := g.Compile("%{IP:client} %{WORD:method} %{URIPATHPARAM:request}", true)
	require.NoError(t, err)
	numbers, err := g.Compile("%{IP:client} %{WORD:method} %{NUMBER:bytes}", true)
	require.NoError(t, err)
	level, err := g.Compile("%{LOGLEVEL:level}", true)
	require.NoError(t, err)

	return &grok.Chain{Mode: mode, Patterns: []*grok.Pattern{access, nil, numbers, level}}
}

func TestChain_First(t *testing.T) {
	c := newChain(t, grok.ChainFirst)

	got := c.Match("10.0.0.1 GET /health")
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Index)
	v, _ := got[0].Matches.Get("request")
	assert.Equal(t, "/health", v)

	got = c.Match("WARN low disk")
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Index)

	assert.Empty(t, c.Match("12345"))
}

func TestChain_All(t *testing.T) {
	c := newChain(t, grok.ChainAll)

	got := c.Match("10.0.0.1 GET 512 INFO")
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Index)
	assert.Equal(t, 3, got[1].Index)

	v, _ := got[0].Matches.Get("bytes")
	assert.Equal(t, "512", v)
}

func TestChain_FieldNames(t *testing.T) {
	c := newChain(t, grok.ChainFirst)
	assert.Equal(t, []string{"bytes", "client", "level", "method", "request"}, c.FieldNames())

	empty := &grok.Chain{}
	assert.Empty(t, empty.FieldNames())
	assert.Empty(t, empty.Match("x"))
}
