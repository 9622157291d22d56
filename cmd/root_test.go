package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetOptions() {
	port = 22
	vnc = false
	connectMS = 250
	bannerMS = 2000
	workers = 64
}

func TestValidateOptionsDefaults(t *testing.T) {
	resetOptions()
	assert.Nil(t, validateOptions())
	assert.Equal(t, 22, port)
}

func TestValidateOptionsVNCOverridesPort(t *testing.T) {
	resetOptions()
	port = 8080
	vnc = true

	require.Nil(t, validateOptions())
	assert.Equal(t, 5900, port)
}

func TestValidateOptionsRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
	}{
		{"zero port", func() { port = 0 }},
		{"huge port", func() { port = 70000 }},
		{"zero connect timeout", func() { connectMS = 0 }},
		{"negative connect timeout", func() { connectMS = -5 }},
		{"negative banner timeout", func() { bannerMS = -1 }},
		{"zero workers", func() { workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetOptions()
			tt.setup()
			assert.NotNil(t, validateOptions())
		})
	}
}

func TestValidateOptionsAllowsDisabledBanner(t *testing.T) {
	resetOptions()
	bannerMS = 0
	assert.Nil(t, validateOptions())
}

func TestResolveSubnetsParsesArgs(t *testing.T) {
	blocks, err := resolveSubnets([]string{"10.0.0.5/24", "192.168.1.1"})
	require.Nil(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "10.0.0.0/24", blocks[0].String())
	assert.Equal(t, "192.168.1.1", blocks[1].String())
}

func TestResolveSubnetsRejectsBadSpec(t *testing.T) {
	_, err := resolveSubnets([]string{"10.0.0.0/33"})
	assert.NotNil(t, err)
}
