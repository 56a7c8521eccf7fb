package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kireistar/portfolio/internal/config"
	"github.com/kireistar/portfolio/internal/contact"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, version+"\n", out.String())
}

func TestNewRelaySelectsProvider(t *testing.T) {
	cfg := &config.Config{Relay: config.RelayConfig{Provider: config.RelayWeb3Forms, AccessKey: "k"}}
	web, ok := newRelay(cfg).(*contact.Web3Forms)
	require.True(t, ok)
	assert.Equal(t, contact.Web3FormsURL, web.URL)
	assert.Equal(t, "k", web.AccessKey)

	cfg.Relay.Provider = config.RelaySMTP
	_, ok = newRelay(cfg).(*contact.SMTP)
	assert.True(t, ok)
}
