package status

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/precieux0/instagram-repo2/internal/application"
	"github.com/precieux0/instagram-repo2/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelIgnoresKeysAndQuitsAfterRender(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	m := newModel(application.Status{LifecycleState: domain.StateConnected, UpdatedAt: now}, RenderOptions{Now: now})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, next.View())

	next, cmd = next.Update(renderReadyMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, next.View(), "state: connected")
}
