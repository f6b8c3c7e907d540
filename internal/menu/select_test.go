package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMenuOpenClose(t *testing.T) {
	l := NewListeners()
	closes := 0
	m := NewSelectMenu(l, WithSelectOwner("select:b1"), OnSelectClose(func() { closes++ }))

	assert.Equal(t, StateClosed, m.State())
	m.Open(Position{X: 4, Y: 2})

	require.True(t, m.IsOpen())
	assert.Equal(t, View{Open: true, Anchor: Position{X: 4, Y: 2}}, m.View())
	assert.Equal(t, []string{"select:b1"}, l.Owners())

	assert.True(t, m.Close())
	assert.False(t, m.Close())
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, View{}, m.View())
	assert.Equal(t, 1, closes)
}

func TestSelectMenuReopenKeepsOneListener(t *testing.T) {
	l := NewListeners()
	m := NewSelectMenu(l)

	m.Open(Position{X: 1})
	m.Open(Position{X: 2})

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, Position{X: 2}, m.View().Anchor)
}

func TestSelectMenuOutsideClick(t *testing.T) {
	l := NewListeners()
	m := NewSelectMenu(l)
	m.SaveBackup("Hello")
	m.Open(Position{})

	l.Dispatch()

	assert.False(t, m.IsOpen())
	assert.Equal(t, 0, l.Len())
	_, ok := m.Backup()
	assert.False(t, ok, "outside click discards the backup")
}

func TestSelectMenuBackup(t *testing.T) {
	m := NewSelectMenu(NewListeners())

	_, ok := m.Backup()
	assert.False(t, ok)

	m.SaveBackup("")
	backup, ok := m.Backup()
	assert.True(t, ok)
	assert.Equal(t, "", backup)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "closed", StateClosed.String())
}
