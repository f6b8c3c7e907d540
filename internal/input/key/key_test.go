package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Enter", KeyEnter.String())
	assert.Equal(t, "Shift", KeyShift.String())
	assert.Equal(t, "Key(999)", Key(999).String())
}

func TestKeyFromName(t *testing.T) {
	assert.Equal(t, KeyShift, KeyFromName(" Shift "))
	assert.Equal(t, KeyEnter, KeyFromName("return"))
	assert.Equal(t, KeyMeta, KeyFromName("cmd"))
	assert.Equal(t, KeyNone, KeyFromName("hyper"))
}

func TestKeyClasses(t *testing.T) {
	assert.True(t, KeyShift.IsModifier())
	assert.True(t, KeyMeta.IsModifier())
	assert.False(t, KeyEnter.IsModifier())
	assert.True(t, KeyLeft.IsNavigation())
	assert.False(t, KeyRune.IsNavigation())
}

func TestModifierString(t *testing.T) {
	assert.Equal(t, "", ModNone.String())
	assert.Equal(t, "Ctrl+Shift", ModShift.With(ModCtrl).String())
	assert.True(t, ModShift.With(ModAlt).HasShift())
	assert.False(t, ModAlt.HasCtrl())
	assert.Equal(t, "Ctrl+Alt+Shift+Meta", ModMeta.With(ModShift).With(ModAlt).With(ModCtrl).String())
	assert.False(t, ModShift.Has(ModNone))
}

func TestKeyModifier(t *testing.T) {
	assert.Equal(t, ModShift, KeyShift.Modifier())
	assert.Equal(t, ModCtrl, KeyCtrl.Modifier())
	assert.Equal(t, ModMeta, KeyMeta.Modifier())
	assert.Equal(t, ModNone, KeyEnter.Modifier())
}

func TestEventName(t *testing.T) {
	assert.Equal(t, "/", NewRuneEvent('/').Name())
	assert.Equal(t, "Backspace", NewSpecialEvent(KeyBackspace, ModNone).Name())
	assert.Equal(t, "Shift", NewSpecialEvent(KeyShift, ModShift).Name())
}

func TestEventPredicates(t *testing.T) {
	ev := NewRuneEvent('a')
	assert.True(t, ev.IsRune())
	assert.True(t, ev.IsChar())
	assert.True(t, ev.IsRuneKey('a'))
	assert.False(t, ev.Is(KeyEnter))

	ctrl := NewRuneEvent('\x01')
	assert.False(t, ctrl.IsChar())

	composing := NewSpecialEvent(KeyEnter, ModNone).WithComposing(true)
	assert.True(t, composing.Composing)
	assert.True(t, composing.Is(KeyEnter))
}
