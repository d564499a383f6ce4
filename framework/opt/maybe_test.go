package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type myStruct struct {
	Prop string
}

func TestNone(t *testing.T) {
	assert.False(t, None[string]().IsDefined())

	assert.Equal(t, 0, None[int]().Value())
	assert.Equal(t, "", None[string]().Value())
	assert.Nil(t, None[*string]().Value())
	assert.Equal(t, myStruct{}, None[myStruct]().Value())
	assert.Equal(t, None[string](), Maybe[string]{})
}

func TestSome(t *testing.T) {
	assert.True(t, Some("").IsDefined())

	assert.Equal(t, 1, Some(1).Value())
	assert.Equal(t, "x", Some("x").Value())
}

func TestGet(t *testing.T) {
	v, ok := Some("x").Get()
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	v, ok = None[string]().Get()
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestFromOK(t *testing.T) {
	assert.Equal(t, Some("a"), FromOK("a", true))
	assert.Equal(t, None[string](), FromOK("a", false))
}

func TestOrElse(t *testing.T) {
	assert.Equal(t, 3, None[int]().OrElse(3))
	assert.Equal(t, 4, Some(4).OrElse(3))
}

func TestString(t *testing.T) {
	assert.Equal(t, "[none]", None[string]().String())
	assert.Equal(t, "", Some("").String())
	assert.Equal(t, "12", Some(12).String())
}
