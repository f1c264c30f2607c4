package lthreads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingObject struct {
	RefCounted
	destroyed bool
}

func (o *countingObject) Destroy() { o.destroyed = true }

func TestRefAcquireRelease(t *testing.T) {
	assert := assert.New(t)

	obj := &countingObject{}
	r := NewRef[*countingObject](obj)
	assert.EqualValues(1, obj.Refs())

	clone := r.Clone()
	assert.EqualValues(2, obj.Refs())

	clone.Release()
	assert.EqualValues(1, obj.Refs())
	assert.False(obj.destroyed)

	r.Release()
	assert.True(obj.destroyed)
	assert.True(r.IsNil())
}

func TestRefIdentityComparison(t *testing.T) {
	assert := assert.New(t)

	a := NewRef[*countingObject](&countingObject{})
	b := NewRef[*countingObject](&countingObject{})

	assert.False(a == b)

	seen := map[Ref[*countingObject]]bool{a: true}
	assert.True(seen[a])
	assert.False(seen[b])
}

func TestCheckCounterWidth(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(CheckCounterWidth(ActiveCounterWidth))
	assert.ErrorIs(CheckCounterWidth(Counter16+Counter32), ErrCounterWidthMismatch)
}

func TestReleaseTwiceIsNoOp(t *testing.T) {
	assert := assert.New(t)

	obj := &countingObject{}
	r := NewRef[*countingObject](obj)
	r.Release()
	assert.True(obj.destroyed)

	obj.destroyed = false
	r.Release()
	assert.False(obj.destroyed)
}
