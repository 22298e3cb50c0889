package inmemorylookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucket_PromotionAndDemotion(t *testing.T) {
	var b bucket
	assert.Equal(t, formEmpty, b.form)
	assert.Equal(t, 0, b.len())

	b = b.with(entry{value: "a", seq: 1})
	assert.Equal(t, formOne, b.form)
	assert.Nil(t, b.many, "one-value form must not allocate a slice")

	b = b.with(entry{value: "b", seq: 2})
	assert.Equal(t, formMany, b.form)
	assert.Equal(t, []any{"a", "b"}, b.appendTo(nil))

	b = b.with(entry{value: "c", seq: 3})
	assert.Equal(t, 3, b.len())

	b, ok := b.without("b")
	assert.True(t, ok)
	assert.Equal(t, formMany, b.form)

	b, ok = b.without("a")
	assert.True(t, ok)
	assert.Equal(t, formOne, b.form)
	assert.Equal(t, "c", b.last().value)

	b, ok = b.without("c")
	assert.True(t, ok)
	assert.Equal(t, formEmpty, b.form)
}

func TestBucket_WithExistingMemberMovesItLast(t *testing.T) {
	b := bucket{}.with(entry{value: "a", seq: 1}).with(entry{value: "b", seq: 2})

	b = b.with(entry{value: "a", seq: 3})

	assert.Equal(t, []any{"b", "a"}, b.appendTo(nil))
	assert.Equal(t, entry{value: "a", seq: 3}, b.last())
}

func TestBucket_WithSameSoleMemberStaysOne(t *testing.T) {
	b := bucket{}.with(entry{value: "a", seq: 1}).with(entry{value: "a", seq: 2})

	assert.Equal(t, formOne, b.form)
	assert.Equal(t, uint64(2), b.one.seq)
}

func TestBucket_WithoutNonMember(t *testing.T) {
	one := bucket{}.with(entry{value: "a", seq: 1})
	got, ok := one.without("z")
	assert.False(t, ok)
	assert.Equal(t, one, got)

	many := one.with(entry{value: "b", seq: 2})
	_, ok = many.without("z")
	assert.False(t, ok)

	_, ok = bucket{}.without("a")
	assert.False(t, ok)
}

func TestBucket_CloneIsDeep(t *testing.T) {
	b := bucket{}.with(entry{value: "a", seq: 1}).with(entry{value: "b", seq: 2})
	c := b.clone()

	b.many[0] = entry{value: "mutated"}

	assert.Equal(t, []any{"a", "b"}, c.appendTo(nil))
}

func TestBucketForm_String(t *testing.T) {
	assert.Equal(t, "empty", formEmpty.String())
	assert.Equal(t, "one", formOne.String())
	assert.Equal(t, "many", formMany.String())
}
