package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInteractionKindValid(t *testing.T) {
	assert.True(t, InteractionLike.Valid())
	assert.True(t, InteractionRetweet.Valid())
	assert.False(t, InteractionKind("").Valid())
	assert.False(t, InteractionKind("follow").Valid())
	assert.False(t, InteractionKind("Like").Valid())
}

func TestInteractionKindCounterColumn(t *testing.T) {
	assert.Equal(t, "likes", InteractionLike.CounterColumn())
	assert.Equal(t, "retweets", InteractionRetweet.CounterColumn())
}
