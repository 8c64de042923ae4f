package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToggleLike(t *testing.T) {
	r := Review{LikedBy: []string{}}

	require.True(t, r.ToggleLike("v1"))
	require.Equal(t, 1, r.Likes)
	require.Equal(t, []string{"v1"}, r.LikedBy)

	require.True(t, r.ToggleLike("v2"))
	require.Equal(t, 2, r.Likes)

	require.False(t, r.ToggleLike("v1"))
	require.Equal(t, 1, r.Likes)
	require.Equal(t, []string{"v2"}, r.LikedBy)
}

func TestToggleLikeFloorsAtZero(t *testing.T) {
	// Counter drifted below the list, unliking must not go negative.
	r := Review{Likes: 0, LikedBy: []string{"v1"}}
	require.False(t, r.ToggleLike("v1"))
	require.Equal(t, 0, r.Likes)
	require.Empty(t, r.LikedBy)
}
