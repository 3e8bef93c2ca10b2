package utils_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/Adirelle/cmdbase/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretIsHidden(t *testing.T) {
	t.Parallel()
	s := utils.Secret("hunter2")

	assert.Equal(t, "<secret>", fmt.Sprint(s))
	assert.Equal(t, "<secret>", fmt.Sprintf("%#v", s))
	assert.Equal(t, "hunter2", s.Reveal())

	var nilSecret *utils.Secret
	assert.Equal(t, "", nilSecret.Reveal())
}

func TestSecretMarshalsAsString(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(struct {
		Token utils.Secret `json:"token"`
	}{"abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc"}`, string(data))
}

func TestSendWithTimeout(t *testing.T) {
	t.Parallel()
	ch := make(chan int, 1)

	require.NoError(t, utils.SendWithTimeout(ch, 1, time.Second))
	err := utils.SendWithTimeout(ch, 2, 10*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, 1, <-ch)
}

func TestUnique(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a", "b", "c"}, utils.Unique([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []int{2, 4}, utils.MapSlice([]int{1, 2}, func(i int) int { return i * 2 }))
}
