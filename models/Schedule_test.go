package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleStatusLabel(t *testing.T) {
	open := Schedule{Title: "원데이 클래스", MaxSlots: 10, CurrentSlots: 9}
	full := Schedule{Title: "쿠킹 클래스", MaxSlots: 10, CurrentSlots: 10}

	assert.False(t, open.IsClosed())
	assert.True(t, full.IsClosed())

	var decoded map[string]interface{}

	data, err := json.Marshal(&open)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ScheduleOpenLabel, decoded["status"])

	data, err = json.Marshal(&full)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ScheduleClosedLabel, decoded["status"])
}
