package query

import (
	"testing"
	"time"

	"github.com/dwalleck/TopicTracker/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestApply_FiltersByTopicAndSubstring(t *testing.T) {
	now := time.Now()
	records := []model.Record{
		{ID: "1", Topic: "a", Body: "hello world", Timestamp: now},
		{ID: "2", Topic: "b", Body: "hello there", Timestamp: now},
		{ID: "3", Topic: "a", Body: "goodbye", Timestamp: now},
	}

	got := Apply(records, Filter{Topic: "a"})
	assert.Len(t, got, 2)

	got = Apply(records, Filter{Contains: "hello"})
	assert.Len(t, got, 2)

	got = Apply(records, Filter{Topic: "a", Contains: "hello"})
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestApply_NoFilterReturnsAll(t *testing.T) {
	records := []model.Record{{ID: "1"}, {ID: "2"}}
	got := Apply(records, Filter{})
	assert.Len(t, got, 2)
}
