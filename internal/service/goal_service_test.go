package service

import (
	"testing"

	"edumate_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthCompletion_DefaultsWhenNoGoalSet(t *testing.T) {
	seconds := map[string]int{"2026-02-03": model.DefaultTimeGoalSeconds}
	quizzes := map[string]int{"2026-02-03": model.DefaultQuizGoal}

	got := buildMonthCompletion(2026, 2, 28, nil, seconds, quizzes)

	require.Len(t, got, 28)
	day := got[2]
	assert.Equal(t, "2026-02-03", day.Day)
	assert.False(t, day.GoalSet)
	assert.Equal(t, model.DefaultTimeGoalSeconds, day.TimeGoalSeconds)
	assert.Equal(t, model.DefaultQuizGoal, day.QuizGoal)
	assert.True(t, day.GoalMet)
	// 没有任何活动的日子不算达标
	assert.False(t, got[0].GoalMet)
}

func TestBuildMonthCompletion_GoalMetNeedsBothThresholds(t *testing.T) {
	goals := []model.DailyGoal{
		{StudentID: "s1", Day: "2026-08-10", TimeGoalSeconds: 600, QuizGoal: 2},
		{StudentID: "s1", Day: "2026-08-11", TimeGoalSeconds: 600, QuizGoal: 2},
		{StudentID: "s1", Day: "2026-08-12", TimeGoalSeconds: 600, QuizGoal: 2},
		{StudentID: "s1", Day: "2026-08-13", TimeGoalSeconds: 600, QuizGoal: 2},
	}
	seconds := map[string]int{
		"2026-08-10": 900, // 时长达标，测验不足
		"2026-08-11": 300, // 测验达标，时长不足
		"2026-08-12": 600, // 两项都正好达标
	}
	quizzes := map[string]int{
		"2026-08-10": 1,
		"2026-08-11": 3,
		"2026-08-12": 2,
	}

	got := buildMonthCompletion(2026, 8, 31, goals, seconds, quizzes)

	require.Len(t, got, 31)
	assert.False(t, got[9].GoalMet)
	assert.False(t, got[10].GoalMet)
	assert.True(t, got[11].GoalMet)
	assert.False(t, got[12].GoalMet) // 无活动
	for _, d := range got[9:13] {
		assert.True(t, d.GoalSet)
	}
}

func TestBuildMonthCompletion_ZeroGoalAlwaysMet(t *testing.T) {
	goals := []model.DailyGoal{
		{StudentID: "s1", Day: "2026-08-01", TimeGoalSeconds: 0, QuizGoal: 0},
	}

	got := buildMonthCompletion(2026, 8, 31, goals, nil, nil)

	require.Len(t, got, 31)
	assert.True(t, got[0].GoalSet)
	assert.True(t, got[0].GoalMet)
}

func TestBuildMonthCompletion_MonthLengths(t *testing.T) {
	cases := []struct {
		year, month, lastDay int
		lastDayStr           string
	}{
		{2026, 2, 28, "2026-02-28"},
		{2024, 2, 29, "2024-02-29"},
		{2026, 4, 30, "2026-04-30"},
		{2026, 8, 31, "2026-08-31"},
	}
	for _, tc := range cases {
		got := buildMonthCompletion(tc.year, tc.month, tc.lastDay, nil, nil, nil)
		require.Len(t, got, tc.lastDay)
		assert.Equal(t, tc.lastDayStr, got[tc.lastDay-1].Day)
	}
}
