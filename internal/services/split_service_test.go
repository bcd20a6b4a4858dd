package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeAtk/GymPT/internal/domain"
	"github.com/JoeAtk/GymPT/internal/utils"
)

func newTestSplitService() *SplitService {
	classifier := NewClassifierService(nil, nil, testErrHandler())
	return NewSplitService(classifier)
}

func liftAt(name string, ts int64) domain.LiftEntry {
	return domain.LiftEntry{Name: name, Sets: 3, Reps: 8, Timestamp: ts}
}

func daysAgoMillis(days int) int64 {
	return time.Now().AddDate(0, 0, -days).UnixMilli()
}

func TestSessionSplit(t *testing.T) {
	ctx := context.Background()
	svc := newTestSplitService()

	t.Run("empty session is unknown", func(t *testing.T) {
		assert.Equal(t, domain.SplitUnknown, svc.SessionSplit(ctx, nil))
	})

	t.Run("majority wins", func(t *testing.T) {
		entries := []domain.LiftEntry{
			liftAt("bench press", 0),
			liftAt("overhead press", 0),
			liftAt("barbell row", 0),
		}
		assert.Equal(t, domain.SplitPush, svc.SessionSplit(ctx, entries))
	})

	t.Run("tie goes to first encountered", func(t *testing.T) {
		entries := []domain.LiftEntry{
			liftAt("barbell row", 0),
			liftAt("bench press", 0),
		}
		assert.Equal(t, domain.SplitPull, svc.SessionSplit(ctx, entries))
	})

	t.Run("unknown majority is unknown", func(t *testing.T) {
		entries := []domain.LiftEntry{
			liftAt("yoga", 0),
			liftAt("stretching", 0),
			liftAt("bench press", 0),
		}
		assert.Equal(t, domain.SplitUnknown, svc.SessionSplit(ctx, entries))
	})
}

func TestNextSplit(t *testing.T) {
	ctx := context.Background()
	svc := newTestSplitService()

	t.Run("no history recommends full body", func(t *testing.T) {
		assert.Equal(t, domain.SplitFullBody, svc.NextSplit(ctx, nil))
	})

	t.Run("rotation", func(t *testing.T) {
		cases := []struct {
			last string
			want domain.Split
		}{
			{"squat", domain.SplitPush},
			{"bench press", domain.SplitPull},
			{"barbell row", domain.SplitLeg},
		}
		for _, tc := range cases {
			lifts := []domain.LiftEntry{liftAt(tc.last, daysAgoMillis(1))}
			assert.Equal(t, tc.want, svc.NextSplit(ctx, lifts), "last session %s", tc.last)
		}
	})

	t.Run("only the latest session matters", func(t *testing.T) {
		lifts := []domain.LiftEntry{
			liftAt("bench press", daysAgoMillis(3)),
			liftAt("squat", daysAgoMillis(1)),
		}
		assert.Equal(t, domain.SplitPush, svc.NextSplit(ctx, lifts))
	})

	t.Run("unknown latest session recommends full body", func(t *testing.T) {
		lifts := []domain.LiftEntry{liftAt("yoga", daysAgoMillis(1))}
		assert.Equal(t, domain.SplitFullBody, svc.NextSplit(ctx, lifts))
	})
}

func TestRecentDays(t *testing.T) {
	ctx := context.Background()
	svc := newTestSplitService()

	t.Run("window shape", func(t *testing.T) {
		days := svc.RecentDays(ctx, nil, RecentDaysWindow)
		require.Len(t, days, RecentDaysWindow)

		today := utils.StartOfDay(time.Now())
		assert.True(t, days[len(days)-1].Date.Equal(today))
		for i := 1; i < len(days); i++ {
			assert.True(t, days[i-1].Date.Before(days[i].Date))
		}
	})

	t.Run("empty days are rest", func(t *testing.T) {
		days := svc.RecentDays(ctx, nil, 3)
		for _, d := range days {
			assert.Equal(t, domain.SplitRest, d.Split)
		}
	})

	t.Run("trained days carry the session category", func(t *testing.T) {
		lifts := []domain.LiftEntry{
			liftAt("squat", daysAgoMillis(0)),
			liftAt("bench press", daysAgoMillis(2)),
		}
		days := svc.RecentDays(ctx, lifts, 3)
		require.Len(t, days, 3)

		assert.Equal(t, domain.SplitPush, days[0].Split)
		assert.Equal(t, domain.SplitRest, days[1].Split)
		assert.Equal(t, domain.SplitLeg, days[2].Split)
	})

	t.Run("same result regardless of lift order", func(t *testing.T) {
		lifts := []domain.LiftEntry{
			liftAt("squat", daysAgoMillis(0)),
			liftAt("bench press", daysAgoMillis(2)),
			liftAt("leg press", daysAgoMillis(0)),
		}
		reversed := []domain.LiftEntry{lifts[2], lifts[1], lifts[0]}

		a := svc.RecentDays(ctx, lifts, 5)
		b := svc.RecentDays(ctx, reversed, 5)
		require.Len(t, b, len(a))
		for i := range a {
			assert.Equal(t, a[i].Split, b[i].Split)
		}
	})
}
