package wizard

import (
	"context"
	"testing"
	"time"

	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/models"
	"healthquote-funnel/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArrivalTracker_FireOnce(t *testing.T) {
	ctx := context.Background()
	cache := session.NewMemoryCache(time.Hour)
	sid := session.NewID()

	reg := &MockArrivalRegistrar{}
	reg.On("RegisterArrival", mock.Anything, mock.MatchedBy(func(req ArrivalRequest) bool {
		return req.FormType == models.FormTypeHealth && req.Campaign == "cmp1" && req.Term == "kw"
	})).Return("arr_1", true).Once()

	tracker := NewArrivalTracker(reg, cache, time.Second, logger.NewTestLogger(t))
	req := ArrivalRequest{Campaign: "cmp1", Term: "kw", LandingURL: "https://www.healthquotehero.com/health-plan-form-m1/"}

	assert.True(t, tracker.Track(ctx, sid, Health(), req))
	// a second mount while the first is in flight holds no claim
	assert.False(t, tracker.Track(ctx, sid, Health(), req))
	tracker.Wait()

	assert.Equal(t, "arr_1", tracker.Handle(ctx, sid, Health()))
	assert.False(t, tracker.Track(ctx, sid, Health(), req))
	tracker.Wait()

	reg.AssertNumberOfCalls(t, "RegisterArrival", 1)
}

func TestArrivalTracker_FailureIsSilentAndReleasesClaim(t *testing.T) {
	ctx := context.Background()
	cache := session.NewMemoryCache(time.Hour)
	sid := session.NewID()

	reg := &MockArrivalRegistrar{}
	reg.On("RegisterArrival", mock.Anything, mock.Anything).Return("", false).Once()
	reg.On("RegisterArrival", mock.Anything, mock.Anything).Return("arr_2", true).Once()

	tracker := NewArrivalTracker(reg, cache, time.Second, nil)

	require.True(t, tracker.Track(ctx, sid, Medicare(), ArrivalRequest{}))
	tracker.Wait()
	assert.Equal(t, "", tracker.Handle(ctx, sid, Medicare()))

	// a later mount may try again
	require.True(t, tracker.Track(ctx, sid, Medicare(), ArrivalRequest{}))
	tracker.Wait()
	assert.Equal(t, "arr_2", tracker.Handle(ctx, sid, Medicare()))
}

func TestArrivalTracker_VariantsTrackSeparately(t *testing.T) {
	ctx := context.Background()
	cache := session.NewMemoryCache(time.Hour)
	sid := session.NewID()

	reg := &MockArrivalRegistrar{}
	reg.On("RegisterArrival", mock.Anything, mock.MatchedBy(func(req ArrivalRequest) bool {
		return req.FormType == models.FormTypeHealth
	})).Return("arr_h", true)
	reg.On("RegisterArrival", mock.Anything, mock.MatchedBy(func(req ArrivalRequest) bool {
		return req.FormType == models.FormTypeMedicare
	})).Return("arr_m", true)

	tracker := NewArrivalTracker(reg, cache, time.Second, nil)
	tracker.Track(ctx, sid, Health(), ArrivalRequest{})
	tracker.Track(ctx, sid, Medicare(), ArrivalRequest{})
	tracker.Wait()

	assert.Equal(t, "arr_h", tracker.Handle(ctx, sid, Health()))
	assert.Equal(t, "arr_m", tracker.Handle(ctx, sid, Medicare()))
}

func TestArrivalTracker_RespectsTimeout(t *testing.T) {
	reg := &MockArrivalRegistrar{}
	reg.On("RegisterArrival", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return("", false)

	tracker := NewArrivalTracker(reg, session.NewMemoryCache(time.Hour), 20*time.Millisecond, nil)
	tracker.Track(context.Background(), session.NewID(), Health(), ArrivalRequest{})

	done := make(chan struct{})
	go func() {
		tracker.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("registration did not honour its timeout")
	}
}

func TestArrivalTracker_CacheDown(t *testing.T) {
	reg := &MockArrivalRegistrar{}
	tracker := NewArrivalTracker(reg, failingCache{}, time.Second, nil)

	assert.False(t, tracker.Track(context.Background(), "sid", Health(), ArrivalRequest{}))
	assert.Equal(t, "", tracker.Handle(context.Background(), "sid", Health()))
	reg.AssertNotCalled(t, "RegisterArrival", mock.Anything, mock.Anything)
}
