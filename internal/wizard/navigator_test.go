package wizard

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mocks
// ==========================

type MockLeadSubmitter struct {
	mock.Mock
}

func (m *MockLeadSubmitter) SubmitLead(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SubmitResult), args.Error(1)
}

type MockArrivalRegistrar struct {
	mock.Mock
}

func (m *MockArrivalRegistrar) RegisterArrival(ctx context.Context, req ArrivalRequest) (string, bool) {
	args := m.Called(ctx, req)
	return args.String(0), args.Bool(1)
}

type fixture struct {
	cache     *session.MemoryCache
	sid       string
	leads     *MockLeadSubmitter
	submitter *Submitter
}

func newFixture(t *testing.T) *fixture {
	cache := session.NewMemoryCache(time.Hour)
	leads := &MockLeadSubmitter{}
	return &fixture{
		cache:     cache,
		sid:       session.NewID(),
		leads:     leads,
		submitter: NewSubmitter(leads, nil, cache, time.Minute, logger.NewTestLogger(t)),
	}
}

func (f *fixture) navigator(t *testing.T, v *Variant, rec Record, step int) (*Navigator, *FormState) {
	state := newState(t, v, f.cache, f.sid)
	require.NoError(t, state.UpdateFields(rec))
	state.Persist(context.Background())
	nav := NewNavigator(state, step, f.submitter)
	nav.now = func() time.Time { return fixedNow }
	f.submitter.now = nav.now
	return nav, state
}

// ==========================
// Advance / Retreat
// ==========================

func TestNavigator_ZipScenario(t *testing.T) {
	f := newFixture(t)
	nav, state := f.navigator(t, Health(), Record{"zip": "1234"}, 1)

	tr, err := nav.Advance(context.Background())
	require.NoError(t, err)
	assert.True(t, tr.Blocked)
	assert.Equal(t, 1, nav.Step())
	assert.Contains(t, state.Errors(), "zip")

	require.NoError(t, state.UpdateField("zip", "02421"))
	tr, err = nav.Advance(context.Background())
	require.NoError(t, err)
	assert.False(t, tr.Blocked)
	assert.Equal(t, 2, nav.Step())
	assert.Equal(t, "/health-plan-form-m2/", tr.Route)
	assert.Empty(t, state.Errors())
}

func TestNavigator_MedicareAgeScenario(t *testing.T) {
	f := newFixture(t)
	rec := completeMedicare()
	rec["birth_year"] = "1966"
	nav, state := f.navigator(t, Medicare(), rec, 2)

	tr, _ := nav.Advance(context.Background())
	assert.True(t, tr.Blocked)
	assert.Equal(t, msgMedicareAge, state.Errors()["birth_year"])

	require.NoError(t, state.UpdateField("birth_year", "1960"))
	tr, _ = nav.Advance(context.Background())
	assert.False(t, tr.Blocked)
	assert.Equal(t, 3, nav.Step())
	assert.Equal(t, "/medicare-plan-form-m3/", nav.Route())
}

func TestNavigator_AdvanceBlockedIffValidatorFails(t *testing.T) {
	records := []Record{Health().Defaults(), completeHealth()}
	for _, rec := range records {
		for k := 1; k < Health().StepCount(); k++ {
			f := newFixture(t)
			nav, _ := f.navigator(t, Health(), rec, k)
			want := len(Health().ValidateStep(rec, k, fixedNow)) > 0

			tr, err := nav.Advance(context.Background())
			require.NoError(t, err)
			assert.Equal(t, want, tr.Blocked, "step %d", k)
			if want {
				assert.Equal(t, k, nav.Step())
			} else {
				assert.Equal(t, k+1, nav.Step())
			}
		}
	}
}

func TestNavigator_RetreatNeverValidates(t *testing.T) {
	f := newFixture(t)
	nav, state := f.navigator(t, Medicare(), nil, 5)

	for k := 5; k > 1; k-- {
		tr := nav.Retreat()
		assert.Equal(t, k, tr.From)
		assert.Equal(t, k-1, tr.To)
		assert.Empty(t, state.Errors())
	}

	tr := nav.Retreat()
	assert.Equal(t, 1, tr.To)
	assert.Equal(t, "/medicare-plan-form-m1/", tr.Route)
}

func TestNavigator_JumpTo(t *testing.T) {
	f := newFixture(t)
	nav, _ := f.navigator(t, Health(), nil, 1)

	assert.True(t, nav.JumpTo(6))
	assert.Equal(t, 6, nav.Step())
	assert.False(t, nav.JumpTo(0))
	assert.False(t, nav.JumpTo(8))
	assert.Equal(t, 6, nav.Step())
}

func TestNavigator_InitialStepFallsBackToOne(t *testing.T) {
	f := newFixture(t)
	for _, step := range []int{0, -3, 9} {
		nav, _ := f.navigator(t, Health(), nil, step)
		assert.Equal(t, 1, nav.Step())
	}
}

// ==========================
// Submission
// ==========================

func TestNavigator_SubmitSuccessClearsSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rec := completeHealth()
	rec["jornaya_id"] = "JRN-1"
	nav, state := f.navigator(t, Health(), rec, 7)
	require.NoError(t, f.cache.Set(ctx, f.sid, "health_arrival_id", "arr_9"))

	tracker := NewArrivalTracker(&MockArrivalRegistrar{}, f.cache, time.Second, nil)
	f.submitter.arrivals = tracker

	f.leads.On("SubmitLead", mock.Anything, mock.MatchedBy(func(req SubmitRequest) bool {
		return req.FormType == "health" &&
			req.FormData.String("arrival_id") == "arr_9" &&
			req.FormData.String("jornaya_id") == "JRN-1" &&
			req.FormData.String("phone") == "(555) 123-4567"
	})).Return(&SubmitResult{Success: true, LeadID: "lead_1", City: "Your City", State: "Your State"}, nil).Once()

	tr, err := nav.Advance(ctx)
	require.NoError(t, err)
	assert.True(t, tr.Submitted)

	u, err := url.Parse(tr.Redirect)
	require.NoError(t, err)
	assert.Equal(t, "/thank-you/", u.Path)
	assert.Equal(t, "health", u.Query().Get("type"))
	assert.Equal(t, "arr_9", u.Query().Get("arrivalId"))
	assert.Equal(t, "lead_1", u.Query().Get("leadId"))
	assert.Equal(t, "Lexington", u.Query().Get("city"))
	assert.Equal(t, "MA", u.Query().Get("state"))

	for _, key := range []string{"health_form_data", "health_arrival_id", "health_submitting"} {
		_, ok, _ := f.cache.Get(ctx, f.sid, key)
		assert.False(t, ok, key)
	}
	assert.Equal(t, Health().Defaults(), state.Record())
	f.leads.AssertExpectations(t)
}

func TestNavigator_SubmitRejectedKeepsRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	nav, state := f.navigator(t, Medicare(), completeMedicare(), 5)
	before := state.Record()

	f.leads.On("SubmitLead", mock.Anything, mock.Anything).
		Return(&SubmitResult{Success: false, Error: "Missing required fields"}, nil).Once()

	tr, err := nav.Advance(ctx)
	require.NoError(t, err)
	assert.True(t, tr.Blocked)
	assert.False(t, tr.Submitted)
	assert.Equal(t, 5, nav.Step())
	assert.Equal(t, ErrorMap{"submit": "Missing required fields"}, state.Errors())
	assert.Equal(t, before, state.Record())

	// the persisted record survives too
	reloaded := newState(t, Medicare(), f.cache, f.sid)
	assert.Equal(t, before, reloaded.Record())
}

func TestNavigator_SubmitFailureMessages(t *testing.T) {
	tests := []struct {
		name   string
		result *SubmitResult
		err    error
		want   string
	}{
		{name: "rejected without message", result: &SubmitResult{Success: false}, want: msgSubmitFailed},
		{name: "transport error", err: errors.New("connection refused"), want: msgSubmitTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			nav, state := f.navigator(t, Health(), completeHealth(), 7)
			f.leads.On("SubmitLead", mock.Anything, mock.Anything).Return(tt.result, tt.err).Once()

			tr, err := nav.Advance(context.Background())
			require.NoError(t, err)
			assert.True(t, tr.Blocked)
			assert.Equal(t, tt.want, state.Errors()[SubmitErrorKey])

			// retry is allowed once the first attempt finished
			f.leads.On("SubmitLead", mock.Anything, mock.Anything).Return(&SubmitResult{Success: true, LeadID: "lead_2"}, nil).Once()
			tr, err = nav.Advance(context.Background())
			require.NoError(t, err)
			assert.True(t, tr.Submitted)
		})
	}
}

func TestNavigator_SubmitValidatesLastStep(t *testing.T) {
	f := newFixture(t)
	rec := completeHealth()
	rec["email"] = ""
	nav, state := f.navigator(t, Health(), rec, 7)

	tr, err := nav.Advance(context.Background())
	require.NoError(t, err)
	assert.True(t, tr.Blocked)
	assert.Contains(t, state.Errors(), "email")
	f.leads.AssertNotCalled(t, "SubmitLead", mock.Anything, mock.Anything)
}

func TestSubmitter_ConcurrentDuplicateIsRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	release := make(chan struct{})
	f.leads.On("SubmitLead", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(&SubmitResult{Success: true, LeadID: "lead_1"}, nil).Once()

	first := newState(t, Health(), f.cache, f.sid)
	require.NoError(t, first.UpdateFields(completeHealth()))
	second := newState(t, Health(), f.cache, f.sid)
	require.NoError(t, second.UpdateFields(completeHealth()))

	var wg sync.WaitGroup
	var firstOutcome *SubmitOutcome
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstOutcome, _ = f.submitter.Submit(ctx, first)
	}()

	require.Eventually(t, func() bool {
		_, ok, _ := f.cache.Get(ctx, f.sid, "health_submitting")
		return ok
	}, time.Second, 5*time.Millisecond)

	_, err := f.submitter.Submit(ctx, second)
	assert.Equal(t, string(apperrors.ErrCodeSubmissionInProgress), apperrors.CodeOf(err))

	close(release)
	wg.Wait()
	require.NotNil(t, firstOutcome)
	assert.True(t, firstOutcome.Submitted)
	f.leads.AssertNumberOfCalls(t, "SubmitLead", 1)
}

func TestSubmitter_CacheDownStillSubmits(t *testing.T) {
	leads := &MockLeadSubmitter{}
	leads.On("SubmitLead", mock.Anything, mock.Anything).Return(&SubmitResult{Success: true, LeadID: "lead_3"}, nil)
	s := NewSubmitter(leads, nil, failingCache{}, time.Minute, logger.NewTestLogger(t))

	state := NewFormState(Health(), failingCache{}, "sid", nil)
	require.NoError(t, state.UpdateFields(completeHealth()))

	outcome, err := s.Submit(context.Background(), state)
	require.NoError(t, err)
	assert.True(t, outcome.Submitted)
	assert.Equal(t, "lead_3", outcome.LeadID)
}
