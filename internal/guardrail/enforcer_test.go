package guardrail_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/finassist/policy-agent/internal/guardrail"
	"github.com/finassist/policy-agent/internal/guardrail/mocks"
)

func newTestEnforcer(t *testing.T, moderation guardrail.ModerationAPI, opts ...guardrail.RemoteEnforcerOption) *guardrail.RemoteEnforcer {
	t.Helper()

	identities, err := guardrail.NewFileIdentityStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileIdentityStore() failed: %v", err)
	}

	return guardrail.NewRemoteEnforcer(guardrail.DefaultRegistry(), moderation, identities, zerolog.Nop(), opts...)
}

func TestRemoteEnforcer_CreatesPolicyOncePerProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	moderation := mocks.NewMockModerationAPI(ctrl)

	moderation.EXPECT().
		CreatePolicy(gomock.Any(), gomock.Any()).
		Return("gr-123", nil).
		Times(1)
	moderation.EXPECT().
		PolicyVersion(gomock.Any(), "gr-123").
		Return("1", nil).
		Times(1)
	moderation.EXPECT().
		Apply(gomock.Any(), "gr-123", "1", guardrail.DirectionInput, gomock.Any()).
		Return(&guardrail.ModerationOutcome{}, nil).
		Times(2)

	enforcer := newTestEnforcer(t, moderation)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		verdict, err := enforcer.Evaluate(ctx, "what is the refund policy", guardrail.ProfileExternal, guardrail.DirectionInput)
		if err != nil {
			t.Fatalf("Evaluate() failed: %v", err)
		}
		if verdict.Action != guardrail.ActionAllow {
			t.Errorf("Expected ALLOW, got %s", verdict.Action)
		}
	}
}

func TestRemoteEnforcer_ReusesPersistedIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	moderation := mocks.NewMockModerationAPI(ctrl)

	dir := t.TempDir()
	identities, err := guardrail.NewFileIdentityStore(dir)
	if err != nil {
		t.Fatalf("NewFileIdentityStore() failed: %v", err)
	}

	moderation.EXPECT().
		CreatePolicy(gomock.Any(), gomock.Any()).
		Return("gr-456", nil).
		Times(1)
	moderation.EXPECT().
		PolicyVersion(gomock.Any(), "gr-456").
		Return("2", nil).
		Times(1)
	moderation.EXPECT().
		Apply(gomock.Any(), "gr-456", "2", gomock.Any(), gomock.Any()).
		Return(&guardrail.ModerationOutcome{}, nil).
		Times(2)

	ctx := context.Background()

	first := guardrail.NewRemoteEnforcer(guardrail.DefaultRegistry(), moderation, identities, zerolog.Nop())
	if _, err := first.Evaluate(ctx, "hello", guardrail.ProfileExternal, guardrail.DirectionInput); err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}

	// A fresh enforcer over the same directory must load the persisted
	// identity instead of creating a second remote policy.
	second := guardrail.NewRemoteEnforcer(guardrail.DefaultRegistry(), moderation, identities, zerolog.Nop())
	if _, err := second.Evaluate(ctx, "hello again", guardrail.ProfileExternal, guardrail.DirectionInput); err != nil {
		t.Fatalf("Evaluate() on fresh enforcer failed: %v", err)
	}
}

func TestRemoteEnforcer_Intervention(t *testing.T) {
	ctrl := gomock.NewController(t)
	moderation := mocks.NewMockModerationAPI(ctrl)

	moderation.EXPECT().CreatePolicy(gomock.Any(), gomock.Any()).Return("gr-1", nil)
	moderation.EXPECT().PolicyVersion(gomock.Any(), "gr-1").Return("1", nil)
	moderation.EXPECT().
		Apply(gomock.Any(), "gr-1", "1", guardrail.DirectionOutput, gomock.Any()).
		Return(&guardrail.ModerationOutcome{
			Intervened: true,
			Reason:     "denied topic: credit_limit_algorithm",
			OutputText: "I can't share that.",
		}, nil)

	enforcer := newTestEnforcer(t, moderation)

	verdict, err := enforcer.Evaluate(context.Background(), "the algorithm works like", guardrail.ProfileExternal, guardrail.DirectionOutput)
	if err != nil {
		t.Fatalf("Evaluate() failed: %v", err)
	}
	if !verdict.Intervened() {
		t.Fatalf("Expected INTERVENE, got %s", verdict.Action)
	}
	if verdict.SubstituteText != "I can't share that." {
		t.Errorf("Expected moderation output text, got %q", verdict.SubstituteText)
	}
	if verdict.Reason != "denied topic: credit_limit_algorithm" {
		t.Errorf("Unexpected reason %q", verdict.Reason)
	}
}

func TestRemoteEnforcer_TransportFailure(t *testing.T) {
	transportErr := errors.New("connection reset")

	t.Run("fail open passes the original text", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		moderation := mocks.NewMockModerationAPI(ctrl)

		moderation.EXPECT().CreatePolicy(gomock.Any(), gomock.Any()).Return("gr-1", nil)
		moderation.EXPECT().PolicyVersion(gomock.Any(), "gr-1").Return("1", nil)
		moderation.EXPECT().
			Apply(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, transportErr)

		enforcer := newTestEnforcer(t, moderation)

		verdict, err := enforcer.Evaluate(context.Background(), "original text", guardrail.ProfileExternal, guardrail.DirectionInput)
		if err != nil {
			t.Fatalf("Evaluate() failed: %v", err)
		}
		if verdict.Action != guardrail.ActionError {
			t.Fatalf("Expected ERROR, got %s", verdict.Action)
		}
		if verdict.SubstituteText != "original text" {
			t.Errorf("Fail-open must pass the original text, got %q", verdict.SubstituteText)
		}
	})

	t.Run("fail closed intervenes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		moderation := mocks.NewMockModerationAPI(ctrl)

		moderation.EXPECT().CreatePolicy(gomock.Any(), gomock.Any()).Return("gr-1", nil)
		moderation.EXPECT().PolicyVersion(gomock.Any(), "gr-1").Return("1", nil)
		moderation.EXPECT().
			Apply(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, transportErr)

		enforcer := newTestEnforcer(t, moderation, guardrail.WithFailClosed())

		verdict, err := enforcer.Evaluate(context.Background(), "original text", guardrail.ProfileExternal, guardrail.DirectionInput)
		if err != nil {
			t.Fatalf("Evaluate() failed: %v", err)
		}
		if !verdict.Intervened() {
			t.Fatalf("Expected INTERVENE, got %s", verdict.Action)
		}
		if verdict.Reason != "moderation unavailable" {
			t.Errorf("Unexpected reason %q", verdict.Reason)
		}
	})
}

func TestRemoteEnforcer_CreationFailureIsSticky(t *testing.T) {
	ctrl := gomock.NewController(t)
	moderation := mocks.NewMockModerationAPI(ctrl)

	moderation.EXPECT().
		CreatePolicy(gomock.Any(), gomock.Any()).
		Return("", errors.New("quota exceeded")).
		Times(1)

	enforcer := newTestEnforcer(t, moderation)

	ctx := context.Background()
	if _, err := enforcer.Evaluate(ctx, "hello", guardrail.ProfileExternal, guardrail.DirectionInput); err == nil {
		t.Fatal("Expected creation failure to surface as an error")
	}

	// The second call must fail fast without touching the moderation API
	// again.
	if _, err := enforcer.Evaluate(ctx, "hello", guardrail.ProfileExternal, guardrail.DirectionInput); err == nil {
		t.Fatal("Expected the recorded failure to persist")
	}
}
