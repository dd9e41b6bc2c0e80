package remove_blackout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftday/workshop-booking-service/internal/domain"
	blackoutRuleRepo "github.com/craftday/workshop-booking-service/internal/infra/storage/blackoutrule"
)

type fakeBlackoutRepo struct {
	rule      *domain.BlackoutRule
	getErr    error
	deleteErr error
	deleted   []int64
}

func (f *fakeBlackoutRepo) GetByID(_ context.Context, id int64) (*domain.BlackoutRule, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.rule == nil || f.rule.ID != id {
		return nil, blackoutRuleRepo.ErrRuleNotFound
	}
	return f.rule, nil
}

func (f *fakeBlackoutRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCache struct {
	invalidated []int64
}

func (f *fakeCache) Invalidate(_ context.Context, configID int64) {
	f.invalidated = append(f.invalidated, configID)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testRule() *domain.BlackoutRule {
	return &domain.BlackoutRule{
		ID:           13,
		ConfigID:     7,
		Date:         time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		StartMinutes: 600,
		EndMinutes:   720,
		Reason:       "Kiln repair",
	}
}

func TestExecuteDeletesRuleAndInvalidatesCache(t *testing.T) {
	repo := &fakeBlackoutRepo{rule: testRule()}
	cache := &fakeCache{}
	uc := NewUseCase(repo, cache, nopLogger{})

	err := uc.Execute(context.Background(), &Request{ConfigID: 7, RuleID: 13})

	require.NoError(t, err)
	assert.Equal(t, []int64{13}, repo.deleted)
	assert.Equal(t, []int64{7}, cache.invalidated)
}

func TestExecuteRuleNotFound(t *testing.T) {
	repo := &fakeBlackoutRepo{}
	cache := &fakeCache{}
	uc := NewUseCase(repo, cache, nopLogger{})

	err := uc.Execute(context.Background(), &Request{ConfigID: 7, RuleID: 13})

	assert.ErrorIs(t, err, ErrRuleNotFound)
	assert.Empty(t, cache.invalidated)
}

func TestExecuteRuleBelongsToAnotherWorkshop(t *testing.T) {
	repo := &fakeBlackoutRepo{rule: testRule()}
	cache := &fakeCache{}
	uc := NewUseCase(repo, cache, nopLogger{})

	err := uc.Execute(context.Background(), &Request{ConfigID: 8, RuleID: 13})

	assert.ErrorIs(t, err, ErrRuleMismatch)
	assert.Empty(t, repo.deleted)
	assert.Empty(t, cache.invalidated)
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero config id", req: &Request{ConfigID: 0, RuleID: 13}},
		{name: "zero rule id", req: &Request{ConfigID: 7, RuleID: 0}},
		{name: "negative rule id", req: &Request{ConfigID: 7, RuleID: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&fakeBlackoutRepo{}, &fakeCache{}, nopLogger{})

			err := uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecuteDeleteFailureKeepsCache(t *testing.T) {
	repo := &fakeBlackoutRepo{rule: testRule(), deleteErr: errors.New("connection reset")}
	cache := &fakeCache{}
	uc := NewUseCase(repo, cache, nopLogger{})

	err := uc.Execute(context.Background(), &Request{ConfigID: 7, RuleID: 13})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, cache.invalidated)
}
