package reveal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	tests := []struct {
		from State
		ev   Event
		want State
	}{
		{Idle, EventStart, CollectingDetails},
		{CollectingDetails, EventSubmitDetails, AwaitingCode},
		{AwaitingCode, EventCodeMismatched, AwaitingCode},
		{AwaitingCode, EventCodeMatched, Revealed},
	}
	for _, tt := range tests {
		got, err := Next(tt.from, tt.ev)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s on %s", tt.ev, tt.from)
	}
}

func TestNextCancelFromAnyState(t *testing.T) {
	for _, s := range []State{Idle, CollectingDetails, AwaitingCode, Revealed} {
		got, err := Next(s, EventCancel)
		assert.NoError(t, err)
		assert.Equal(t, Idle, got)
	}
}

func TestNextRejectsSkippingSteps(t *testing.T) {
	for _, tc := range []struct {
		from State
		ev   Event
	}{
		{Idle, EventCodeMatched},
		{CollectingDetails, EventCodeMatched},
		{Revealed, EventSubmitDetails},
		{AwaitingCode, EventStart},
	} {
		got, err := Next(tc.from, tc.ev)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, tc.from, got)
	}
}
