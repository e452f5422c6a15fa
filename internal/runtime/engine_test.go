package runtime_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/toyrobot/internal/runtime"
	"github.com/aretw0/toyrobot/pkg/domain"
)

func TestEngine_Apply(t *testing.T) {
	ctx := context.Background()
	engine := runtime.NewEngine()

	tests := []struct {
		name       string
		state      *domain.State
		input      string
		wantState  *domain.State
		wantOutput string
		wantError  string
	}{
		{"Place", nil, "PLACE 1,2,NORTH", domain.NewState(1, 2, domain.North), "", ""},
		{"Place Mixed Case", nil, "PlaCe 4,1,noRTh", domain.NewState(4, 1, domain.North), "", ""},
		{"Report Placed", domain.NewState(0, 0, domain.North), "REPORT", domain.NewState(0, 0, domain.North), "> 0,0 NORTH", ""},
		{"Report Unplaced", nil, "REPORT", nil, "", "Robot has not been placed"},
		{"Move Unplaced", nil, "MOVE", nil, "", "Robot has not been placed"},
		{"Left Unplaced", nil, "LEFT", nil, "", "Robot has not been placed"},
		{"Right Unplaced", nil, "RIGHT", nil, "", "Robot has not been placed"},
		{"Move", domain.NewState(0, 0, domain.North), "move", domain.NewState(0, 1, domain.North), "", ""},
		{"Left", domain.NewState(0, 0, domain.North), "LEFT", domain.NewState(0, 0, domain.West), "", ""},
		{"Right", domain.NewState(0, 0, domain.North), "right", domain.NewState(0, 0, domain.East), "", ""},
		{"Jibberish", nil, "asoeuhsaoteu", nil, "", "The command ' asoeuhsaoteu ' could not be interpreted"},
		{"Jibberish Keeps State", domain.NewState(2, 2, domain.South), "JUMP", domain.NewState(2, 2, domain.South), "", "The command ' JUMP ' could not be interpreted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := engine.Apply(ctx, tt.state, tt.input)
			assert.Equal(t, tt.wantState, ev.State)
			assert.Equal(t, tt.wantOutput, ev.Output)
			assert.Equal(t, tt.wantError, ev.Error)
		})
	}
}

func TestEngine_InvalidInputKeepsStateReference(t *testing.T) {
	engine := runtime.NewEngine()
	state := domain.NewState(1, 1, domain.East)

	for _, input := range []string{"asoeuhsaoteu", "PLACE 1,2,Nrt", "PLACE 1,200,WEST", "PLACE 50,2,WEST"} {
		ev := engine.Apply(context.Background(), state, input)
		assert.Same(t, state, ev.State, input)
		assert.NotEmpty(t, ev.Error, input)
	}
}

func TestEngine_OverflowingPlaceIsOutOfBounds(t *testing.T) {
	engine := runtime.NewEngine()
	state := domain.NewState(1, 1, domain.East)

	ev := engine.Apply(context.Background(), state, "PLACE 99999999999999999999,0,NORTH")
	assert.Same(t, state, ev.State)
	assert.Equal(t, domain.OutOfBoundsMessage(math.MaxInt, 0, domain.DefaultTable()), ev.Error)

	ev = engine.Apply(context.Background(), nil, "PLACE 0,-99999999999999999999,NORTH")
	assert.Nil(t, ev.State)
	assert.Equal(t, domain.OutOfBoundsMessage(0, math.MinInt, domain.DefaultTable()), ev.Error)

	// Direction is still checked first.
	ev = engine.Apply(context.Background(), nil, "PLACE 99999999999999999999,0,UP")
	assert.Equal(t, domain.InvalidDirectionMessage("UP"), ev.Error)
}

func TestEngine_Table(t *testing.T) {
	tbl := domain.Table{MinX: -2, MaxX: 2, MinY: -2, MaxY: 2}
	engine := runtime.NewEngine(runtime.WithTable(tbl))
	assert.Equal(t, tbl, engine.Table())

	ev := engine.Apply(context.Background(), nil, "PLACE -2,-2,SOUTH")
	require.NotNil(t, ev.State)
	assert.Equal(t, domain.State{X: -2, Y: -2, Direction: domain.South}, *ev.State)

	ev = engine.Apply(context.Background(), nil, "PLACE 3,0,SOUTH")
	assert.Equal(t, "Invalid position 3,0. X must be within -2..2 and Y within -2..2", ev.Error)
}

func TestEngine_LifecycleHooks(t *testing.T) {
	var records []domain.CommandRecord
	hooks := domain.LifecycleHooks{
		OnCommand: func(ctx context.Context, r *domain.CommandRecord) {
			records = append(records, *r)
		},
	}
	engine := runtime.NewEngine(runtime.WithLifecycleHooks(hooks))
	ctx := context.Background()

	ev := engine.Apply(ctx, nil, "PLACE 0,0,NORTH")
	ev = engine.Apply(ctx, ev.State, "REPORT")
	engine.Apply(ctx, ev.State, "DANCE")
	engine.Execute(ctx, nil, domain.Move{})

	require.Len(t, records, 4)

	assert.Equal(t, domain.KindPlace, records[0].Command)
	assert.Equal(t, domain.OutcomeApplied, records[0].Outcome)
	assert.Equal(t, "PLACE 0,0,NORTH", records[0].Raw)
	assert.NotNil(t, records[0].State)
	assert.False(t, records[0].Timestamp.IsZero())

	assert.Equal(t, domain.KindReport, records[1].Command)
	assert.Equal(t, domain.OutcomeOutput, records[1].Outcome)
	assert.Equal(t, "> 0,0 NORTH", records[1].Message)

	assert.Equal(t, domain.KindInvalid, records[2].Command)
	assert.Equal(t, domain.OutcomeError, records[2].Outcome)
	assert.Equal(t, "The command ' DANCE ' could not be interpreted", records[2].Message)

	assert.Equal(t, domain.KindMove, records[3].Command)
	assert.Equal(t, "Robot has not been placed", records[3].Message)
	assert.Empty(t, records[3].Raw)
}
