package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{in: "QB", want: QB},
		{in: "PK", want: K},
		{in: "D/ST", want: DST},
		{in: "DEF", want: DST},
		{in: "LB", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePosition(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPositionSet(t *testing.T) {
	s := NewPositionSet(WR, K)
	assert.True(t, s.Has(WR))
	assert.False(t, s.Has(RB))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Position{WR, K}, s.Slice())
	assert.Equal(t, "{WR,K}", s.String())

	s = s.Remove(WR).Add("LB")
	assert.Equal(t, NewPositionSet(K), s)

	var empty PositionSet
	assert.True(t, empty.Matches(QB), "an empty set matches everything")
	assert.False(t, s.Matches(QB))
}

func TestSlot(t *testing.T) {
	assert.True(t, SlotFlex.Accepts(TE))
	assert.False(t, SlotFlex.Accepts(QB))
	assert.True(t, SlotBE3.Accepts(DST))
	assert.False(t, SlotRB1.Accepts(WR))
	assert.Equal(t, Position(""), SlotFlex.Position())
	assert.True(t, SlotDST.IsStarting())
	assert.True(t, SlotBE1.IsBench())
	assert.Equal(t, "FLEX", SlotFlex.String())

	s, err := ParseSlot("BE7")
	require.NoError(t, err)
	assert.Equal(t, SlotBE7, s)
	_, err = ParseSlot("IR")
	assert.Error(t, err)
}

func TestDraftStrategySet(t *testing.T) {
	var d DraftStrategy
	require.NoError(t, d.Set(HeroRB))
	require.NoError(t, d.Set(LateDST))
	assert.Equal(t, HeroRB, d.RB)
	assert.Equal(t, LateDST, d.DST)
	assert.True(t, d.Has(HeroRB))

	err := d.Set("PuntEverything")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestMatchupWinner(t *testing.T) {
	m := Matchup{HomeTeam: "Home", AwayTeam: "Away", HomeScore: 100, AwayScore: 90}
	assert.Equal(t, "Home", m.Winner())

	m.AwayScore = 100
	assert.Equal(t, "Away", m.Winner(), "ties go to the away team")
}
