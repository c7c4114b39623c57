package state

import (
	"fmt"

	"github.com/celer-network/go-animaverse/db"
	"github.com/celer-network/go-animaverse/types"
)

func (s *State) RoundCount() (uint64, error) {
	return s.getCounter(db.NamespaceRound, keyRoundCount)
}

func (s *State) Round(index uint64) (*types.Round, error) {
	data, exists, err := s.tx.Get(db.NamespaceRound, uint64Key(index))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("round %d: %w", index, types.ErrNoActiveRound)
	}
	return s.serializer.DeserializeRound(data)
}

func (s *State) SetRound(index uint64, round *types.Round) error {
	data, err := s.serializer.SerializeRound(round)
	if err != nil {
		return err
	}
	return s.tx.Set(db.NamespaceRound, uint64Key(index), data)
}

// AppendRound stores round after the last one and returns its index.
func (s *State) AppendRound(round *types.Round) (uint64, error) {
	count, err := s.RoundCount()
	if err != nil {
		return 0, err
	}
	if err := s.SetRound(count, round); err != nil {
		return 0, err
	}
	return count, s.setCounter(db.NamespaceRound, keyRoundCount, count+1)
}

// CurrentRound is the last appended round. It fails with ErrNoActiveRound when
// no round was ever set.
func (s *State) CurrentRound() (uint64, *types.Round, error) {
	count, err := s.RoundCount()
	if err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, types.ErrNoActiveRound
	}
	round, err := s.Round(count - 1)
	if err != nil {
		return 0, nil, err
	}
	return count - 1, round, nil
}

func (s *State) Rounds() ([]*types.Round, error) {
	count, err := s.RoundCount()
	if err != nil {
		return nil, err
	}
	rounds := make([]*types.Round, 0, count)
	for i := uint64(0); i < count; i++ {
		round, err := s.Round(i)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}
	return rounds, nil
}
