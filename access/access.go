// Package access gates administrative operations behind a single owner
// identity.
package access

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/log"
	"github.com/celer-network/go-animaverse/state"
	"github.com/celer-network/go-animaverse/types"
)

var logger = log.NewLogger("access")

// Authorize is the capability check consulted by every owner-gated entry
// point.
func Authorize(st *state.State, caller common.Address) error {
	admin, err := st.Admin()
	if err != nil {
		return err
	}
	if admin.Owner != caller {
		return fmt.Errorf("caller %s: %w", caller.Hex(), types.ErrUnauthorized)
	}
	return nil
}

// Owner returns the current owner.
func Owner(st *state.State) (common.Address, error) {
	admin, err := st.Admin()
	if err != nil {
		return common.Address{}, err
	}
	return admin.Owner, nil
}

// Paused fails with ErrPaused while the owner has paused claims and mints.
func Paused(st *state.State) error {
	admin, err := st.Admin()
	if err != nil {
		return err
	}
	if admin.Paused {
		return types.ErrPaused
	}
	return nil
}

// Init records the first owner. It is only called at genesis.
func Init(st *state.State, owner common.Address) error {
	if owner == (common.Address{}) {
		return fmt.Errorf("owner: %w", types.ErrZeroAddress)
	}
	return st.SetAdmin(&types.AdminState{Owner: owner})
}

// TransferOwnership nominates newOwner. Ownership moves only once the nominee
// calls AcceptOwnership. Nominating the zero address cancels a pending transfer.
func TransferOwnership(st *state.State, caller common.Address, newOwner common.Address) error {
	if err := Authorize(st, caller); err != nil {
		return err
	}
	admin, err := st.Admin()
	if err != nil {
		return err
	}
	admin.PendingOwner = newOwner
	if err := st.SetAdmin(admin); err != nil {
		return err
	}
	logger.Info().Str("owner", caller.Hex()).Str("pending", newOwner.Hex()).Msg("Ownership transfer started")
	return nil
}

func AcceptOwnership(st *state.State, caller common.Address) error {
	admin, err := st.Admin()
	if err != nil {
		return err
	}
	if admin.PendingOwner == (common.Address{}) || admin.PendingOwner != caller {
		return fmt.Errorf("caller %s: %w", caller.Hex(), types.ErrNotPendingOwner)
	}
	previous := admin.Owner
	admin.Owner = caller
	admin.PendingOwner = common.Address{}
	if err := st.SetAdmin(admin); err != nil {
		return err
	}
	logger.Info().Str("previous", previous.Hex()).Str("owner", caller.Hex()).Msg("Ownership transferred")
	return nil
}

func SetPaused(st *state.State, caller common.Address, paused bool) error {
	if err := Authorize(st, caller); err != nil {
		return err
	}
	admin, err := st.Admin()
	if err != nil {
		return err
	}
	admin.Paused = paused
	if err := st.SetAdmin(admin); err != nil {
		return err
	}
	logger.Info().Bool("paused", paused).Msg("Pause flag set")
	return nil
}
