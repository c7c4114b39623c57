package ledger

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celer-network/go-animaverse/access"
	"github.com/celer-network/go-animaverse/types"
)

// TokenURI is the placeholder URI until the collection is revealed, then the
// base URI followed by the decimal token id.
func (l *Ledger) TokenURI(tokenID uint64) (string, error) {
	if _, err := l.Token(tokenID); err != nil {
		return "", err
	}
	collection, err := l.st.Collection()
	if err != nil {
		return "", err
	}
	if !collection.Revealed {
		return collection.NotRevealedURI, nil
	}
	return collection.BaseURI + strconv.FormatUint(tokenID, 10), nil
}

func (l *Ledger) updateCollection(caller common.Address, update func(c *types.CollectionState)) error {
	if err := access.Authorize(l.st, caller); err != nil {
		return err
	}
	collection, err := l.st.Collection()
	if err != nil {
		return err
	}
	update(collection)
	return l.st.SetCollection(collection)
}

func (l *Ledger) SetBaseURI(caller common.Address, uri string) error {
	return l.updateCollection(caller, func(c *types.CollectionState) {
		c.BaseURI = uri
	})
}

func (l *Ledger) SetNotRevealedURI(caller common.Address, uri string) error {
	return l.updateCollection(caller, func(c *types.CollectionState) {
		c.NotRevealedURI = uri
	})
}

func (l *Ledger) Reveal(caller common.Address) error {
	if err := l.updateCollection(caller, func(c *types.CollectionState) {
		c.Revealed = true
	}); err != nil {
		return err
	}
	logger.Info().Msg("Collection revealed")
	return nil
}
