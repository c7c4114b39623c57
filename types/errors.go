package types

import "errors"

// Every rejected operation returns one of these, possibly wrapped with context.
var (
	ErrInvalidProof               = errors.New("invalid proof")
	ErrAlreadyClaimed             = errors.New("already claimed")
	ErrUnauthorized               = errors.New("unauthorized")
	ErrInsufficientPayment        = errors.New("insufficient payment")
	ErrRoundCapacityExceeded      = errors.New("round capacity exceeded")
	ErrPerAddressCapExceeded      = errors.New("per-address cap exceeded")
	ErrNotWhitelisted             = errors.New("not whitelisted")
	ErrAlreadyMinted              = errors.New("whitelist allowance already minted")
	ErrInsufficientBalance        = errors.New("insufficient balance")
	ErrTransferDisabled           = errors.New("transfer disabled")
	ErrOverlappingRoundRange      = errors.New("overlapping round range")
	ErrPaused                     = errors.New("paused")
	ErrNoActiveRound              = errors.New("no active round")
	ErrInvalidQuantity            = errors.New("invalid quantity")
	ErrInvalidShare               = errors.New("share out of range")
	ErrTokenAlreadyMinted         = errors.New("token already minted")
	ErrTokenNotFound              = errors.New("token not found")
	ErrNotTokenOwner              = errors.New("not token owner")
	ErrNotPendingOwner            = errors.New("not pending owner")
	ErrInvalidNonce               = errors.New("invalid nonce")
	ErrInvalidSignature           = errors.New("invalid signature")
	ErrGameWinnersMintingDisabled = errors.New("game winners minting disabled")
	ErrNotClaimant                = errors.New("caller is not the slot claimant")
	ErrWhitelistSoldOut           = errors.New("whitelist window sold out")
	ErrUnknownTransaction         = errors.New("unknown transaction type")
	ErrZeroAddress                = errors.New("zero address")
	ErrNotInitialized             = errors.New("state not initialized")
	ErrInvalidGenesis             = errors.New("invalid genesis")
)
