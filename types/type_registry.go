package types

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
)

type typeRegistry struct {
	addressTy abi.Type
	boolTy    abi.Type
	stringTy  abi.Type
	uint8Ty   abi.Type
	uint64Ty  abi.Type
	uint256Ty abi.Type
}

func newTypeRegistry() (*typeRegistry, error) {
	addressTy, err := abi.NewType("address", "", nil)
	if err != nil {
		return nil, err
	}
	boolTy, err := abi.NewType("bool", "", nil)
	if err != nil {
		return nil, err
	}
	stringTy, err := abi.NewType("string", "", nil)
	if err != nil {
		return nil, err
	}
	uint8Ty, err := abi.NewType("uint8", "", nil)
	if err != nil {
		return nil, err
	}
	uint64Ty, err := abi.NewType("uint64", "", nil)
	if err != nil {
		return nil, err
	}
	uint256Ty, err := abi.NewType("uint256", "", nil)
	if err != nil {
		return nil, err
	}
	return &typeRegistry{
		addressTy: addressTy,
		boolTy:    boolTy,
		stringTy:  stringTy,
		uint8Ty:   uint8Ty,
		uint64Ty:  uint64Ty,
		uint256Ty: uint256Ty,
	}, nil
}

func (r *typeRegistry) arguments(fields ...field) abi.Arguments {
	args := make(abi.Arguments, len(fields))
	for i, f := range fields {
		args[i] = abi.Argument{Name: f.name, Type: f.ty, Indexed: false}
	}
	return args
}

type field struct {
	name string
	ty   abi.Type
}
