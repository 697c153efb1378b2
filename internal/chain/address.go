package chain

import (
	"encoding/binary"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidHash    = errors.New("invalid 32-byte hash")
)

// escrowSeed 托管账户派生种子
var escrowSeed = []byte("project_vault")

// ParseAddress 解析并规范化地址（EIP-55 校验和格式）
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, ErrInvalidAddress
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, ErrInvalidAddress
	}
	return addr, nil
}

// NormalizeAddress 返回规范化后的地址字符串
func NormalizeAddress(s string) (string, error) {
	addr, err := ParseAddress(s)
	if err != nil {
		return "", err
	}
	return addr.Hex(), nil
}

// EscrowAddress 由项目ID派生托管账户地址：keccak256("project_vault" || le64(projectId)) 的后20字节
func EscrowAddress(projectId uint64) common.Address {
	var id [8]byte
	binary.LittleEndian.PutUint64(id[:], projectId)
	return common.BytesToAddress(crypto.Keccak256(escrowSeed, id[:]))
}

// ParseHash 解析32字节十六进制摘要
func ParseHash(s string) (common.Hash, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(s) != 2*common.HashLength {
		return common.Hash{}, ErrInvalidHash
	}
	b, err := hexutil.Decode("0x" + s)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, ErrInvalidHash
	}
	return common.BytesToHash(b), nil
}
