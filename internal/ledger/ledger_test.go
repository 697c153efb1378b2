package ledger

import (
	"errors"
	"testing"

	"github.com/blues/rfs/internal/model"
	"github.com/blues/rfs/internal/repository/repositorytest"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	alice  = "0x1111111111111111111111111111111111111111"
	bob    = "0x2222222222222222222222222222222222222222"
	escrow = "0x3333333333333333333333333333333333333333"
)

func balanceOf(t *testing.T, db *gorm.DB, l *DBLedger, address string) uint64 {
	t.Helper()
	account, err := l.GetAccount(db, address)
	require.NoError(t, err)
	return account.Balance
}

func TestTransferMovesFunds(t *testing.T) {
	require := require.New(t)
	db := repositorytest.NewDB(t)
	l := NewDBLedger()

	require.NoError(l.Credit(db, alice, 500, bob))
	require.NoError(l.OpenAccount(db, escrow, escrow))
	require.NoError(l.Transfer(db, alice, escrow, 200, alice, "fund"))

	require.Equal(uint64(300), balanceOf(t, db, l, alice))
	require.Equal(uint64(200), balanceOf(t, db, l, escrow))

	var transfers []model.LedgerTransferModel
	require.NoError(db.Order("id").Find(&transfers).Error)
	require.Len(transfers, 2)
	require.Equal("deposit", transfers[0].Memo)
	require.Equal(alice, transfers[1].FromAddress)
	require.Equal(escrow, transfers[1].ToAddress)
}

func TestTransferOpensDestination(t *testing.T) {
	require := require.New(t)
	db := repositorytest.NewDB(t)
	l := NewDBLedger()

	require.NoError(l.Credit(db, alice, 100, alice))
	require.NoError(l.Transfer(db, alice, bob, 40, alice, ""))

	account, err := l.GetAccount(db, bob)
	require.NoError(err)
	require.Equal(bob, account.Owner)
	require.Equal(uint64(40), account.Balance)
}

func TestTransferFailures(t *testing.T) {
	db := repositorytest.NewDB(t)
	l := NewDBLedger()
	require.NoError(t, l.Credit(db, alice, 100, alice))

	tests := []struct {
		name      string
		from      string
		amount    uint64
		authority string
		want      error
	}{
		{"missing source", bob, 10, bob, ErrAccountNotFound},
		{"wrong authority", alice, 10, bob, ErrUnauthorizedSigner},
		{"insufficient funds", alice, 101, alice, ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.Transfer(db, tt.from, escrow, tt.amount, tt.authority, "")
			require.ErrorIs(t, err, tt.want)
		})
	}

	require.Equal(t, uint64(100), balanceOf(t, db, l, alice))
	require.ErrorIs(t, l.Transfer(db, alice, alice, 1, alice, ""), ErrInvalidTransfer)
}

func TestTransferZeroIsNoop(t *testing.T) {
	db := repositorytest.NewDB(t)
	l := NewDBLedger()

	require.NoError(t, l.Transfer(db, alice, bob, 0, alice, ""))
	_, err := l.GetAccount(db, bob)
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestTransferRollsBackWithTransaction(t *testing.T) {
	require := require.New(t)
	db := repositorytest.NewDB(t)
	l := NewDBLedger()
	require.NoError(l.Credit(db, alice, 100, alice))

	boom := errors.New("boom")
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := l.Transfer(tx, alice, bob, 60, alice, ""); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(err, boom)

	require.Equal(uint64(100), balanceOf(t, db, l, alice))
	_, err = l.GetAccount(db, bob)
	require.ErrorIs(err, ErrAccountNotFound)
}

func TestOpenAccountTakesOverExistingAccount(t *testing.T) {
	require := require.New(t)
	db := repositorytest.NewDB(t)
	l := NewDBLedger()

	// 入账时自动开户，owner 为地址本身
	require.NoError(l.Credit(db, escrow, 50, alice))
	require.NoError(l.OpenAccount(db, escrow, "project:1"))

	account, err := l.GetAccount(db, escrow)
	require.NoError(err)
	require.Equal("project:1", account.Owner)
	require.Equal(uint64(50), account.Balance)

	require.ErrorIs(l.Transfer(db, escrow, bob, 50, escrow, ""), ErrUnauthorizedSigner)
	require.NoError(l.Transfer(db, escrow, bob, 50, "project:1", ""))
}
