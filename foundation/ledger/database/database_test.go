package database_test

import (
	"errors"
	"testing"

	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/convert"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/database"
	"github.com/Ollenmire/usdn-audit-critical/foundation/ledger/genesis"
	"github.com/holiman/uint256"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	accountA = database.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	accountB = database.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
	accountC = database.AccountID("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8")
)

// sumShares adds up every account's share balance so the tests can check the
// conservation invariant.
func sumShares(db *database.Database) *uint256.Int {
	sum := new(uint256.Int)
	for _, account := range db.CopyAccounts() {
		sum.Add(sum, account.Shares)
	}
	return sum
}

func TestOperations(t *testing.T) {
	type op struct {
		kind   string
		from   database.AccountID
		to     database.AccountID
		tokens uint64
	}
	type table struct {
		name     string
		balances map[string]uint64
		ops      []op
		final    map[database.AccountID]uint64
		supply   uint64
	}

	tt := []table{
		{
			name: "mint transfer burn",
			balances: map[string]uint64{
				string(accountA): 1_000,
			},
			ops: []op{
				{kind: "mint", to: accountB, tokens: 500},
				{kind: "transfer", from: accountA, to: accountB, tokens: 250},
				{kind: "burn", from: accountB, tokens: 100},
			},
			final: map[database.AccountID]uint64{
				accountA: 750,
				accountB: 650,
			},
			supply: 1_400,
		},
		{
			name:     "drained account persists at zero",
			balances: map[string]uint64{string(accountA): 10},
			ops: []op{
				{kind: "transfer", from: accountA, to: accountC, tokens: 10},
			},
			final: map[database.AccountID]uint64{
				accountA: 0,
				accountC: 10,
			},
			supply: 10,
		},
	}

	t.Log("Given the need to validate ledger operations.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %s.", testID, tst.name)
			{
				db, err := database.New(genesis.Genesis{Balances: tst.balances})
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to open database: %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould be able to open database.", success, testID)

				for _, o := range tst.ops {
					tokens := uint256.NewInt(o.tokens)

					switch o.kind {
					case "mint":
						_, err = db.Mint(o.to, tokens)
					case "transfer":
						_, err = db.Transfer(o.from, o.to, tokens)
					case "burn":
						_, err = db.Burn(o.from, tokens)
					}
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to apply %s: %v", failed, testID, o.kind, err)
					}

					if !db.TotalShares().Eq(sumShares(db)) {
						t.Fatalf("\t%s\tTest %d:\tShould conserve total shares after %s.", failed, testID, o.kind)
					}
				}
				t.Logf("\t%s\tTest %d:\tShould conserve total shares after every operation.", success, testID)

				for account, want := range tst.final {
					got := db.BalanceOf(account)
					if got.Uint64() != want {
						t.Errorf("\t%s\tTest %d:\tShould have balance %d for %s, got %d.", failed, testID, want, account, got.Uint64())
					} else {
						t.Logf("\t%s\tTest %d:\tShould have balance %d for %s.", success, testID, want, account)
					}
				}

				accounts := db.CopyAccounts()
				if _, exists := accounts[accountA]; !exists {
					t.Errorf("\t%s\tTest %d:\tShould keep drained accounts in the database.", failed, testID)
				} else {
					t.Logf("\t%s\tTest %d:\tShould keep drained accounts in the database.", success, testID)
				}

				if got := db.TotalSupply().Uint64(); got != tst.supply {
					t.Errorf("\t%s\tTest %d:\tShould have total supply %d, got %d.", failed, testID, tst.supply, got)
				} else {
					t.Logf("\t%s\tTest %d:\tShould have total supply %d.", success, testID, tst.supply)
				}
			}
		}
	}
}

func TestShareOperations(t *testing.T) {
	t.Log("Given the need to move exact share amounts.")
	{
		t.Logf("\tTest 0:\tWhen transferring and burning shares directly.")
		{
			db, err := database.New(genesis.Genesis{Balances: map[string]uint64{string(accountA): 100}})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open database: %v", failed, err)
			}

			// 100 tokens at the maximum divisor.
			wantShares := new(uint256.Int).Mul(uint256.NewInt(100), uint256.NewInt(convert.MaxDivisor))
			if !db.SharesOf(accountA).Eq(wantShares) {
				t.Fatalf("\t%s\tTest 0:\tShould back 100 tokens with 100*MaxDivisor shares.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould back 100 tokens with 100*MaxDivisor shares.", success)

			half := new(uint256.Int).Div(wantShares, uint256.NewInt(2))
			if _, err := db.TransferShares(accountA, accountB, half); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to transfer shares: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to transfer shares.", success)

			if got := db.BalanceOf(accountB).Uint64(); got != 50 {
				t.Errorf("\t%s\tTest 0:\tShould project 50 tokens for the recipient, got %d.", failed, got)
			} else {
				t.Logf("\t%s\tTest 0:\tShould project 50 tokens for the recipient.", success)
			}

			if _, err := db.BurnShares(accountB, half); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to burn shares: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to burn shares.", success)

			if !db.TotalShares().Eq(sumShares(db)) {
				t.Errorf("\t%s\tTest 0:\tShould conserve total shares after share operations.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould conserve total shares after share operations.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen the share balance is too small.")
		{
			db, err := database.New(genesis.Genesis{Balances: map[string]uint64{string(accountA): 1}})
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to open database: %v", failed, err)
			}

			tooMany := new(uint256.Int).AddUint64(db.SharesOf(accountA), 1)
			if _, err := db.TransferShares(accountA, accountB, tooMany); !errors.Is(err, database.ErrInsufficientSharesBalance) {
				t.Errorf("\t%s\tTest 1:\tShould get ErrInsufficientSharesBalance: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 1:\tShould get ErrInsufficientSharesBalance.", success)
			}
		}
	}
}

func TestOperationFailures(t *testing.T) {
	t.Log("Given the need to reject invalid operations without partial mutation.")
	{
		db, err := database.New(genesis.Genesis{Balances: map[string]uint64{string(accountA): 100}})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to open database: %v", failed, err)
		}

		before := db.TotalShares()

		t.Logf("\tTest 0:\tWhen the recipient is the null identity.")
		{
			if _, err := db.Mint(database.ZeroAccountID, uint256.NewInt(1)); !errors.Is(err, database.ErrInvalidRecipient) {
				t.Errorf("\t%s\tTest 0:\tShould get ErrInvalidRecipient from mint: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 0:\tShould get ErrInvalidRecipient from mint.", success)
			}

			if _, err := db.Transfer(accountA, database.ZeroAccountID, uint256.NewInt(1)); !errors.Is(err, database.ErrInvalidRecipient) {
				t.Errorf("\t%s\tTest 0:\tShould get ErrInvalidRecipient from transfer: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 0:\tShould get ErrInvalidRecipient from transfer.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen the sender is the null identity.")
		{
			if _, err := db.Transfer(database.ZeroAccountID, accountA, uint256.NewInt(1)); !errors.Is(err, database.ErrInvalidSender) {
				t.Errorf("\t%s\tTest 1:\tShould get ErrInvalidSender from transfer: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 1:\tShould get ErrInvalidSender from transfer.", success)
			}

			if _, err := db.Burn(database.ZeroAccountID, uint256.NewInt(1)); !errors.Is(err, database.ErrInvalidSender) {
				t.Errorf("\t%s\tTest 1:\tShould get ErrInvalidSender from burn: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 1:\tShould get ErrInvalidSender from burn.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen the balance is insufficient.")
		{
			if _, err := db.Transfer(accountA, accountB, uint256.NewInt(101)); !errors.Is(err, database.ErrInsufficientBalance) {
				t.Errorf("\t%s\tTest 2:\tShould get ErrInsufficientBalance from transfer: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 2:\tShould get ErrInsufficientBalance from transfer.", success)
			}

			if _, err := db.Burn(accountA, uint256.NewInt(101)); !errors.Is(err, database.ErrInsufficientBalance) {
				t.Errorf("\t%s\tTest 2:\tShould get ErrInsufficientBalance from burn: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 2:\tShould get ErrInsufficientBalance from burn.", success)
			}
		}

		if !db.TotalShares().Eq(before) {
			t.Errorf("\t%s\tShould leave total shares untouched after failed operations.", failed)
		} else {
			t.Logf("\t%s\tShould leave total shares untouched after failed operations.", success)
		}
	}
}

func TestMintOverflow(t *testing.T) {
	t.Log("Given the need to reject mints that would wrap the total share count.")
	{
		db, err := database.New(genesis.Genesis{})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to open database: %v", failed, err)
		}

		maxTokens := convert.MaxTokens(db.Divisor())

		t.Logf("\tTest 0:\tWhen minting the maximum token amount once.")
		{
			if _, err := db.Mint(accountA, maxTokens); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mint the maximum amount: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to mint the maximum amount.", success)
		}

		shares := db.SharesOf(accountA)
		total := db.TotalShares()

		t.Logf("\tTest 1:\tWhen minting the maximum token amount a second time.")
		{
			if _, err := db.Mint(accountB, maxTokens); !errors.Is(err, convert.ErrOverflow) {
				t.Errorf("\t%s\tTest 1:\tShould get ErrOverflow from the second mint: %v", failed, err)
			} else {
				t.Logf("\t%s\tTest 1:\tShould get ErrOverflow from the second mint.", success)
			}

			if !db.SharesOf(accountA).Eq(shares) || !db.TotalShares().Eq(total) {
				t.Errorf("\t%s\tTest 1:\tShould leave shares and total untouched after the aborted mint.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould leave shares and total untouched after the aborted mint.", success)
			}

			if !db.TotalShares().Eq(sumShares(db)) {
				t.Errorf("\t%s\tTest 1:\tShould keep the total equal to the sum of all account shares.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould keep the total equal to the sum of all account shares.", success)
			}

			if db.TotalSupply().Lt(db.BalanceOf(accountA)) {
				t.Errorf("\t%s\tTest 1:\tShould never report a supply below a single account balance.", failed)
			} else {
				t.Logf("\t%s\tTest 1:\tShould never report a supply below a single account balance.", success)
			}
		}
	}
}

func TestRebaseProjection(t *testing.T) {
	t.Log("Given the need to rescale balances through the divisor.")
	{
		t.Logf("\tTest 0:\tWhen halving the divisor.")
		{
			db, err := database.New(genesis.Genesis{Balances: map[string]uint64{string(accountA): 1_000}})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open database: %v", failed, err)
			}

			db.ApplyRebase(convert.MaxDivisor / 2)

			if got := db.BalanceOf(accountA).Uint64(); got != 2_000 {
				t.Errorf("\t%s\tTest 0:\tShould double the projected balance, got %d.", failed, got)
			} else {
				t.Logf("\t%s\tTest 0:\tShould double the projected balance.", success)
			}

			if got := db.TotalSupply().Uint64(); got != 2_000 {
				t.Errorf("\t%s\tTest 0:\tShould double the projected supply, got %d.", failed, got)
			} else {
				t.Logf("\t%s\tTest 0:\tShould double the projected supply.", success)
			}

			if !db.SharesOf(accountA).Eq(new(uint256.Int).Mul(uint256.NewInt(1_000), uint256.NewInt(convert.MaxDivisor))) {
				t.Errorf("\t%s\tTest 0:\tShould leave the share records untouched.", failed)
			} else {
				t.Logf("\t%s\tTest 0:\tShould leave the share records untouched.", success)
			}
		}
	}
}
