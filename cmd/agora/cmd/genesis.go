package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"

	"boscoin.io/agora/cmd/agora/common"
	agoracommon "boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/ledger"
	"boscoin.io/agora/lib/storage"
)

var (
	flagMinStake string = agoracommon.GetENVValue("AGORA_MINIMUM_STAKE", "")
)

func init() {
	var genesisCmd = &cobra.Command{
		Use:   "genesis <public key,balance> [<public key,balance>...]",
		Short: "seed the stake ledger",
		Args:  cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			flagName, err := MakeGenesisAccounts(args, flagMinStake, flagStorageConfigString)
			if len(flagName) != 0 || err != nil {
				common.PrintFlagsError(c, flagName, err)
			}

			fmt.Println("successfully seeded the stake ledger")
		},
	}

	genesisCmd.Flags().StringVar(&flagMinStake, "minimum-stake", flagMinStake, "minimum stake required of a proposer")
	genesisCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")

	rootCmd.AddCommand(genesisCmd)
}

// MakeGenesisAccounts writes the given stake accounts, and optionally the
// minimum-stake setting, into a fresh storage. Each argument is
// `<public key>,<balance>`.
//
// Returns the name of the offending flag plus an error when validation
// fails; both empty on success.
func MakeGenesisAccounts(accountStrs []string, minStakeStr, storageString string) (string, error) {
	storageConfig, err := storage.NewConfigFromString(storageString)
	if err != nil {
		return "--storage", err
	}

	type seed struct {
		address string
		balance agoracommon.Amount
	}

	var seeds []seed
	for _, accountStr := range accountStrs {
		// the balance may carry comma grouping, so only the first comma splits
		csv := strings.SplitN(accountStr, ",", 2)
		if len(csv) != 2 {
			return "<public key,balance>", errors.New("expects '<public key>,<balance>'")
		}

		var kp keypair.KP
		if kp, err = keypair.Parse(csv[0]); err != nil {
			return "<public key,balance>", err
		}

		balance, err := common.ParseAmountFromString(csv[1])
		if err != nil {
			return "<public key,balance>", err
		}

		seeds = append(seeds, seed{address: kp.Address(), balance: balance})
	}

	var minStake agoracommon.Amount
	if len(minStakeStr) > 0 {
		if minStake, err = common.ParseAmountFromString(minStakeStr); err != nil {
			return "--minimum-stake", err
		}
	}

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return "--storage", err
	}
	defer st.Close()

	for _, s := range seeds {
		account := ledger.NewStakeAccount(s.address, s.balance)
		if err := account.Save(st); err != nil {
			return "<public key,balance>", err
		}
	}

	if minStake > 0 {
		if err := ledger.SetSetting(st, ledger.KeyMinStake, minStake); err != nil {
			return "--minimum-stake", err
		}
	}

	return "", nil
}
