package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/errors"
	"boscoin.io/agora/lib/storage"
)

func TestSettingAbsent(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	_, err := GetSettingAmount(st, KeyMinStake)
	require.Equal(t, errors.SettingDoesNotExist, err)
}

func TestSettingSetAndUpdate(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	require.Nil(t, SetSetting(st, KeyMinStake, common.Amount(500)))

	value, err := GetSettingAmount(st, KeyMinStake)
	require.Nil(t, err)
	require.Equal(t, common.Amount(500), value)

	require.Nil(t, SetSetting(st, KeyMinStake, common.Amount(900)))

	value, err = GetSettingAmount(st, KeyMinStake)
	require.Nil(t, err)
	require.Equal(t, common.Amount(900), value)
}
