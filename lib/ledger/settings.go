package ledger

import (
	"fmt"

	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/errors"
	"boscoin.io/agora/lib/storage"
)

// Settings are deployment-scoped governance parameters, persisted under
// 'st-setting-<name>'. The minimum-stake gate on proposal creation is the
// only one the engines read today.

const SettingPrefix string = "st-setting-"

// KeyMinStake is the minimum stake a proposer must hold at creation time.
const KeyMinStake string = "minstake"

func GetSettingKey(name string) string {
	return fmt.Sprintf("%s%s", SettingPrefix, name)
}

func SetSetting(st *storage.LevelDBBackend, name string, value common.Amount) (err error) {
	key := GetSettingKey(name)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		err = st.Set(key, value)
	} else {
		err = st.New(key, value)
	}

	return
}

func GetSettingAmount(st *storage.LevelDBBackend, name string) (value common.Amount, err error) {
	if err = st.Get(GetSettingKey(name), &value); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.SettingDoesNotExist
		}
		return
	}

	return
}
