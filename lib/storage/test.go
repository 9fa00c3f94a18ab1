package storage

import "os"

func CleanDB(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	os.RemoveAll(path)
}

func NewTestMemoryLevelDBBackend() (st *LevelDBBackend, err error) {
	st = &LevelDBBackend{}

	var config *Config
	if config, err = NewConfigFromString("memory://"); err != nil {
		return
	}
	if err = st.Init(config); err != nil {
		return
	}

	return
}
