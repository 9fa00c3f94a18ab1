package storage

import (
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/agora/lib/errors"
)

func TestLevelDBBackendInitFileStorage(t *testing.T) {
	path, _ := ioutil.TempDir("", "agora")
	defer CleanDB(path)

	st := &LevelDBBackend{}
	defer st.Close()

	config, err := NewConfigFromString(fmt.Sprintf("file://%s", path))
	require.Nil(t, err)
	require.Nil(t, st.Init(config))
}

func TestLevelDBBackendInitMemStorage(t *testing.T) {
	st := &LevelDBBackend{}
	defer st.Close()

	config, err := NewConfigFromString("memory://")
	require.Nil(t, err)
	require.Nil(t, st.Init(config))
}

func TestLevelDBBackendInvalidScheme(t *testing.T) {
	_, err := NewConfigFromString("redis://localhost")
	require.NotNil(t, err)
	require.True(t, errors.StorageCoreError.Equal(err))
}

func TestLevelDBBackendNew(t *testing.T) {
	st, _ := NewTestMemoryLevelDBBackend()
	defer st.Close()

	key := "showme"
	input := map[int]string{
		90: "99",
		91: "91",
		92: "92",
	}
	require.Nil(t, st.New(key, input))

	fetched := map[int]string{}
	require.Nil(t, st.Get(key, &fetched))
	require.Equal(t, input, fetched)

	// `New` on an existing key must fail
	err := st.New(key, input)
	require.Equal(t, errors.StorageRecordAlreadyExists, err)
}

func TestLevelDBBackendSet(t *testing.T) {
	st, _ := NewTestMemoryLevelDBBackend()
	defer st.Close()

	key := "showme"

	// `Set` requires the record to exist
	require.Equal(t, errors.StorageRecordDoesNotExist, st.Set(key, 10))

	require.Nil(t, st.New(key, 10))
	require.Nil(t, st.Set(key, 20))

	var fetched int
	require.Nil(t, st.Get(key, &fetched))
	require.Equal(t, 20, fetched)
}

func TestLevelDBBackendRemove(t *testing.T) {
	st, _ := NewTestMemoryLevelDBBackend()
	defer st.Close()

	key := "showme"
	require.Nil(t, st.New(key, 10))

	require.Nil(t, st.Remove(key))

	exists, err := st.Has(key)
	require.Nil(t, err)
	require.False(t, exists)

	require.Equal(t, errors.StorageRecordDoesNotExist, st.Remove(key))
}

func TestLevelDBBackendGetIterator(t *testing.T) {
	st, _ := NewTestMemoryLevelDBBackend()
	defer st.Close()

	total := 30
	for i := 0; i < total; i++ {
		require.Nil(t, st.New(fmt.Sprintf("item-%03d", i), i))
	}
	require.Nil(t, st.New("other-000", 0))

	var collected []string
	iterFunc, closeFunc := st.GetIterator("item-", nil)
	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}
		collected = append(collected, string(item.Key))
	}
	closeFunc()

	require.Equal(t, total, len(collected))
	require.Equal(t, "item-000", collected[0])
	require.Equal(t, "item-029", collected[total-1])
}

func TestLevelDBBackendGetIteratorReverseAndLimit(t *testing.T) {
	st, _ := NewTestMemoryLevelDBBackend()
	defer st.Close()

	for i := 0; i < 10; i++ {
		require.Nil(t, st.New(fmt.Sprintf("item-%03d", i), i))
	}

	var collected []string
	iterFunc, closeFunc := st.GetIterator("item-", &IteratorOptions{Reverse: true, Limit: 3})
	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}
		collected = append(collected, string(item.Key))
	}
	closeFunc()

	require.Equal(t, 3, len(collected))
	require.Equal(t, "item-009", collected[0])
}

func TestLevelDBBackendTransaction(t *testing.T) {
	st, _ := NewTestMemoryLevelDBBackend()
	defer st.Close()

	ts, err := st.OpenTransaction()
	require.Nil(t, err)

	require.Nil(t, ts.New("showme", 10))
	require.Nil(t, ts.Discard())

	exists, err := st.Has("showme")
	require.Nil(t, err)
	require.False(t, exists)

	ts, err = st.OpenTransaction()
	require.Nil(t, err)
	require.Nil(t, ts.New("showme", 10))
	require.Nil(t, ts.Commit())

	exists, err = st.Has("showme")
	require.Nil(t, err)
	require.True(t, exists)
}
