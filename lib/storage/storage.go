package storage

type IterItem struct {
	N     uint64
	Key   []byte
	Value []byte
}

// Clone copies the item out of the iterator's shared buffers.
func (i IterItem) Clone() IterItem {
	item := IterItem{N: i.N}
	item.Key = append(item.Key, i.Key...)
	item.Value = append(item.Value, i.Value...)
	return item
}

type Item struct {
	Key   string
	Value interface{}
}

type IteratorOptions struct {
	Reverse bool
	Cursor  []byte
	Limit   uint64
}
