package skiplist

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_StoreAndLoad(t *testing.T) {
	m := New[string]()

	assert.True(t, m.IsEmpty())

	m.Store([]byte("bbb"), "2")
	m.Store([]byte("aaa"), "1")
	m.Store([]byte("ccc"), "3")

	assert.False(t, m.IsEmpty())
	assert.Equal(t, int64(3), m.Len())

	value, exists := m.Load([]byte("aaa"))
	require.True(t, exists)
	assert.Equal(t, "1", value)

	_, exists = m.Load([]byte("zzz"))
	assert.False(t, exists)

	// replacing a key swaps the value without growing the map
	m.Store([]byte("bbb"), "2'")
	assert.Equal(t, int64(3), m.Len())
	value, exists = m.Load([]byte("bbb"))
	require.True(t, exists)
	assert.Equal(t, "2'", value)
}

func TestMap_CursorOrder(t *testing.T) {
	m := New[int]()
	for _, key := range []string{"delta", "alpha", "echo", "bravo", "charlie"} {
		m.Store([]byte(key), len(key))
	}

	var keys []string
	cursor := m.NewCursor()
	for cursor.Next() {
		keys = append(keys, string(cursor.Key()))
	}

	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta", "echo"}, keys)
}

func TestMap_CursorSeek(t *testing.T) {
	m := New[int]()
	for i := 0; i < 100; i += 2 {
		m.Store([]byte(fmt.Sprintf("%03d", i)), i)
	}

	t.Run("existing key", func(t *testing.T) {
		cursor := m.NewCursor()
		require.True(t, cursor.Seek([]byte("042")))
		assert.Equal(t, "042", string(cursor.Key()))
		assert.Equal(t, 42, cursor.Value())
	})

	t.Run("absent key lands on next greater", func(t *testing.T) {
		cursor := m.NewCursor()
		require.True(t, cursor.Seek([]byte("043")))
		assert.Equal(t, "044", string(cursor.Key()))
	})

	t.Run("past the end", func(t *testing.T) {
		cursor := m.NewCursor()
		assert.False(t, cursor.Seek([]byte("999")))
		assert.False(t, cursor.Valid())
	})
}

func TestMap_ConcurrentReadersSingleWriter(t *testing.T) {
	m := New[uint64]()

	const total = 2000

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}

				// scans must always observe keys in order, never torn
				cursor := m.NewCursor()
				var last []byte
				for cursor.Next() {
					key := cursor.Key()
					if last != nil {
						assert.Less(t, string(last), string(key))
					}
					assert.Equal(t, string(key), fmt.Sprintf("%06d", cursor.Value()))
					last = key
				}
			}
		}()
	}

	for i := uint64(0); i < total; i++ {
		m.Store([]byte(fmt.Sprintf("%06d", i)), i)
	}
	close(done)
	wg.Wait()

	assert.Equal(t, int64(total), m.Len())
}
