package spherecache

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// ZlibStore wraps another Store and zlib-compresses payloads before they
// reach it. Sampling indices for video resolutions run to hundreds of
// megabytes raw and compress well, since adjacent samples differ little.
//
// Compressed entries are stored under the underlying key with a ".z"
// suffix, so a ZlibStore never reads or clobbers raw entries written by
// the inner store directly.
type ZlibStore struct {
	inner Store
	level int
}

// NewZlibStore wraps inner with compression at the default level.
func NewZlibStore(inner Store) *ZlibStore {
	return &ZlibStore{inner: inner, level: zlib.DefaultCompression}
}

// NewZlibStoreLevel wraps inner with compression at the given zlib level.
func NewZlibStoreLevel(inner Store, level int) *ZlibStore {
	return &ZlibStore{inner: inner, level: level}
}

type zlibWriterPoolItem struct {
	writer *zlib.Writer
	buf    *bytes.Buffer
}

var zlibWriterPool = sync.Pool{
	New: func() any {
		buf := new(bytes.Buffer)
		w, _ := zlib.NewWriterLevel(buf, zlib.DefaultCompression)
		return &zlibWriterPoolItem{writer: w, buf: buf}
	},
}

// Load reads and decompresses the payload for key.
func (z *ZlibStore) Load(key string) ([]byte, error) {
	compressed, err := z.inner.Load(key + ".z")
	if err != nil {
		return nil, err
	}
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("spherecache: corrupt compressed entry: %w", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("spherecache: corrupt compressed entry: %w", err)
	}
	return data, nil
}

// Store compresses the payload and stores it under key.
func (z *ZlibStore) Store(key string, data []byte) error {
	compressed, err := z.compress(data)
	if err != nil {
		return err
	}
	return z.inner.Store(key+".z", compressed)
}

func (z *ZlibStore) compress(data []byte) ([]byte, error) {
	// Pool writers for the default level, the common case.
	if z.level == zlib.DefaultCompression {
		item := zlibWriterPool.Get().(*zlibWriterPoolItem)
		item.buf.Reset()
		item.writer.Reset(item.buf)

		if _, err := item.writer.Write(data); err != nil {
			item.writer.Close()
			zlibWriterPool.Put(item)
			return nil, err
		}
		if err := item.writer.Close(); err != nil {
			zlibWriterPool.Put(item)
			return nil, err
		}

		result := make([]byte, item.buf.Len())
		copy(result, item.buf.Bytes())
		zlibWriterPool.Put(item)
		return result, nil
	}

	buf := new(bytes.Buffer)
	w, err := zlib.NewWriterLevel(buf, z.level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
