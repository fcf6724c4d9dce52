package handler

import (
	"bytes"
	"sync"
)

// responseBufferSize covers a typical character summary or tree slice
// without growing.
const responseBufferSize = 512

// encodeBuffers holds reusable buffers for response encoding.
var encodeBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return encodeBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	encodeBuffers.Put(buf)
}
