package rawsock

import (
	"encoding/binary"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum_RFC1071Example(t *testing.T) {
	// RFC 1071 section 3: words sum to 0xddf2
	data := []byte{0x00, 0x01, 0xf2, 0x03, 0xf4, 0xf5, 0xf6, 0xf7}
	assert.Equal(t, uint16(^uint16(0xddf2)), Checksum(data))
}

func TestChecksum_OddLength(t *testing.T) {
	// trailing byte is the high octet of a zero-padded word
	assert.Equal(t, uint16(0xfeff), Checksum([]byte{0x01}))
	assert.Equal(t, Checksum([]byte{0x12, 0x34, 0x56, 0x00}), Checksum([]byte{0x12, 0x34, 0x56}))
}

func TestChecksum_CarryFolding(t *testing.T) {
	data := []byte{0xff, 0xff, 0xff, 0xff, 0x00, 0x02}
	// 0xffff + 0xffff + 0x0002 = 0x20000 -> 0x0002 after folding
	assert.Equal(t, uint16(^uint16(0x0002)), Checksum(data))
}

func TestChecksum_EmbeddedVerifiesToZero(t *testing.T) {
	buffers := [][]byte{
		{0x45, 0x00, 0x00, 0x1c, 0x00, 0x00, 0x40, 0x00, 0x40, 0x11, 0x00, 0x00},
		{0xde, 0xad, 0xbe, 0xef, 0x00, 0x00, 0x13, 0x37},
		make([]byte, 20),
	}
	for _, b := range buffers {
		buf := append([]byte(nil), b...)
		binary.BigEndian.PutUint16(buf[len(buf)-4:len(buf)-2], 0)
		sum := Checksum(buf)
		binary.BigEndian.PutUint16(buf[len(buf)-4:len(buf)-2], sum)
		assert.Equal(t, uint16(0), Checksum(buf), "buffer % x", b)
	}
}

func TestChecksum_LoopbackZeroTCPHeaderGolden(t *testing.T) {
	lo := net.ParseIP("127.0.0.1")
	pseudo, err := PseudoHeaderV4(lo, lo, ProtoTCP, TCPHeaderLen)
	require.NoError(t, err)

	buf := append(pseudo, make([]byte, TCPHeaderLen)...)
	assert.Equal(t, uint16(0x01e3), Checksum(buf))
	assert.Equal(t, Checksum(buf), Checksum(buf))
}
