package container

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/kelindar/tibiavcr/reader"
	"github.com/kelindar/tibiavcr/version"
	"github.com/stretchr/testify/require"
)

func testProfile() *version.Profile {
	return version.New(version.Triplet{Major: 10, Minor: 98})
}

// worldInitializedPacket builds a single OpWorldInitialized (0x0A) packet
// at position (100, 200, 7).
func worldInitializedPacket() []byte {
	buf := make([]byte, 6)
	buf[0] = 0x0A
	binary.LittleEndian.PutUint16(buf[1:3], 100)
	binary.LittleEndian.PutUint16(buf[3:5], 200)
	buf[5] = 7
	return buf
}

func TestDetectByExtension(t *testing.T) {
	f, ok := Detect("session.cam", nil)
	require.True(t, ok)
	require.Equal(t, FormatCam, f)

	f, ok = Detect("session.trp", nil)
	require.True(t, ok)
	require.Equal(t, FormatTRP, f)
}

func TestDetectByMagic(t *testing.T) {
	f, ok := Detect("unknown", []byte("TMV2rest"))
	require.True(t, ok)
	require.Equal(t, FormatTMV2, f)

	f, ok = Detect("unknown", []byte{0x37, 0x13, 0, 0})
	require.True(t, ok)
	require.Equal(t, FormatTRP, f)
}

func TestReadYATCSingleFrame(t *testing.T) {
	packet := worldInitializedPacket()

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(1500))
	binary.Write(&buf, binary.LittleEndian, uint16(len(packet)))
	buf.Write(packet)

	rec, partial, err := ReadYATC(reader.New(buf.Bytes()), testProfile(), RecoveryNone)
	require.NoError(t, err)
	require.False(t, partial)
	require.Len(t, rec.Frames, 1)
	require.Len(t, rec.Frames[0].Events, 1)
	require.Equal(t, 100, rec.Frames[0].Events[0].Position.X)
}

func TestReadYATCTruncatedRequiresRecovery(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(1500))
	binary.Write(&buf, binary.LittleEndian, uint16(10)) // claims 10 bytes, has none

	_, _, err := ReadYATC(reader.New(buf.Bytes()), testProfile(), RecoveryNone)
	require.Error(t, err)

	rec, partial, err := ReadYATC(reader.New(buf.Bytes()), testProfile(), RecoveryPartial)
	require.NoError(t, err)
	require.True(t, partial)
	require.Empty(t, rec.Frames)
}

func TestReadTTMFixedDelay(t *testing.T) {
	packet := worldInitializedPacket()

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint16(1098)) // Tibia version
	buf.WriteByte(0)                                       // no server name
	binary.Write(&buf, binary.LittleEndian, uint32(0))     // runtime
	binary.Write(&buf, binary.LittleEndian, uint16(len(packet)))
	buf.Write(packet)
	buf.WriteByte(1) // fixed 1s delay before the second frame
	binary.Write(&buf, binary.LittleEndian, uint16(len(packet)))
	buf.Write(packet)

	rec, partial, err := ReadTTM(reader.New(buf.Bytes()), testProfile(), RecoveryNone)
	require.NoError(t, err)
	require.False(t, partial)
	require.Len(t, rec.Frames, 2)
}

func TestReadTRPWithMagic(t *testing.T) {
	packet := worldInitializedPacket()

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint16(trpMagic))
	binary.Write(&buf, binary.LittleEndian, uint16(1098))
	binary.Write(&buf, binary.LittleEndian, uint32(250)) // runtime
	binary.Write(&buf, binary.LittleEndian, uint32(1))   // frame count
	binary.Write(&buf, binary.LittleEndian, uint32(250))
	binary.Write(&buf, binary.LittleEndian, uint16(len(packet)))
	buf.Write(packet)

	rec, partial, err := ReadTRP(reader.New(buf.Bytes()), testProfile(), RecoveryNone)
	require.NoError(t, err)
	require.False(t, partial)
	require.Len(t, rec.Frames, 1)
}

func TestQueryTRPVersionWithoutMagic(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint16(0xBEEF)) // not the magic
	binary.Write(&buf, binary.LittleEndian, uint16(0))      // skipped field
	binary.Write(&buf, binary.LittleEndian, uint16(1098))   // packed Tibia version

	v, ok := QueryTRPVersion(reader.New(buf.Bytes()))
	require.True(t, ok)
	require.Equal(t, 10, v.Major)
	require.Equal(t, 98, v.Minor)
}
