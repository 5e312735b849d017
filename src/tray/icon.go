package tray

import (
	"bytes"
	"encoding/binary"
)

const iconSize = 16

type iconDir struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

type iconDirEntry struct {
	Width       uint8
	Height      uint8
	ColorCount  uint8
	Reserved    uint8
	Planes      uint16
	BitCount    uint16
	BytesInRes  uint32
	ImageOffset uint32
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// Icon returns a 16x16 32-bit .ico: a dark frame around a light square.
func Icon() []byte {
	const (
		pixelBytes = iconSize * iconSize * 4
		maskStride = 4 // 16 bits of mask padded to 32
		maskBytes  = iconSize * maskStride
		headerSize = 40
		dataOffset = 6 + 16
	)

	var buf bytes.Buffer
	write := func(v interface{}) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	write(iconDir{Type: 1, Count: 1})
	write(iconDirEntry{
		Width:       iconSize,
		Height:      iconSize,
		Planes:      1,
		BitCount:    32,
		BytesInRes:  headerSize + pixelBytes + maskBytes,
		ImageOffset: dataOffset,
	})
	write(bitmapInfoHeader{
		Size:      headerSize,
		Width:     iconSize,
		Height:    iconSize * 2, // colour rows plus mask rows
		Planes:    1,
		BitCount:  32,
		SizeImage: pixelBytes + maskBytes,
	})

	frame := [4]byte{0x40, 0x30, 0x20, 0xFF} // BGRA
	fill := [4]byte{0xF0, 0xE0, 0xD0, 0xFF}
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			if x < 2 || y < 2 || x >= iconSize-2 || y >= iconSize-2 {
				buf.Write(frame[:])
			} else {
				buf.Write(fill[:])
			}
		}
	}
	buf.Write(make([]byte, maskBytes))

	return buf.Bytes()
}
