// Package noff decodifica el encabezado de los ejecutables NOFF (Nachos Object File Format)
// que genera coff2noff: un número mágico y tres segmentos (código, datos inicializados y
// datos sin inicializar).
package noff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
)

const (
	// Magic identifica un ejecutable NOFF.
	Magic uint32 = 0x00badfad

	// HeaderSize es el tamaño en bytes del encabezado: diez palabras de 32 bits.
	HeaderSize = 40
)

var (
	ErrBadMagic    = errors.New("noff: invalid magic number")
	ErrShortHeader = errors.New("noff: header too short")
)

// Segment describe dónde está un segmento en el archivo y dónde va en memoria virtual.
type Segment struct {
	Size        uint32 `json:"size"`
	VirtualAddr uint32 `json:"virtual_addr"`
	InFileAddr  uint32 `json:"in_file_addr"`
}

// Header es el encabezado del ejecutable ya en el orden de bytes del host.
type Header struct {
	Magic      uint32  `json:"magic"`
	Code       Segment `json:"code"`
	InitData   Segment `json:"init_data"`
	UninitData Segment `json:"uninit_data"`
}

// Size es la suma de los tres segmentos, sin contar la pila.
func (h Header) Size() int {
	return int(h.Code.Size) + int(h.InitData.Size) + int(h.UninitData.Size)
}

// Decode interpreta buf como encabezado NOFF. Los ejecutables se generan en little-endian;
// si el mágico no coincide pero sí coincide con los bytes invertidos, se devuelve la copia
// con todas las palabras invertidas. buf no se modifica.
func Decode(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrShortHeader, len(buf))
	}

	h := decodeWords(buf, binary.LittleEndian)
	if h.Magic == Magic {
		return h, nil
	}
	if bits.ReverseBytes32(h.Magic) == Magic {
		return Swap(h), nil
	}
	return Header{}, fmt.Errorf("%w: %#08x", ErrBadMagic, h.Magic)
}

// ReadHeader lee el encabezado desde el comienzo del ejecutable.
func ReadHeader(r io.ReaderAt) (Header, error) {
	buf := make([]byte, HeaderSize)
	n, err := r.ReadAt(buf, 0)
	if n < HeaderSize {
		if err == nil || err == io.EOF {
			return Header{}, fmt.Errorf("%w: %d bytes", ErrShortHeader, n)
		}
		return Header{}, err
	}
	return Decode(buf)
}

// Swap invierte el orden de bytes de las diez palabras del encabezado.
func Swap(h Header) Header {
	swap := func(s Segment) Segment {
		return Segment{
			Size:        bits.ReverseBytes32(s.Size),
			VirtualAddr: bits.ReverseBytes32(s.VirtualAddr),
			InFileAddr:  bits.ReverseBytes32(s.InFileAddr),
		}
	}
	return Header{
		Magic:      bits.ReverseBytes32(h.Magic),
		Code:       swap(h.Code),
		InitData:   swap(h.InitData),
		UninitData: swap(h.UninitData),
	}
}

// Encode serializa el encabezado con el orden de bytes indicado.
func Encode(h Header, order binary.ByteOrder) []byte {
	buf := make([]byte, HeaderSize)
	for i, w := range h.words() {
		order.PutUint32(buf[i*4:], w)
	}
	return buf
}

func (h Header) words() [10]uint32 {
	return [10]uint32{
		h.Magic,
		h.Code.Size, h.Code.VirtualAddr, h.Code.InFileAddr,
		h.InitData.Size, h.InitData.VirtualAddr, h.InitData.InFileAddr,
		h.UninitData.Size, h.UninitData.VirtualAddr, h.UninitData.InFileAddr,
	}
}

func decodeWords(buf []byte, order binary.ByteOrder) Header {
	word := func(i int) uint32 { return order.Uint32(buf[i*4:]) }
	return Header{
		Magic:      word(0),
		Code:       Segment{Size: word(1), VirtualAddr: word(2), InFileAddr: word(3)},
		InitData:   Segment{Size: word(4), VirtualAddr: word(5), InFileAddr: word(6)},
		UninitData: Segment{Size: word(7), VirtualAddr: word(8), InFileAddr: word(9)},
	}
}
