package io

import (
	"bytes"
	"encoding/binary"
	"fmt"
	goio "io"
	"os"

	"github.com/DataDog/zstd"
)

// Binary snapshots are always written little endian, whatever the host is.
var end = binary.LittleEndian

const (
	// gridMagic marks .grid snapshot files so that running the reader on
	// something else fails loudly instead of returning garbage.
	gridMagic   = int64(0x70696367)
	gridVersion = int64(1)
)

// GridHeader describes one binary snapshot of the mesh's node fields.
type GridHeader struct {
	Magic, Version   int64
	Nodes            [3]int64
	Origin, MaxBound [3]float64
	Spacing          [3]float64
	Step             int64
	Time             float64
	Blocks           int64
}

// GridBlock is one named per-node array inside a snapshot. Data holds
// Components values per node with the components interleaved, so its length
// is Components times the node count.
type GridBlock struct {
	Name       string
	Components int
	Data       []float64
}

// WriteGrid writes a snapshot header and its field blocks to fname. Each
// block's data is zstd compressed independently, which keeps the files small
// without giving up random access to individual fields.
func WriteGrid(fname string, hd *GridHeader, blocks []GridBlock) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	hd.Magic, hd.Version = gridMagic, gridVersion
	hd.Blocks = int64(len(blocks))
	if err := binary.Write(f, end, hd); err != nil {
		return err
	}

	for i := range blocks {
		if err := writeBlock(f, &blocks[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeBlock(f *os.File, b *GridBlock) error {
	raw := &bytes.Buffer{}
	if err := binary.Write(raw, end, b.Data); err != nil {
		return err
	}
	comp, err := zstd.Compress(nil, raw.Bytes())
	if err != nil {
		return err
	}

	name := []byte(b.Name)
	sizes := []int64{
		int64(len(name)), int64(b.Components),
		int64(len(b.Data)), int64(len(comp)),
	}
	if err := binary.Write(f, end, sizes); err != nil {
		return err
	}
	if _, err := f.Write(name); err != nil {
		return err
	}
	_, err = f.Write(comp)
	return err
}

// ReadGrid reads back a snapshot written by WriteGrid.
func ReadGrid(fname string) (*GridHeader, []GridBlock, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	hd := &GridHeader{}
	if err := binary.Read(f, end, hd); err != nil {
		return nil, nil, err
	}
	if hd.Magic != gridMagic {
		return nil, nil, fmt.Errorf(
			"%s is not a .grid snapshot: magic number mismatch.", fname,
		)
	}
	if hd.Version != gridVersion {
		return nil, nil, fmt.Errorf(
			"%s has snapshot version %d, but this build reads version %d.",
			fname, hd.Version, gridVersion,
		)
	}

	blocks := make([]GridBlock, hd.Blocks)
	for i := range blocks {
		if err := readBlock(f, &blocks[i]); err != nil {
			return nil, nil, err
		}
	}
	return hd, blocks, nil
}

func readBlock(f *os.File, b *GridBlock) error {
	sizes := make([]int64, 4)
	if err := binary.Read(f, end, sizes); err != nil {
		return err
	}

	name := make([]byte, sizes[0])
	if _, err := goio.ReadFull(f, name); err != nil {
		return err
	}
	comp := make([]byte, sizes[3])
	if _, err := goio.ReadFull(f, comp); err != nil {
		return err
	}

	raw, err := zstd.Decompress(nil, comp)
	if err != nil {
		return err
	}

	b.Name = string(name)
	b.Components = int(sizes[1])
	b.Data = make([]float64, sizes[2])
	return binary.Read(bytes.NewReader(raw), end, b.Data)
}
