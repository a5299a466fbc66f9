// asset_store.go - Fixed-size chunk reader for packed bitmap assets

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"io"
	"os"

	"go.uber.org/zap"
)

// Bitmap chunk sizes (1bpp, rows packed MSB first)
const (
	BG_WIDTH  = 96
	BG_HEIGHT = 48
	CG_WIDTH  = 24
	CG_HEIGHT = 48
	BG_CHUNK  = BG_WIDTH * BG_HEIGHT / 8
	CG_CHUNK  = CG_WIDTH * CG_HEIGHT / 8
	OP_CHUNK  = BG_CHUNK
	TITLE_BG  = 0
)

// AssetStore serves fixed-size bitmap chunks from a packed blob. A store
// whose file could not be opened is empty rather than an error.
type AssetStore struct {
	file      *os.File
	chunkSize int
	count     int
	log       *zap.Logger
}

func OpenAssetStore(path string, chunkSize int, log *zap.Logger) *AssetStore {
	s := &AssetStore{chunkSize: chunkSize, log: log}
	f, err := os.Open(path)
	if err != nil {
		log.Warn("asset store unavailable", zap.String("path", path), zap.Error(err))
		return s
	}
	info, err := f.Stat()
	if err != nil {
		log.Warn("asset store unavailable", zap.String("path", path), zap.Error(err))
		f.Close()
		return s
	}
	s.file = f
	if chunkSize > 0 {
		s.count = int(info.Size()) / chunkSize
	}
	return s
}

// ReadChunk returns the chunk at index, or false when it does not exist.
func (s *AssetStore) ReadChunk(index int) ([]byte, bool) {
	if s.file == nil || index < 0 || index >= s.count {
		return nil, false
	}
	buf := make([]byte, s.chunkSize)
	if _, err := s.file.ReadAt(buf, int64(index)*int64(s.chunkSize)); err != nil && err != io.EOF {
		s.log.Warn("asset chunk read failed", zap.Int("index", index), zap.Error(err))
		return nil, false
	}
	return buf, true
}

// Len is the number of whole chunks in the store.
func (s *AssetStore) Len() int {
	return s.count
}

func (s *AssetStore) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.count = 0
	return err
}
