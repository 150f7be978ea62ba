package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"grimdelve/internal/domain"
)

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	session := &domain.ReplaySession{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Depth:     int(header.Depth),
		Commands:  make([]domain.ReplayCommand, header.CommandCount),
	}

	// 2. Читаем команды
	for i := 0; i < int(header.CommandCount); i++ {
		var rec CommandRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("failed to read command %d: %w", i, err)
		}
		session.Commands[i] = domain.ReplayCommand{
			Turn: int(rec.Turn),
			Cmd:  domain.CommandType(rec.Cmd),
			Dx:   rec.Dx,
			Dy:   rec.Dy,
		}
	}

	return session, nil
}
