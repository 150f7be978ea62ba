package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"grimdelve/internal/domain"
)

const (
	MagicHeader string = `GCRP` // 4 байта
	Version1    uint32 = 1
)

// ReplayFileHeader - точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type ReplayFileHeader struct {
	Magic        [4]byte // 4 байта
	Version      uint32  // 4 байта
	Seed         int64   // 8 байт
	Timestamp    int64   // 8 байт
	Depth        int32   // 4 байта
	CommandCount int32   // 4 байта
}

// CommandRecord - запись одной команды. Фиксированный размер:
// энергетической модели не нужны динамические payload'ы,
// направление помещается в два байта.
type CommandRecord struct {
	Turn int32 // 4
	Cmd  uint8 // 1
	Dx   int8  // 1
	Dy   int8  // 1
	_    uint8 // 1, выравнивание
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) *ReplayService {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &ReplayService{SaveDir: dir}
}

func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%d_d%d_%d.gcrp", session.Seed, session.Depth, session.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writeBinary(f, session); err != nil {
		return "", err
	}
	return path, nil
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	header := ReplayFileHeader{
		Version:      Version1,
		Seed:         s.Seed,
		Timestamp:    s.Timestamp,
		Depth:        int32(s.Depth),
		CommandCount: int32(len(s.Commands)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, cmd := range s.Commands {
		rec := CommandRecord{
			Turn: int32(cmd.Turn),
			Cmd:  uint8(cmd.Cmd),
			Dx:   cmd.Dx,
			Dy:   cmd.Dy,
		}
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("failed to write command %d: %w", cmd.Turn, err)
		}
	}

	return nil
}
