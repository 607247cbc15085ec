package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
)

// PreviewLines is how many trailing lines the upload form shows.
const PreviewLines = 20

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Preview describes a local file about to be uploaded.
type Preview struct {
	Path  string
	Size  int64
	Lines []string
}

// HumanSize renders the file size as "1.2 MB".
func (p Preview) HumanSize() string {
	return humanize.Bytes(uint64(max(p.Size, 0)))
}

// Load stats path and reads its last n lines. Unlike Read, a missing file or
// a directory is an error since the user picked it explicitly.
func Load(path string, n int) (Preview, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Preview{}, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return Preview{}, fmt.Errorf("%s is a directory", path)
	}
	lines, err := Read(path, n)
	if err != nil {
		return Preview{}, err
	}
	return Preview{Path: path, Size: info.Size(), Lines: lines}, nil
}
