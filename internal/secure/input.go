// Package secure holds interactively entered secrets in memory protected by
// memguard: the plaintext lives in a locked, guarded buffer instead of a
// garbage-collected string while the CLI decides what to do with it.
package secure

import (
	"bufio"
	"errors"
	"io"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrEmptyInput is returned when the user enters nothing.
var ErrEmptyInput = errors.New("empty input")

// Input is one secret value read from the user. Callers must Destroy it when
// done to wipe the plaintext from memory.
type Input struct {
	buf       *memguard.LockedBuffer
	mu        sync.Mutex
	destroyed bool
}

// ReadLine reads a single line from r into protected memory. The trailing
// newline (and a carriage return, if any) is stripped and wiped from the
// intermediate buffer before it is handed to memguard.
func ReadLine(r io.Reader) (*Input, error) {
	line, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		memguard.WipeBytes(line)
		return nil, err
	}

	end := len(line)
	for end > 0 && (line[end-1] == '\n' || line[end-1] == '\r') {
		end--
	}
	if end == 0 {
		memguard.WipeBytes(line)
		return nil, ErrEmptyInput
	}

	// NewBufferFromBytes wipes the slice it is given; the stripped tail is
	// outside that slice and wiped by hand.
	tail := line[end:]
	buf := memguard.NewBufferFromBytes(line[:end])
	memguard.WipeBytes(tail)

	return &Input{buf: buf}, nil
}

// Bytes exposes the plaintext. The returned slice aliases the locked buffer
// and becomes invalid after Destroy.
func (in *Input) Bytes() []byte {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.destroyed {
		return nil
	}
	return in.buf.Bytes()
}

// Destroy wipes the plaintext. Idempotent.
func (in *Input) Destroy() {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.destroyed {
		return
	}
	in.buf.Destroy()
	in.destroyed = true
}
