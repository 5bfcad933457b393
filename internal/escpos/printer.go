package escpos

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
)

// chunkSizes are tried largest-first: some printer network boards silently
// drop writes above their buffer size, so delivery walks down the list until
// a full write succeeds. A flat scan, no back-off.
var chunkSizes = []int{512, 256, 128, 64}

const (
	dialTimeout  = 3 * time.Second
	writeTimeout = 5 * time.Second
)

// Printer delivers ESC/POS payloads to a network thermal printer.
type Printer struct {
	addr string
}

// NewPrinter returns a printer client for addr ("host:9100"). An empty addr
// produces a disabled printer whose Print is a no-op error.
func NewPrinter(addr string) *Printer {
	return &Printer{addr: addr}
}

func (p *Printer) Enabled() bool { return p.addr != "" }

// Print sends the payload, trying each candidate chunk size in order until
// one delivers the full sequence. Each failed attempt reopens the connection.
func (p *Printer) Print(ctx context.Context, payload []byte) error {
	if p.addr == "" {
		return fmt.Errorf("escpos: no printer configured")
	}

	var lastErr error
	for _, size := range chunkSizes {
		if err := p.printChunked(ctx, payload, size); err != nil {
			log.Warn().Err(err).Int("chunk_size", size).Str("printer", p.addr).
				Msg("escpos: delivery attempt failed")
			lastErr = err
			continue
		}
		log.Info().Int("chunk_size", size).Int("bytes", len(payload)).Str("printer", p.addr).
			Msg("escpos: receipt delivered")
		return nil
	}
	return fmt.Errorf("escpos: all chunk sizes failed: %w", lastErr)
}

func (p *Printer) printChunked(ctx context.Context, payload []byte, size int) error {
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", p.addr, err)
	}
	defer conn.Close()

	for off := 0; off < len(payload); off += size {
		end := off + size
		if end > len(payload) {
			end = len(payload)
		}
		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return err
		}
		if _, err := conn.Write(payload[off:end]); err != nil {
			return fmt.Errorf("write chunk at %d: %w", off, err)
		}
	}
	return nil
}
