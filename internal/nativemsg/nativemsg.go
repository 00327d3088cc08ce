// Package nativemsg speaks the browser native messaging protocol: each
// message is a 4-byte little-endian length followed by that many bytes of
// UTF-8 JSON.
package nativemsg

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"tbo-go/internal/dispatch"
	"tbo-go/internal/tbo"
)

const (
	// MaxOutgoing is the browser's limit on a single host-to-extension message.
	MaxOutgoing = 1 << 20
	// MaxIncoming is the browser's limit on a single extension-to-host message.
	MaxIncoming = 64 << 20
)

var ErrTooLarge = errors.New("message exceeds size limit")

// ReadMessage reads one framed message. It returns io.EOF when r ends
// cleanly between messages.
func ReadMessage(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading length: %w", err)
	}

	n := binary.LittleEndian.Uint32(header[:])
	if n > MaxIncoming {
		return nil, fmt.Errorf("%w: incoming %d bytes", ErrTooLarge, n)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("reading %d byte message: %w", n, err)
	}
	return buf, nil
}

// WriteMessage frames payload and writes it to w.
func WriteMessage(w io.Writer, payload []byte) error {
	if len(payload) > MaxOutgoing {
		return fmt.Errorf("%w: outgoing %d bytes", ErrTooLarge, len(payload))
	}

	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing length: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	return nil
}

// Host serves dispatch requests over a native messaging stream.
type Host struct {
	dispatcher *dispatch.Dispatcher
	logger     tbo.Logger
}

func NewHost(dispatcher *dispatch.Dispatcher, logger tbo.Logger) *Host {
	return &Host{dispatcher: dispatcher, logger: logger}
}

// Serve answers messages from r on w, one envelope per message, until r hits
// EOF or ctx is cancelled. A response too large to send is replaced by an
// error envelope.
func (h *Host) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	h.logger.Info("native messaging host started")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := ReadMessage(r)
		if errors.Is(err, io.EOF) {
			h.logger.Info("native messaging host stopped")
			return nil
		}
		if err != nil {
			return err
		}

		payload, err := h.encode(h.dispatcher.Handle(ctx, msg))
		if err != nil {
			return err
		}
		if err := WriteMessage(w, payload); err != nil {
			return err
		}
	}
}

func (h *Host) encode(resp dispatch.Response) ([]byte, error) {
	payload, err := json.Marshal(resp)
	if err != nil {
		payload, err = json.Marshal(dispatch.Failure(fmt.Errorf("encoding response: %w", err)))
		if err != nil {
			return nil, err
		}
	}
	if len(payload) <= MaxOutgoing {
		return payload, nil
	}

	h.logger.Warn("response too large for native messaging", "bytes", len(payload))
	return json.Marshal(dispatch.Failure(fmt.Errorf(
		"%w: response is %d bytes, native messaging allows %d; use the HTTP export instead",
		ErrTooLarge, len(payload), MaxOutgoing)))
}
