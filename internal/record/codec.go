package record

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
)

// ErrUnexpectedPayload is returned when a decoded message carries the wrong payload type
var ErrUnexpectedPayload = errors.New("unexpected payload")

// Codec handles message encoding/decoding
type Codec struct {
	enc *gob.Encoder
	dec *gob.Decoder
}

// NewEncoder creates an encoder-only codec
func NewEncoder(w io.Writer) *Codec {
	return &Codec{
		enc: gob.NewEncoder(w),
	}
}

// NewDecoder creates a decoder-only codec
func NewDecoder(r io.Reader) *Codec {
	return &Codec{
		dec: gob.NewDecoder(r),
	}
}

// Encode writes a message
func (c *Codec) Encode(msg *Message) error {
	return c.enc.Encode(msg)
}

// Decode reads a message
func (c *Codec) Decode() (*Message, error) {
	var msg Message
	if err := c.dec.Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// EncodeHighScore writes hs wrapped in a MsgHighScore message
func (c *Codec) EncodeHighScore(hs HighScore) error {
	return c.Encode(&Message{Type: MsgHighScore, Payload: hs})
}

// DecodeHighScore reads the next message and unwraps its HighScore payload
func (c *Codec) DecodeHighScore() (HighScore, error) {
	msg, err := c.Decode()
	if err != nil {
		return HighScore{}, err
	}
	if msg.Type != MsgHighScore {
		return HighScore{}, fmt.Errorf("%w: message type %d", ErrUnexpectedPayload, msg.Type)
	}
	hs, ok := msg.Payload.(HighScore)
	if !ok {
		return HighScore{}, fmt.Errorf("%w: %T", ErrUnexpectedPayload, msg.Payload)
	}
	return hs, nil
}
