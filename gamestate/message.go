package gamestate

import (
	"time"

	"github.com/kelindar/tibiavcr/protocol"
	"github.com/kelindar/tibiavcr/version"
)

// Message is one chat line or status message: an optional speaker identity
// and world position (for on-map speech bubbles), the text itself, and the
// tick it started being shown at.
type Message struct {
	Mode      version.MessageMode
	Author    string
	Position  Position
	HasPosition bool
	ChannelID int
	Text      string
	StartTick time.Duration
}

// messageRetention bounds how long a Message of each mode stays in the
// log before prune drops it. On-map speech bubbles are short-lived;
// channel and status text is kept much longer, matching how long a real
// client's chat window scrollback stays meaningful.
var messageRetention = map[version.MessageMode]time.Duration{
	version.MessageSay:                 4 * time.Second,
	version.MessageWhisper:              4 * time.Second,
	version.MessageYell:                 4 * time.Second,
	version.MessagePrivateFrom:          30 * time.Second,
	version.MessagePrivateTo:            30 * time.Second,
	version.MessageChannelYellow:        2 * time.Minute,
	version.MessageChannelWhite:         2 * time.Minute,
	version.MessageBroadcast:            2 * time.Minute,
	version.MessageGamemasterBroadcast:  2 * time.Minute,
	version.MessageAnonymousPrivate:     30 * time.Second,
	version.MessageLook:                 6 * time.Second,
	version.MessageWarning:              6 * time.Second,
	version.MessageLoginAdvice:          10 * time.Second,
	version.MessageFailure:              6 * time.Second,
	version.MessageStatusDefault:        6 * time.Second,
	version.MessageStatusSmall:          6 * time.Second,
}

func retentionOf(m version.MessageMode) time.Duration {
	if d, ok := messageRetention[m]; ok {
		return d
	}
	return 6 * time.Second
}

// MessageLog keeps the full history of messages applied so far; prune
// removes entries whose retention window has elapsed as of now.
type MessageLog struct {
	messages []Message
}

func newMessageLog() *MessageLog { return &MessageLog{} }

// Append adds m to the log.
func (l *MessageLog) Append(m Message) { l.messages = append(l.messages, m) }

// All returns every message currently retained.
func (l *MessageLog) All() []Message { return l.messages }

// Visible returns the messages whose retention window has not yet elapsed
// as of tick now, without mutating the log.
func (l *MessageLog) Visible(now time.Duration) []Message {
	out := l.messages[:0:0]
	for _, m := range l.messages {
		if now-m.StartTick < retentionOf(m.Mode) {
			out = append(out, m)
		}
	}
	return out
}

// Prune permanently drops messages whose retention window has elapsed as
// of tick now.
func (l *MessageLog) Prune(now time.Duration) {
	kept := l.messages[:0]
	for _, m := range l.messages {
		if now-m.StartTick < retentionOf(m.Mode) {
			kept = append(kept, m)
		}
	}
	l.messages = kept
}

func (s *State) applyMessage(e protocol.Event) error {
	msg := Message{
		Mode:      version.MessageMode(e.Mode),
		Author:    e.Author,
		Text:      e.Text,
		ChannelID: e.ChannelID,
		StartTick: s.CurrentTick,
	}
	if e.Kind == protocol.EventCreatureSpokeOnMap {
		msg.Position = e.Position
		msg.HasPosition = true
	}
	s.Messages.Append(msg)
	return nil
}
