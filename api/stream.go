package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// MessageType is the "type" tag on every stream message.
type MessageType string

const (
	// Server to kiosk
	MsgFrame            MessageType = "frame"
	MsgSessionStarted   MessageType = "session_started"
	MsgSessionCompleted MessageType = "session_completed"
	MsgError            MessageType = "error"

	// Kiosk to server
	MsgStartSession MessageType = "start_session"
	MsgStopSession  MessageType = "stop_session"
)

// StreamPath is where the backend serves the camera stream.
const StreamPath = "/ws/stream"

// ErrUnknownMessage is returned for messages whose type tag is not one of
// the inbound kinds.
var ErrUnknownMessage = errors.New("unknown stream message")

// Message is an inbound stream message: one of FrameMessage,
// SessionStartedMessage, SessionCompletedMessage or ErrorMessage.
type Message interface {
	Type() MessageType
	inbound()
}

// FrameMessage carries one base64 JPEG camera frame.
type FrameMessage struct {
	Data      string `json:"data"`
	Timestamp string `json:"timestamp"`
}

// SessionStartedMessage announces that a capture session began.
type SessionStartedMessage struct {
	SessionID string  `json:"session_id"`
	Frequency float64 `json:"frequency"`
	Duration  float64 `json:"duration"`
}

// SessionCompletedMessage announces the end of a session and its image.
type SessionCompletedMessage struct {
	SessionID string `json:"session_id"`
	ImagePath string `json:"image_path"`
}

// ErrorMessage reports a server-side failure.
type ErrorMessage struct {
	Message string `json:"message"`
}

func (FrameMessage) Type() MessageType            { return MsgFrame }
func (SessionStartedMessage) Type() MessageType   { return MsgSessionStarted }
func (SessionCompletedMessage) Type() MessageType { return MsgSessionCompleted }
func (ErrorMessage) Type() MessageType            { return MsgError }

func (FrameMessage) inbound()            {}
func (SessionStartedMessage) inbound()   {}
func (SessionCompletedMessage) inbound() {}
func (ErrorMessage) inbound()            {}

// DataURL returns the frame as an image URL.
func (m FrameMessage) DataURL() string {
	return "data:image/jpeg;base64," + m.Data
}

type envelope struct {
	Type MessageType `json:"type"`
}

// DecodeMessage parses an inbound message, rejecting unknown type tags.
func DecodeMessage(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	var (
		m   Message
		err error
	)
	switch env.Type {
	case MsgFrame:
		var f FrameMessage
		err = json.Unmarshal(data, &f)
		m = f
	case MsgSessionStarted:
		var st SessionStartedMessage
		err = json.Unmarshal(data, &st)
		m = st
	case MsgSessionCompleted:
		var c SessionCompletedMessage
		err = json.Unmarshal(data, &c)
		m = c
	case MsgError:
		var e ErrorMessage
		err = json.Unmarshal(data, &e)
		m = e
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, env.Type)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Command is an outbound stream message: StartSession or StopSession.
type Command interface {
	Type() MessageType
	outbound()
}

// StartSession asks the backend to start capturing.
type StartSession struct {
	Frequency float64 `json:"frequency"`
	Duration  float64 `json:"duration"`
}

// StopSession asks the backend to finish the current capture.
type StopSession struct{}

func (StartSession) Type() MessageType { return MsgStartSession }
func (StopSession) Type() MessageType  { return MsgStopSession }

func (StartSession) outbound() {}
func (StopSession) outbound()  {}

// EncodeCommand serializes c with its type tag.
func EncodeCommand(c Command) ([]byte, error) {
	switch c := c.(type) {
	case StartSession:
		return json.Marshal(struct {
			Type MessageType `json:"type"`
			StartSession
		}{c.Type(), c})
	case StopSession:
		return json.Marshal(envelope{Type: c.Type()})
	}
	return nil, fmt.Errorf("api: unsupported command %T", c)
}

// StreamURL builds the WebSocket URL for a page served over protocol
// ("http:" or "https:") from host.
func StreamURL(protocol, host string) string {
	scheme := "ws"
	if protocol == "https:" {
		scheme = "wss"
	}
	u := url.URL{Scheme: scheme, Host: host, Path: StreamPath}
	return u.String()
}

// Handler receives stream events. Register it with Stream.Subscribe.
type Handler interface {
	HandleFrame(FrameMessage)
	HandleSessionStarted(SessionStartedMessage)
	HandleSessionCompleted(SessionCompletedMessage)
	HandleError(ErrorMessage)
	HandleConnection(connected bool)
}

// HandlerFuncs adapts plain functions to Handler. Nil fields ignore their
// event.
type HandlerFuncs struct {
	Frame            func(FrameMessage)
	SessionStarted   func(SessionStartedMessage)
	SessionCompleted func(SessionCompletedMessage)
	Error            func(ErrorMessage)
	Connection       func(connected bool)
}

func (h HandlerFuncs) HandleFrame(m FrameMessage) {
	if h.Frame != nil {
		h.Frame(m)
	}
}

func (h HandlerFuncs) HandleSessionStarted(m SessionStartedMessage) {
	if h.SessionStarted != nil {
		h.SessionStarted(m)
	}
}

func (h HandlerFuncs) HandleSessionCompleted(m SessionCompletedMessage) {
	if h.SessionCompleted != nil {
		h.SessionCompleted(m)
	}
}

func (h HandlerFuncs) HandleError(m ErrorMessage) {
	if h.Error != nil {
		h.Error(m)
	}
}

func (h HandlerFuncs) HandleConnection(connected bool) {
	if h.Connection != nil {
		h.Connection(connected)
	}
}

// Conn is an open transport.
type Conn interface {
	Send(data []byte) error
	Close() error
}

// Listener receives transport events. Stream implements it.
type Listener interface {
	Opened()
	Received(data []byte)
	Closed(err error)
}

// Dialer opens a transport to url and reports its events to l.
type Dialer func(url string, l Listener) (Conn, error)

type subscription struct {
	id int
	h  Handler
}

// Stream is the kiosk side of the camera stream. It never reconnects on its
// own; call Connect again after a close.
type Stream struct {
	url  string
	dial Dialer

	conn          Conn
	connected     bool
	sessionActive bool

	subs   []subscription
	nextID int
}

// NewStream creates a disconnected stream.
func NewStream(url string, dial Dialer) *Stream {
	return &Stream{url: url, dial: dial}
}

// Connect dials the stream. Connecting an open stream does nothing.
func (s *Stream) Connect() error {
	if s.conn != nil {
		return nil
	}
	conn, err := s.dial(s.url, s)
	if err != nil {
		return &NetworkError{Op: "dial", Path: s.url, Err: err}
	}
	s.conn = conn
	return nil
}

// Connected reports whether the transport is open.
func (s *Stream) Connected() bool {
	return s.connected
}

// SessionActive reports whether a capture session is running.
func (s *Stream) SessionActive() bool {
	return s.sessionActive
}

// Subscribe registers h and returns a function that removes it.
func (s *Stream) Subscribe(h Handler) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, h: h})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// StartSession asks the backend to start capturing.
func (s *Stream) StartSession(frequency, duration float64) error {
	if err := s.send(StartSession{Frequency: frequency, Duration: duration}); err != nil {
		return err
	}
	s.sessionActive = true
	return nil
}

// StopSession ends the running session. Without one it does nothing.
func (s *Stream) StopSession() error {
	if !s.connected || !s.sessionActive {
		return nil
	}
	if err := s.send(StopSession{}); err != nil {
		return err
	}
	s.sessionActive = false
	return nil
}

func (s *Stream) send(c Command) error {
	if !s.connected || s.conn == nil {
		return &NetworkError{Op: string(c.Type()), Path: s.url, Err: ErrNotConnected}
	}
	data, err := EncodeCommand(c)
	if err != nil {
		return err
	}
	if err := s.conn.Send(data); err != nil {
		return &NetworkError{Op: string(c.Type()), Path: s.url, Err: err}
	}
	return nil
}

// Close shuts the transport down.
func (s *Stream) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.Closed(nil)
	return err
}

// Opened implements Listener.
func (s *Stream) Opened() {
	s.connected = true
	netDebug("stream connected")
	for _, sub := range s.snapshot() {
		sub.h.HandleConnection(true)
	}
}

// Received implements Listener. Undecodable messages are logged and dropped.
func (s *Stream) Received(data []byte) {
	m, err := DecodeMessage(data)
	if err != nil {
		netDebug("dropping stream message:", err.Error())
		return
	}
	s.dispatch(m)
}

// Closed implements Listener.
func (s *Stream) Closed(err error) {
	wasConnected := s.connected || s.conn != nil
	s.conn = nil
	s.connected = false
	s.sessionActive = false
	if !wasConnected {
		return
	}
	if err != nil {
		netDebug("stream closed:", err.Error())
	}
	for _, sub := range s.snapshot() {
		sub.h.HandleConnection(false)
	}
}

func (s *Stream) dispatch(m Message) {
	switch m := m.(type) {
	case SessionStartedMessage:
		s.sessionActive = true
	case SessionCompletedMessage:
		s.sessionActive = false
	case ErrorMessage:
		netDebug("stream error:", m.Message)
	}
	for _, sub := range s.snapshot() {
		switch m := m.(type) {
		case FrameMessage:
			sub.h.HandleFrame(m)
		case SessionStartedMessage:
			sub.h.HandleSessionStarted(m)
		case SessionCompletedMessage:
			sub.h.HandleSessionCompleted(m)
		case ErrorMessage:
			sub.h.HandleError(m)
		}
	}
}

func (s *Stream) snapshot() []subscription {
	return append([]subscription(nil), s.subs...)
}
