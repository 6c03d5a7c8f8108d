package voice

import (
	"strings"
	"sync"
	"time"

	"jeevanid/internal/lang"
)

const (
	// DefaultIdleWindow is how long the session waits after a final
	// fragment before delivering the accumulated transcript.
	DefaultIdleWindow = 2 * time.Second
	// DefaultMaxDuration is the hard ceiling after which the session ends
	// unconditionally.
	DefaultMaxDuration = 15 * time.Second
)

// Result is the outcome of one capture session.
type Result struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

// Callbacks receive session events. OnResult fires at most once; OnEnd
// always fires exactly once when the session is over.
type Callbacks struct {
	OnResult  func(Result)
	OnInterim func(text string)
	OnError   func(message string)
	OnEnd     func()
}

// Config tunes the session timers. Zero values use the defaults; tests
// shrink them.
type Config struct {
	IdleWindow  time.Duration
	MaxDuration time.Duration
}

// Session accumulates final transcript fragments from a client-side speech
// recognizer. Each final fragment re-arms an idle timer; when the speaker
// goes quiet for the idle window, the joined transcript and the last
// reported confidence are delivered once and the session ends. The ceiling
// timer ends the session no matter what.
//
// Sessions are constructed per connection. There is no shared state between
// sessions and a fresh instance per test needs no setup.
type Session struct {
	mu        sync.Mutex
	cfg       Config
	cb        Callbacks
	fragments []string
	lastConf  float64
	idle      *time.Timer
	ceiling   *time.Timer
	done      bool
}

// NewSession creates a session and starts its ceiling timer.
func NewSession(cfg Config, cb Callbacks) *Session {
	if cfg.IdleWindow <= 0 {
		cfg.IdleWindow = DefaultIdleWindow
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = DefaultMaxDuration
	}
	s := &Session{cfg: cfg, cb: cb}
	s.ceiling = time.AfterFunc(cfg.MaxDuration, func() { s.flush() })
	return s
}

// Interim echoes a non-final fragment for live display. Interim text is
// never accumulated and carries no confidence; only final fragments do.
func (s *Session) Interim(text string) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	cb := s.cb.OnInterim
	s.mu.Unlock()
	if cb != nil {
		cb(text)
	}
}

// Final appends a final fragment and re-arms the idle timer.
func (s *Session) Final(text string, confidence float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	if t := strings.TrimSpace(text); t != "" {
		s.fragments = append(s.fragments, t)
	}
	s.lastConf = confidence
	if s.idle != nil {
		s.idle.Stop()
	}
	s.idle = time.AfterFunc(s.cfg.IdleWindow, func() { s.flush() })
}

// benign recognizer error codes end the session quietly instead of
// surfacing an error to the user.
var benignErrorCodes = map[string]bool{
	"no-speech": true,
	"aborted":   true,
}

var errorMessages = map[string]string{
	"not-allowed":   "Microphone access was denied. Please allow microphone access and try again.",
	"audio-capture": "No microphone was found. Check that a microphone is connected.",
	"network":       "A network error interrupted speech recognition. Please try again.",
}

// RecognitionError handles a recognizer error code from the client.
func (s *Session) RecognitionError(code string) {
	if benignErrorCodes[code] {
		s.end(nil)
		return
	}
	msg, ok := errorMessages[code]
	if !ok {
		msg = "Speech recognition failed (" + code + "). Please try again."
	}
	s.end(func() {
		if s.cb.OnError != nil {
			s.cb.OnError(msg)
		}
	})
}

// Stop flushes whatever has accumulated and ends the session.
func (s *Session) Stop() {
	s.flush()
}

// Close ends the session without delivering a result, used when the
// connection drops.
func (s *Session) Close() {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.stopTimersLocked()
	s.mu.Unlock()
}

// flush delivers the accumulated transcript (if any) and ends the session.
func (s *Session) flush() {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.stopTimersLocked()
	transcript := strings.Join(s.fragments, " ")
	confidence := s.lastConf
	resultCb := s.cb.OnResult
	endCb := s.cb.OnEnd
	s.mu.Unlock()

	if transcript != "" && resultCb != nil {
		resultCb(Result{
			Transcript: transcript,
			Confidence: confidence,
			Language:   lang.Detect(transcript),
		})
	}
	if endCb != nil {
		endCb()
	}
}

// end marks the session done, runs the given notifier, then fires OnEnd.
func (s *Session) end(notify func()) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.stopTimersLocked()
	endCb := s.cb.OnEnd
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	if endCb != nil {
		endCb()
	}
}

func (s *Session) stopTimersLocked() {
	if s.idle != nil {
		s.idle.Stop()
	}
	if s.ceiling != nil {
		s.ceiling.Stop()
	}
}
