package playback

import "sync"

// MockTransport is a test double for Transport.
type MockTransport struct {
	mu        sync.Mutex
	handle    *MockHandle
	openErr   error
	openCalls []string
}

// NewMockTransport creates a transport whose Open returns a fresh
// MockHandle for testing.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

func (m *MockTransport) Open(channel string) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openCalls = append(m.openCalls, channel)
	if m.openErr != nil {
		return nil, m.openErr
	}
	m.handle = NewMockHandle()
	return m.handle, nil
}

func (m *MockTransport) SetOpenError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openErr = err
}

// Handle returns the handle produced by the last Open, or nil.
func (m *MockTransport) Handle() *MockHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handle
}

func (m *MockTransport) OpenCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.openCalls...)
}

// MockHandle is a test double for Handle. Tracks keep "playing" until
// FinishTrack or Stop is called.
type MockHandle struct {
	mu           sync.Mutex
	playing      bool
	disconnected bool
	playErrs     map[string]error
	playCalls    []string
}

func NewMockHandle() *MockHandle {
	return &MockHandle{playErrs: map[string]error{}}
}

func (m *MockHandle) Play(track string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls = append(m.playCalls, track)
	if err := m.playErrs[track]; err != nil {
		return err
	}
	m.playing = true
	return nil
}

func (m *MockHandle) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *MockHandle) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
}

func (m *MockHandle) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disconnected = true
}

// FinishTrack simulates the track reaching its natural end.
func (m *MockHandle) FinishTrack() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
}

// SetPlayError makes Play fail for one specific track.
func (m *MockHandle) SetPlayError(track string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErrs[track] = err
}

func (m *MockHandle) PlayCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playCalls...)
}

func (m *MockHandle) Disconnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disconnected
}
