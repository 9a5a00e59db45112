package shift

import "sync"

// Session — состояние одной смены, принадлежащее одному оператору:
// журнал, реестр посетителей и личность оператора. Все составные
// операции над парой журнал+реестр выполняются под mu.
type Session struct {
	mu       sync.Mutex
	Username string
	IsAdmin  bool
	Ledger   *Ledger
	Registry *Registry
}

// Manager владеет активными сессиями и переходящим остатком кассы.
//
// Остаток обновляется при закрытии смены: real_cash закрытой смены
// становится начальным остатком следующей.
type Manager struct {
	mu       sync.Mutex
	cash     float64
	sessions map[string]*Session
}

// NewManager создаёт менеджер сессий с начальным остатком кассы.
func NewManager(openingCash float64) *Manager {
	return &Manager{
		cash:     openingCash,
		sessions: make(map[string]*Session),
	}
}

// Begin открывает смену для оператора: новый журнал с текущим остатком
// кассы и пустой реестр. Повторный вход возвращает уже открытую сессию.
func (m *Manager) Begin(username string, isAdmin bool) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[username]; ok {
		return sess
	}
	sess := &Session{
		Username: username,
		IsAdmin:  isAdmin,
		Ledger:   Open(m.cash),
		Registry: NewRegistry(),
	}
	m.sessions[username] = sess
	return sess
}

// Get возвращает активную сессию оператора, если она есть.
func (m *Manager) Get(username string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[username]
	return sess, ok
}

// End завершает сессию оператора и переносит пересчитанные наличные
// в остаток кассы для следующей смены.
func (m *Manager) End(username string, realCash float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, username)
	m.cash = realCash
}

// Cash возвращает текущий переходящий остаток кассы.
func (m *Manager) Cash() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cash
}
