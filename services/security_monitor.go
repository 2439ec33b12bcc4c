package services

import (
	"log"
	"sync"
	"time"
)

// Failed login alerting defaults
const (
	FailedLoginWindow    = 10 * time.Minute
	FailedLoginThreshold = 5
	// alertCooldown limits alerts to one per IP in this period
	alertCooldown = time.Hour
	maxAlerts     = 100
)

// SecurityAlert represents a triggered security alert
type SecurityAlert struct {
	Timestamp time.Time
	IP        string
	Reason    string
	Level     string // "WARNING", "CRITICAL"
}

// LoginMonitor counts failed logins per IP across all accounts. Account
// lockout catches guessing against one user; this catches one client
// walking through many.
type LoginMonitor struct {
	mu        sync.Mutex
	window    time.Duration
	threshold int
	failures  map[string][]time.Time
	alerted   map[string]time.Time
	alerts    []SecurityAlert
}

// Monitor is the process-wide login monitor used by the login handler
var Monitor = NewLoginMonitor(FailedLoginWindow, FailedLoginThreshold)

// NewLoginMonitor alerts when an IP fails threshold times within window
func NewLoginMonitor(window time.Duration, threshold int) *LoginMonitor {
	return &LoginMonitor{
		window:    window,
		threshold: threshold,
		failures:  make(map[string][]time.Time),
		alerted:   make(map[string]time.Time),
	}
}

// TrackFailedLogin records a failure and returns the alert it raised, if any
func (m *LoginMonitor) TrackFailedLogin(ip string, now time.Time) *SecurityAlert {
	m.mu.Lock()
	defer m.mu.Unlock()

	recent := m.failures[ip][:0]
	windowStart := now.Add(-m.window)
	for _, t := range m.failures[ip] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}
	recent = append(recent, now)
	m.failures[ip] = recent

	if len(recent) < m.threshold {
		return nil
	}
	if last, ok := m.alerted[ip]; ok && now.Sub(last) < alertCooldown {
		return nil
	}
	m.alerted[ip] = now

	alert := SecurityAlert{
		Timestamp: now,
		IP:        ip,
		Reason:    "Multiple failed logins detected",
		Level:     "CRITICAL",
	}
	// Newest first
	m.alerts = append([]SecurityAlert{alert}, m.alerts...)
	if len(m.alerts) > maxAlerts {
		m.alerts = m.alerts[:maxAlerts]
	}
	log.Printf("[SECURITY ALERT] %s from IP: %s (%d in %s)", alert.Reason, ip, len(recent), m.window)
	return &alert
}

// RecentAlerts returns a copy of recent alerts, newest first
func (m *LoginMonitor) RecentAlerts() []SecurityAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SecurityAlert, len(m.alerts))
	copy(out, m.alerts)
	return out
}

// Prune drops failure windows and cooldowns that have expired; run from the scheduler
func (m *LoginMonitor) Prune(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ip, attempts := range m.failures {
		if len(attempts) == 0 || now.Sub(attempts[len(attempts)-1]) > m.window {
			delete(m.failures, ip)
		}
	}
	for ip, last := range m.alerted {
		if now.Sub(last) > alertCooldown {
			delete(m.alerted, ip)
		}
	}
}

// tracked reports how many IPs currently have failures on record
func (m *LoginMonitor) tracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.failures)
}
