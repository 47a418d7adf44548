package tracker

import "time"

type (
	// Alert is a message shown to the user for a while on the status line.
	Alert struct {
		Message  string
		Priority AlertPriority
		Duration time.Duration
		expires  time.Time
	}

	AlertPriority int

	// Alerts holds the alert currently on screen. A new alert replaces the
	// current one unless the current one has higher priority and has not
	// expired yet.
	Alerts struct {
		current Alert
		now     func() time.Time
	}
)

const (
	None AlertPriority = iota
	Info
	Warning
	Error
)

const defaultAlertDuration = 3 * time.Second

func (a *Alerts) Add(message string, priority AlertPriority) {
	a.AddAlert(Alert{Message: message, Priority: priority, Duration: defaultAlertDuration})
}

func (a *Alerts) AddAlert(alert Alert) {
	now := a.clock()
	if a.current.Priority > alert.Priority && now.Before(a.current.expires) {
		return
	}
	alert.expires = now.Add(alert.Duration)
	a.current = alert
}

// Current returns the alert to show, if it has not expired.
func (a *Alerts) Current() (Alert, bool) {
	if a.current.Priority == None || !a.clock().Before(a.current.expires) {
		return Alert{}, false
	}
	return a.current, true
}

func (a *Alerts) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

func (p AlertPriority) String() string {
	switch p {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "none"
}
