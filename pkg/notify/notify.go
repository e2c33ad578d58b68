package notify

import (
	"time"

	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelFailure Level = "failure"
)

type Notification struct {
	ID          string    `json:"id"`
	Level       Level     `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notifier surfaces a message to a human. Delivery is best effort and never reported
// back to the caller.
type Notifier interface {
	Notify(n Notification)
}

func Success(title, description string) Notification {
	return Notification{Level: LevelSuccess, Title: title, Description: description}
}

func Failure(title, description string) Notification {
	return Notification{Level: LevelFailure, Title: title, Description: description}
}

type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(n Notification) {
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("description", n.Description),
	}
	if n.Level == LevelFailure {
		l.logger.Warn("notification", fields...)
		return
	}
	l.logger.Info("notification", fields...)
}

type multi []Notifier

// Multi fans a notification out to every non-nil notifier.
func Multi(notifiers ...Notifier) Notifier {
	var m multi
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}

func (m multi) Notify(n Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}

type nop struct{}

func (nop) Notify(Notification) {}

func Nop() Notifier {
	return nop{}
}
