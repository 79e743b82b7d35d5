package app

import (
	"olympschools_backend/internal/email"
	"olympschools_backend/internal/logger"
)

// MockEmailProvider используется для тестов и локальной разработки.
// Ссылку сброса пишет в лог, чтобы флоу можно было пройти руками.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error { return nil }

func (m *MockEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	return nil
}

func (m *MockEmailProvider) SendPasswordReset(to string, resetLink string) error {
	logger.Info("MOCK password reset email", "to", to, "link", resetLink)
	return nil
}

func (m *MockEmailProvider) Close() error { return nil }
