package email

// Provider определяет интерфейс для отправки email.
// Это внешний коллаборатор: сбой доставки логируется вызывающим кодом,
// но не откатывает уже закоммиченные изменения (например, созданный
// токен сброса остается рабочим).
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendTemplate отправляет email по HTML-шаблону
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// SendPasswordReset отправляет письмо со ссылкой для сброса пароля
	SendPasswordReset(to string, resetLink string) error

	// Close закрывает соединение с провайдером
	Close() error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	// Render рендерит шаблон с данными
	Render(templateName string, data TemplateData) (string, error)

	// AddTemplate добавляет шаблон в рендерер
	AddTemplate(name string, template string) error
}
