package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Имена встроенных шаблонов
const (
	TemplatePasswordReset = "password_reset"
)

// passwordResetTemplate - встроенный шаблон письма сброса пароля.
// Текст повторяет письмо, которое портал отправлял всегда: ссылка
// действительна 24 часа, чужие запросы игнорировать.
const passwordResetTemplate = `<html>
<body>
<p>Здравствуйте!</p>
<p>Вы запросили восстановление пароля для вашего аккаунта.</p>
<p>Для установки нового пароля перейдите по ссылке:<br>
<a href="{{.ResetLink}}">{{.ResetLink}}</a></p>
<p>Ссылка действительна в течение 24 часов.</p>
<p>Если вы не запрашивали восстановление пароля, проигнорируйте это письмо.</p>
<p>С уважением,<br>Команда Школьных олимпиад</p>
</body>
</html>`

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с предзагруженными встроенными шаблонами
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	if err := tm.AddTemplate(TemplatePasswordReset, passwordResetTemplate); err != nil {
		return nil, err
	}

	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет или заменяет шаблон
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %q: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
