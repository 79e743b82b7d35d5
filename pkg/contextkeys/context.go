package contextkeys

// Кастомный тип ключа, чтобы не конфликтовать со строковыми ключами gin
type contextKey string

// DBContextKey - ключ, под которым DBMiddleware кладет *gorm.DB
// (пул соединений или транзакцию интеграционного теста) в контекст запроса
const DBContextKey = contextKey("db")
