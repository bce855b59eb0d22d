package contextkeys

// Кастомный тип ключа, чтобы избежать коллизий с другими пакетами
type contextKey string

// DBContextKey - ключ, по которому в context хранится *gorm.DB.
// В обычном запросе это пул соединений, в интеграционных тестах - транзакция.
const DBContextKey = contextKey("db")
