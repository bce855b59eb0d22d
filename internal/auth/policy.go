package auth

import "propel_backend/internal/models"

// Principal - аутентифицированный вызывающий, восстановленный из access-токена
type Principal struct {
	AccountID string
	Role      models.Role
}

// IsAdmin сообщает, администратор ли вызывающий
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// CanAccess - единая политика доступа к чужим ресурсам:
// владелец ресурса или администратор. Все проверки "свой/чужой"
// на HTTP-границе идут через эту функцию, а не руками в хендлерах.
func CanAccess(p Principal, resourceOwnerID string) bool {
	if p.IsAdmin() {
		return true
	}
	return p.AccountID != "" && p.AccountID == resourceOwnerID
}
