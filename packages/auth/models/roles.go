package models

// Constantes pour les rôles disponibles
const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// GetDefaultRoles retourne les rôles par défaut pour un nouvel utilisateur
func GetDefaultRoles() Roles {
	return Roles{RoleUser}
}

// GetAdminRoles retourne les rôles autorisés sur le panneau d'administration
func GetAdminRoles() []string {
	return []string{RoleAdmin, RoleEditor}
}

// GetAllRoles retourne tous les rôles disponibles
func GetAllRoles() []string {
	return []string{
		RoleUser,
		RoleAdmin,
		RoleEditor,
	}
}
