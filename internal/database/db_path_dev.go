//go:build !prod

package database

// GetDefaultDBPath returns a database file in the working directory so
// history can be inspected during development.
func GetDefaultDBPath() string {
	return "fitpromo.dev.db"
}

func IsDevelopment() bool {
	return true
}
