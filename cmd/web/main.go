package main

import (
	"olympschools_backend/internal/app"
)

// @title OlympSchools API
// @version 1.0
// @description Портал регистрации школьников на олимпиады: аккаунты, профили, сброс пароля.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Вставьте токен в формате: Bearer {token}

func main() {
	app.Run()
}
