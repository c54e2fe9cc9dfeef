package services

import (
	"tfl_backend/internal/email"
)

// ServiceContainer holds every application service
type ServiceContainer struct {
	AuthService   AuthService
	UserService   UserService
	EventService  EventService
	NoticeService NoticeService
	EmailService  email.Provider
}
