package handlers

// AppHandlers holds every HTTP handler of the application
type AppHandlers struct {
	AuthHandler     *AuthHandler
	EventHandler    *EventHandler
	NoticeHandler   *NoticeHandler
	AdminHandler    *AdminHandler
	SettingsHandler *SettingsHandler
	PublicHandler   *PublicHandler
}
