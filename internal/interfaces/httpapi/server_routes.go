package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.HandleFunc("POST /v1/auth/register", handler.Register)

	mux.HandleFunc("GET /v1/site-settings", handler.GetSiteSettings)
	mux.HandleFunc("GET /v1/announcements", handler.ListPublicAnnouncements)
	mux.HandleFunc("GET /v1/history/seasons", handler.ListSeasons)

	mux.HandleFunc("GET /v1/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/events/{eventID}", handler.GetEvent)
	mux.HandleFunc("GET /v1/events/{eventID}/teams", handler.ListTeamsByEvent)
	mux.HandleFunc("GET /v1/events/{eventID}/players", handler.ListPlayersByEvent)
	mux.HandleFunc("GET /v1/events/{eventID}/leaderboard", handler.GetLeaderboard)
}

func registerParticipantRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	authed := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, h)
	}

	mux.Handle("POST /v1/auth/logout", authed(handler.Logout))
	mux.Handle("GET /v1/me", authed(handler.GetMe))
	mux.Handle("PUT /v1/me/profile", authed(handler.UpdateMyProfile))
	mux.Handle("PUT /v1/me/password", authed(handler.UpdateMyPassword))

	mux.Handle("GET /v1/dashboard", authed(handler.GetDashboard))
	mux.Handle("GET /v1/me/announcements", authed(handler.ListMyAnnouncements))

	mux.Handle("POST /v1/events/{eventID}/roster-validation", authed(handler.ValidateDraft))
	mux.Handle("POST /v1/rosters", authed(handler.CreateRoster))
	mux.Handle("PUT /v1/rosters/{rosterID}", authed(handler.ReviseRoster))
	mux.Handle("GET /v1/rosters/me", authed(handler.ListMyRosters))
	mux.Handle("GET /v1/rosters/{rosterID}", authed(handler.GetRoster))
	mux.Handle("GET /v1/events/{eventID}/rosters", authed(handler.ListRostersByEvent))

	mux.Handle("POST /v1/replacements", authed(handler.SubmitReplacement))
	mux.Handle("GET /v1/rosters/{rosterID}/replacements", authed(handler.ListReplacementsByRoster))

	mux.Handle("GET /v1/chat", authed(handler.GetMyChatThread))
	mux.Handle("POST /v1/chat", authed(handler.SendChatMessage))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(h))
	}

	mux.Handle("POST /v1/events", admin(handler.CreateEvent))
	mux.Handle("PUT /v1/events/{eventID}", admin(handler.UpdateEvent))
	mux.Handle("DELETE /v1/events/{eventID}", admin(handler.DeleteEvent))

	mux.Handle("POST /v1/events/{eventID}/teams", admin(handler.AddTeam))
	mux.Handle("PUT /v1/teams/{teamID}", admin(handler.RenameTeam))
	mux.Handle("DELETE /v1/teams/{teamID}", admin(handler.DeleteTeam))

	mux.Handle("POST /v1/events/{eventID}/players", admin(handler.AddPlayer))
	mux.Handle("POST /v1/events/{eventID}/players/import", admin(handler.ImportPlayers))
	mux.Handle("PUT /v1/players/{playerID}", admin(handler.UpdatePlayer))
	mux.Handle("PUT /v1/players/{playerID}/points", admin(handler.UpdatePlayerPoints))
	mux.Handle("DELETE /v1/players/{playerID}", admin(handler.DeletePlayer))

	mux.Handle("GET /v1/replacements", admin(handler.ListReplacements))
	mux.Handle("POST /v1/replacements/{requestID}/accept", admin(handler.AcceptReplacement))
	mux.Handle("POST /v1/replacements/{requestID}/reject", admin(handler.RejectReplacement))

	mux.Handle("POST /v1/announcements", admin(handler.PostAnnouncement))
	mux.Handle("DELETE /v1/announcements/{announcementID}", admin(handler.DeleteAnnouncement))

	mux.Handle("PUT /v1/site-settings", admin(handler.UpdateSiteSettings))

	mux.Handle("POST /v1/history/seasons", admin(handler.AddSeason))
	mux.Handle("PUT /v1/history/seasons/{seasonID}", admin(handler.UpdateSeason))
	mux.Handle("DELETE /v1/history/seasons/{seasonID}", admin(handler.DeleteSeason))
	mux.Handle("POST /v1/history/archive", admin(handler.ArchiveFinishedEvents))
	mux.Handle("GET /v1/events/{eventID}/archived-leaderboard", admin(handler.GetArchivedLeaderboard))

	mux.Handle("GET /v1/users", admin(handler.ListUsers))
	mux.Handle("PUT /v1/users/{userID}/role", admin(handler.ChangeUserRole))

	mux.Handle("GET /v1/chat/threads", admin(handler.ListChatThreads))
	mux.Handle("GET /v1/chat/threads/{participantID}", admin(handler.GetChatThread))
	mux.Handle("POST /v1/chat/threads/{participantID}", admin(handler.SendChatToParticipant))
}
