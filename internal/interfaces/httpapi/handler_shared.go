package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/cnfl/fantasy-cricket/internal/domain/announcement"
	"github.com/cnfl/fantasy-cricket/internal/domain/chat"
	"github.com/cnfl/fantasy-cricket/internal/domain/history"
	"github.com/cnfl/fantasy-cricket/internal/domain/player"
	"github.com/cnfl/fantasy-cricket/internal/domain/replacement"
	"github.com/cnfl/fantasy-cricket/internal/domain/roster"
	"github.com/cnfl/fantasy-cricket/internal/domain/sitesettings"
	"github.com/cnfl/fantasy-cricket/internal/domain/team"
	"github.com/cnfl/fantasy-cricket/internal/domain/user"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/usecase"
)

type Handler struct {
	authService          *usecase.AuthService
	eventService         *usecase.EventService
	teamService          *usecase.TeamService
	playerService        *usecase.PlayerService
	rosterService        *usecase.RosterService
	scoringService       *usecase.ScoringService
	replacementService   *usecase.ReplacementService
	dashboardService     *usecase.DashboardService
	communicationService *usecase.CommunicationService
	historyService       *usecase.HistoryService
	settingsService      *usecase.SettingsService
	logger               *logging.Logger
	validator            *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	eventService *usecase.EventService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	rosterService *usecase.RosterService,
	scoringService *usecase.ScoringService,
	replacementService *usecase.ReplacementService,
	dashboardService *usecase.DashboardService,
	communicationService *usecase.CommunicationService,
	historyService *usecase.HistoryService,
	settingsService *usecase.SettingsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:          authService,
		eventService:         eventService,
		teamService:          teamService,
		playerService:        playerService,
		rosterService:        rosterService,
		scoringService:       scoringService,
		replacementService:   replacementService,
		dashboardService:     dashboardService,
		communicationService: communicationService,
		historyService:       historyService,
		settingsService:      settingsService,
		logger:               logger,
		validator:            validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads, parses and validates a JSON body in one step.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, target any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, target)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func mustPrincipal(ctx context.Context, w http.ResponseWriter) (user.Principal, bool) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return user.Principal{}, false
	}
	return principal, true
}

type eventDTO struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	Description              string `json:"description,omitempty"`
	RegistrationDeadline     string `json:"registrationDeadline"`
	TournamentEndTime        string `json:"tournamentEndTime"`
	LeagueType               string `json:"leagueType"`
	MaxForeignPlayers        int    `json:"maxForeignPlayers"`
	TotalMatches             int    `json:"totalMatches"`
	MaxMatchesPerTeam        int    `json:"maxMatchesPerTeam"`
	MaxPlayersFromSingleTeam int    `json:"maxPlayersFromSingleTeam"`
	MaxVipPlayers            int    `json:"maxVipPlayers"`
	MaxReplacements          int    `json:"maxReplacements"`
	Status                   string `json:"status"`
}

func eventToDTO(view usecase.EventView) eventDTO {
	return eventDTO{
		ID:                       view.ID,
		Name:                     view.Name,
		Description:              view.Description,
		RegistrationDeadline:     view.RegistrationDeadline.UTC().Format(time.RFC3339),
		TournamentEndTime:        view.TournamentEndTime.UTC().Format(time.RFC3339),
		LeagueType:               string(view.LeagueType),
		MaxForeignPlayers:        view.MaxForeignPlayers,
		TotalMatches:             view.TotalMatches,
		MaxMatchesPerTeam:        view.MaxMatchesPerTeam,
		MaxPlayersFromSingleTeam: view.MaxPlayersFromSingleTeam,
		MaxVipPlayers:            view.MaxVipPlayers,
		MaxReplacements:          view.MaxReplacements,
		Status:                   string(view.Status),
	}
}

type teamDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	EventID string `json:"eventId"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{ID: t.ID, Name: t.Name, EventID: t.EventID}
}

type playerDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	TeamID      string `json:"teamId"`
	TeamName    string `json:"teamName"`
	EventID     string `json:"eventId"`
	Points      []int  `json:"points"`
	TotalPoints int    `json:"totalPoints"`
}

func playerToDTO(p player.Player) playerDTO {
	points := p.Points
	if points == nil {
		points = []int{}
	}
	return playerDTO{
		ID:          p.ID,
		Name:        p.Name,
		Category:    string(p.Category),
		Type:        string(p.Type),
		TeamID:      p.TeamID,
		TeamName:    p.TeamName,
		EventID:     p.EventID,
		Points:      points,
		TotalPoints: p.TotalPoints(),
	}
}

type slotDTO struct {
	PlayerID string `json:"playerId" validate:"required"`
	IsVip    bool   `json:"isVip"`
}

type rosterDTO struct {
	ID               string    `json:"id"`
	ParticipantID    string    `json:"participantId"`
	ParticipantName  string    `json:"participantName"`
	TeamName         string    `json:"teamName"`
	EventID          string    `json:"eventId"`
	Slots            []slotDTO `json:"slots"`
	ReplacementsLeft int       `json:"replacementsLeft"`
	ArchivedPoints   int       `json:"archivedPoints"`
}

func rosterToDTO(t roster.Team) rosterDTO {
	slots := make([]slotDTO, 0, len(t.Slots))
	for _, s := range t.Slots {
		slots = append(slots, slotDTO{PlayerID: s.PlayerID, IsVip: s.IsVip})
	}
	return rosterDTO{
		ID:               t.ID,
		ParticipantID:    t.ParticipantID,
		ParticipantName:  t.ParticipantName,
		TeamName:         t.TeamName,
		EventID:          t.EventID,
		Slots:            slots,
		ReplacementsLeft: t.ReplacementsLeft,
		ArchivedPoints:   t.ArchivedPoints,
	}
}

func slotsFromDTO(slots []slotDTO) []roster.Slot {
	out := make([]roster.Slot, 0, len(slots))
	for _, s := range slots {
		out = append(out, roster.Slot{PlayerID: s.PlayerID, IsVip: s.IsVip})
	}
	return out
}

type ruleResultDTO struct {
	Passed bool `json:"passed"`
	Count  int  `json:"count"`
	Bound  int  `json:"bound"`
}

type draftReportDTO struct {
	Valid          bool           `json:"valid"`
	Size           ruleResultDTO  `json:"size"`
	Vips           ruleResultDTO  `json:"vips"`
	SingleTeam     ruleResultDTO  `json:"singleTeam"`
	Wicketkeepers  ruleResultDTO  `json:"wicketkeepers"`
	Bowlers        ruleResultDTO  `json:"bowlers"`
	BowlCapable    ruleResultDTO  `json:"bowlCapable"`
	Foreign        *ruleResultDTO `json:"foreign,omitempty"`
	ResolutionNote string         `json:"resolutionNote,omitempty"`
}

func reportToDTO(report roster.Report) draftReportDTO {
	toDTO := func(r roster.RuleResult) ruleResultDTO {
		return ruleResultDTO{Passed: r.Passed, Count: r.Count, Bound: r.Bound}
	}

	dto := draftReportDTO{
		Valid:         report.Valid(),
		Size:          toDTO(report.Size),
		Vips:          toDTO(report.Vips),
		SingleTeam:    toDTO(report.SingleTeam),
		Wicketkeepers: toDTO(report.Wicketkeepers),
		Bowlers:       toDTO(report.Bowlers),
		BowlCapable:   toDTO(report.BowlCapable),
	}
	if report.ForeignChecked {
		foreign := toDTO(report.Foreign)
		dto.Foreign = &foreign
	}
	if report.Resolution != nil {
		dto.ResolutionNote = report.Resolution.Error()
	}
	return dto
}

type leaderboardEntryDTO struct {
	Rank            int    `json:"rank"`
	TeamID          string `json:"teamId"`
	TeamName        string `json:"teamName"`
	ParticipantID   string `json:"participantId"`
	ParticipantName string `json:"participantName"`
	Points          int    `json:"points"`
}

func leaderboardToDTO(entries []roster.Entry) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntryDTO{
			Rank:            e.Rank,
			TeamID:          e.TeamID,
			TeamName:        e.TeamName,
			ParticipantID:   e.ParticipantID,
			ParticipantName: e.ParticipantName,
			Points:          e.Points,
		})
	}
	return out
}

type replacementDTO struct {
	ID               string `json:"id"`
	RosterID         string `json:"rosterId"`
	ParticipantName  string `json:"participantName"`
	OutgoingPlayerID string `json:"outgoingPlayerId"`
	IncomingPlayerID string `json:"incomingPlayerId"`
	Note             string `json:"note,omitempty"`
	Status           string `json:"status"`
	Reason           string `json:"reason,omitempty"`
	CreatedAt        string `json:"createdAt"`
}

func replacementToDTO(r replacement.Request) replacementDTO {
	return replacementDTO{
		ID:               r.ID,
		RosterID:         r.RosterID,
		ParticipantName:  r.ParticipantName,
		OutgoingPlayerID: r.OutgoingPlayerID,
		IncomingPlayerID: r.IncomingPlayerID,
		Note:             r.Note,
		Status:           string(r.Status),
		Reason:           r.Reason,
		CreatedAt:        r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type announcementDTO struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Scope     string `json:"scope"`
	CreatedAt string `json:"createdAt"`
}

func announcementToDTO(a announcement.Announcement) announcementDTO {
	return announcementDTO{
		ID:        a.ID,
		Message:   a.Message,
		Scope:     string(a.Scope),
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type chatMessageDTO struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	ReceiverID string `json:"receiverId"`
	Body       string `json:"body"`
	CreatedAt  string `json:"createdAt"`
}

func chatMessageToDTO(m chat.Message) chatMessageDTO {
	return chatMessageDTO{
		ID:         m.ID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		ReceiverID: m.ReceiverID,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type seasonDTO struct {
	ID               string `json:"id"`
	SeasonNumber     string `json:"seasonNumber"`
	TournamentName   string `json:"tournamentName"`
	Winner           string `json:"winner,omitempty"`
	RunnersUp        string `json:"runnersUp,omitempty"`
	ParticipantCount string `json:"participantCount,omitempty"`
}

func seasonToDTO(s history.Season) seasonDTO {
	return seasonDTO{
		ID:               s.ID,
		SeasonNumber:     s.SeasonNumber,
		TournamentName:   s.TournamentName,
		Winner:           s.Winner,
		RunnersUp:        s.RunnersUp,
		ParticipantCount: s.ParticipantCount,
	}
}

type archivedEntryDTO struct {
	EventID         string `json:"eventId"`
	TeamID          string `json:"teamId"`
	TeamName        string `json:"teamName"`
	ParticipantID   string `json:"participantId"`
	ParticipantName string `json:"participantName"`
	Rank            int    `json:"rank"`
	Points          int    `json:"points"`
	ArchivedAt      string `json:"archivedAt"`
}

func archivedEntryToDTO(e history.ArchivedEntry) archivedEntryDTO {
	return archivedEntryDTO{
		EventID:         e.EventID,
		TeamID:          e.TeamID,
		TeamName:        e.TeamName,
		ParticipantID:   e.ParticipantID,
		ParticipantName: e.ParticipantName,
		Rank:            e.Rank,
		Points:          e.Points,
		ArchivedAt:      e.ArchivedAt.UTC().Format(time.RFC3339),
	}
}

type siteSettingsDTO struct {
	SiteLogo             *string `json:"siteLogo,omitempty"`
	ContactInfo          *string `json:"contactInfo,omitempty"`
	HeroTitle            *string `json:"heroTitle,omitempty"`
	HeroHighlightedText  *string `json:"heroHighlightedText,omitempty"`
	HeroSubtitle         *string `json:"heroSubtitle,omitempty"`
	HeroBackgroundImage  *string `json:"heroBackgroundImage,omitempty"`
	ShowParticipantTeams *bool   `json:"showParticipantTeams,omitempty"`
}

func settingsToDTO(s sitesettings.Settings) siteSettingsDTO {
	return siteSettingsDTO{
		SiteLogo:             s.SiteLogo,
		ContactInfo:          s.ContactInfo,
		HeroTitle:            s.HeroTitle,
		HeroHighlightedText:  s.HeroHighlightedText,
		HeroSubtitle:         s.HeroSubtitle,
		HeroBackgroundImage:  s.HeroBackgroundImage,
		ShowParticipantTeams: s.ShowParticipantTeams,
	}
}

func settingsFromDTO(dto siteSettingsDTO) sitesettings.Settings {
	return sitesettings.Settings{
		SiteLogo:             dto.SiteLogo,
		ContactInfo:          dto.ContactInfo,
		HeroTitle:            dto.HeroTitle,
		HeroHighlightedText:  dto.HeroHighlightedText,
		HeroSubtitle:         dto.HeroSubtitle,
		HeroBackgroundImage:  dto.HeroBackgroundImage,
		ShowParticipantTeams: dto.ShowParticipantTeams,
	}
}

type userDTO struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	ProfileLink string `json:"profileLink,omitempty"`
	Role        string `json:"role"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		ProfileLink: u.ProfileLink,
		Role:        string(u.Role),
	}
}

type dashboardDTO struct {
	Focus                 string     `json:"focus"`
	Event                 *eventDTO  `json:"event,omitempty"`
	Roster                *rosterDTO `json:"roster,omitempty"`
	CanJoin               bool       `json:"canJoin"`
	CanReviseRoster       bool       `json:"canReviseRoster"`
	CanRequestReplacement bool       `json:"canRequestReplacement"`
	ShowLeaderboard       bool       `json:"showLeaderboard"`
	ReplacementsLeft      int        `json:"replacementsLeft"`
}

func dashboardToDTO(d usecase.Dashboard) dashboardDTO {
	dto := dashboardDTO{
		Focus:                 string(d.Focus),
		CanJoin:               d.CanJoin,
		CanReviseRoster:       d.CanReviseRoster,
		CanRequestReplacement: d.CanRequestReplacement,
		ShowLeaderboard:       d.ShowLeaderboard,
		ReplacementsLeft:      d.ReplacementsLeft,
	}
	if d.Event != nil {
		event := eventToDTO(*d.Event)
		dto.Event = &event
	}
	if d.Roster != nil {
		team := rosterToDTO(*d.Roster)
		dto.Roster = &team
	}
	return dto
}
