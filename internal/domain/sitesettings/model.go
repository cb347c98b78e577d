package sitesettings

// Settings is the process-wide singleton driving site presentation. All
// fields are optional; updates are shallow merges of the provided fields.
type Settings struct {
	SiteLogo             *string
	ContactInfo          *string
	HeroTitle            *string
	HeroHighlightedText  *string
	HeroSubtitle         *string
	HeroBackgroundImage  *string
	ShowParticipantTeams *bool
}

// Merge overlays every provided (non-nil) field of patch onto s and returns
// the result; fields absent from the patch keep their current value.
func (s Settings) Merge(patch Settings) Settings {
	merged := s
	if patch.SiteLogo != nil {
		merged.SiteLogo = patch.SiteLogo
	}
	if patch.ContactInfo != nil {
		merged.ContactInfo = patch.ContactInfo
	}
	if patch.HeroTitle != nil {
		merged.HeroTitle = patch.HeroTitle
	}
	if patch.HeroHighlightedText != nil {
		merged.HeroHighlightedText = patch.HeroHighlightedText
	}
	if patch.HeroSubtitle != nil {
		merged.HeroSubtitle = patch.HeroSubtitle
	}
	if patch.HeroBackgroundImage != nil {
		merged.HeroBackgroundImage = patch.HeroBackgroundImage
	}
	if patch.ShowParticipantTeams != nil {
		merged.ShowParticipantTeams = patch.ShowParticipantTeams
	}
	return merged
}

// ParticipantTeamsVisible reports whether participants may browse other
// teams' standings before the event finishes.
func (s Settings) ParticipantTeamsVisible() bool {
	return s.ShowParticipantTeams != nil && *s.ShowParticipantTeams
}
