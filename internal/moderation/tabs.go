package moderation

import "memorywall/internal/model"

type TabKey string

const (
	TabCeremony   TabKey = "ceremony"
	TabAfterparty TabKey = "afterparty"
	TabAlbum      TabKey = "album"
)

// TabKeys lists the fixed channels in display order.
var TabKeys = [3]TabKey{TabCeremony, TabAfterparty, TabAlbum}

var defaultTabNames = map[TabKey]string{
	TabCeremony:   "Ceremony",
	TabAfterparty: "After Party",
	TabAlbum:      "Album",
}

type TabConfig struct {
	Key     TabKey           `json:"key"`
	Name    string           `json:"name"`
	Content model.TabContent `json:"content"`
	Visible bool             `json:"-"`
}

func ValidTabContent(c model.TabContent) bool {
	switch c {
	case model.ContentAll, model.ContentPhoto, model.ContentVideo, model.ContentMessage, model.ContentVoice:
		return true
	}
	return false
}

func normalizeContent(c model.TabContent) model.TabContent {
	if !ValidTabContent(c) {
		return model.ContentAll
	}
	return c
}

func tabName(key TabKey, name string) string {
	if name == "" {
		return defaultTabNames[key]
	}
	return name
}

// Tabs returns the configuration of all three channels, visible or not.
func Tabs(settings model.EventSettings) [3]TabConfig {
	return [3]TabConfig{
		{
			Key:     TabCeremony,
			Name:    tabName(TabCeremony, settings.TabCeremonyName),
			Content: normalizeContent(settings.TabCeremonyContent),
			Visible: settings.ShowCeremonyTab,
		},
		{
			Key:     TabAfterparty,
			Name:    tabName(TabAfterparty, settings.TabAfterpartyName),
			Content: normalizeContent(settings.TabAfterpartyContent),
			Visible: settings.ShowAfterpartyTab,
		},
		{
			Key:     TabAlbum,
			Name:    tabName(TabAlbum, settings.TabAlbumName),
			Content: normalizeContent(settings.TabAlbumContent),
			Visible: settings.ShowAlbumTab,
		},
	}
}

// EnabledTabs returns the visible channels in display order. An empty result
// means the event has no tabs configured.
func EnabledTabs(settings model.EventSettings) []TabConfig {
	tabs := make([]TabConfig, 0, len(TabKeys))
	for _, t := range Tabs(settings) {
		if t.Visible {
			tabs = append(tabs, t)
		}
	}
	return tabs
}

// FilterForTab keeps the submissions matching filter, preserving order.
// For "all" the input slice itself is returned.
func FilterForTab(submissions []model.Submission, filter model.TabContent) []model.Submission {
	if filter == model.ContentAll {
		return submissions
	}

	out := make([]model.Submission, 0, len(submissions))
	for _, s := range submissions {
		if model.TabContent(s.Type) == filter {
			out = append(out, s)
		}
	}
	return out
}

// ResolveTabView partitions already approved submissions across the visible
// tabs. Hidden tabs are absent from the result; when no tab is visible the
// map is empty and callers render the "no tabs configured" state.
func ResolveTabView(settings model.EventSettings, submissions []model.Submission) map[TabKey][]model.Submission {
	view := make(map[TabKey][]model.Submission, len(TabKeys))
	for _, t := range EnabledTabs(settings) {
		view[t.Key] = FilterForTab(submissions, t.Content)
	}
	return view
}

// DefaultSettings is the settings row created together with a new event:
// every type collected, every tab visible and unfiltered, approval policy
// left to its defaults.
func DefaultSettings() model.EventSettings {
	return model.EventSettings{
		CollectPhotos:        true,
		CollectMessages:      true,
		CollectVoicemails:    true,
		ShowCeremonyTab:      true,
		ShowAfterpartyTab:    true,
		ShowAlbumTab:         true,
		TabCeremonyName:      defaultTabNames[TabCeremony],
		TabAfterpartyName:    defaultTabNames[TabAfterparty],
		TabAlbumName:         defaultTabNames[TabAlbum],
		TabCeremonyContent:   model.ContentAll,
		TabAfterpartyContent: model.ContentAll,
		TabAlbumContent:      model.ContentAll,
	}
}
