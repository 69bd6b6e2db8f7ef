package models

import "time"

// SettingsMap maps a setting key to its value.
type SettingsMap map[string]string

type SiteSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

var defaultSettings = SettingsMap{
	"site_name":         "Lumen Studio",
	"site_tagline":      "Design, build, grow.",
	"contact_email":     "hello@lumenstudio.in",
	"contact_phone":     "+91 80000 00000",
	"whatsapp_number":   "+91 80000 00000",
	"address":           "Bengaluru, Karnataka, India",
	"business_hours":    "Mon-Sat, 10:00-19:00 IST",
	"hero_title":        "We build websites that convert",
	"hero_subtitle":     "Strategy, design and engineering under one roof.",
	"booking_enabled":   "true",
	"callback_enabled":  "true",
	"instagram_url":     "",
	"linkedin_url":      "",
	"meta_description":  "Lumen Studio is a digital agency building fast, modern websites.",
	"maintenance_mode":  "false",
	"announcement_text": "",
	"show_announcement": "false",
}

// DefaultSettings returns a fresh copy of the static defaults.
func DefaultSettings() SettingsMap {
	out := make(SettingsMap, len(defaultSettings))
	for k, v := range defaultSettings {
		out[k] = v
	}
	return out
}

// DefaultSetting returns the static default for key, or "" when there is none.
func DefaultSetting(key string) string {
	return defaultSettings[key]
}
