package chat

import "strings"

// emergencyKeywords are matched as case-insensitive substrings before any
// AI call is made. A hit short-circuits the chatbot with a canned emergency
// message so nobody waits on a model for "chest pain".
var emergencyKeywords = []string{
	"chest pain",
	"can't breathe",
	"cannot breathe",
	"difficulty breathing",
	"heart attack",
	"stroke",
	"unconscious",
	"not breathing",
	"severe bleeding",
	"bleeding heavily",
	"seizure",
	"suicide",
	"poison",
	"snake bite",
	"सीने में दर्द",   // chest pain (Hindi)
	"सांस नहीं",       // can't breathe (Hindi)
	"বুকে ব্যথা",      // chest pain (Bengali)
	"നെഞ്ചുവേദന",      // chest pain (Malayalam)
	"மார்பு வலி",      // chest pain (Tamil)
}

// IsEmergency reports whether the message contains any configured
// emergency phrase.
func IsEmergency(message string) bool {
	m := strings.ToLower(message)
	for _, kw := range emergencyKeywords {
		if strings.Contains(m, kw) {
			return true
		}
	}
	return false
}
