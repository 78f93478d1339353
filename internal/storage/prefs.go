package storage

import (
	"fmt"
	"strconv"
)

// versionField is the preference field for the last-chosen playback
// version of an item.
const versionField = "version"

// PrefKey builds the preference key "<namespace>_<itemID>_<field>".
func PrefKey(namespace string, itemID int, field string) string {
	return fmt.Sprintf("%s_%s_%s", namespace, strconv.Itoa(itemID), field)
}

// SaveVersion records the preferred playback version for an item.
// Store failures are swallowed: losing a preference must never abort
// playback.
func SaveVersion(s Storage, namespace string, itemID int, version string) {
	data, err := s.Load()
	if err != nil {
		return
	}
	if data.Prefs == nil {
		data.Prefs = map[string]string{}
	}
	data.Prefs[PrefKey(namespace, itemID, versionField)] = version
	_ = s.Save(data)
}

// Version returns the preferred playback version for an item, or ""
// when none is recorded or the store is unavailable.
func Version(s Storage, namespace string, itemID int) string {
	data, err := s.Load()
	if err != nil {
		return ""
	}
	return data.Prefs[PrefKey(namespace, itemID, versionField)]
}
