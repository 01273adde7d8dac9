package domain

// SettingListViewLimit is the settings key holding the list page size.
const SettingListViewLimit = "list_view_limit"

// DefaultListViewLimit is used when the setting row is absent or unparsable.
const DefaultListViewLimit = 10

type Setting struct {
	Key    string
	Value  string
	Active bool
}
