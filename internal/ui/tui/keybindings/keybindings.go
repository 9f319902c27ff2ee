package keybindings

import tea "github.com/charmbracelet/bubbletea"

// Action represents a specific action that can be triggered by a key
type Action string

// Define all possible actions
const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionToggleHelp Action = "toggle_help"
	ActionBack       Action = "back" // General purpose "go back" or "cancel"

	// Navigation actions
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionPageUp     Action = "page_up"
	ActionPageDown   Action = "page_down"
	ActionMoveTop    Action = "move_top"
	ActionMoveBottom Action = "move_bottom"

	// Anime list actions
	ActionRefreshAnimeList Action = "refresh_anime_list"
	ActionViewAnimeDetails Action = "view_anime_details"
	ActionAddAnime         Action = "add_anime"
	ActionEditAnime        Action = "edit_anime"
	ActionDeleteAnime      Action = "delete_anime"

	// Search mode actions
	ActionEnableSearch   Action = "enable_search"
	ActionSearchComplete Action = "search_complete"

	// Form actions
	ActionNextField    Action = "next_field"
	ActionPrevField    Action = "prev_field"
	ActionSubmitForm   Action = "submit_form"
	ActionLookupAnime  Action = "lookup_anime"
	ActionClearFormErr Action = "clear_form_error"

	// Menu actions
	ActionSelectMenuItem Action = "select_menu_item"
	ActionConfirm        Action = "confirm"
	ActionDecline        Action = "decline"
)

// ContextName represents a specific UI context in the application that has its own keybinds
type ContextName string

const (
	ContextGlobal       ContextName = "global"
	ContextAnimeList    ContextName = "anime_list"
	ContextAnimeForm    ContextName = "anime_form"
	ContextAnimeDetails ContextName = "anime_details"
	ContextSearchMode   ContextName = "search_mode"
	ContextConfirm      ContextName = "confirm"
	ContextHelp         ContextName = "help"
)

var ContextBindings = map[ContextName][]Binding{
	ContextGlobal:       globalBindings,
	ContextAnimeList:    animeListBindings,
	ContextAnimeForm:    animeFormBindings,
	ContextAnimeDetails: detailsBindings,
	ContextSearchMode:   searchModeBindings,
	ContextConfirm:      confirmBindings,
	ContextHelp:         helpBindings,
}

// KeyMap stores the mappings from actions to key sequences for each context
type KeyMap struct {
	Primary   string
	Secondary string // Optional alternative key
	Help      string // Description for help screen
}

// Binding maps an action to its keys and help text
type Binding struct {
	Action Action
	KeyMap KeyMap
}

// navigationBindings contains general navigation bindings for consistent navigation across the app
var navigationBindings = []Binding{
	{
		Action: ActionMoveUp,
		KeyMap: KeyMap{
			Primary:   "up",
			Secondary: "k",
			Help:      "Move cursor up",
		},
	},
	{
		Action: ActionMoveDown,
		KeyMap: KeyMap{
			Primary:   "down",
			Secondary: "j",
			Help:      "Move cursor down",
		},
	},
	{
		Action: ActionPageUp,
		KeyMap: KeyMap{
			Primary: "pgup",
			Help:    "Move up one page",
		},
	},
	{
		Action: ActionPageDown,
		KeyMap: KeyMap{
			Primary: "pgdown",
			Help:    "Move down one page",
		},
	},
	{
		Action: ActionMoveTop,
		KeyMap: KeyMap{
			Primary: "home",
			Help:    "Move top of view",
		},
	},
	{
		Action: ActionMoveBottom,
		KeyMap: KeyMap{
			Primary: "end",
			Help:    "Move bottom of view",
		},
	},
}

// globalBindings contains key bindings that work across all views
var globalBindings = []Binding{
	{
		Action: ActionQuit,
		KeyMap: KeyMap{
			Primary: "ctrl+c",
			Help:    "Quit application",
		},
	},
	{
		Action: ActionToggleHelp,
		KeyMap: KeyMap{
			Primary: "ctrl+h",
			Help:    "Toggle help screen",
		},
	},
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary: "esc",
			Help:    "Go back/cancel current action",
		},
	},
}

// helpBindings contains key bindings specific to the help view
var helpBindings = withNavigation([]Binding{})

// detailsBindings contains key bindings for the anime details view
var detailsBindings = withNavigation([]Binding{
	{
		Action: ActionEditAnime,
		KeyMap: KeyMap{
			Primary: "e",
			Help:    "Edit this anime",
		},
	},
	{
		Action: ActionDeleteAnime,
		KeyMap: KeyMap{
			Primary: "d",
			Help:    "Delete this anime",
		},
	},
})

// animeListBindings contains key bindings specific to the anime list view
var animeListBindings = withNavigation([]Binding{
	{
		Action: ActionRefreshAnimeList,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Reload anime list",
		},
	},
	{
		Action: ActionViewAnimeDetails,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "View anime details",
		},
	},
	{
		Action: ActionEnableSearch,
		KeyMap: KeyMap{
			Primary:   "/",
			Secondary: "ctrl+f",
			Help:      "Search anime",
		},
	},
	{
		Action: ActionAddAnime,
		KeyMap: KeyMap{
			Primary:   "n",
			Secondary: "a",
			Help:      "Add anime",
		},
	},
	{
		Action: ActionEditAnime,
		KeyMap: KeyMap{
			Primary: "e",
			Help:    "Edit selected anime",
		},
	},
	{
		Action: ActionDeleteAnime,
		KeyMap: KeyMap{
			Primary:   "d",
			Secondary: "delete",
			Help:      "Delete selected anime",
		},
	},
})

// animeFormBindings are checked before keys reach the focused input, so none of them may be a printable character
var animeFormBindings = []Binding{
	{
		Action: ActionNextField,
		KeyMap: KeyMap{
			Primary:   "tab",
			Secondary: "down",
			Help:      "Next field",
		},
	},
	{
		Action: ActionPrevField,
		KeyMap: KeyMap{
			Primary:   "shift+tab",
			Secondary: "up",
			Help:      "Previous field",
		},
	},
	{
		Action: ActionSubmitForm,
		KeyMap: KeyMap{
			Primary: "ctrl+s",
			Help:    "Save anime",
		},
	},
	{
		Action: ActionLookupAnime,
		KeyMap: KeyMap{
			Primary: "ctrl+l",
			Help:    "Fill the form from AniList using the title",
		},
	},
	{
		Action: ActionClearFormErr,
		KeyMap: KeyMap{
			Primary: "ctrl+x",
			Help:    "Dismiss the error message",
		},
	},
}

// searchModeBindings contains key bindings specific for when search mode is active
var searchModeBindings = []Binding{
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary:   "esc",
			Secondary: "ctrl+f",
			Help:      "Exit search mode and remove the filter",
		},
	},
	{
		Action: ActionSearchComplete,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Apply the search filter and return control to the list",
		},
	},
}

// confirmBindings are used by yes/no menus
var confirmBindings = []Binding{
	{
		Action: ActionMoveUp,
		KeyMap: KeyMap{
			Primary:   "up",
			Secondary: "k",
			Help:      "Move cursor up",
		},
	},
	{
		Action: ActionMoveDown,
		KeyMap: KeyMap{
			Primary:   "down",
			Secondary: "j",
			Help:      "Move cursor down",
		},
	},
	{
		Action: ActionSelectMenuItem,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Choose the highlighted option",
		},
	},
	{
		Action: ActionConfirm,
		KeyMap: KeyMap{
			Primary:   "y",
			Secondary: "Y",
			Help:      "Yes",
		},
	},
	{
		Action: ActionDecline,
		KeyMap: KeyMap{
			Primary:   "n",
			Secondary: "N",
			Help:      "No",
		},
	},
}

// GetActionKey returns the primary key for an action
func GetActionKey(action Action, bindings []Binding) string {
	for _, binding := range bindings {
		if binding.Action == action {
			return binding.KeyMap.Primary
		}
	}
	return ""
}

// GetBindingByKey returns the action and help text for a given key
func GetBindingByKey(key string, bindings []Binding) (Action, string) {
	for _, binding := range bindings {
		if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
			return binding.Action, binding.KeyMap.Help
		}
	}
	return "", ""
}

// GetActionByKey returns just the action for a given key, or an empty Action if not found
func GetActionByKey(keyMsg tea.KeyMsg, name ContextName) Action {
	if bindings, exists := ContextBindings[name]; exists {
		action, _ := GetBindingByKey(keyMsg.String(), bindings)
		return action
	}
	return ""
}

// FormatKeyHelp formats a key binding for display in help text
func FormatKeyHelp(binding Binding) string {
	if binding.KeyMap.Secondary != "" {
		return binding.KeyMap.Primary + "/" + binding.KeyMap.Secondary + ": " + binding.KeyMap.Help
	}
	return binding.KeyMap.Primary + ": " + binding.KeyMap.Help
}

// withNavigation is a helper function to include navigation bindings in other binding sets
func withNavigation(bindings []Binding) []Binding {
	return append(append([]Binding{}, navigationBindings...), bindings...)
}
