package state

// Local store keys. One key per category list plus ad-hoc counter keys
// that encode username and local date.
const (
	lastUserKey = "last_username"
	profileKey  = "profile"
	goalsKey    = "goals"
	groupsKey   = "groups"
)

func historyKey(category string) string {
	return "history:" + category
}

func awardCountKey(username, category, date string) string {
	return "xp_awards:" + username + ":" + category + ":" + date
}

func usageCountKey(username, kind, date string) string {
	return "usage:" + username + ":" + kind + ":" + date
}
