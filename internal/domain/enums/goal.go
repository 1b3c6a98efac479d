package enums

import "strings"

// Goal is a profile's stated reason for being on the app. The set is open:
// unknown values are stored as-is, these are only the values the clients
// render with dedicated icons.
type Goal string

const (
	GoalChat         Goal = "chat"
	GoalRelationship Goal = "relationship"
	GoalSex          Goal = "sex"
	GoalHobby        Goal = "hobby"
)

func NormalizeGoal(value string) Goal {
	return Goal(strings.ToLower(strings.TrimSpace(value)))
}

func (g Goal) IsKnown() bool {
	switch g {
	case GoalChat, GoalRelationship, GoalSex, GoalHobby:
		return true
	default:
		return false
	}
}

func (g Goal) String() string {
	return string(g)
}
